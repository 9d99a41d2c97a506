package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "fintrack/internal/domain/port/core"
	reportUseCase "fintrack/internal/domain/usecase/report"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// ReportHandler handles alert and report HTTP requests
type ReportHandler struct {
	reportService *reportUseCase.UseCase
	logger        coreport.Logger
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(reportService *reportUseCase.UseCase, logger coreport.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// Alerts handles GET /api/alerts
func (h *ReportHandler) Alerts(c *gin.Context) {
	alerts, err := h.reportService.Alerts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAlertListResponse(alerts))
}
