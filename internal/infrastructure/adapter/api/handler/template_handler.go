package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "fintrack/internal/domain/error"
	coreport "fintrack/internal/domain/port/core"
	templateUseCase "fintrack/internal/domain/usecase/template"
	"fintrack/internal/infrastructure/adapter/api/dto"
	"fintrack/internal/infrastructure/adapter/api/middleware"
)

// TemplateHandler handles transaction template HTTP requests
type TemplateHandler struct {
	templateService *templateUseCase.UseCase
	logger          coreport.Logger
}

// NewTemplateHandler creates a new template handler instance
func NewTemplateHandler(templateService *templateUseCase.UseCase, logger coreport.Logger) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, logger: logger}
}

func parseTemplateID(c *gin.Context) (uint64, bool) {
	templateID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid template ID format",
		})
		return 0, false
	}
	return templateID, true
}

// List handles GET /api/tx-templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTemplateListResponse(templates))
}

// Create handles POST /api/tx-templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), middleware.UserID(c), templateUseCase.CreateRequest{
		Title:       req.Title,
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		CardUID:     req.CardUID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTemplateResponse(tpl))
}

// Use handles POST /api/tx-templates/:id/use. The instantiated
// transaction goes through the full admission pipeline.
func (h *TemplateHandler) Use(c *gin.Context) {
	templateID, ok := parseTemplateID(c)
	if !ok {
		return
	}

	// body is optional; an empty body means no overrides
	var req dto.TemplateUseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "Invalid request format: " + err.Error(),
			})
			return
		}
	}

	txn, err := h.templateService.Use(c.Request.Context(), middleware.UserID(c), templateID, templateUseCase.UseOverrides{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		CardUID:     req.CardUID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn, "", ""))
}

// Delete handles DELETE /api/tx-templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	templateID, ok := parseTemplateID(c)
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), middleware.UserID(c), templateID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
