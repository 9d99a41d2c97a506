package migration

import (
	"fmt"

	"gorm.io/gorm"

	coreport "fintrack/internal/domain/port/core"
	"fintrack/internal/infrastructure/adapter/model"
)

// SchemaVersion is the version recorded after a successful run
const SchemaVersion = "1.0.0"

// Manager applies schema migrations and records them in schema_versions
type Manager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewManager creates a new migration manager
func NewManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{db: db, logger: logger, timeProvider: timeProvider}
}

// Run brings the schema up to the current version. Already-applied
// versions are skipped.
func (m *Manager) Run() error {
	if err := m.db.AutoMigrate(&model.SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema version table: %w", err)
	}

	applied, err := m.hasVersion(SchemaVersion)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Info("Database schema is up to date", map[string]any{
			"version": SchemaVersion,
		})
		return nil
	}

	m.logger.Info("Applying database migrations", map[string]any{
		"version": SchemaVersion,
	})

	err = m.db.AutoMigrate(
		&model.User{},
		&model.Card{},
		&model.Transaction{},
		&model.Budget{},
		&model.Goal{},
		&model.GoalContribution{},
		&model.TxTemplate{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return m.record(SchemaVersion, "base schema: users, cards, transactions, budgets, goals, goal_contributions, tx_templates")
}

// hasVersion checks whether a migration version was already applied
func (m *Manager) hasVersion(version string) (bool, error) {
	var count int64
	err := m.db.Model(&model.SchemaVersion{}).Where("version = ?", version).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check schema version: %w", err)
	}
	return count > 0, nil
}

// record stores an applied migration version
func (m *Manager) record(version, details string) error {
	row := model.SchemaVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	m.logger.Info("Database migration applied", map[string]any{
		"version": version,
	})
	return nil
}
