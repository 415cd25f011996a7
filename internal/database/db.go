package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taxengine/internal/logger"
	"taxengine/internal/model"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.TaxProfile{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Warnw("failed to auto-migrate models", "error", err)
	}

	// at most one active profile per company
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_tax_profiles_active_company
		ON tax_profiles (company_id) WHERE is_active AND company_id IS NOT NULL`).Error
	if err != nil {
		log.Warnw("failed to create tax profile index", "error", err)
	}

	return db, nil
}
