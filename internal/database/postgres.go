package database

import (
	"github.com/acadverify/student-auth-service/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured Postgres instance. TranslateError is
// on so unique-index violations surface as gorm.ErrDuplicatedKey, which
// is what makes racing duplicate signups detectable at the constraint
// rather than by pre-check.
func Open(cfg *config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}
