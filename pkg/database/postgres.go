package database

import (
	"time"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/model"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewLogger routes GORM's logger through logrus. SQL statements are only
// logged at Info level when logSQL is set; slow queries and errors always are.
func NewLogger(logSQL bool) logger.Interface {
	level := logger.Warn
	if logSQL {
		level = logger.Info
	}
	return logger.New(
		log.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ConnectDB opens the Postgres connection described by cfg and sizes its pool.
func ConnectDB(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled (transaction mode) endpoints
	}), &gorm.Config{
		Logger:      NewLogger(cfg.DBLogSQL),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB handle")
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Database connection established")
	return db, nil
}

// Migrate creates or updates the products and sales tables.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&model.Product{}, &model.Sale{}), "auto migrate")
}
