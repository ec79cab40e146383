package db

import (
	"os"
	"strings"

	"github.com/omnia28/task-manager-api/internal/domain"
	"github.com/omnia28/task-manager-api/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database behind dsn. postgres:// and postgresql://
// URLs go through the pgx driver, anything else is treated as a sqlite
// file path. Exits the process when the database is unreachable.
func Connect(dsn string) *gorm.DB {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	logLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to access database pool", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected", "dialect", db.Dialector.Name())
	return db
}

// Migrate creates or updates the tasks table schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Task{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
