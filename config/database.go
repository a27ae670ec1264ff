package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDatabase opens the store named by cfg.DatabaseURL.
// postgres:// URLs use PostgreSQL; anything else is a SQLite file path.
func ConnectDatabase(cfg *Config, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	}

	var dialector gorm.Dialector
	if cfg.UsesPostgres() {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !cfg.UsesPostgres() {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}

	log.Info().Bool("postgres", cfg.UsesPostgres()).Msg("database connection established")
	return db, nil
}

// configureSQLite switches to WAL journaling so a single writer never blocks readers
func configureSQLite(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "trace":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
