package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/kendall-kelly/fichas-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when t finishes.
// The pool is pinned to one connection: every new :memory: connection would be a separate, empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// FixedClock returns a time source frozen at the given instant
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// SeedFicha inserts a ficha directly, bypassing services, and fails the test on error
func SeedFicha(t *testing.T, db *gorm.DB, ficha models.Ficha) models.Ficha {
	t.Helper()

	if ficha.Status == "" {
		ficha.Status = models.StatusPendente
	}
	if ficha.Evento == "" {
		ficha.Evento = models.EventoNao
	}
	if err := db.Create(&ficha).Error; err != nil {
		t.Fatalf("Failed to seed ficha: %v", err)
	}
	return ficha
}

// RequireTestEnvironment ensures that tests are running in the test environment.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
	RequireTestEnvironment(t)
}
