package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports liveness and database connectivity
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a health controller for db
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health handles GET /api/health
func (hc *HealthController) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Fichas API is running",
	})
}

// DatabaseStatus handles GET /api/database/status
func (hc *HealthController) DatabaseStatus(c *gin.Context) {
	sqlDB, err := hc.db.DB()
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeDatabase, "Failed to get database instance", nil)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		respondError(c, http.StatusInternalServerError, CodeDatabase, "Database connection failed", nil)
		return
	}

	tables, err := hc.db.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeDatabase, "Failed to query tables", nil)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"status":  "connected",
		"dialect": hc.db.Dialector.Name(),
		"tables":  tables,
	})
}
