package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	router, _ := setupTestRouter(t, false)

	w, response := doRequest(t, router, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response["success"].(bool))
	assert.Equal(t, "ok", response["data"].(map[string]interface{})["status"])
}

func TestDatabaseStatus(t *testing.T) {
	router, _ := setupTestRouter(t, false)

	w, response := doRequest(t, router, http.MethodGet, "/api/database/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "connected", data["status"])
	assert.Equal(t, "sqlite", data["dialect"])
	tables := data["tables"].([]interface{})
	assert.Contains(t, tables, "fichas")
	assert.Contains(t, tables, "clientes")
}

func TestDatabaseStatus_ClosedConnection(t *testing.T) {
	router, db := setupTestRouter(t, false)
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.Close()

	w, response := doRequest(t, router, http.MethodGet, "/api/database/status", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeDatabase, errorCode(response))
}
