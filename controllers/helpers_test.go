package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/services"
	"github.com/kendall-kelly/fichas-api/tests/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// setupTestRouter mounts every controller on a fresh in-memory database
func setupTestRouter(t *testing.T, production bool) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidation()

	db := testutil.NewTestDB(t)
	clock := testutil.FixedClock(testNow)

	fichas := NewFichaController(services.NewFichaService(db, zerolog.Nop()).WithClock(clock), production)
	clientes := NewClienteController(services.NewClienteService(db), production)
	estatisticas := NewEstatisticaController(services.NewEstatisticaService(db).WithClock(clock), production)
	health := NewHealthController(db)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/health", health.Health)
	api.GET("/database/status", health.DatabaseStatus)
	api.POST("/fichas", fichas.Create)
	api.GET("/fichas", fichas.List)
	api.GET("/fichas/vendedores", fichas.Vendedores)
	api.GET("/fichas/:id", fichas.Get)
	api.PUT("/fichas/:id", fichas.Update)
	api.PATCH("/fichas/:id/entregar", fichas.MarkAsDelivered)
	api.DELETE("/fichas/:id", fichas.Delete)
	api.GET("/clientes", clientes.Search)
	api.POST("/clientes", clientes.Create)
	api.GET("/estatisticas", estatisticas.Estatisticas)
	api.GET("/relatorio", estatisticas.Relatorio)

	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return w, response
}

func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
