package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/config"
	"github.com/kendall-kelly/fichas-api/routes"
	"github.com/kendall-kelly/fichas-api/tests/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// FichasIntegrationTestSuite drives the full router against an in-memory database
type FichasIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func (suite *FichasIntegrationTestSuite) SetupSuite() {
	testutil.MustSetTestEnvironment(suite.T())
	suite.T().Setenv("DATABASE_URL", ":memory:")
	suite.T().Setenv("AUTH0_DOMAIN", "")
	suite.T().Setenv("AUTH0_AUDIENCE", "")

	cfg, err := config.Load()
	suite.Require().NoError(err)
	suite.cfg = cfg
}

func (suite *FichasIntegrationTestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())

	router, err := routes.Setup(routes.Dependencies{
		Config: suite.cfg,
		DB:     suite.db,
		Logger: zerolog.Nop(),
		Clock:  testutil.FixedClock(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)),
	})
	suite.Require().NoError(err)
	suite.router = router
}

func (suite *FichasIntegrationTestSuite) request(method, path string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w.Code, response
}

func (suite *FichasIntegrationTestSuite) createFicha(body map[string]interface{}) float64 {
	status, response := suite.request(http.MethodPost, "/api/fichas", body)
	suite.Require().Equal(http.StatusCreated, status, response)
	return response["data"].(map[string]interface{})["id"].(float64)
}

func (suite *FichasIntegrationTestSuite) TestFichaLifecycle() {
	id := suite.createFicha(map[string]interface{}{
		"cliente":    "Ana",
		"vendedor":   "Bruno",
		"dataInicio": "2024-03-01",
		"gola":       "Polo",
		"produtos":   []map[string]interface{}{{"tamanho": "M", "quantidade": 10}, {"tamanho": "G", "quantidade": 2}},
	})
	path := fmt.Sprintf("/api/fichas/%d", int64(id))

	status, response := suite.request(http.MethodGet, path, nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal("Polo", response["data"].(map[string]interface{})["gola"])

	status, response = suite.request(http.MethodPut, path, map[string]interface{}{
		"cliente":    "Ana",
		"vendedor":   "Bruno",
		"dataInicio": "2024-03-01",
		"gola":       "Careca",
		"produtos":   []map[string]interface{}{{"tamanho": "M", "quantidade": 12}},
	})
	suite.Equal(http.StatusOK, status)
	suite.Equal("Careca", response["data"].(map[string]interface{})["gola"])

	status, response = suite.request(http.MethodPatch, path+"/entregar", nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal("entregue", response["data"].(map[string]interface{})["status"])

	status, response = suite.request(http.MethodGet, "/api/relatorio?periodo=mes", nil)
	suite.Equal(http.StatusOK, status)
	relatorio := response["data"].(map[string]interface{})
	suite.Equal(float64(1), relatorio["fichasEntregues"])
	suite.Equal(float64(12), relatorio["itensConfeccionados"])
	suite.Equal("Bruno", relatorio["vendedorDestaque"])

	status, _ = suite.request(http.MethodDelete, path, nil)
	suite.Equal(http.StatusOK, status)

	status, response = suite.request(http.MethodGet, path, nil)
	suite.Equal(http.StatusNotFound, status)
	suite.False(response["success"].(bool))
}

func (suite *FichasIntegrationTestSuite) TestCustomerRollupScenario() {
	suite.createFicha(map[string]interface{}{"cliente": "Ana", "dataInicio": "2024-01-10"})
	suite.createFicha(map[string]interface{}{"cliente": "Ana", "dataInicio": "2024-03-05"})
	suite.createFicha(map[string]interface{}{"cliente": "Bia", "dataInicio": "2024-02-01"})

	status, response := suite.request(http.MethodGet, "/api/clientes?termo=an", nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal([]interface{}{"Ana"}, response["data"])

	status, response = suite.request(http.MethodGet, "/api/estatisticas", nil)
	suite.Equal(http.StatusOK, status)
	stats := response["data"].(map[string]interface{})
	suite.Equal(float64(3), stats["totalFichas"])
	suite.Equal(float64(2), stats["totalClientes"])
	suite.Equal(float64(1), stats["fichasMes"])

	status, response = suite.request(http.MethodPost, "/api/clientes", map[string]interface{}{"nome": "Ana"})
	suite.Equal(http.StatusBadRequest, status)
	suite.Equal("CLIENTE_DUPLICADO", response["error"].(map[string]interface{})["code"])
}

func (suite *FichasIntegrationTestSuite) TestListPaginationScenario() {
	for i := 0; i < 15; i++ {
		suite.createFicha(map[string]interface{}{"cliente": fmt.Sprintf("Cliente %d", i), "status": "entregue"})
	}
	suite.createFicha(map[string]interface{}{"cliente": "Pendente"})

	status, response := suite.request(http.MethodGet, "/api/fichas?status=entregue&page=2&limit=10", nil)
	suite.Equal(http.StatusOK, status)
	suite.Len(response["data"].([]interface{}), 5)
	pagination := response["pagination"].(map[string]interface{})
	suite.Equal(float64(15), pagination["total"])
	suite.Equal(float64(2), pagination["totalPages"])
}

func (suite *FichasIntegrationTestSuite) TestDatabaseStatus() {
	status, response := suite.request(http.MethodGet, "/api/database/status", nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal("connected", response["data"].(map[string]interface{})["status"])
}

func TestFichasIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FichasIntegrationTestSuite))
}
