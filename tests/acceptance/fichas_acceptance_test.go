package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kendall-kelly/fichas-api/config"
	"github.com/kendall-kelly/fichas-api/middleware"
	"github.com/kendall-kelly/fichas-api/routes"
	"github.com/kendall-kelly/fichas-api/tests/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// FichasAcceptanceTestSuite exercises the API over a real HTTP listener
type FichasAcceptanceTestSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
	client *http.Client
}

func (suite *FichasAcceptanceTestSuite) SetupSuite() {
	testutil.MustSetTestEnvironment(suite.T())

	cfg := &config.Config{
		DatabaseURL:     ":memory:",
		Port:            "8080",
		GoEnv:           "test",
		LogLevel:        "error",
		CORSOrigins:     []string{"*"},
		Auth0WriteScope: "write:fichas",
	}

	suite.db = testutil.NewTestDB(suite.T())
	router, err := routes.Setup(routes.Dependencies{
		Config:    cfg,
		DB:        suite.db,
		Logger:    zerolog.Nop(),
		AuthGuard: testutil.MockAuthMiddleware("auth0|vendedor", "read:fichas", "write:fichas"),
	})
	suite.Require().NoError(err)

	suite.server = httptest.NewServer(router)
	suite.client = suite.server.Client()
}

func (suite *FichasAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
}

func (suite *FichasAcceptanceTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM fichas")
	suite.db.Exec("DELETE FROM clientes")
}

func (suite *FichasAcceptanceTestSuite) do(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, suite.server.URL+path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.client.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func (suite *FichasAcceptanceTestSuite) TestHealthOverHTTP() {
	resp, payload := suite.do(http.MethodGet, "/api/health", nil)

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	suite.NotEmpty(resp.Header.Get(middleware.RequestIDHeader))
	suite.True(payload["success"].(bool))
	suite.NotEmpty(payload["timestamp"])
}

func (suite *FichasAcceptanceTestSuite) TestCreateAndFetchOverHTTP() {
	resp, payload := suite.do(http.MethodPost, "/api/fichas", map[string]interface{}{
		"cliente":     "Ana",
		"vendedor":    "Bruno",
		"evento":      "sim",
		"observacoes": "Entrega no evento de abril",
		"produtos":    []map[string]interface{}{{"tamanho": "P", "quantidade": 3, "descricao": "baby look"}},
	})
	suite.Require().Equal(http.StatusCreated, resp.StatusCode, payload)
	id := int64(payload["data"].(map[string]interface{})["id"].(float64))

	resp, payload = suite.do(http.MethodGet, fmt.Sprintf("/api/fichas/%d", id), nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	suite.Equal("sim", data["evento"])
	suite.Equal("Entrega no evento de abril", data["observacoes"])
	produto := data["produtos"].([]interface{})[0].(map[string]interface{})
	suite.Equal("baby look", produto["descricao"])

	resp, payload = suite.do(http.MethodGet, "/api/fichas/vendedores", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal([]interface{}{"Bruno"}, payload["data"])
}

func (suite *FichasAcceptanceTestSuite) TestValidationEnvelopeOverHTTP() {
	resp, payload := suite.do(http.MethodPost, "/api/fichas", map[string]interface{}{"dataEntrega": "amanhã"})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.False(payload["success"].(bool))
	errObj := payload["error"].(map[string]interface{})
	suite.Equal("VALIDATION_ERROR", errObj["code"])
	suite.NotEmpty(errObj["message"])
	suite.NotEmpty(errObj["details"])
}

func (suite *FichasAcceptanceTestSuite) TestInvalidPeriodOverHTTP() {
	resp, payload := suite.do(http.MethodGet, "/api/relatorio?periodo=customizado&dataInicio=2024-05-01&dataFim=2024-04-01", nil)

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal("PERIODO_INVALIDO", payload["error"].(map[string]interface{})["code"])
}

func TestFichasAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(FichasAcceptanceTestSuite))
}
