package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/services"
)

// EstatisticaController serves the dashboard and report routes
type EstatisticaController struct {
	errorResponder
	service *services.EstatisticaService
}

// NewEstatisticaController creates a controller backed by service
func NewEstatisticaController(service *services.EstatisticaService, production bool) *EstatisticaController {
	return &EstatisticaController{errorResponder: errorResponder{production: production}, service: service}
}

// Estatisticas handles GET /api/estatisticas
func (ec *EstatisticaController) Estatisticas(c *gin.Context) {
	stats, err := ec.service.GetEstatisticasGerais(c.Request.Context())
	if err != nil {
		ec.internal(c, err)
		return
	}

	respondOK(c, http.StatusOK, stats)
}

// Relatorio handles GET /api/relatorio?periodo=&dataInicio=&dataFim=
func (ec *EstatisticaController) Relatorio(c *gin.Context) {
	relatorio, err := ec.service.GetRelatorio(
		c.Request.Context(),
		c.Query("periodo"),
		c.Query("dataInicio"),
		c.Query("dataFim"),
	)
	if err != nil {
		if errors.Is(err, services.ErrPeriodoInvalido) {
			respondError(c, http.StatusBadRequest, CodePeriodoInvalido, services.ErrPeriodoInvalido.Error(), nil)
			return
		}
		ec.internal(c, err)
		return
	}

	respondOK(c, http.StatusOK, relatorio)
}
