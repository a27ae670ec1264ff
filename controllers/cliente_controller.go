package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/services"
)

// CreateClienteRequest is the body of POST /api/clientes
type CreateClienteRequest struct {
	Nome string `json:"nome" binding:"required,max=255"`
}

// ClienteController serves the /api/clientes routes
type ClienteController struct {
	errorResponder
	service *services.ClienteService
}

// NewClienteController creates a controller backed by service
func NewClienteController(service *services.ClienteService, production bool) *ClienteController {
	return &ClienteController{errorResponder: errorResponder{production: production}, service: service}
}

// Search handles GET /api/clientes?termo=
func (cc *ClienteController) Search(c *gin.Context) {
	nomes, err := cc.service.Search(c.Request.Context(), strings.TrimSpace(c.Query("termo")))
	if err != nil {
		cc.internal(c, err)
		return
	}

	respondOK(c, http.StatusOK, nomes)
}

// Create handles POST /api/clientes
func (cc *ClienteController) Create(c *gin.Context) {
	var req CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "Dados inválidos",
			[]FieldError{{Field: "nome", Rule: "required"}})
		return
	}

	cliente, err := cc.service.Create(c.Request.Context(), nome)
	if err != nil {
		if errors.Is(err, models.ErrClienteDuplicado) {
			respondError(c, http.StatusBadRequest, CodeClienteDuplicado, models.ErrClienteDuplicado.Error(), nil)
			return
		}
		cc.internal(c, err)
		return
	}

	respondOK(c, http.StatusCreated, cliente)
}
