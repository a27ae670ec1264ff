package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/repositories"
	"github.com/kendall-kelly/fichas-api/services"
)

// ProdutoRequest is one line item of a ficha payload
type ProdutoRequest struct {
	Tamanho    string `json:"tamanho" binding:"max=20"`
	Quantidade int    `json:"quantidade" binding:"min=0"`
	Descricao  string `json:"descricao" binding:"max=500"`
}

// FichaRequest is the body of POST /api/fichas and PUT /api/fichas/:id
type FichaRequest struct {
	Cliente     string `json:"cliente" binding:"required,max=255"`
	Vendedor    string `json:"vendedor" binding:"max=255"`
	NumeroVenda string `json:"numeroVenda" binding:"max=100"`
	DataInicio  string `json:"dataInicio" binding:"omitempty,datetime=2006-01-02"`
	DataEntrega string `json:"dataEntrega" binding:"omitempty,datetime=2006-01-02"`
	Evento      string `json:"evento" binding:"omitempty,oneof=sim nao"`
	Status      string `json:"status" binding:"omitempty,oneof=pendente entregue cancelado"`

	Material           string `json:"material" binding:"max=255"`
	CorMaterial        string `json:"corMaterial" binding:"max=255"`
	Manga              string `json:"manga" binding:"max=255"`
	AcabamentoManga    string `json:"acabamentoManga" binding:"max=255"`
	LarguraManga       string `json:"larguraManga" binding:"max=255"`
	CorAcabamentoManga string `json:"corAcabamentoManga" binding:"max=255"`
	Gola               string `json:"gola" binding:"max=255"`
	CorGola            string `json:"corGola" binding:"max=255"`
	AcabamentoGola     string `json:"acabamentoGola" binding:"max=255"`
	CorPeitilhoInterno string `json:"corPeitilhoInterno" binding:"max=255"`
	CorPeitilhoExterno string `json:"corPeitilhoExterno" binding:"max=255"`
	AberturaLateral    string `json:"aberturaLateral" binding:"max=255"`
	CorAberturaLateral string `json:"corAberturaLateral" binding:"max=255"`
	ReforcoGola        string `json:"reforcoGola" binding:"max=255"`
	CorReforcoGola     string `json:"corReforcoGola" binding:"max=255"`
	Bolso              string `json:"bolso" binding:"max=255"`
	Filete             string `json:"filete" binding:"max=255"`
	LocalFilete        string `json:"localFilete" binding:"max=255"`
	CorFilete          string `json:"corFilete" binding:"max=255"`
	Faixa              string `json:"faixa" binding:"max=255"`
	LocalFaixa         string `json:"localFaixa" binding:"max=255"`
	CorFaixa           string `json:"corFaixa" binding:"max=255"`
	Arte               string `json:"arte" binding:"max=255"`
	Composicao         string `json:"composicao" binding:"max=255"`
	Observacoes        string `json:"observacoes" binding:"max=5000"`

	Produtos    []ProdutoRequest `json:"produtos" binding:"omitempty,dive"`
	ImagemData  string           `json:"imagemData"`
	ImagensData string           `json:"imagensData"`
}

// ToModel converts the payload into a ficha ready to persist
func (r FichaRequest) ToModel() *models.Ficha {
	produtos := make(models.Produtos, 0, len(r.Produtos))
	for _, p := range r.Produtos {
		produtos = append(produtos, models.Produto{
			Tamanho:    p.Tamanho,
			Quantidade: p.Quantidade,
			Descricao:  p.Descricao,
		})
	}

	return &models.Ficha{
		Cliente:            strings.TrimSpace(r.Cliente),
		Vendedor:           strings.TrimSpace(r.Vendedor),
		NumeroVenda:        r.NumeroVenda,
		DataInicio:         r.DataInicio,
		DataEntrega:        r.DataEntrega,
		Evento:             r.Evento,
		Status:             r.Status,
		Material:           r.Material,
		CorMaterial:        r.CorMaterial,
		Manga:              r.Manga,
		AcabamentoManga:    r.AcabamentoManga,
		LarguraManga:       r.LarguraManga,
		CorAcabamentoManga: r.CorAcabamentoManga,
		Gola:               r.Gola,
		CorGola:            r.CorGola,
		AcabamentoGola:     r.AcabamentoGola,
		CorPeitilhoInterno: r.CorPeitilhoInterno,
		CorPeitilhoExterno: r.CorPeitilhoExterno,
		AberturaLateral:    r.AberturaLateral,
		CorAberturaLateral: r.CorAberturaLateral,
		ReforcoGola:        r.ReforcoGola,
		CorReforcoGola:     r.CorReforcoGola,
		Bolso:              r.Bolso,
		Filete:             r.Filete,
		LocalFilete:        r.LocalFilete,
		CorFilete:          r.CorFilete,
		Faixa:              r.Faixa,
		LocalFaixa:         r.LocalFaixa,
		CorFaixa:           r.CorFaixa,
		Arte:               r.Arte,
		Composicao:         r.Composicao,
		Observacoes:        r.Observacoes,
		Produtos:           produtos,
		ImagemData:         r.ImagemData,
		ImagensData:        r.ImagensData,
	}
}

// FichaListQuery holds the filters of GET /api/fichas
type FichaListQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=pendente entregue cancelado"`
	Cliente    string `form:"cliente"`
	Vendedor   string `form:"vendedor"`
	DataInicio string `form:"dataInicio" binding:"omitempty,datetime=2006-01-02"`
	DataFim    string `form:"dataFim" binding:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1"`
}

// FichaController serves the /api/fichas routes
type FichaController struct {
	errorResponder
	service *services.FichaService
}

// NewFichaController creates a controller backed by service
func NewFichaController(service *services.FichaService, production bool) *FichaController {
	return &FichaController{errorResponder: errorResponder{production: production}, service: service}
}

// Create handles POST /api/fichas
func (fc *FichaController) Create(c *gin.Context) {
	var req FichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	ficha := req.ToModel()
	if ficha.Cliente == "" {
		respondBlankCliente(c)
		return
	}

	ficha, err := fc.service.Create(c.Request.Context(), ficha)
	if err != nil {
		fc.fichaError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, ficha)
}

// List handles GET /api/fichas
func (fc *FichaController) List(c *gin.Context) {
	var query FichaListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidation(c, err)
		return
	}

	page, err := fc.service.GetAll(c.Request.Context(), repositories.FichaFilter{
		Status:     query.Status,
		Cliente:    strings.TrimSpace(query.Cliente),
		Vendedor:   strings.TrimSpace(query.Vendedor),
		DataInicio: query.DataInicio,
		DataFim:    query.DataFim,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		fc.internal(c, err)
		return
	}

	respondList(c, page.Data, page.Pagination)
}

// Get handles GET /api/fichas/:id
func (fc *FichaController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ficha, err := fc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		fc.fichaError(c, err)
		return
	}

	respondOK(c, http.StatusOK, ficha)
}

// Update handles PUT /api/fichas/:id
func (fc *FichaController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req FichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	ficha := req.ToModel()
	if ficha.Cliente == "" {
		respondBlankCliente(c)
		return
	}

	ficha, err := fc.service.Update(c.Request.Context(), id, ficha)
	if err != nil {
		fc.fichaError(c, err)
		return
	}

	respondOK(c, http.StatusOK, ficha)
}

// MarkAsDelivered handles PATCH /api/fichas/:id/entregar
func (fc *FichaController) MarkAsDelivered(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ficha, err := fc.service.MarkAsDelivered(c.Request.Context(), id)
	if err != nil {
		fc.fichaError(c, err)
		return
	}

	respondOK(c, http.StatusOK, ficha)
}

// Delete handles DELETE /api/fichas/:id
func (fc *FichaController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := fc.service.Delete(c.Request.Context(), id); err != nil {
		fc.fichaError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// Vendedores handles GET /api/fichas/vendedores
func (fc *FichaController) Vendedores(c *gin.Context) {
	vendedores, err := fc.service.GetVendedores(c.Request.Context())
	if err != nil {
		fc.internal(c, err)
		return
	}

	respondOK(c, http.StatusOK, vendedores)
}

func (fc *FichaController) fichaError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrFichaNotFound) {
		respondError(c, http.StatusNotFound, CodeFichaNotFound, models.ErrFichaNotFound.Error(), nil)
		return
	}
	if errors.Is(err, models.ErrFichaInvalida) {
		respondError(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	fc.internal(c, err)
}

func respondBlankCliente(c *gin.Context) {
	respondError(c, http.StatusBadRequest, CodeValidation, "Dados inválidos",
		[]FieldError{{Field: "cliente", Rule: "required"}})
}
