package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/utils"
	"gorm.io/gorm"
)

// FichaFilter holds the optional filters of a ficha listing
type FichaFilter struct {
	Status     string
	Cliente    string // case-insensitive substring
	Vendedor   string
	DataInicio string // inclusive lower bound on data_inicio
	DataFim    string // inclusive upper bound on data_inicio
	Page       int
	Limit      int
}

// FichaPage is one page of a ficha listing
type FichaPage struct {
	Data       []models.Ficha   `json:"data"`
	Pagination utils.Pagination `json:"pagination"`
}

// FichaRepository owns persistence of the fichas table
type FichaRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFichaRepository binds the repository to db, which may be a transaction
func NewFichaRepository(db *gorm.DB) *FichaRepository {
	return &FichaRepository{db: db, now: time.Now}
}

// WithClock overrides the time source used for delivered_at and updated_at
func (r *FichaRepository) WithClock(now func() time.Time) *FichaRepository {
	r.now = now
	return r
}

// Create inserts a new ficha and returns its id
func (r *FichaRepository) Create(ctx context.Context, ficha *models.Ficha) (uint, error) {
	if ficha.Status == "" {
		ficha.Status = models.StatusPendente
	}
	if ficha.Evento == "" {
		ficha.Evento = models.EventoNao
	}
	if ficha.Produtos == nil {
		ficha.Produtos = models.Produtos{}
	}
	if err := ficha.Validate(); err != nil {
		return 0, err
	}
	if ficha.Status == models.StatusEntregue && ficha.DeliveredAt == nil {
		deliveredAt := r.now()
		ficha.DeliveredAt = &deliveredAt
	}

	if err := r.db.WithContext(ctx).Create(ficha).Error; err != nil {
		return 0, fmt.Errorf("fichas.create: %w", err)
	}
	return ficha.ID, nil
}

// FindByID returns the ficha with the given id or models.ErrFichaNotFound
func (r *FichaRepository) FindByID(ctx context.Context, id uint) (*models.Ficha, error) {
	var ficha models.Ficha
	if err := r.db.WithContext(ctx).First(&ficha, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrFichaNotFound
		}
		return nil, fmt.Errorf("fichas.findByID: %w", err)
	}
	return &ficha, nil
}

// FindAll lists fichas matching filter, most recently created first
func (r *FichaRepository) FindAll(ctx context.Context, filter FichaFilter) (*FichaPage, error) {
	page, limit := utils.NormalizePage(filter.Page, filter.Limit)

	query := r.db.WithContext(ctx).Model(&models.Ficha{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Vendedor != "" {
		query = query.Where("vendedor = ?", filter.Vendedor)
	}
	if filter.Cliente != "" {
		query = query.Where(`LOWER(cliente) LIKE ? ESCAPE '\'`, containsPattern(filter.Cliente))
	}
	if filter.DataInicio != "" {
		query = query.Where("data_inicio >= ?", filter.DataInicio)
	}
	if filter.DataFim != "" {
		query = query.Where("data_inicio <= ?", filter.DataFim)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("fichas.findAll count: %w", err)
	}

	fichas := []models.Ficha{}
	offset := utils.Offset(page, limit)
	if int64(offset) < total {
		if err := query.
			Order("created_at DESC").
			Order("id DESC").
			Offset(offset).
			Limit(limit).
			Find(&fichas).Error; err != nil {
			return nil, fmt.Errorf("fichas.findAll: %w", err)
		}
	}

	return &FichaPage{
		Data:       fichas,
		Pagination: utils.NewPagination(page, limit, total),
	}, nil
}

// Update replaces every mutable field of the ficha. It reports false when no row matched.
func (r *FichaRepository) Update(ctx context.Context, id uint, ficha *models.Ficha) (bool, error) {
	if ficha.Status == "" {
		ficha.Status = models.StatusPendente
	}
	if ficha.Evento == "" {
		ficha.Evento = models.EventoNao
	}
	if ficha.Produtos == nil {
		ficha.Produtos = models.Produtos{}
	}
	if err := ficha.Validate(); err != nil {
		return false, err
	}

	now := r.now()
	updates := mutableColumns(ficha)
	updates["updated_at"] = now
	// delivered_at is only stamped on the first move to entregue
	if ficha.Status == models.StatusEntregue {
		updates["delivered_at"] = gorm.Expr("COALESCE(delivered_at, ?)", now)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Ficha{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("fichas.update: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// MarkAsDelivered sets status to entregue and stamps delivered_at with the current time
func (r *FichaRepository) MarkAsDelivered(ctx context.Context, id uint) (bool, error) {
	now := r.now()
	result := r.db.WithContext(ctx).
		Model(&models.Ficha{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.StatusEntregue,
			"delivered_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("fichas.markAsDelivered: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the ficha permanently
func (r *FichaRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Ficha{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("fichas.delete: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetVendedores returns the distinct non-empty vendor names in ascending order
func (r *FichaRepository) GetVendedores(ctx context.Context) ([]string, error) {
	vendedores := []string{}
	if err := r.db.WithContext(ctx).
		Model(&models.Ficha{}).
		Where("vendedor IS NOT NULL AND vendedor <> ''").
		Distinct("vendedor").
		Order("vendedor ASC").
		Pluck("vendedor", &vendedores).Error; err != nil {
		return nil, fmt.Errorf("fichas.getVendedores: %w", err)
	}
	return vendedores, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lowercases s and wraps it for a literal substring LIKE with ESCAPE '\'
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func mutableColumns(f *models.Ficha) map[string]interface{} {
	return map[string]interface{}{
		"cliente":              f.Cliente,
		"vendedor":             f.Vendedor,
		"numero_venda":         f.NumeroVenda,
		"data_inicio":          f.DataInicio,
		"data_entrega":         f.DataEntrega,
		"evento":               f.Evento,
		"status":               f.Status,
		"material":             f.Material,
		"cor_material":         f.CorMaterial,
		"manga":                f.Manga,
		"acabamento_manga":     f.AcabamentoManga,
		"largura_manga":        f.LarguraManga,
		"cor_acabamento_manga": f.CorAcabamentoManga,
		"gola":                 f.Gola,
		"cor_gola":             f.CorGola,
		"acabamento_gola":      f.AcabamentoGola,
		"cor_peitilho_interno": f.CorPeitilhoInterno,
		"cor_peitilho_externo": f.CorPeitilhoExterno,
		"abertura_lateral":     f.AberturaLateral,
		"cor_abertura_lateral": f.CorAberturaLateral,
		"reforco_gola":         f.ReforcoGola,
		"cor_reforco_gola":     f.CorReforcoGola,
		"bolso":                f.Bolso,
		"filete":               f.Filete,
		"local_filete":         f.LocalFilete,
		"cor_filete":           f.CorFilete,
		"faixa":                f.Faixa,
		"local_faixa":          f.LocalFaixa,
		"cor_faixa":            f.CorFaixa,
		"arte":                 f.Arte,
		"composicao":           f.Composicao,
		"observacoes":          f.Observacoes,
		"produtos":             f.Produtos,
		"imagem_data":          f.ImagemData,
		"imagens_data":         f.ImagensData,
	}
}
