package repositories

import (
	"context"
	"fmt"

	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/utils"
	"gorm.io/gorm"
)

// VendedorTotal is a vendor with its order count
type VendedorTotal struct {
	Vendedor string
	Total    int64
}

// EstatisticaRepository runs the read-only aggregate queries behind the dashboard and reports
type EstatisticaRepository struct {
	db *gorm.DB
}

// NewEstatisticaRepository builds the repository
func NewEstatisticaRepository(db *gorm.DB) *EstatisticaRepository {
	return &EstatisticaRepository{db: db}
}

// fichas scopes a query to fichas whose data_inicio falls in window (all fichas for a zero window)
func (r *EstatisticaRepository) fichas(ctx context.Context, window utils.DateWindow) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Ficha{})
	if window.Start != "" {
		query = query.Where("data_inicio >= ?", window.Start)
	}
	if window.End != "" {
		query = query.Where("data_inicio <= ?", window.End)
	}
	return query
}

// CountFichas counts fichas in window, optionally restricted to one status
func (r *EstatisticaRepository) CountFichas(ctx context.Context, window utils.DateWindow, status string) (int64, error) {
	query := r.fichas(ctx, window)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("estatisticas.countFichas: %w", err)
	}
	return total, nil
}

// SumItens adds up the produtos quantities of fichas in window, optionally
// restricted to one status. Rows with malformed produtos contribute zero.
func (r *EstatisticaRepository) SumItens(ctx context.Context, window utils.DateWindow, status string) (int64, error) {
	query := r.fichas(ctx, window).Select("id", "produtos")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	batch := []models.Ficha{}
	err := query.FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		for _, f := range batch {
			total += int64(f.TotalItens())
		}
		return nil
	}).Error
	if err != nil {
		return 0, fmt.Errorf("estatisticas.sumItens: %w", err)
	}
	return total, nil
}

// CountNovosClientes counts customers whose first order falls in window
func (r *EstatisticaRepository) CountNovosClientes(ctx context.Context, window utils.DateWindow) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Cliente{})
	if window.Start != "" {
		query = query.Where("primeiro_pedido >= ?", window.Start)
	}
	if window.End != "" {
		query = query.Where("primeiro_pedido <= ?", window.End)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("estatisticas.countNovosClientes: %w", err)
	}
	return total, nil
}

// TopVendedor returns the vendor with most fichas in window, or nil when no ficha has a vendor.
// Ties go to the alphabetically first name.
func (r *EstatisticaRepository) TopVendedor(ctx context.Context, window utils.DateWindow) (*VendedorTotal, error) {
	var rows []VendedorTotal
	if err := r.fichas(ctx, window).
		Select("vendedor, COUNT(*) AS total").
		Where("vendedor IS NOT NULL AND vendedor <> ''").
		Group("vendedor").
		Order("total DESC").
		Order("vendedor ASC").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("estatisticas.topVendedor: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
