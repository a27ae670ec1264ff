package services

import (
	"context"
	"time"

	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/repositories"
	"github.com/kendall-kelly/fichas-api/utils"
	"gorm.io/gorm"
)

// Report periods
const (
	PeriodoMes         = "mes"
	PeriodoAno         = "ano"
	PeriodoCustomizado = "customizado"
	PeriodoTodos       = "todos"
)

// EstatisticasGerais are the dashboard totals
type EstatisticasGerais struct {
	TotalFichas     int64 `json:"totalFichas"`
	FichasPendentes int64 `json:"fichasPendentes"`
	FichasEntregues int64 `json:"fichasEntregues"`
	TotalClientes   int64 `json:"totalClientes"`
	FichasMes       int64 `json:"fichasMes"`
	TotalItens      int64 `json:"totalItens"`
}

// Relatorio is the windowed production report
type Relatorio struct {
	Periodo                 string  `json:"periodo"`
	DataInicio              string  `json:"dataInicio,omitempty"`
	DataFim                 string  `json:"dataFim,omitempty"`
	FichasEntregues         int64   `json:"fichasEntregues"`
	FichasPendentes         int64   `json:"fichasPendentes"`
	ItensConfeccionados     int64   `json:"itensConfeccionados"`
	NovosClientes           int64   `json:"novosClientes"`
	VendedorDestaque        *string `json:"vendedorDestaque"`
	VendedorDestaquePedidos int64   `json:"vendedorDestaquePedidos"`
}

// EstatisticaService computes dashboard and report aggregates
type EstatisticaService struct {
	repo     *repositories.EstatisticaRepository
	clientes *repositories.ClienteRepository
	now      func() time.Time
}

// NewEstatisticaService creates a new statistics service instance
func NewEstatisticaService(db *gorm.DB) *EstatisticaService {
	return &EstatisticaService{
		repo:     repositories.NewEstatisticaRepository(db),
		clientes: repositories.NewClienteRepository(db),
		now:      time.Now,
	}
}

// WithClock overrides the time source that defines "current month" and "current year"
func (s *EstatisticaService) WithClock(now func() time.Time) *EstatisticaService {
	s.now = now
	return s
}

// GetEstatisticasGerais returns all-time totals plus the number of fichas started this month
func (s *EstatisticaService) GetEstatisticasGerais(ctx context.Context) (*EstatisticasGerais, error) {
	all := utils.DateWindow{}
	stats := &EstatisticasGerais{}
	var err error

	if stats.TotalFichas, err = s.repo.CountFichas(ctx, all, ""); err != nil {
		return nil, err
	}
	if stats.FichasPendentes, err = s.repo.CountFichas(ctx, all, models.StatusPendente); err != nil {
		return nil, err
	}
	if stats.FichasEntregues, err = s.repo.CountFichas(ctx, all, models.StatusEntregue); err != nil {
		return nil, err
	}
	if stats.TotalClientes, err = s.clientes.Count(ctx); err != nil {
		return nil, err
	}
	if stats.FichasMes, err = s.repo.CountFichas(ctx, utils.MonthWindow(s.now()), ""); err != nil {
		return nil, err
	}
	if stats.TotalItens, err = s.repo.SumItens(ctx, all, ""); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetRelatorio aggregates fichas and customers inside the window named by periodo.
// An unknown or empty periodo reports over all time.
func (s *EstatisticaService) GetRelatorio(ctx context.Context, periodo, dataInicio, dataFim string) (*Relatorio, error) {
	window, periodo, err := s.resolveWindow(periodo, dataInicio, dataFim)
	if err != nil {
		return nil, err
	}

	rel := &Relatorio{
		Periodo:    periodo,
		DataInicio: window.Start,
		DataFim:    window.End,
	}

	if rel.FichasEntregues, err = s.repo.CountFichas(ctx, window, models.StatusEntregue); err != nil {
		return nil, err
	}
	if rel.FichasPendentes, err = s.repo.CountFichas(ctx, window, models.StatusPendente); err != nil {
		return nil, err
	}
	if rel.ItensConfeccionados, err = s.repo.SumItens(ctx, window, models.StatusEntregue); err != nil {
		return nil, err
	}
	if rel.NovosClientes, err = s.repo.CountNovosClientes(ctx, window); err != nil {
		return nil, err
	}

	top, err := s.repo.TopVendedor(ctx, window)
	if err != nil {
		return nil, err
	}
	if top != nil {
		nome := top.Vendedor
		rel.VendedorDestaque = &nome
		rel.VendedorDestaquePedidos = top.Total
	}

	return rel, nil
}

func (s *EstatisticaService) resolveWindow(periodo, dataInicio, dataFim string) (utils.DateWindow, string, error) {
	switch periodo {
	case PeriodoMes:
		return utils.MonthWindow(s.now()), periodo, nil
	case PeriodoAno:
		return utils.YearWindow(s.now()), periodo, nil
	case PeriodoCustomizado:
		if !utils.IsValidDate(dataInicio) || !utils.IsValidDate(dataFim) || dataInicio > dataFim {
			return utils.DateWindow{}, periodo, ErrPeriodoInvalido
		}
		return utils.DateWindow{Start: dataInicio, End: dataFim}, periodo, nil
	default:
		return utils.DateWindow{}, PeriodoTodos, nil
	}
}
