package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/repositories"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// FichaService composes the ficha and cliente repositories
type FichaService struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// NewFichaService creates a new ficha service instance
func NewFichaService(db *gorm.DB, log zerolog.Logger) *FichaService {
	return &FichaService{db: db, log: log, now: time.Now}
}

// WithClock overrides the time source passed down to the repositories
func (s *FichaService) WithClock(now func() time.Time) *FichaService {
	s.now = now
	return s
}

func (s *FichaService) fichas(db *gorm.DB) *repositories.FichaRepository {
	return repositories.NewFichaRepository(db).WithClock(s.now)
}

func (s *FichaService) clientes(db *gorm.DB) *repositories.ClienteRepository {
	return repositories.NewClienteRepository(db).WithClock(s.now)
}

// Create persists a copy of ficha and records the order on the customer rollup.
// Both writes share one transaction; the argument is left untouched.
func (s *FichaService) Create(ctx context.Context, ficha *models.Ficha) (*models.Ficha, error) {
	row := *ficha
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.fichas(tx).Create(ctx, &row); err != nil {
			return err
		}
		if row.Cliente == "" {
			return nil
		}
		return s.clientes(tx).Upsert(ctx, row.Cliente, row.DataInicio)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ficha: %w", err)
	}

	s.log.Info().
		Uint("ficha_id", row.ID).
		Str("cliente", row.Cliente).
		Int("itens", row.TotalItens()).
		Msg("ficha created")

	return s.GetByID(ctx, row.ID)
}

// GetByID returns one ficha or models.ErrFichaNotFound
func (s *FichaService) GetByID(ctx context.Context, id uint) (*models.Ficha, error) {
	return s.fichas(s.db).FindByID(ctx, id)
}

// GetAll lists fichas matching filter
func (s *FichaService) GetAll(ctx context.Context, filter repositories.FichaFilter) (*repositories.FichaPage, error) {
	return s.fichas(s.db).FindAll(ctx, filter)
}

// Update replaces the ficha's mutable fields and returns the stored result.
// The customer rollup is not touched.
func (s *FichaService) Update(ctx context.Context, id uint, ficha *models.Ficha) (*models.Ficha, error) {
	row := *ficha
	ok, err := s.fichas(s.db).Update(ctx, id, &row)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrFichaNotFound
	}
	return s.GetByID(ctx, id)
}

// MarkAsDelivered moves the ficha to entregue and returns it
func (s *FichaService) MarkAsDelivered(ctx context.Context, id uint) (*models.Ficha, error) {
	ok, err := s.fichas(s.db).MarkAsDelivered(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrFichaNotFound
	}

	s.log.Info().Uint("ficha_id", id).Msg("ficha delivered")
	return s.GetByID(ctx, id)
}

// Delete removes the ficha. The customer's total_pedidos is left unchanged.
func (s *FichaService) Delete(ctx context.Context, id uint) error {
	ok, err := s.fichas(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrFichaNotFound
	}

	s.log.Info().Uint("ficha_id", id).Msg("ficha deleted")
	return nil
}

// GetVendedores lists the distinct vendor names
func (s *FichaService) GetVendedores(ctx context.Context) ([]string, error) {
	return s.fichas(s.db).GetVendedores(ctx)
}
