package services

import (
	"context"

	"github.com/kendall-kelly/fichas-api/models"
	"github.com/kendall-kelly/fichas-api/repositories"
	"gorm.io/gorm"
)

// ClienteService exposes the customer rollup
type ClienteService struct {
	repo *repositories.ClienteRepository
}

// NewClienteService creates a new cliente service instance
func NewClienteService(db *gorm.DB) *ClienteService {
	return &ClienteService{repo: repositories.NewClienteRepository(db)}
}

// Search returns up to 50 customer names matching termo
func (s *ClienteService) Search(ctx context.Context, termo string) ([]string, error) {
	return s.repo.FindAll(ctx, termo)
}

// Create registers a customer directly; the name must not exist yet
func (s *ClienteService) Create(ctx context.Context, nome string) (*models.Cliente, error) {
	return s.repo.Create(ctx, nome)
}
