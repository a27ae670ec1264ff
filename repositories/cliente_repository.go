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
	"gorm.io/gorm/clause"
)

// ClienteSearchLimit caps the number of names returned by FindAll
const ClienteSearchLimit = 50

// ClienteRepository maintains the customer rollup table
type ClienteRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewClienteRepository binds the repository to db, which may be a transaction
func NewClienteRepository(db *gorm.DB) *ClienteRepository {
	return &ClienteRepository{db: db, now: time.Now}
}

// WithClock overrides the time source used when an order has no date
func (r *ClienteRepository) WithClock(now func() time.Time) *ClienteRepository {
	r.now = now
	return r
}

// FindAll returns up to 50 customer names, most recent order first,
// optionally filtered by a case-insensitive substring of the name
func (r *ClienteRepository) FindAll(ctx context.Context, termo string) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Cliente{})
	if termo = strings.TrimSpace(termo); termo != "" {
		query = query.Where(`LOWER(nome) LIKE ? ESCAPE '\'`, containsPattern(termo))
	}

	nomes := []string{}
	if err := query.
		Order("ultimo_pedido DESC").
		Order("nome ASC").
		Limit(ClienteSearchLimit).
		Pluck("nome", &nomes).Error; err != nil {
		return nil, fmt.Errorf("clientes.findAll: %w", err)
	}
	return nomes, nil
}

// FindByNome looks a customer up by exact name
func (r *ClienteRepository) FindByNome(ctx context.Context, nome string) (*models.Cliente, error) {
	var cliente models.Cliente
	if err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrClienteNotFound
		}
		return nil, fmt.Errorf("clientes.findByNome: %w", err)
	}
	return &cliente, nil
}

// Create inserts a customer with no orders yet; duplicate names yield models.ErrClienteDuplicado
func (r *ClienteRepository) Create(ctx context.Context, nome string) (*models.Cliente, error) {
	cliente := models.Cliente{Nome: nome}
	if err := r.db.WithContext(ctx).Create(&cliente).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, models.ErrClienteDuplicado
		}
		return nil, fmt.Errorf("clientes.create: %w", err)
	}
	return &cliente, nil
}

// Upsert records one new order for nome on orderDate (today when empty).
// A new customer is inserted with both dates set to orderDate and a count of one.
// On a name conflict the existing row gets total_pedidos incremented, ultimo_pedido
// moved forward and a missing primeiro_pedido filled, all in a single statement.
func (r *ClienteRepository) Upsert(ctx context.Context, nome, orderDate string) error {
	if orderDate == "" {
		orderDate = utils.Today(r.now())
	}

	cliente := models.Cliente{
		Nome:           nome,
		PrimeiroPedido: orderDate,
		UltimoPedido:   orderDate,
		TotalPedidos:   1,
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "nome"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_pedidos": gorm.Expr("clientes.total_pedidos + 1"),
			"ultimo_pedido": gorm.Expr(
				"CASE WHEN COALESCE(clientes.ultimo_pedido, '') < ? THEN ? ELSE clientes.ultimo_pedido END",
				orderDate, orderDate),
			"primeiro_pedido": gorm.Expr(
				"CASE WHEN COALESCE(clientes.primeiro_pedido, '') = '' THEN ? ELSE clientes.primeiro_pedido END",
				orderDate),
			"updated_at": r.now(),
		}),
	}

	if err := r.db.WithContext(ctx).Clauses(onConflict).Create(&cliente).Error; err != nil {
		return fmt.Errorf("clientes.upsert: %w", err)
	}
	return nil
}

// Count returns the number of customers
func (r *ClienteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Cliente{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("clientes.count: %w", err)
	}
	return total, nil
}

// isDuplicateKeyError matches translated gorm errors and falls back to the
// driver message (PostgreSQL and SQLite word it differently)
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505")
}
