package models

import (
	"time"
)

// Cliente is the customer rollup derived from ficha creation
type Cliente struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Nome           string    `gorm:"uniqueIndex;not null" json:"nome"` // exact, case-sensitive natural key
	PrimeiroPedido string    `gorm:"index" json:"primeiro_pedido"`     // YYYY-MM-DD
	UltimoPedido   string    `gorm:"index" json:"ultimo_pedido"`       // YYYY-MM-DD
	TotalPedidos   int       `gorm:"not null;default:0" json:"total_pedidos"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Cliente model
func (Cliente) TableName() string {
	return "clientes"
}
