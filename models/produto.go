package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Produto is one size/quantity line item of a ficha
type Produto struct {
	Tamanho    string `json:"tamanho"`
	Quantidade int    `json:"quantidade"`
	Descricao  string `json:"descricao"`
}

// Produtos is stored as JSON text in the produtos column.
// Malformed stored JSON reads back as an empty list.
type Produtos []Produto

// Value implements driver.Valuer
func (p Produtos) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode produtos: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *Produtos) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = Produtos{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		*p = Produtos{}
		return nil
	}

	var decoded Produtos
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		*p = Produtos{}
		return nil
	}
	*p = decoded
	return nil
}

// TotalQuantidade sums quantities, ignoring negative values
func (p Produtos) TotalQuantidade() int {
	total := 0
	for _, item := range p {
		if item.Quantidade > 0 {
			total += item.Quantidade
		}
	}
	return total
}
