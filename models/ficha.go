package models

import (
	"fmt"
	"time"
)

// Ficha statuses
const (
	StatusPendente  = "pendente"
	StatusEntregue  = "entregue"
	StatusCancelado = "cancelado"
)

// Evento flag values
const (
	EventoSim = "sim"
	EventoNao = "nao"
)

// Ficha represents a garment production order sheet
type Ficha struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Cliente     string `gorm:"not null;index" json:"cliente"`
	Vendedor    string `gorm:"index" json:"vendedor"`
	NumeroVenda string `json:"numeroVenda"`
	DataInicio  string `gorm:"index" json:"dataInicio"` // YYYY-MM-DD
	DataEntrega string `json:"dataEntrega"`             // YYYY-MM-DD
	Evento      string `gorm:"not null;default:'nao'" json:"evento"`
	Status      string `gorm:"not null;default:'pendente';index" json:"status"` // pendente, entregue, cancelado

	// Garment details
	Material           string `json:"material"`
	CorMaterial        string `json:"corMaterial"`
	Manga              string `json:"manga"`
	AcabamentoManga    string `json:"acabamentoManga"`
	LarguraManga       string `json:"larguraManga"`
	CorAcabamentoManga string `json:"corAcabamentoManga"`
	Gola               string `json:"gola"`
	CorGola            string `json:"corGola"`
	AcabamentoGola     string `json:"acabamentoGola"`
	CorPeitilhoInterno string `json:"corPeitilhoInterno"`
	CorPeitilhoExterno string `json:"corPeitilhoExterno"`
	AberturaLateral    string `json:"aberturaLateral"`
	CorAberturaLateral string `json:"corAberturaLateral"`
	ReforcoGola        string `json:"reforcoGola"`
	CorReforcoGola     string `json:"corReforcoGola"`
	Bolso              string `json:"bolso"`
	Filete             string `json:"filete"`
	LocalFilete        string `json:"localFilete"`
	CorFilete          string `json:"corFilete"`
	Faixa              string `json:"faixa"`
	LocalFaixa         string `json:"localFaixa"`
	CorFaixa           string `json:"corFaixa"`
	Arte               string `json:"arte"`
	Composicao         string `json:"composicao"`
	Observacoes        string `gorm:"type:text" json:"observacoes"`

	Produtos    Produtos `gorm:"type:text" json:"produtos"`
	ImagemData  string   `gorm:"type:text" json:"imagemData"`
	ImagensData string   `gorm:"column:imagens_data;type:text" json:"imagensData"` // legacy multi-image column

	DeliveredAt *time.Time `json:"delivered_at"` // nullable, set when the ficha is delivered
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Ficha model
func (Ficha) TableName() string {
	return "fichas"
}

// TotalItens sums the quantities of every line item
func (f Ficha) TotalItens() int {
	return f.Produtos.TotalQuantidade()
}

// IsValidStatus reports whether s is a known ficha status
func IsValidStatus(s string) bool {
	switch s {
	case StatusPendente, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}

// IsValidEvento reports whether s is sim or nao
func IsValidEvento(s string) bool {
	return s == EventoSim || s == EventoNao
}

// Validate checks the enumerated columns of a ficha whose defaults are already applied
func (f Ficha) Validate() error {
	if !IsValidStatus(f.Status) {
		return fmt.Errorf("%w: status %q", ErrFichaInvalida, f.Status)
	}
	if !IsValidEvento(f.Evento) {
		return fmt.Errorf("%w: evento %q", ErrFichaInvalida, f.Evento)
	}
	return nil
}
