package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venda is the immutable financial record created exactly once when a comanda
// closes. TotalItens/Subtotal/TotalVenda are copied verbatim from the comanda
// at close time. NumeroVenda and NumeroNota are drawn from a database sequence
// so concurrent closes can never collide.
// FormaPagamento: "dinheiro" | "debito" | "credito" | "pix"
// Status: "pendente" | "paga" | "cancelada"
type Venda struct {
	ID             uint    `gorm:"primaryKey"`
	NumeroVenda    string  `gorm:"size:50;uniqueIndex;not null"`
	NumeroNota     *string `gorm:"size:50;uniqueIndex"`
	ComandaID      *uint   `gorm:"index"`
	TotalItens     int     `gorm:"not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Desconto       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalVenda     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FormaPagamento string          `gorm:"type:varchar(20);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	DataVenda      time.Time       `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Comanda *Comanda `gorm:"foreignKey:ComandaID"`
}
