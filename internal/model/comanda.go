package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comanda is an open tab associated with zero or one mesa, accumulating line
// items until closed. TotalItens and TotalValor are DERIVED: they must always
// equal the aggregate over the comanda's line items and are recomputed in the
// same transaction as every item insertion.
// Status: "aberta" | "fechada" | "cancelada" (cancelada reserved by schema).
type Comanda struct {
	ID             uint   `gorm:"primaryKey"`
	Numero         string `gorm:"size:50;uniqueIndex;not null"`
	MesaID         *uint  `gorm:"index"`
	Status         string `gorm:"type:varchar(20);not null;default:'aberta'"`
	TotalItens     int    `gorm:"not null;default:0"`
	TotalValor     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DataAbertura   time.Time       `gorm:"not null"`
	DataFechamento *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Mesa  *Mesa         `gorm:"foreignKey:MesaID"`
	Itens []ItemComanda `gorm:"foreignKey:ComandaID"`
}

// ItemComanda is a line item inside a comanda. PrecoUnitario is captured at
// add time and Subtotal is fixed at insertion — later product price changes
// never touch existing lines.
// Status: "pendente" | "preparando" | "pronto" | "servido"
type ItemComanda struct {
	ID            uint            `gorm:"primaryKey"`
	ComandaID     uint            `gorm:"not null;index"`
	ProdutoID     uint            `gorm:"not null;index"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pendente'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemComanda) TableName() string { return "itens_comanda" }
