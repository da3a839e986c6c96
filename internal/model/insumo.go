package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insumo is a raw material (ingredient) consumed by recipes.
// Codigo is sequential starting at "1000"; Nome is stored upper-case only.
type Insumo struct {
	ID            uint   `gorm:"primaryKey"`
	Codigo        string `gorm:"size:50;uniqueIndex;not null"`
	Nome          string `gorm:"size:255;not null"`
	Descricao     *string
	Unidade       string          `gorm:"size:50;not null"` // kg, L, unidade, …
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Ativo         bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EstoqueInsumo tracks on-hand quantity per insumo. Quantities use three
// decimal places because ingredients are weighed (kg, L).
type EstoqueInsumo struct {
	ID                uint            `gorm:"primaryKey"`
	InsumoID          uint            `gorm:"not null;index"`
	Quantidade        decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	QuantidadeMinima  decimal.Decimal `gorm:"type:decimal(10,3);not null;default:10"`
	UltimaAtualizacao time.Time       `gorm:"autoUpdateTime"`

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (EstoqueInsumo) TableName() string { return "estoque_insumos" }
