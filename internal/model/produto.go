package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto is a sellable menu item (prato/bebida).
// Codigo is sequential starting at "2000".
type Produto struct {
	ID        uint   `gorm:"primaryKey"`
	Codigo    string `gorm:"size:50;uniqueIndex;not null"`
	Nome      string `gorm:"size:255;index;not null"`
	Descricao *string
	Preco     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Categoria *string         `gorm:"size:100"`
	Ativo     bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FichaTecnica associates an insumo with a produto: how much of the
// ingredient one unit of the product consumes.
type FichaTecnica struct {
	ID         uint            `gorm:"primaryKey"`
	ProdutoID  uint            `gorm:"not null;index"`
	InsumoID   uint            `gorm:"not null;index"`
	Quantidade decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Insumo  *Insumo  `gorm:"foreignKey:InsumoID"`
}

// TableName overrides GORM's default pluralization (ficha_tecnicas → fichas_tecnicas).
func (FichaTecnica) TableName() string { return "fichas_tecnicas" }
