package model

import "time"

// Estoque tracks on-hand quantity per produto. Quantity is NOT clamped at
// zero: "saida" movements may drive it negative.
type Estoque struct {
	ID                uint      `gorm:"primaryKey"`
	ProdutoID         uint      `gorm:"not null;index"`
	Quantidade        int       `gorm:"not null;default:0"`
	QuantidadeMinima  int       `gorm:"not null;default:10"`
	UltimaAtualizacao time.Time `gorm:"autoUpdateTime"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (Estoque) TableName() string { return "estoque" }
