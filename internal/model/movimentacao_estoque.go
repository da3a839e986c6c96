package model

import "time"

// MovimentacaoEstoque is the append-only audit trail of stock changes.
// Tipo: "entrada" | "saida" | "ajuste".
//
// TODO: confirm with the product owner whether "ajuste" should carry a signed
// delta or set an absolute quantity; today it is applied additively, exactly
// like "entrada".
type MovimentacaoEstoque struct {
	ID         uint   `gorm:"primaryKey"`
	ProdutoID  uint   `gorm:"not null;index"`
	Tipo       string `gorm:"type:varchar(20);not null"`
	Quantidade int    `gorm:"not null"`
	Motivo     *string
	UsuarioID  *uint
	CreatedAt  time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (MovimentacaoEstoque) TableName() string { return "movimentacoes_estoque" }
