package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarInsumoRequest struct {
	Codigo        string          `json:"codigo"         validate:"required"`
	Nome          string          `json:"nome"           validate:"required,min=1,max=255"`
	Descricao     *string         `json:"descricao"`
	Unidade       string          `json:"unidade"        validate:"required"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"required,gt=0"`
}

type AtualizarInsumoRequest struct {
	Nome          *string          `json:"nome"           validate:"omitempty,min=1,max=255"`
	Descricao     *string          `json:"descricao"`
	Unidade       *string          `json:"unidade"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario" validate:"omitempty,gt=0"`
	Ativo         *bool            `json:"ativo"`
}

type AtualizarEstoqueInsumoRequest struct {
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID            uint    `json:"id"`
	Codigo        string  `json:"codigo"`
	Nome          string  `json:"nome"`
	Descricao     *string `json:"descricao"`
	Unidade       string  `json:"unidade"`
	PrecoUnitario Money   `json:"preco_unitario"`
	Ativo         bool    `json:"ativo"`
}

type EstoqueInsumoResponse struct {
	InsumoID         uint            `json:"insumo_id"`
	Quantidade       decimal.Decimal `json:"quantidade"`
	QuantidadeMinima decimal.Decimal `json:"quantidade_minima"`
}

type ProximoCodigoResponse struct {
	Codigo string `json:"codigo"`
}
