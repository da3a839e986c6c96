package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Codigo    string          `json:"codigo"    validate:"required"`
	Nome      string          `json:"nome"      validate:"required,min=1,max=255"`
	Descricao *string         `json:"descricao"`
	Preco     decimal.Decimal `json:"preco"     validate:"required,gt=0"`
	Categoria *string         `json:"categoria" validate:"omitempty,max=100"`
}

type AtualizarProdutoRequest struct {
	Nome      *string          `json:"nome"      validate:"omitempty,min=1,max=255"`
	Descricao *string          `json:"descricao"`
	Preco     *decimal.Decimal `json:"preco"     validate:"omitempty,gt=0"`
	Categoria *string          `json:"categoria" validate:"omitempty,max=100"`
	Ativo     *bool            `json:"ativo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID        uint    `json:"id"`
	Codigo    string  `json:"codigo"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Preco     Money   `json:"preco"`
	Categoria *string `json:"categoria"`
	Ativo     bool    `json:"ativo"`
}

// ConsultaPrecoResponse is the payload of the public price-lookup endpoint.
// Cached in Redis keyed by codigo.
type ConsultaPrecoResponse struct {
	Codigo    string  `json:"codigo"`
	Nome      string  `json:"nome"`
	Preco     Money   `json:"preco"`
	Categoria *string `json:"categoria"`
}
