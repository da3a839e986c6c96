package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarComandaRequest struct {
	Numero string `json:"numero"  validate:"required,min=1,max=50"`
	MesaID *uint  `json:"mesa_id"`
}

// AdicionarItemRequest captures the unit price as a decimal-string at add
// time; the engine does not re-read the catalog price.
type AdicionarItemRequest struct {
	ProdutoID     uint   `json:"produto_id"     validate:"required"`
	Quantidade    int    `json:"quantidade"     validate:"required,min=1"`
	PrecoUnitario string `json:"preco_unitario" validate:"required"`
}

type FecharComandaRequest struct {
	FormaPagamento string `json:"forma_pagamento" validate:"required,oneof=dinheiro debito credito pix"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComandaResponse struct {
	ID             uint            `json:"id"`
	Numero         string          `json:"numero"`
	MesaID         *uint           `json:"mesa_id"`
	Status         string          `json:"status"`
	TotalItens     int     `json:"total_itens"`
	TotalValor     Money   `json:"total_valor"`
	DataAbertura   string  `json:"data_abertura"`
	DataFechamento *string `json:"data_fechamento"`
}

type ItemComandaResponse struct {
	ID            uint            `json:"id"`
	ComandaID     uint            `json:"comanda_id"`
	ProdutoID     uint            `json:"produto_id"`
	Produto       string          `json:"produto,omitempty"`
	Quantidade    int    `json:"quantidade"`
	PrecoUnitario Money  `json:"preco_unitario"`
	Subtotal      Money  `json:"subtotal"`
	Status        string `json:"status"`
}

// FecharComandaResponse returns the identifiers of the venda generated by the
// close operation.
type FecharComandaResponse struct {
	NumeroVenda string `json:"numero_venda"`
	NumeroNota  string `json:"numero_nota"`
}
