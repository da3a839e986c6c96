package dto

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	DataInicio string `form:"data_inicio"` // YYYY-MM-DD
	DataFim    string `form:"data_fim"`    // YYYY-MM-DD
}

type VendaResponse struct {
	ID             uint    `json:"id"`
	NumeroVenda    string  `json:"numero_venda"`
	NumeroNota     *string `json:"numero_nota"`
	ComandaID      *uint   `json:"comanda_id"`
	TotalItens     int     `json:"total_itens"`
	Subtotal       Money   `json:"subtotal"`
	Desconto       Money   `json:"desconto"`
	TotalVenda     Money   `json:"total_venda"`
	FormaPagamento string  `json:"forma_pagamento"`
	Status         string  `json:"status"`
	DataVenda      string  `json:"data_venda"`
}

// RelatorioVendasResponse aggregates sales for the reporting endpoint.
type RelatorioVendasResponse struct {
	TotalVendas int             `json:"total_vendas"`
	TotalValor  string          `json:"total_valor"`  // 2-dp
	TicketMedio string          `json:"ticket_medio"` // 2-dp
	Vendas      []VendaResponse `json:"vendas"`
}
