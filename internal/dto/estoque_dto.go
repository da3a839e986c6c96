package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AtualizarEstoqueRequest struct {
	ProdutoID  uint `json:"produto_id" validate:"required"`
	Quantidade int  `json:"quantidade"`
}

type RegistrarMovimentacaoRequest struct {
	ProdutoID  uint    `json:"produto_id" validate:"required"`
	Tipo       string  `json:"tipo"       validate:"required,oneof=entrada saida ajuste"`
	Quantidade int     `json:"quantidade" validate:"required,min=1"`
	Motivo     *string `json:"motivo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstoqueResponse struct {
	ProdutoID        uint   `json:"produto_id"`
	Produto          string `json:"produto,omitempty"`
	Quantidade       int    `json:"quantidade"`
	QuantidadeMinima int    `json:"quantidade_minima"`
}

type MovimentacaoResponse struct {
	ID         uint    `json:"id"`
	ProdutoID  uint    `json:"produto_id"`
	Tipo       string  `json:"tipo"`
	Quantidade int     `json:"quantidade"`
	Motivo     *string `json:"motivo"`
	UsuarioID  *uint   `json:"usuario_id"`
	CreatedAt  string  `json:"created_at"`
}

// AlertaEstoqueResponse is read back from Redis where the alert worker
// records products at or below their minimum quantity.
type AlertaEstoqueResponse struct {
	ProdutoID        uint   `json:"produto_id"`
	Quantidade       int    `json:"quantidade"`
	QuantidadeMinima int    `json:"quantidade_minima"`
	RegistradoEm     string `json:"registrado_em"`
}
