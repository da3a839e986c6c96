package dto

import "github.com/shopspring/decimal"

type CriarFichaTecnicaRequest struct {
	ProdutoID  uint            `json:"produto_id" validate:"required"`
	InsumoID   uint            `json:"insumo_id"  validate:"required"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required,gt=0"`
}

type FichaTecnicaResponse struct {
	ID         uint            `json:"id"`
	ProdutoID  uint            `json:"produto_id"`
	InsumoID   uint            `json:"insumo_id"`
	InsumoNome string          `json:"insumo_nome,omitempty"`
	Unidade    string          `json:"unidade,omitempty"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

// CustoProdutoResponse carries the rolled-up recipe cost as a 2-dp string.
type CustoProdutoResponse struct {
	ProdutoID uint   `json:"produto_id"`
	Custo     string `json:"custo"`
}
