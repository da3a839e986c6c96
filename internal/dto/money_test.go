package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneySerializaComDuasCasas(t *testing.T) {
	resp := ComandaResponse{
		Numero:     "C-01",
		TotalItens: 1,
		TotalValor: NewMoney(decimal.RequireFromString("25.00").Mul(decimal.NewFromInt(2)).Round(2)),
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	// never the minimal "50" — receipts show fixed two decimals
	assert.Contains(t, string(b), `"total_valor":"50.00"`)
}

func TestMoneySerializaValoresQuebrados(t *testing.T) {
	b, err := json.Marshal(NewMoney(decimal.RequireFromString("3.5")))
	require.NoError(t, err)
	assert.Equal(t, `"3.50"`, string(b))

	b, err = json.Marshal(NewMoney(decimal.Zero))
	require.NoError(t, err)
	assert.Equal(t, `"0.00"`, string(b))
}

func TestMoneyRoundTripPreservaValor(t *testing.T) {
	// the price cache stores marshaled responses and reads them back
	original := ConsultaPrecoResponse{
		Codigo: "2003",
		Nome:   "Agua Mineral",
		Preco:  NewMoney(decimal.RequireFromString("5")),
	}
	b, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"preco":"5.00"`)

	var lido ConsultaPrecoResponse
	require.NoError(t, json.Unmarshal(b, &lido))
	assert.True(t, lido.Preco.Equal(decimal.RequireFromString("5.00")))
}
