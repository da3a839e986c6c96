package service

import (
	"context"
	"fmt"
	"time"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComandaService owns the comanda lifecycle: creation, line-item mutation,
// derived-total recomputation and the closing-to-venda transition. It is the
// sole writer of comanda aggregate fields.
type ComandaService interface {
	Criar(ctx context.Context, req dto.CriarComandaRequest) (*dto.ComandaResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.ComandaResponse, error)
	ListarAbertas(ctx context.Context) ([]dto.ComandaResponse, error)
	AdicionarItem(ctx context.Context, comandaID uint, req dto.AdicionarItemRequest) error
	ListarItens(ctx context.Context, comandaID uint) ([]dto.ItemComandaResponse, error)
	Fechar(ctx context.Context, comandaID uint, formaPagamento string) (*dto.FecharComandaResponse, error)
}

type comandaService struct {
	repo      repository.ComandaRepository
	mesaRepo  repository.MesaRepository
	vendaRepo repository.VendaRepository
}

func NewComandaService(
	repo repository.ComandaRepository,
	mesaRepo repository.MesaRepository,
	vendaRepo repository.VendaRepository,
) ComandaService {
	return &comandaService{repo: repo, mesaRepo: mesaRepo, vendaRepo: vendaRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Criar opens a new comanda with zeroed totals. The associated mesa (if any)
// is NOT marked occupied here — table status only changes by explicit action
// or on close.
func (s *comandaService) Criar(ctx context.Context, req dto.CriarComandaRequest) (*dto.ComandaResponse, error) {
	if req.Numero == "" {
		return nil, apierror.Validationf("número da comanda é obrigatório")
	}
	c := &model.Comanda{
		Numero:       req.Numero,
		MesaID:       req.MesaID,
		Status:       "aberta",
		TotalItens:   0,
		TotalValor:   decimal.Zero,
		DataAbertura: time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return comandaToResponse(c), nil
}

func (s *comandaService) ObterPorID(ctx context.Context, id uint) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return comandaToResponse(c), nil
}

// ListarAbertas degrades to an empty list when the store is unreachable —
// read paths fail open so the floor can keep rendering.
func (s *comandaService) ListarAbertas(ctx context.Context) ([]dto.ComandaResponse, error) {
	comandas, err := s.repo.ListAbertas(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar comandas abertas: store indisponível, retornando vazio")
		return []dto.ComandaResponse{}, nil
	}
	resp := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		resp = append(resp, *comandaToResponse(&comandas[i]))
	}
	return resp, nil
}

// AdicionarItem inserts a line item and recomputes the comanda's derived
// totals inside a single transaction, so the aggregate can never be observed
// out of step with the line items after commit. The subtotal is fixed at
// insertion time; later price changes do not touch existing lines.
//
// The engine checks that the comanda exists but does not re-validate its
// status — adding to a closed comanda is the caller's contract to prevent.
func (s *comandaService) AdicionarItem(ctx context.Context, comandaID uint, req dto.AdicionarItemRequest) error {
	preco, err := decimal.NewFromString(req.PrecoUnitario)
	if err != nil {
		return apierror.Validationf("preço unitário inválido: %q", req.PrecoUnitario)
	}
	if req.Quantidade <= 0 {
		return apierror.Validationf("quantidade deve ser positiva")
	}

	if _, err := s.repo.FindByID(ctx, comandaID); err != nil {
		return err
	}

	subtotal := preco.Mul(decimal.NewFromInt(int64(req.Quantidade))).Round(2)

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		item := &model.ItemComanda{
			ComandaID:     comandaID,
			ProdutoID:     req.ProdutoID,
			Quantidade:    req.Quantidade,
			PrecoUnitario: preco,
			Subtotal:      subtotal,
			Status:        "pendente",
		}
		if err := s.repo.CreateItemTx(tx, item); err != nil {
			return err
		}
		return s.recalcularTotaisTx(tx, comandaID)
	})
}

// recalcularTotaisTx is a full re-read-and-overwrite, not an incremental
// counter: item count = row count, total = Σ subtotal at two decimal places.
func (s *comandaService) recalcularTotaisTx(tx *gorm.DB, comandaID uint) error {
	itens, err := s.repo.ListItensTx(tx, comandaID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.Subtotal)
	}
	return s.repo.UpdateTotaisTx(tx, comandaID, len(itens), total.Round(2))
}

func (s *comandaService) ListarItens(ctx context.Context, comandaID uint) ([]dto.ItemComandaResponse, error) {
	itens, err := s.repo.ListItens(ctx, comandaID)
	if err != nil {
		log.Warn().Err(err).Uint("comanda_id", comandaID).Msg("listar itens: store indisponível, retornando vazio")
		return []dto.ItemComandaResponse{}, nil
	}
	resp := make([]dto.ItemComandaResponse, 0, len(itens))
	for _, it := range itens {
		nome := ""
		if it.Produto != nil {
			nome = it.Produto.Nome
		}
		resp = append(resp, dto.ItemComandaResponse{
			ID:            it.ID,
			ComandaID:     it.ComandaID,
			ProdutoID:     it.ProdutoID,
			Produto:       nome,
			Quantidade:    it.Quantidade,
			PrecoUnitario: dto.NewMoney(it.PrecoUnitario),
			Subtotal:      dto.NewMoney(it.Subtotal),
			Status:        it.Status,
		})
	}
	return resp, nil
}

// Fechar performs the terminal open → closed transition in one transaction:
//  1. status=fechada, dataFechamento=now (guarded by status=aberta, so a
//     concurrent or repeated close fails instead of creating a second venda)
//  2. the associated mesa, if any, becomes disponivel (last writer wins)
//  3. venda and nota numbers are drawn from the database sequence
//  4. a venda row is appended with totals derived from the line items
//     re-read inside the same transaction, so an item committed between the
//     pre-check and the status flip still lands on the venda
func (s *comandaService) Fechar(ctx context.Context, comandaID uint, formaPagamento string) (*dto.FecharComandaResponse, error) {
	comanda, err := s.repo.FindByID(ctx, comandaID)
	if err != nil {
		return nil, err
	}
	if comanda.Status != "aberta" {
		return nil, apierror.Constraint(fmt.Sprintf("comanda %s já está %s", comanda.Numero, comanda.Status))
	}

	var resp dto.FecharComandaResponse
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		agora := time.Now()

		rows, err := s.repo.FecharTx(tx, comandaID, agora)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierror.Constraint(fmt.Sprintf("comanda %s já está fechada", comanda.Numero))
		}

		itens, err := s.repo.ListItensTx(tx, comandaID)
		if err != nil {
			return err
		}
		totalValor := decimal.Zero
		for _, it := range itens {
			totalValor = totalValor.Add(it.Subtotal)
		}
		totalValor = totalValor.Round(2)

		if comanda.MesaID != nil {
			if err := s.mesaRepo.UpdateStatusTx(tx, *comanda.MesaID, "disponivel"); err != nil {
				return err
			}
		}

		seq, err := s.vendaRepo.NextNumero(ctx, tx)
		if err != nil {
			return err
		}
		numeroVenda := fmt.Sprintf("V-%06d", seq)
		numeroNota := fmt.Sprintf("NF-%06d", seq)

		venda := &model.Venda{
			NumeroVenda:    numeroVenda,
			NumeroNota:     &numeroNota,
			ComandaID:      &comandaID,
			TotalItens:     len(itens),
			Subtotal:       totalValor,
			Desconto:       decimal.Zero,
			TotalVenda:     totalValor,
			FormaPagamento: formaPagamento,
			Status:         "paga",
			DataVenda:      agora,
		}
		if err := s.vendaRepo.CreateTx(tx, venda); err != nil {
			return err
		}

		resp = dto.FecharComandaResponse{NumeroVenda: numeroVenda, NumeroNota: numeroNota}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Uint("comanda_id", comandaID).
		Str("numero_venda", resp.NumeroVenda).
		Str("forma_pagamento", formaPagamento).
		Msg("comanda fechada")
	return &resp, nil
}

func comandaToResponse(c *model.Comanda) *dto.ComandaResponse {
	var fechamento *string
	if c.DataFechamento != nil {
		f := c.DataFechamento.Format(time.RFC3339)
		fechamento = &f
	}
	return &dto.ComandaResponse{
		ID:             c.ID,
		Numero:         c.Numero,
		MesaID:         c.MesaID,
		Status:         c.Status,
		TotalItens:     c.TotalItens,
		TotalValor:     dto.NewMoney(c.TotalValor),
		DataAbertura:   c.DataAbertura.Format(time.RFC3339),
		DataFechamento: fechamento,
	}
}
