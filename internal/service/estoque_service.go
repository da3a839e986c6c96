package service

import (
	"context"
	"time"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"
	"restopos/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// defaultQuantidadeMinima applies to records created lazily on the first
// movement, matching the column default.
const defaultQuantidadeMinima = 10

// EstoqueService manages per-product stock counts and the append-only
// movement log. A movement and its resulting count update commit in one
// transaction; the low-stock alert reconciliation runs async afterwards.
type EstoqueService interface {
	ObterPorProduto(ctx context.Context, produtoID uint) (*dto.EstoqueResponse, error)
	Listar(ctx context.Context) ([]dto.EstoqueResponse, error)
	AtualizarEstoque(ctx context.Context, req dto.AtualizarEstoqueRequest) (*dto.EstoqueResponse, error)
	RegistrarMovimentacao(ctx context.Context, usuarioID *uint, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error)
	ListarMovimentacoes(ctx context.Context, produtoID uint) ([]dto.MovimentacaoResponse, error)
}

type estoqueService struct {
	repo        repository.EstoqueRepository
	produtoRepo repository.ProdutoRepository
	dispatcher  *worker.Dispatcher
}

func NewEstoqueService(repo repository.EstoqueRepository, produtoRepo repository.ProdutoRepository, dispatcher *worker.Dispatcher) EstoqueService {
	return &estoqueService{repo: repo, produtoRepo: produtoRepo, dispatcher: dispatcher}
}

func (s *estoqueService) ObterPorProduto(ctx context.Context, produtoID uint) (*dto.EstoqueResponse, error) {
	e, err := s.repo.FindByProduto(ctx, produtoID)
	if err != nil {
		return nil, err
	}
	return estoqueToResponse(e), nil
}

func (s *estoqueService) Listar(ctx context.Context) ([]dto.EstoqueResponse, error) {
	estoques, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar estoque: store indisponível, retornando vazio")
		return []dto.EstoqueResponse{}, nil
	}
	resp := make([]dto.EstoqueResponse, 0, len(estoques))
	for i := range estoques {
		resp = append(resp, *estoqueToResponse(&estoques[i]))
	}
	return resp, nil
}

// AtualizarEstoque sets the absolute quantity for a product, creating the
// stock record if it does not exist yet.
func (s *estoqueService) AtualizarEstoque(ctx context.Context, req dto.AtualizarEstoqueRequest) (*dto.EstoqueResponse, error) {
	if _, err := s.produtoRepo.FindByID(ctx, req.ProdutoID); err != nil {
		return nil, err
	}

	minima := defaultQuantidadeMinima
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cur, err := s.repo.FindByProdutoTx(tx, req.ProdutoID)
		if err != nil {
			return err
		}
		if cur != nil {
			minima = cur.QuantidadeMinima
		}
		return s.repo.UpsertQuantidadeTx(tx, req.ProdutoID, req.Quantidade)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueAlerta(ctx, req.ProdutoID, req.Quantidade, minima)

	return &dto.EstoqueResponse{
		ProdutoID:        req.ProdutoID,
		Quantidade:       req.Quantidade,
		QuantidadeMinima: minima,
	}, nil
}

// RegistrarMovimentacao appends a movement and applies its delta to the
// product's stock record. "entrada" and "ajuste" add; "saida" subtracts.
// The resulting quantity may go negative.
func (s *estoqueService) RegistrarMovimentacao(ctx context.Context, usuarioID *uint, req dto.RegistrarMovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	if _, err := s.produtoRepo.FindByID(ctx, req.ProdutoID); err != nil {
		return nil, err
	}

	mov := &model.MovimentacaoEstoque{
		ProdutoID:  req.ProdutoID,
		Tipo:       req.Tipo,
		Quantidade: req.Quantidade,
		Motivo:     req.Motivo,
		UsuarioID:  usuarioID,
	}

	nova := 0
	minima := defaultQuantidadeMinima
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimentacaoTx(tx, mov); err != nil {
			return err
		}
		cur, err := s.repo.FindByProdutoTx(tx, req.ProdutoID)
		if err != nil {
			return err
		}
		atual := 0
		if cur != nil {
			atual = cur.Quantidade
			minima = cur.QuantidadeMinima
		}
		if req.Tipo == "saida" {
			nova = atual - req.Quantidade
		} else {
			nova = atual + req.Quantidade
		}
		return s.repo.UpsertQuantidadeTx(tx, req.ProdutoID, nova)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("produto_id", req.ProdutoID).
		Str("tipo", req.Tipo).
		Int("quantidade", req.Quantidade).
		Int("estoque_resultante", nova).
		Msg("movimentação de estoque registrada")

	s.enqueueAlerta(ctx, req.ProdutoID, nova, minima)

	return movimentacaoToResponse(mov), nil
}

func (s *estoqueService) ListarMovimentacoes(ctx context.Context, produtoID uint) ([]dto.MovimentacaoResponse, error) {
	movs, err := s.repo.ListMovimentacoes(ctx, produtoID)
	if err != nil {
		log.Warn().Err(err).Msg("listar movimentações: store indisponível, retornando vazio")
		return []dto.MovimentacaoResponse{}, nil
	}
	resp := make([]dto.MovimentacaoResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, *movimentacaoToResponse(&movs[i]))
	}
	return resp, nil
}

// enqueueAlerta hands the new quantity to the alert worker. Best effort:
// a queue failure never fails the stock write that already committed.
func (s *estoqueService) enqueueAlerta(ctx context.Context, produtoID uint, quantidade, minima int) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.AlertaEstoquePayload{
		ProdutoID:        produtoID,
		Quantidade:       quantidade,
		QuantidadeMinima: minima,
	}
	if err := s.dispatcher.EnqueueAlertaEstoque(ctx, payload); err != nil {
		log.Error().Err(err).Uint("produto_id", produtoID).Msg("falha ao enfileirar alerta de estoque")
	}
}

func estoqueToResponse(e *model.Estoque) *dto.EstoqueResponse {
	resp := &dto.EstoqueResponse{
		ProdutoID:        e.ProdutoID,
		Quantidade:       e.Quantidade,
		QuantidadeMinima: e.QuantidadeMinima,
	}
	if e.Produto != nil {
		resp.Produto = e.Produto.Nome
	}
	return resp
}

func movimentacaoToResponse(m *model.MovimentacaoEstoque) *dto.MovimentacaoResponse {
	return &dto.MovimentacaoResponse{
		ID:         m.ID,
		ProdutoID:  m.ProdutoID,
		Tipo:       m.Tipo,
		Quantidade: m.Quantidade,
		Motivo:     m.Motivo,
		UsuarioID:  m.UsuarioID,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}
