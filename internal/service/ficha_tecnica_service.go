package service

import (
	"context"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type FichaTecnicaService interface {
	Criar(ctx context.Context, req dto.CriarFichaTecnicaRequest) (*dto.FichaTecnicaResponse, error)
	ListarPorProduto(ctx context.Context, produtoID uint) ([]dto.FichaTecnicaResponse, error)
	Deletar(ctx context.Context, id uint) error
	CalcularCusto(ctx context.Context, produtoID uint) (*dto.CustoProdutoResponse, error)
}

type fichaTecnicaService struct {
	repo       repository.FichaTecnicaRepository
	insumoRepo repository.InsumoRepository
}

func NewFichaTecnicaService(repo repository.FichaTecnicaRepository, insumoRepo repository.InsumoRepository) FichaTecnicaService {
	return &fichaTecnicaService{repo: repo, insumoRepo: insumoRepo}
}

func (s *fichaTecnicaService) Criar(ctx context.Context, req dto.CriarFichaTecnicaRequest) (*dto.FichaTecnicaResponse, error) {
	// The referenced insumo must resolve at attach time; a dangling
	// reference would silently disappear from the cost rollup later.
	insumo, err := s.insumoRepo.FindByID(ctx, req.InsumoID)
	if err != nil {
		return nil, err
	}

	f := &model.FichaTecnica{
		ProdutoID:  req.ProdutoID,
		InsumoID:   req.InsumoID,
		Quantidade: req.Quantidade,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return &dto.FichaTecnicaResponse{
		ID:         f.ID,
		ProdutoID:  f.ProdutoID,
		InsumoID:   f.InsumoID,
		InsumoNome: insumo.Nome,
		Unidade:    insumo.Unidade,
		Quantidade: f.Quantidade,
	}, nil
}

func (s *fichaTecnicaService) ListarPorProduto(ctx context.Context, produtoID uint) ([]dto.FichaTecnicaResponse, error) {
	fichas, err := s.repo.ListByProduto(ctx, produtoID)
	if err != nil {
		log.Warn().Err(err).Uint("produto_id", produtoID).Msg("listar ficha técnica: store indisponível, retornando vazio")
		return []dto.FichaTecnicaResponse{}, nil
	}
	resp := make([]dto.FichaTecnicaResponse, 0, len(fichas))
	for _, f := range fichas {
		item := dto.FichaTecnicaResponse{
			ID:         f.ID,
			ProdutoID:  f.ProdutoID,
			InsumoID:   f.InsumoID,
			Quantidade: f.Quantidade,
		}
		if f.Insumo != nil {
			item.InsumoNome = f.Insumo.Nome
			item.Unidade = f.Insumo.Unidade
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *fichaTecnicaService) Deletar(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// CalcularCusto rolls up Σ(quantidade × preço unitário do insumo) over the
// product's recipe lines, at two decimal places. Prices are re-read on every
// call — the result always reflects current ingredient prices, never a
// snapshot. Lines whose insumo no longer resolves are excluded from the sum
// and logged as warnings.
func (s *fichaTecnicaService) CalcularCusto(ctx context.Context, produtoID uint) (*dto.CustoProdutoResponse, error) {
	fichas, err := s.repo.ListByProduto(ctx, produtoID)
	if err != nil {
		log.Warn().Err(err).Uint("produto_id", produtoID).Msg("calcular custo: store indisponível")
		return &dto.CustoProdutoResponse{ProdutoID: produtoID, Custo: "0.00"}, nil
	}

	custo := decimal.Zero
	for _, f := range fichas {
		insumo, err := s.insumoRepo.FindByID(ctx, f.InsumoID)
		if err != nil {
			log.Warn().
				Uint("produto_id", produtoID).
				Uint("insumo_id", f.InsumoID).
				Msg("insumo da ficha técnica não resolve; excluído do custo")
			continue
		}
		custo = custo.Add(insumo.PrecoUnitario.Mul(f.Quantidade))
	}

	return &dto.CustoProdutoResponse{
		ProdutoID: produtoID,
		Custo:     custo.Round(2).StringFixed(2),
	}, nil
}
