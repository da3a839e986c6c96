package service

import (
	"context"
	"strings"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type InsumoService interface {
	Criar(ctx context.Context, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.InsumoResponse, error)
	ObterPorCodigo(ctx context.Context, codigo string) (*dto.InsumoResponse, error)
	Listar(ctx context.Context) ([]dto.InsumoResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarInsumoRequest) (*dto.InsumoResponse, error)
	ProximoCodigo(ctx context.Context) (string, error)

	ObterEstoque(ctx context.Context, insumoID uint) (*dto.EstoqueInsumoResponse, error)
	AtualizarEstoque(ctx context.Context, insumoID uint, quantidade decimal.Decimal) error
}

type insumoService struct {
	repo repository.InsumoRepository
}

func NewInsumoService(repo repository.InsumoRepository) InsumoService {
	return &insumoService{repo: repo}
}

// Criar rejects names that are not already upper-case: the ledger stores
// ingredient names in MAIÚSCULO only, and normalizing silently would hide
// typos coming from imports.
func (s *insumoService) Criar(ctx context.Context, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error) {
	if req.Nome != strings.ToUpper(req.Nome) {
		return nil, apierror.Validationf("nome do insumo deve estar em MAIÚSCULO")
	}
	i := &model.Insumo{
		Codigo:        req.Codigo,
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Unidade:       req.Unidade,
		PrecoUnitario: req.PrecoUnitario.Round(2),
		Ativo:         true,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return insumoToResponse(i), nil
}

func (s *insumoService) ObterPorID(ctx context.Context, id uint) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return insumoToResponse(i), nil
}

func (s *insumoService) ObterPorCodigo(ctx context.Context, codigo string) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return insumoToResponse(i), nil
}

func (s *insumoService) Listar(ctx context.Context) ([]dto.InsumoResponse, error) {
	insumos, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar insumos: store indisponível, retornando vazio")
		return []dto.InsumoResponse{}, nil
	}
	resp := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		resp = append(resp, *insumoToResponse(&insumos[i]))
	}
	return resp, nil
}

func (s *insumoService) Atualizar(ctx context.Context, id uint, req dto.AtualizarInsumoRequest) (*dto.InsumoResponse, error) {
	if req.Nome != nil && *req.Nome != strings.ToUpper(*req.Nome) {
		return nil, apierror.Validationf("nome do insumo deve estar em MAIÚSCULO")
	}
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		i.Nome = *req.Nome
	}
	if req.Descricao != nil {
		i.Descricao = req.Descricao
	}
	if req.Unidade != nil {
		i.Unidade = *req.Unidade
	}
	if req.PrecoUnitario != nil {
		i.PrecoUnitario = req.PrecoUnitario.Round(2)
	}
	if req.Ativo != nil {
		i.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return insumoToResponse(i), nil
}

func (s *insumoService) ProximoCodigo(ctx context.Context) (string, error) {
	return s.repo.ProximoCodigo(ctx)
}

func (s *insumoService) ObterEstoque(ctx context.Context, insumoID uint) (*dto.EstoqueInsumoResponse, error) {
	e, err := s.repo.FindEstoque(ctx, insumoID)
	if err != nil {
		return nil, err
	}
	return &dto.EstoqueInsumoResponse{
		InsumoID:         e.InsumoID,
		Quantidade:       e.Quantidade,
		QuantidadeMinima: e.QuantidadeMinima,
	}, nil
}

func (s *insumoService) AtualizarEstoque(ctx context.Context, insumoID uint, quantidade decimal.Decimal) error {
	if _, err := s.repo.FindByID(ctx, insumoID); err != nil {
		return err
	}
	return s.repo.UpsertEstoque(ctx, insumoID, quantidade)
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:            i.ID,
		Codigo:        i.Codigo,
		Nome:          i.Nome,
		Descricao:     i.Descricao,
		Unidade:       i.Unidade,
		PrecoUnitario: dto.NewMoney(i.PrecoUnitario),
		Ativo:         i.Ativo,
	}
}
