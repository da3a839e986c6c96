package service

import (
	"context"

	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// precoCachePrefix keys the Redis price cache used by the public lookup
// endpoint; entries are invalidated here whenever a product changes.
const precoCachePrefix = "preco:"

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.ProdutoResponse, error)
	ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	ProximoCodigo(ctx context.Context) (string, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Codigo:    req.Codigo,
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Preco:     req.Preco.Round(2),
		Categoria: req.Categoria,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uint) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorCodigo(ctx context.Context, codigo string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar produtos: store indisponível, retornando vazio")
		return []dto.ProdutoResponse{}, nil
	}
	resp := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		resp = append(resp, *produtoToResponse(&produtos[i]))
	}
	return resp, nil
}

// Atualizar saves the product and drops its price-cache entry. Existing
// comanda line items keep their captured price; only future lookups see the
// new value.
func (s *produtoService) Atualizar(ctx context.Context, id uint, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.Preco != nil {
		p.Preco = req.Preco.Round(2)
	}
	if req.Categoria != nil {
		p.Categoria = req.Categoria
	}
	if req.Ativo != nil {
		p.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, precoCachePrefix+p.Codigo).Err(); err != nil {
			log.Warn().Err(err).Str("codigo", p.Codigo).Msg("falha ao invalidar cache de preço")
		}
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ProximoCodigo(ctx context.Context) (string, error) {
	return s.repo.ProximoCodigo(ctx)
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:        p.ID,
		Codigo:    p.Codigo,
		Nome:      p.Nome,
		Descricao: p.Descricao,
		Preco:     dto.NewMoney(p.Preco),
		Categoria: p.Categoria,
		Ativo:     p.Ativo,
	}
}
