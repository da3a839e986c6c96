package service

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory InsumoRepository stub ──────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uint]*model.Insumo
	estoque map[uint]*model.EstoqueInsumo
	nextID  uint
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{
		insumos: make(map[uint]*model.Insumo),
		estoque: make(map[uint]*model.EstoqueInsumo),
	}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	r.nextID++
	i.ID = r.nextID
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uint) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, apierror.NotFound("insumo")
	}
	cloned := *i
	return &cloned, nil
}

func (r *stubInsumoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if i.Codigo == codigo {
			cloned := *i
			return &cloned, nil
		}
	}
	return nil, apierror.NotFound("insumo")
}

func (r *stubInsumoRepo) List(_ context.Context) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if i.Ativo {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Codigo < out[b].Codigo })
	return out, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) ProximoCodigo(_ context.Context) (string, error) {
	max := 0
	for _, i := range r.insumos {
		if n, err := strconv.Atoi(i.Codigo); err == nil && n > max {
			max = n
		}
	}
	if max == 0 {
		return "1000", nil
	}
	return strconv.Itoa(max + 1), nil
}

func (r *stubInsumoRepo) FindEstoque(_ context.Context, insumoID uint) (*model.EstoqueInsumo, error) {
	e, ok := r.estoque[insumoID]
	if !ok {
		return nil, apierror.NotFound("estoque de insumo")
	}
	cloned := *e
	return &cloned, nil
}

func (r *stubInsumoRepo) UpsertEstoque(_ context.Context, insumoID uint, quantidade decimal.Decimal) error {
	if e, ok := r.estoque[insumoID]; ok {
		e.Quantidade = quantidade
		return nil
	}
	r.estoque[insumoID] = &model.EstoqueInsumo{InsumoID: insumoID, Quantidade: quantidade}
	return nil
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── tests ────────────────────────────────────────────────────────────────────

func TestCriarInsumoRejeitaNomeMinusculo(t *testing.T) {
	svc := NewInsumoService(newStubInsumoRepo())

	_, err := svc.Criar(context.Background(), dto.CriarInsumoRequest{
		Codigo:        "1000",
		Nome:          "Farinha de Trigo",
		Unidade:       "kg",
		PrecoUnitario: decimal.RequireFromString("4.50"),
	})
	assert.True(t, apierror.IsValidation(err))
}

func TestCriarInsumoAceitaNomeMaiusculo(t *testing.T) {
	svc := NewInsumoService(newStubInsumoRepo())

	resp, err := svc.Criar(context.Background(), dto.CriarInsumoRequest{
		Codigo:        "1000",
		Nome:          "FARINHA DE TRIGO",
		Unidade:       "kg",
		PrecoUnitario: decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "FARINHA DE TRIGO", resp.Nome)
	assert.True(t, resp.Ativo)
}

func TestProximoCodigoInsumo(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo)
	ctx := context.Background()

	codigo, err := svc.ProximoCodigo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000", codigo)

	_, err = svc.Criar(ctx, dto.CriarInsumoRequest{
		Codigo:        codigo,
		Nome:          "SAL GROSSO",
		Unidade:       "kg",
		PrecoUnitario: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	codigo, err = svc.ProximoCodigo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1001", codigo)
}

func TestAtualizarInsumoRejeitaNomeMinusculo(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo)
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarInsumoRequest{
		Codigo:        "1000",
		Nome:          "ACUCAR",
		Unidade:       "kg",
		PrecoUnitario: decimal.RequireFromString("3.00"),
	})
	require.NoError(t, err)

	nome := "acucar refinado"
	_, err = svc.Atualizar(ctx, criado.ID, dto.AtualizarInsumoRequest{Nome: &nome})
	assert.True(t, apierror.IsValidation(err))
}

func TestAtualizarEstoqueInsumoInexistente(t *testing.T) {
	svc := NewInsumoService(newStubInsumoRepo())

	err := svc.AtualizarEstoque(context.Background(), 42, decimal.RequireFromString("5.5"))
	assert.True(t, apierror.IsNotFound(err))
}

func TestAtualizarEstoqueInsumoCriaRegistro(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo)
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarInsumoRequest{
		Codigo:        "1000",
		Nome:          "LEITE INTEGRAL",
		Unidade:       "l",
		PrecoUnitario: decimal.RequireFromString("5.80"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.AtualizarEstoque(ctx, criado.ID, decimal.RequireFromString("12.5")))

	estoque, err := svc.ObterEstoque(ctx, criado.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.5", estoque.Quantidade.String())
}
