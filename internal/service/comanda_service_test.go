package service

import (
	"context"
	"testing"
	"time"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ComandaRepository stub ─────────────────────────────────────────

type stubComandaRepo struct {
	comandas   map[uint]*model.Comanda
	itens      []model.ItemComanda
	nextID     uint
	nextItemID uint
}

func newStubComandaRepo() *stubComandaRepo {
	return &stubComandaRepo{comandas: make(map[uint]*model.Comanda)}
}

func (r *stubComandaRepo) DB() *gorm.DB { return nil }

func (r *stubComandaRepo) Create(_ context.Context, c *model.Comanda) error {
	r.nextID++
	c.ID = r.nextID
	cloned := *c
	r.comandas[c.ID] = &cloned
	return nil
}

func (r *stubComandaRepo) FindByID(_ context.Context, id uint) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, apierror.NotFound("comanda")
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubComandaRepo) ListAbertas(_ context.Context) ([]model.Comanda, error) {
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.Status == "aberta" {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubComandaRepo) ListItens(_ context.Context, comandaID uint) ([]model.ItemComanda, error) {
	return r.ListItensTx(nil, comandaID)
}

func (r *stubComandaRepo) CreateItemTx(_ *gorm.DB, item *model.ItemComanda) error {
	r.nextItemID++
	item.ID = r.nextItemID
	r.itens = append(r.itens, *item)
	return nil
}

func (r *stubComandaRepo) ListItensTx(_ *gorm.DB, comandaID uint) ([]model.ItemComanda, error) {
	var out []model.ItemComanda
	for _, it := range r.itens {
		if it.ComandaID == comandaID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubComandaRepo) UpdateTotaisTx(_ *gorm.DB, comandaID uint, totalItens int, totalValor decimal.Decimal) error {
	c := r.comandas[comandaID]
	c.TotalItens = totalItens
	c.TotalValor = totalValor
	return nil
}

func (r *stubComandaRepo) FecharTx(_ *gorm.DB, id uint, fechadaEm time.Time) (int64, error) {
	c, ok := r.comandas[id]
	if !ok || c.Status != "aberta" {
		return 0, nil
	}
	c.Status = "fechada"
	c.DataFechamento = &fechadaEm
	return 1, nil
}

var _ repository.ComandaRepository = (*stubComandaRepo)(nil)

// ── In-memory MesaRepository stub ────────────────────────────────────────────

type stubMesaRepo struct {
	mesas  map[uint]*model.Mesa
	nextID uint
}

func newStubMesaRepo() *stubMesaRepo {
	return &stubMesaRepo{mesas: make(map[uint]*model.Mesa)}
}

func (r *stubMesaRepo) Create(_ context.Context, m *model.Mesa) error {
	r.nextID++
	m.ID = r.nextID
	cloned := *m
	r.mesas[m.ID] = &cloned
	return nil
}

func (r *stubMesaRepo) FindByID(_ context.Context, id uint) (*model.Mesa, error) {
	m, ok := r.mesas[id]
	if !ok {
		return nil, apierror.NotFound("mesa")
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubMesaRepo) List(_ context.Context) ([]model.Mesa, error) {
	var out []model.Mesa
	for _, m := range r.mesas {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMesaRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	return r.UpdateStatusTx(nil, id, status)
}

func (r *stubMesaRepo) UpdateStatusTx(_ *gorm.DB, id uint, status string) error {
	m, ok := r.mesas[id]
	if !ok {
		return apierror.NotFound("mesa")
	}
	m.Status = status
	return nil
}

var _ repository.MesaRepository = (*stubMesaRepo)(nil)

// ── In-memory VendaRepository stub ───────────────────────────────────────────

type stubVendaRepo struct {
	vendas []model.Venda
	seq    int64
}

func newStubVendaRepo() *stubVendaRepo { return &stubVendaRepo{} }

func (r *stubVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	v.ID = uint(len(r.vendas) + 1)
	r.vendas = append(r.vendas, *v)
	return nil
}

func (r *stubVendaRepo) NextNumero(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uint) (*model.Venda, error) {
	for i := range r.vendas {
		if r.vendas[i].ID == id {
			return &r.vendas[i], nil
		}
	}
	return nil, apierror.NotFound("venda")
}

func (r *stubVendaRepo) List(_ context.Context, _ dto.VendaFilter) ([]model.Venda, error) {
	return append([]model.Venda{}, r.vendas...), nil
}

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── helpers ──────────────────────────────────────────────────────────────────

func newComandaFixture() (ComandaService, *stubComandaRepo, *stubMesaRepo, *stubVendaRepo) {
	comandaRepo := newStubComandaRepo()
	mesaRepo := newStubMesaRepo()
	vendaRepo := newStubVendaRepo()
	svc := NewComandaService(comandaRepo, mesaRepo, vendaRepo)
	return svc, comandaRepo, mesaRepo, vendaRepo
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCriarComandaExigeNumero(t *testing.T) {
	svc, _, _, _ := newComandaFixture()

	_, err := svc.Criar(context.Background(), dto.CriarComandaRequest{Numero: ""})
	assert.True(t, apierror.IsValidation(err))
}

func TestCriarComandaComecaZerada(t *testing.T) {
	svc, _, _, _ := newComandaFixture()

	resp, err := svc.Criar(context.Background(), dto.CriarComandaRequest{Numero: "C-01"})
	require.NoError(t, err)
	assert.Equal(t, "aberta", resp.Status)
	assert.Equal(t, 0, resp.TotalItens)
	assert.True(t, resp.TotalValor.IsZero())
	assert.Nil(t, resp.DataFechamento)
}

func TestAdicionarItemRecalculaTotais(t *testing.T) {
	svc, _, _, _ := newComandaFixture()
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-02"})
	require.NoError(t, err)

	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 2, PrecoUnitario: "25.00",
	}))
	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 2, Quantidade: 1, PrecoUnitario: "3.50",
	}))

	atual, err := svc.ObterPorID(ctx, c.ID)
	require.NoError(t, err)
	// total_itens counts lines, not quantities
	assert.Equal(t, 2, atual.TotalItens)
	assert.Equal(t, "53.50", atual.TotalValor.StringFixed(2))
}

func TestAdicionarItemArredondaSubtotal(t *testing.T) {
	svc, _, _, _ := newComandaFixture()
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-03"})
	require.NoError(t, err)

	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 3, PrecoUnitario: "3.333",
	}))

	itens, err := svc.ListarItens(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.Equal(t, "10.00", itens[0].Subtotal.StringFixed(2))
}

func TestAdicionarItemPrecoInvalido(t *testing.T) {
	svc, _, _, _ := newComandaFixture()
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-04"})
	require.NoError(t, err)

	err = svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 1, PrecoUnitario: "abc",
	})
	assert.True(t, apierror.IsValidation(err))
}

func TestAdicionarItemComandaInexistente(t *testing.T) {
	svc, _, _, _ := newComandaFixture()

	err := svc.AdicionarItem(context.Background(), 999, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 1, PrecoUnitario: "10.00",
	})
	assert.True(t, apierror.IsNotFound(err))
}

func TestFecharGeraVendaComNumeroSequencial(t *testing.T) {
	svc, comandaRepo, mesaRepo, vendaRepo := newComandaFixture()
	ctx := context.Background()

	mesa := &model.Mesa{Numero: 7, Capacidade: 4, Status: "ocupada"}
	require.NoError(t, mesaRepo.Create(ctx, mesa))

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-05", MesaID: &mesa.ID})
	require.NoError(t, err)
	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 2, PrecoUnitario: "25.00",
	}))

	resp, err := svc.Fechar(ctx, c.ID, "pix")
	require.NoError(t, err)
	assert.Equal(t, "V-000001", resp.NumeroVenda)
	assert.Equal(t, "NF-000001", resp.NumeroNota)

	// venda totals mirror the line items at close time
	require.Len(t, vendaRepo.vendas, 1)
	venda := vendaRepo.vendas[0]
	assert.Equal(t, 1, venda.TotalItens)
	assert.Equal(t, "50.00", venda.TotalVenda.StringFixed(2))
	assert.Equal(t, "pix", venda.FormaPagamento)
	assert.Equal(t, "paga", venda.Status)

	// comanda is closed, mesa released
	assert.Equal(t, "fechada", comandaRepo.comandas[c.ID].Status)
	assert.NotNil(t, comandaRepo.comandas[c.ID].DataFechamento)
	assert.Equal(t, "disponivel", mesaRepo.mesas[mesa.ID].Status)
}

func TestSubtotalImuneAMudancaDePrecoDoProduto(t *testing.T) {
	svc, _, _, _ := newComandaFixture()
	produtoRepo := newStubProdutoRepo()
	produtoSvc := NewProdutoService(produtoRepo, nil)
	ctx := context.Background()

	produto, err := produtoSvc.Criar(ctx, dto.CriarProdutoRequest{
		Codigo: "2000", Nome: "X-Burger", Preco: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-09"})
	require.NoError(t, err)
	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: produto.ID, Quantidade: 2, PrecoUnitario: "10.00",
	}))

	novoPreco := decimal.RequireFromString("20.00")
	_, err = produtoSvc.Atualizar(ctx, produto.ID, dto.AtualizarProdutoRequest{Preco: &novoPreco})
	require.NoError(t, err)

	// the line keeps the price captured at insert time
	itens, err := svc.ListarItens(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, itens, 1)
	assert.Equal(t, "10.00", itens[0].PrecoUnitario.StringFixed(2))
	assert.Equal(t, "20.00", itens[0].Subtotal.StringFixed(2))

	atual, err := svc.ObterPorID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", atual.TotalValor.StringFixed(2))
}

func TestFecharDerivaTotaisDosItens(t *testing.T) {
	svc, comandaRepo, _, vendaRepo := newComandaFixture()
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-10"})
	require.NoError(t, err)
	require.NoError(t, svc.AdicionarItem(ctx, c.ID, dto.AdicionarItemRequest{
		ProdutoID: 1, Quantidade: 2, PrecoUnitario: "25.00",
	}))

	// line committed by a concurrent writer whose recompute the close never saw
	require.NoError(t, comandaRepo.CreateItemTx(nil, &model.ItemComanda{
		ComandaID:     c.ID,
		ProdutoID:     2,
		Quantidade:    1,
		PrecoUnitario: decimal.RequireFromString("3.50"),
		Subtotal:      decimal.RequireFromString("3.50"),
		Status:        "pendente",
	}))

	_, err = svc.Fechar(ctx, c.ID, "pix")
	require.NoError(t, err)

	require.Len(t, vendaRepo.vendas, 1)
	assert.Equal(t, 2, vendaRepo.vendas[0].TotalItens)
	assert.Equal(t, "53.50", vendaRepo.vendas[0].TotalVenda.StringFixed(2))
}

func TestFecharDuasVezesNaoGeraSegundaVenda(t *testing.T) {
	svc, _, _, vendaRepo := newComandaFixture()
	ctx := context.Background()

	c, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-06"})
	require.NoError(t, err)

	_, err = svc.Fechar(ctx, c.ID, "dinheiro")
	require.NoError(t, err)

	_, err = svc.Fechar(ctx, c.ID, "dinheiro")
	assert.True(t, apierror.IsConstraint(err))
	assert.Len(t, vendaRepo.vendas, 1)
}

func TestListarAbertasIgnoraFechadas(t *testing.T) {
	svc, _, _, _ := newComandaFixture()
	ctx := context.Background()

	aberta, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-07"})
	require.NoError(t, err)
	fechada, err := svc.Criar(ctx, dto.CriarComandaRequest{Numero: "C-08"})
	require.NoError(t, err)
	_, err = svc.Fechar(ctx, fechada.ID, "pix")
	require.NoError(t, err)

	abertas, err := svc.ListarAbertas(ctx)
	require.NoError(t, err)
	require.Len(t, abertas, 1)
	assert.Equal(t, aberta.ID, abertas[0].ID)
}
