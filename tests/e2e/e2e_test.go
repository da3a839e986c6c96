//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restopos/internal/config"
	"restopos/internal/infra"
	"restopos/internal/model"
	"restopos/internal/router"
	"restopos/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("restopos_test"),
		tcPostgres.WithUsername("restopos"),
		tcPostgres.WithPassword("restopos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-e2e"), 12)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin.e2e",
		Nome:         "Admin E2E",
		PasswordHash: string(hash),
		Rol:          "admin",
		Ativo:        true,
	}).Error)

	// Worker pool consumes the alert queue during the test run
	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(workerCtx, rdb, &worker.WorkerHandlers{
		AlertaEstoque: worker.NewAlertaEstoqueWorker(rdb),
	}, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin.e2e", "password": "senha-e2e"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func criarProduto(t *testing.T, env *testEnv, codigo, nome, preco string) uint {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{"codigo": codigo, "nome": nome, "preco": preco}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full comanda cycle: open → add items → totals → close → venda listed.
func TestE2E_CicloComanda(t *testing.T) {
	env := setupTestEnv(t)

	produtoID := criarProduto(t, env, "2000", "X-Burger", "25.00")

	resp := do(t, env.server, "POST", "/v1/comandas",
		jsonBody(t, map[string]any{"numero": "C-100"}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comanda struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &comanda)

	itemResp := do(t, env.server, "POST", fmt.Sprintf("/v1/comandas/%d/itens", comanda.ID),
		jsonBody(t, map[string]any{
			"produto_id": produtoID, "quantidade": 2, "preco_unitario": "25.00",
		}), env.token)
	require.Equal(t, http.StatusCreated, itemResp.StatusCode)

	getResp := do(t, env.server, "GET", fmt.Sprintf("/v1/comandas/%d", comanda.ID), nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var atual struct {
		TotalItens int    `json:"total_itens"`
		TotalValor string `json:"total_valor"`
		Status     string `json:"status"`
	}
	decodeJSON(t, getResp, &atual)
	assert.Equal(t, 1, atual.TotalItens)
	assert.Equal(t, "50.00", atual.TotalValor)
	assert.Equal(t, "aberta", atual.Status)

	fecharResp := do(t, env.server, "POST", fmt.Sprintf("/v1/comandas/%d/fechar", comanda.ID),
		jsonBody(t, map[string]any{"forma_pagamento": "pix"}), env.token)
	require.Equal(t, http.StatusOK, fecharResp.StatusCode)
	var fechamento struct {
		NumeroVenda string `json:"numero_venda"`
		NumeroNota  string `json:"numero_nota"`
	}
	decodeJSON(t, fecharResp, &fechamento)
	assert.Equal(t, "V-000001", fechamento.NumeroVenda)
	assert.Equal(t, "NF-000001", fechamento.NumeroNota)

	// repeated close must answer 409 and never mint a second venda
	fechar2 := do(t, env.server, "POST", fmt.Sprintf("/v1/comandas/%d/fechar", comanda.ID),
		jsonBody(t, map[string]any{"forma_pagamento": "pix"}), env.token)
	assert.Equal(t, http.StatusConflict, fechar2.StatusCode)
	fechar2.Body.Close()

	relResp := do(t, env.server, "GET", "/v1/vendas/relatorio", nil, env.token)
	require.Equal(t, http.StatusOK, relResp.StatusCode)
	var rel struct {
		TotalVendas int    `json:"total_vendas"`
		TotalValor  string `json:"total_valor"`
	}
	decodeJSON(t, relResp, &rel)
	assert.Equal(t, 1, rel.TotalVendas)
	assert.Equal(t, "50.00", rel.TotalValor)
}

// Stock movements feed the async low-stock alert set in Redis.
func TestE2E_MovimentacaoEstoqueEAlerta(t *testing.T) {
	env := setupTestEnv(t)

	produtoID := criarProduto(t, env, "2001", "Suco Natural", "8.00")

	entrada := do(t, env.server, "POST", "/v1/estoque/movimentacoes",
		jsonBody(t, map[string]any{"produto_id": produtoID, "tipo": "entrada", "quantidade": 20}), env.token)
	require.Equal(t, http.StatusCreated, entrada.StatusCode)
	entrada.Body.Close()

	saida := do(t, env.server, "POST", "/v1/estoque/movimentacoes",
		jsonBody(t, map[string]any{"produto_id": produtoID, "tipo": "saida", "quantidade": 14}), env.token)
	require.Equal(t, http.StatusCreated, saida.StatusCode)
	saida.Body.Close()

	getResp := do(t, env.server, "GET", fmt.Sprintf("/v1/estoque/produto/%d", produtoID), nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var estoque struct {
		Quantidade int `json:"quantidade"`
	}
	decodeJSON(t, getResp, &estoque)
	assert.Equal(t, 6, estoque.Quantidade)

	// 6 ≤ minimum (10): the worker must surface the product in the alert list
	require.Eventually(t, func() bool {
		resp := do(t, env.server, "GET", "/v1/estoque/alertas", nil, env.token)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var alertas []struct {
			ProdutoID uint `json:"produto_id"`
		}
		if json.NewDecoder(resp.Body).Decode(&alertas) != nil {
			return false
		}
		for _, a := range alertas {
			if a.ProdutoID == produtoID {
				return true
			}
		}
		return false
	}, 10*time.Second, 200*time.Millisecond)
}

// Recipe cost rollup over real rows.
func TestE2E_CustoFichaTecnica(t *testing.T) {
	env := setupTestEnv(t)

	produtoID := criarProduto(t, env, "2002", "Pizza Margherita", "45.00")

	insumoResp := do(t, env.server, "POST", "/v1/insumos",
		jsonBody(t, map[string]any{
			"codigo": "1000", "nome": "FARINHA DE TRIGO", "unidade": "kg", "preco_unitario": "4.50",
		}), env.token)
	require.Equal(t, http.StatusCreated, insumoResp.StatusCode)
	var insumo struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, insumoResp, &insumo)

	fichaResp := do(t, env.server, "POST", "/v1/ficha-tecnica",
		jsonBody(t, map[string]any{
			"produto_id": produtoID, "insumo_id": insumo.ID, "quantidade": "0.5",
		}), env.token)
	require.Equal(t, http.StatusCreated, fichaResp.StatusCode)
	fichaResp.Body.Close()

	custoResp := do(t, env.server, "GET", fmt.Sprintf("/v1/ficha-tecnica/produto/%d/custo", produtoID), nil, env.token)
	require.Equal(t, http.StatusOK, custoResp.StatusCode)
	var custo struct {
		Custo string `json:"custo"`
	}
	decodeJSON(t, custoResp, &custo)
	assert.Equal(t, "2.25", custo.Custo)
}

// Public price lookup requires no auth and is served from cache when warm.
func TestE2E_ConsultaPrecoPublica(t *testing.T) {
	env := setupTestEnv(t)

	criarProduto(t, env, "2003", "Agua Mineral", "5.00")

	for i := 0; i < 2; i++ { // second hit comes from the Redis cache
		resp := do(t, env.server, "GET", "/v1/preco/2003", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var preco struct {
			Nome  string `json:"nome"`
			Preco string `json:"preco"`
		}
		decodeJSON(t, resp, &preco)
		assert.Equal(t, "Agua Mineral", preco.Nome)
		assert.Equal(t, "5.00", preco.Preco)
	}
}

// Mutations demand a valid token; catalog reads behind /v1 do too.
func TestE2E_RotasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/produtos",
		jsonBody(t, map[string]any{"codigo": "2004", "nome": "Sem Token", "preco": "1.00"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
