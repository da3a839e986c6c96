package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precoCacheTTL = 4 * time.Hour

// ConsultaPrecosHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever.
type ConsultaPrecosHandler struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewConsultaPrecosHandler(repo repository.ProdutoRepository, rdb *redis.Client) *ConsultaPrecosHandler {
	return &ConsultaPrecosHandler{repo: repo, rdb: rdb}
}

// GetPrecoPorCodigo looks up a product's current price by its catalog code,
// serving from the Redis cache when warm.
func (h *ConsultaPrecosHandler) GetPrecoPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "preco:" + codigo

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	produto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("produto não encontrado"))
		return
	}

	resp := dto.ConsultaPrecoResponse{
		Codigo:    produto.Codigo,
		Nome:      produto.Nome,
		Preco:     dto.NewMoney(produto.Preco),
		Categoria: produto.Categoria,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
