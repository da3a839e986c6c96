package handler

import (
	"encoding/json"
	"net/http"

	"restopos/internal/dto"
	"restopos/internal/middleware"
	"restopos/internal/service"
	"restopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// EstoqueHandler exposes product stock, the movement log and the low-stock
// alert view maintained by the alert worker.
type EstoqueHandler struct {
	svc service.EstoqueService
	rdb *redis.Client
}

func NewEstoqueHandler(svc service.EstoqueService, rdb *redis.Client) *EstoqueHandler {
	return &EstoqueHandler{svc: svc, rdb: rdb}
}

func (h *EstoqueHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstoqueHandler) ObterPorProduto(c *gin.Context) {
	produtoID, ok := parseIDParam(c, "produto_id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorProduto(c.Request.Context(), produtoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstoqueHandler) Atualizar(c *gin.Context) {
	var req dto.AtualizarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarEstoque(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimentacao appends a movement, attributed to the logged-in user.
func (h *EstoqueHandler) RegistrarMovimentacao(c *gin.Context) {
	var req dto.RegistrarMovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var usuarioID *uint
	if claims := middleware.GetClaims(c); claims != nil {
		usuarioID = &claims.UserID
	}

	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstoqueHandler) ListarMovimentacoes(c *gin.Context) {
	produtoID, ok := parseIDParam(c, "produto_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimentacoes(c.Request.Context(), produtoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas reads the current low-stock set from Redis. The hash is maintained
// async by the alert worker; an unreachable Redis degrades to an empty list.
func (h *EstoqueHandler) Alertas(c *gin.Context) {
	entries, err := h.rdb.HGetAll(c.Request.Context(), worker.AlertasKey).Result()
	if err != nil {
		c.JSON(http.StatusOK, []dto.AlertaEstoqueResponse{})
		return
	}
	alertas := make([]dto.AlertaEstoqueResponse, 0, len(entries))
	for _, raw := range entries {
		var a dto.AlertaEstoqueResponse
		if json.Unmarshal([]byte(raw), &a) == nil {
			alertas = append(alertas, a)
		}
	}
	c.JSON(http.StatusOK, alertas)
}
