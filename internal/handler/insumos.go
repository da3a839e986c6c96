package handler

import (
	"net/http"

	"restopos/internal/dto"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

// InsumosHandler exposes the ingredient catalog and its per-insumo stock.
type InsumosHandler struct {
	svc service.InsumoService
}

func NewInsumosHandler(svc service.InsumoService) *InsumosHandler {
	return &InsumosHandler{svc: svc}
}

func (h *InsumosHandler) Criar(c *gin.Context) {
	var req dto.CriarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InsumosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) ObterPorID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) ObterPorCodigo(c *gin.Context) {
	resp, err := h.svc.ObterPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProximoCodigo returns the next sequential insumo code ("1000", "1001", …).
func (h *InsumosHandler) ProximoCodigo(c *gin.Context) {
	codigo, err := h.svc.ProximoCodigo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProximoCodigoResponse{Codigo: codigo})
}

func (h *InsumosHandler) ObterEstoque(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterEstoque(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InsumosHandler) AtualizarEstoque(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarEstoqueInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AtualizarEstoque(c.Request.Context(), id, req.Quantidade); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
