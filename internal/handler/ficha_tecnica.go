package handler

import (
	"net/http"

	"restopos/internal/dto"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

// FichaTecnicaHandler manages recipe lines and the derived cost endpoint.
type FichaTecnicaHandler struct {
	svc service.FichaTecnicaService
}

func NewFichaTecnicaHandler(svc service.FichaTecnicaService) *FichaTecnicaHandler {
	return &FichaTecnicaHandler{svc: svc}
}

func (h *FichaTecnicaHandler) Criar(c *gin.Context) {
	var req dto.CriarFichaTecnicaRequest
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

func (h *FichaTecnicaHandler) ListarPorProduto(c *gin.Context) {
	produtoID, ok := parseIDParam(c, "produto_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorProduto(c.Request.Context(), produtoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FichaTecnicaHandler) Deletar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deletar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Custo returns the current recipe cost at two decimal places.
func (h *FichaTecnicaHandler) Custo(c *gin.Context) {
	produtoID, ok := parseIDParam(c, "produto_id")
	if !ok {
		return
	}
	resp, err := h.svc.CalcularCusto(c.Request.Context(), produtoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
