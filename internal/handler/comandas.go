package handler

import (
	"net/http"

	"restopos/internal/dto"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

// ComandasHandler exposes the comanda lifecycle endpoints.
type ComandasHandler struct {
	svc service.ComandaService
}

func NewComandasHandler(svc service.ComandaService) *ComandasHandler {
	return &ComandasHandler{svc: svc}
}

func (h *ComandasHandler) Criar(c *gin.Context) {
	var req dto.CriarComandaRequest
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

// ListarAbertas lists only open comandas — the floor view.
func (h *ComandasHandler) ListarAbertas(c *gin.Context) {
	resp, err := h.svc.ListarAbertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComandasHandler) ObterPorID(c *gin.Context) {
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

func (h *ComandasHandler) AdicionarItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AdicionarItem(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *ComandasHandler) ListarItens(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarItens(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Fechar closes the comanda and returns the generated venda identifiers.
// A repeated close answers 409, never a second venda.
func (h *ComandasHandler) Fechar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.FecharComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), id, req.FormaPagamento)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
