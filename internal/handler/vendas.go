package handler

import (
	"net/http"

	"restopos/internal/apierror"
	"restopos/internal/dto"
	"restopos/internal/service"

	"github.com/gin-gonic/gin"
)

type VendasHandler struct {
	svc service.VendaService
}

func NewVendasHandler(svc service.VendaService) *VendasHandler {
	return &VendasHandler{svc: svc}
}

func (h *VendasHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio aggregates sales over the filtered period.
func (h *VendasHandler) Relatorio(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros inválidos"))
		return
	}
	resp, err := h.svc.Relatorio(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
