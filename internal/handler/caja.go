package handler

import (
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Listar GET /admin/apertura-cajas
func (h *CajaHandler) Listar(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Listar(c.Request.Context(), middleware.GetSesion(c)))
}

// Abrir godoc
// @Summary Abre una caja y la marca como activa en la sesion
// @Tags caja
// @Accept json
// @Produce json
// @Param id path string true "Caja"
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.CajaAbiertaResponse
// @Failure 409 {object} apierror.APIError
// @Router /admin/apertura-cajas/{id}/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), model.ID(c.Param("id")), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja activa de la sesion
// @Tags caja
// @Accept json
// @Param body body dto.CerrarCajaRequest true "Datos de cierre"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /admin/apertura-cajas/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cerrar(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
