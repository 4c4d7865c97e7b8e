package handler

import (
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type POSHandler struct{ svc service.POSService }

func NewPOSHandler(svc service.POSService) *POSHandler { return &POSHandler{svc: svc} }

// Carrito GET /admin/punto-venta
func (h *POSHandler) Carrito(c *gin.Context) {
	resp, err := h.svc.Carrito(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar godoc
// @Summary Agrega una unidad del producto al carrito
// @Tags pos
// @Accept json
// @Produce json
// @Param body body dto.AgregarItemRequest true "Producto"
// @Success 200 {object} dto.CarritoResponse
// @Router /admin/punto-venta/carrito [post]
func (h *POSHandler) Agregar(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), model.ID(req.ProductoID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Incrementar POST /admin/punto-venta/carrito/:id/incrementar
func (h *POSHandler) Incrementar(c *gin.Context) { h.cambiar(c, +1) }

// Decrementar POST /admin/punto-venta/carrito/:id/decrementar
func (h *POSHandler) Decrementar(c *gin.Context) { h.cambiar(c, -1) }

func (h *POSHandler) cambiar(c *gin.Context, delta int) {
	resp, err := h.svc.CambiarCantidad(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), model.ID(c.Param("id")), delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Quitar DELETE /admin/punto-venta/carrito/:id
func (h *POSHandler) Quitar(c *gin.Context) {
	resp, err := h.svc.Quitar(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), model.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Vaciar DELETE /admin/punto-venta/carrito
func (h *POSHandler) Vaciar(c *gin.Context) {
	if err := h.svc.Vaciar(c.Request.Context(), middleware.GetSesionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cotizar POST /admin/punto-venta/cotizacion
// Live state of the payment overlay while the cashier types the amount.
func (h *POSHandler) Cotizar(c *gin.Context) {
	var req dto.CobroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cotizar(c.Request.Context(), middleware.GetSesionID(c), req.MontoRecibido)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cobrar godoc
// @Summary Cobra el carrito con el monto recibido
// @Tags pos
// @Accept json
// @Produce json
// @Param body body dto.CobroRequest true "Monto recibido"
// @Success 201 {object} dto.VentaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /admin/punto-venta/cobro [post]
func (h *POSHandler) Cobrar(c *gin.Context) {
	var req dto.CobroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cobrar(c.Request.Context(), middleware.GetSesionID(c), middleware.GetSesion(c), req.MontoRecibido)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Movimiento POST /admin/punto-venta/movimientos
func (h *POSHandler) Movimiento(c *gin.Context) {
	var req dto.MovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), middleware.GetSesion(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
