package dto

import (
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AgregarItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,max=64,excludesall=/?#%"`
}

type CobroRequest struct {
	MontoRecibido decimal.Decimal `json:"monto_recibido" validate:"min=0"`
}

type MovimientoRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=ingreso egreso"`
	Monto  decimal.Decimal `json:"monto"  validate:"gt=0"`
	Motivo string          `json:"motivo" validate:"required,min=3,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaCarritoResponse struct {
	ID             model.ID `json:"id"`
	Nombre         string   `json:"name"`
	PrecioUnitario string   `json:"unitPrice"`
	Cantidad       int      `json:"quantity"`
	Subtotal       string   `json:"subtotal"`
}

type CarritoResponse struct {
	Lineas     []LineaCarritoResponse `json:"lineas"`
	Total      string                 `json:"total"`
	CajaActiva string                 `json:"cajaActiva,omitempty"`
}

// CobroResponse is the payment overlay state for a tendered amount.
type CobroResponse struct {
	Total       string `json:"total"`
	Recibido    string `json:"recibido"`
	Cambio      string `json:"cambio"`
	Restante    string `json:"restante"`
	PuedeCobrar bool   `json:"puedeCobrar"`
}

type VentaResponse struct {
	Total    string                 `json:"total"`
	Recibido string                 `json:"recibido"`
	Cambio   string                 `json:"cambio"`
	Lineas   []LineaCarritoResponse `json:"lineas"`
	Fecha    string                 `json:"fecha"`
}

type MovimientoResponse struct {
	Tipo   string `json:"tipo"`
	Monto  string `json:"monto"`
	Motivo string `json:"motivo"`
	CajaID string `json:"caja_id"`
}
