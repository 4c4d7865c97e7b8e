package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caja is a cash register as listed by the backend.
// Estado: "abierta" | "cerrada"
type Caja struct {
	ID         ID     `json:"id"`
	Nombre     string `json:"nombre"`
	SucursalID ID     `json:"sucursalId,omitempty"`
	Estado     string `json:"estado,omitempty"`
}

// LineaCarrito is one product in the point-of-sale cart.
type LineaCarrito struct {
	ID             ID              `json:"id"`
	Nombre         string          `json:"name"`
	PrecioUnitario decimal.Decimal `json:"unitPrice"`
	Cantidad       int             `json:"quantity"`
}

// Carrito is the ordered cart of one session.
type Carrito struct {
	Lineas []LineaCarrito `json:"lineas"`
}

// MovimientoCaja is a manual cash-in ("ingreso") or cash-out ("egreso").
type MovimientoCaja struct {
	Tipo      string          `json:"tipo"`
	Monto     decimal.Decimal `json:"monto"`
	Motivo    string          `json:"motivo"`
	CajaID    string          `json:"caja_id"`
	Usuario   ID              `json:"usuario_id"`
	CreatedAt time.Time       `json:"created_at"`
}
