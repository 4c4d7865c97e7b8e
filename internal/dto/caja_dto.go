package dto

import (
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"montoInicial" validate:"min=0"`
}

type CerrarCajaRequest struct {
	MontoFinal    decimal.Decimal `json:"montoFinal"    validate:"min=0"`
	Observaciones string          `json:"observaciones" validate:"max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AperturaCajasResponse struct {
	Cajas        []model.Caja `json:"cajas"`
	CajaActiva   string       `json:"cajaActiva,omitempty"`
	SesionCajaID string       `json:"sesionCajaId,omitempty"`
	Error        string       `json:"error,omitempty"`
}

type CajaAbiertaResponse struct {
	CajaActiva   string `json:"cajaActiva"`
	SesionCajaID string `json:"sesionCajaId,omitempty"`
}

// BackendAperturaResponse is the relevant part of POST /api/cajas/:id/abrir.
type BackendAperturaResponse struct {
	SesionCajaID model.ID `json:"sesionCajaId"`
	SesionID     model.ID `json:"sesionId"`
}
