package dto

import "github.com/HanielHB/multienda-multicaja-sub000/internal/model"

type ReporteResponse struct {
	Tipo       model.TipoReporte `json:"tipo"`
	Inicio     string            `json:"inicio"`
	Fin        string            `json:"fin"`
	SucursalID string            `json:"sucursalId,omitempty"`
	Columnas   []string          `json:"columnas"`
	Filas      []model.Fila      `json:"filas"`
	Error      string            `json:"error,omitempty"`
}

type EnvioReporteRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Formato string `json:"formato" validate:"required,oneof=csv pdf"`
}

type EnvioReporteResponse struct {
	Archivo string `json:"archivo"`
	Email   string `json:"email"`
	Estado  string `json:"estado"`
}
