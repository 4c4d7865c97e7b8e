package dto

import "github.com/HanielHB/multienda-multicaja-sub000/internal/model"

type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// LayoutResponse is the persistent shell around every admin page.
type LayoutResponse struct {
	Usuario    *model.UsuarioSesion `json:"user"`
	Navegacion []NavItem            `json:"navegacion"`
	CajaActiva string               `json:"cajaActiva,omitempty"`
}

// LogoutPrompt is the confirmation dialog shown before logging out.
type LogoutPrompt struct {
	CajaAbierta bool   `json:"cajaAbierta"`
	Titulo      string `json:"titulo"`
	Mensaje     string `json:"mensaje"`
	Confirmar   string `json:"confirmar"`
}

// DashboardResponse wraps the pre-aggregated summary of the dashboard page.
type DashboardResponse struct {
	Resumen map[string]any `json:"resumen"`
	Error   string         `json:"error,omitempty"`
}
