package dto

import "github.com/HanielHB/multienda-multicaja-sub000/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LoginView is the public login page.
type LoginView struct {
	Titulo string `json:"titulo"`
	// Destino is set when the browser already holds a session.
	Destino string `json:"destino,omitempty"`
}

type LoginResponse struct {
	Usuario model.UsuarioSesion `json:"user"`
	Destino string              `json:"destino"`
}

// BackendLoginResponse is what POST /api/auth/login returns (after envelope
// normalization). Some deployments name the user "usuario".
type BackendLoginResponse struct {
	Token   string               `json:"token"`
	User    *model.UsuarioSesion `json:"user"`
	Usuario *model.UsuarioSesion `json:"usuario"`
}
