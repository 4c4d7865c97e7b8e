package model

// UsuarioSesion is the identity cached at login.
type UsuarioSesion struct {
	ID      ID     `json:"id"`
	Nombres string `json:"nombres"`
	Tipo    Rol    `json:"tipo"`
}

// Sesion is the server-side session record. Each field maps to one of the keys
// the admin UI keeps per browser: token, user, cajaActiva, sesionCajaId.
type Sesion struct {
	Token        string
	Usuario      *UsuarioSesion
	CajaActiva   string
	SesionCajaID string
}

// Normalize drops the cached user when no token is present: without a token the
// user record is never trusted.
func (s Sesion) Normalize() Sesion {
	if s.Token == "" {
		s.Usuario = nil
	}
	return s
}

// Autenticada reports whether the record carries a token.
func (s Sesion) Autenticada() bool { return s.Token != "" }

// Rol returns the cached role, or "" when there is no user.
func (s Sesion) Rol() Rol {
	if s.Usuario == nil {
		return ""
	}
	return s.Usuario.Tipo
}

// CajaAbierta reports whether the record marks an open cash register.
func (s Sesion) CajaAbierta() bool { return s.CajaActiva != "" }
