package service

import (
	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
)

// Decision is the outcome of the route guard for one navigation.
type Decision struct {
	Permitido   bool
	Redireccion string
}

// Decidir evaluates a navigation against the session record:
//   - no token: back to the login page
//   - allow-list given and role not in it: the role's default landing page
//   - otherwise the page renders
//
// An empty allow-list admits any authenticated user.
func Decidir(s model.Sesion, permitidos []model.Rol) Decision {
	s = s.Normalize()
	if !s.Autenticada() {
		return Decision{Redireccion: model.PathLogin}
	}
	if len(permitidos) == 0 {
		return Decision{Permitido: true}
	}
	rol := s.Rol()
	for _, r := range permitidos {
		if r == rol {
			return Decision{Permitido: true}
		}
	}
	return Decision{Redireccion: model.DefaultLanding(rol)}
}

// Navegacion returns the menu entries rol may open, in table order.
func Navegacion(rol model.Rol) []dto.NavItem {
	items := make([]dto.NavItem, 0, len(model.Rutas))
	for _, r := range model.Rutas {
		if !r.EnMenu || !r.Permite(rol) {
			continue
		}
		items = append(items, dto.NavItem{Path: r.Path, Label: r.Label, Icon: r.Icon})
	}
	return items
}

// Layout builds the admin shell for a session.
func Layout(s model.Sesion) dto.LayoutResponse {
	s = s.Normalize()
	return dto.LayoutResponse{
		Usuario:    s.Usuario,
		Navegacion: Navegacion(s.Rol()),
		CajaActiva: s.CajaActiva,
	}
}

// LogoutPrompt returns the confirmation copy; it warns when a register is
// still marked open in the session.
func LogoutPrompt(s model.Sesion) dto.LogoutPrompt {
	if s.CajaAbierta() {
		return dto.LogoutPrompt{
			CajaAbierta: true,
			Titulo:      "Caja abierta",
			Mensaje:     "Tiene una caja abierta. Si cierra sesión la caja seguirá abierta hasta que alguien la cierre. ¿Desea salir de todas formas?",
			Confirmar:   "Salir",
		}
	}
	return dto.LogoutPrompt{
		Titulo:    "Cerrar sesión",
		Mensaje:   "¿Está seguro de que desea cerrar sesión?",
		Confirmar: "Cerrar sesión",
	}
}
