package model

// Rol is the user type cached in the session ("tipo" in the backend user record).
type Rol string

const (
	RolAdministrador Rol = "administrador"
	RolSupervisor    Rol = "supervisor"
	RolCajero        Rol = "cajero"
	RolVendedor      Rol = "vendedor"
)

// Roles lists every known role in display order.
var Roles = []Rol{RolAdministrador, RolSupervisor, RolCajero, RolVendedor}

// Public and shell paths.
const (
	PathLogin         = "/"
	PathLoginAlias    = "/login"
	PathAdmin         = "/admin"
	PathDashboard     = "/admin/dashboard"
	PathAperturaCajas = "/admin/apertura-cajas"
	PathPuntoVenta    = "/admin/punto-venta"
)

// aterrizaje maps each role to the page it falls back to when it reaches a route
// it may not see. Every target must be reachable by its own role.
var aterrizaje = map[Rol]string{
	RolAdministrador: PathDashboard,
	RolSupervisor:    PathDashboard,
	RolCajero:        PathAperturaCajas,
	RolVendedor:      PathAdmin,
}

// DefaultLanding returns the fallback page for rol. Unknown roles land on the
// shell, which only requires a session.
func DefaultLanding(rol Rol) string {
	if p, ok := aterrizaje[rol]; ok {
		return p
	}
	return PathAdmin
}

// Valid reports whether r is one of the known roles.
func (r Rol) Valid() bool {
	_, ok := aterrizaje[r]
	return ok
}
