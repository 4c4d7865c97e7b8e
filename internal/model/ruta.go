package model

import "strings"

// Ruta is one entry of the static admin route table. The same table drives the
// route guard and the navigation menu.
type Ruta struct {
	Path  string
	Label string
	Icon  string
	// Roles allowed to open the page; empty means any authenticated user.
	Roles []Rol
	// EnMenu marks entries shown in the navigation menu.
	EnMenu bool
}

var (
	rolesGestion = []Rol{RolAdministrador, RolSupervisor}
	rolesAdmin   = []Rol{RolAdministrador}
	rolesCaja    = []Rol{RolAdministrador, RolSupervisor, RolCajero}
)

// Rutas is the admin route table in navigation order.
var Rutas = []Ruta{
	{Path: PathAdmin, Label: "Inicio", Icon: "home"},
	{Path: PathDashboard, Label: "Dashboard", Icon: "dashboard", Roles: rolesGestion, EnMenu: true},
	{Path: "/admin/productos", Label: "Productos", Icon: "shoe", Roles: rolesGestion, EnMenu: true},
	{Path: "/admin/categorias", Label: "Categorías", Icon: "tags", Roles: rolesAdmin, EnMenu: true},
	{Path: "/admin/clientes", Label: "Clientes", Icon: "users", Roles: rolesGestion, EnMenu: true},
	{Path: "/admin/proveedores", Label: "Proveedores", Icon: "truck", Roles: rolesAdmin, EnMenu: true},
	{Path: "/admin/sucursales", Label: "Sucursales", Icon: "store", Roles: rolesAdmin, EnMenu: true},
	{Path: "/admin/almacenes", Label: "Almacenes", Icon: "warehouse", Roles: rolesAdmin, EnMenu: true},
	{Path: "/admin/usuarios", Label: "Usuarios", Icon: "user-cog", Roles: rolesGestion, EnMenu: true},
	{Path: "/admin/inventario", Label: "Inventario", Icon: "boxes", Roles: rolesGestion, EnMenu: true},
	{Path: "/admin/metodos-pago", Label: "Métodos de Pago", Icon: "credit-card", Roles: rolesAdmin, EnMenu: true},
	{Path: PathAperturaCajas, Label: "Apertura de Cajas", Icon: "cash-register", Roles: rolesCaja, EnMenu: true},
	{Path: PathPuntoVenta, Label: "Punto de Venta", Icon: "shopping-cart", Roles: rolesCaja, EnMenu: true},
	{Path: "/admin/reportes", Label: "Reportes", Icon: "chart", Roles: rolesGestion, EnMenu: true},
}

// Permite reports whether rol may open the route.
func (r Ruta) Permite(rol Rol) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, x := range r.Roles {
		if x == rol {
			return true
		}
	}
	return false
}

// BuscarRuta returns the table entry governing path: the longest entry that is
// the path itself or one of its parent segments ("/admin/productos/nuevo" is
// governed by "/admin/productos").
func BuscarRuta(path string) (Ruta, bool) {
	var mejor Ruta
	encontrada := false
	for _, r := range Rutas {
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			if !encontrada || len(r.Path) > len(mejor.Path) {
				mejor = r
				encontrada = true
			}
		}
	}
	return mejor, encontrada
}
