package model

// Proveedor supplies products to the chain.
type Proveedor struct {
	ID        ID     `json:"id"`
	Nombre    string `json:"nombre" validate:"required,min=2,max=150"`
	Documento string `json:"ruc,omitempty"`
	Contacto  string `json:"contacto,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion string `json:"direccion,omitempty"`
}

func (p Proveedor) CamposBusqueda() []string {
	return []string{p.Nombre, p.Documento, p.Contacto, p.Email}
}

// Cliente is a registered customer.
type Cliente struct {
	ID        ID     `json:"id"`
	Nombres   string `json:"nombres" validate:"required,min=2,max=100"`
	Apellidos string `json:"apellidos,omitempty"`
	Documento string `json:"documento,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

func (c Cliente) CamposBusqueda() []string {
	return []string{c.Nombres, c.Apellidos, c.Documento, c.Email}
}

// Usuario is a staff account as listed by the backend.
type Usuario struct {
	ID         ID     `json:"id"`
	Nombres    string `json:"nombres" validate:"required,min=2,max=100"`
	Apellidos  string `json:"apellidos,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Tipo       Rol    `json:"tipo" validate:"required,oneof=administrador supervisor cajero vendedor"`
	SucursalID ID     `json:"sucursalId,omitempty"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=6"`
}

func (u Usuario) CamposBusqueda() []string {
	return []string{u.Nombres, u.Apellidos, u.Email, string(u.Tipo)}
}
