package model

// Sucursal is a physical store of the chain.
type Sucursal struct {
	ID        ID     `json:"id"`
	Nombre    string `json:"nombre" validate:"required,min=2,max=100"`
	Direccion string `json:"direccion,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
}

func (s Sucursal) CamposBusqueda() []string {
	return []string{s.Nombre, s.Direccion}
}

// Almacen is a stock location, usually attached to a branch.
type Almacen struct {
	ID         ID     `json:"id"`
	Nombre     string `json:"nombre" validate:"required,min=2,max=100"`
	Ubicacion  string `json:"ubicacion,omitempty"`
	SucursalID ID     `json:"sucursalId,omitempty"`
}

func (a Almacen) CamposBusqueda() []string {
	return []string{a.Nombre, a.Ubicacion}
}

// MetodoPago is a tender type accepted at the registers.
type MetodoPago struct {
	ID          ID     `json:"id"`
	Nombre      string `json:"nombre" validate:"required,min=2,max=60"`
	Descripcion string `json:"descripcion,omitempty"`
	Activo      *bool  `json:"activo,omitempty"`
}

func (m MetodoPago) CamposBusqueda() []string {
	return []string{m.Nombre, m.Descripcion}
}

// Inventario is the stock of one product size in one warehouse.
type Inventario struct {
	ID          ID     `json:"id"`
	ProductoID  ID     `json:"productoId" validate:"required"`
	Producto    string `json:"producto,omitempty"`
	Talla       string `json:"talla,omitempty"`
	AlmacenID   ID     `json:"almacenId,omitempty"`
	Almacen     string `json:"almacen,omitempty"`
	Stock       int    `json:"stock" validate:"min=0"`
	StockMinimo int    `json:"stockMinimo,omitempty" validate:"min=0"`
}

func (i Inventario) CamposBusqueda() []string {
	return []string{i.Producto, i.Talla, i.Almacen}
}
