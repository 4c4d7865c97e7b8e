package model

import "github.com/shopspring/decimal"

// Producto is a shoe model sold in one or more sizes.
type Producto struct {
	ID          ID              `json:"id"`
	Nombre      string          `json:"nombre" validate:"required,min=2,max=150"`
	Marca       string          `json:"marca,omitempty"`
	Modelo      string          `json:"modelo,omitempty"`
	Color       string          `json:"color,omitempty"`
	Precio      decimal.Decimal `json:"precio" validate:"gt=0"`
	CategoriaID ID              `json:"categoriaId,omitempty"`
	ProveedorID ID              `json:"proveedorId,omitempty"`
	Imagen      *string         `json:"imagen,omitempty"`
	Variantes   []Variante      `json:"variantes,omitempty"`
}

// Variante is one size of a product with its own stock and barcode.
type Variante struct {
	ID           ID     `json:"id,omitempty"`
	Talla        string `json:"talla"`
	Stock        int    `json:"stock"`
	CodigoBarras string `json:"codigoBarras,omitempty"`
}

func (p Producto) CamposBusqueda() []string {
	campos := []string{p.Nombre, p.Marca, p.Modelo, p.Color}
	for _, v := range p.Variantes {
		campos = append(campos, v.CodigoBarras)
	}
	return campos
}
