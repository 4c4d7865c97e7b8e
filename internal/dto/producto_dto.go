package dto

import (
	"mime/multipart"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// ProductoForm is the multipart body of the product create/edit form.
type ProductoForm struct {
	Nombre      string                `form:"nombre"      validate:"required,min=2,max=150"`
	Marca       string                `form:"marca"       validate:"max=80"`
	Modelo      string                `form:"modelo"      validate:"max=80"`
	Color       string                `form:"color"       validate:"max=40"`
	Precio      decimal.Decimal       `form:"-"           validate:"gt=0"`
	PrecioRaw   string                `form:"precio"      validate:"required"`
	CategoriaID string                `form:"categoriaId" validate:"required"`
	ProveedorID string                `form:"proveedorId"`
	Variantes   string                `form:"variantes"`
	Imagen      *multipart.FileHeader `form:"imagen"      validate:"-"`
}

// VarianteForm is one entry of the JSON-encoded "variantes" field.
type VarianteForm struct {
	Talla        string `json:"talla"        validate:"required,max=10"`
	Stock        int    `json:"stock"        validate:"min=0"`
	CodigoBarras string `json:"codigoBarras" validate:"max=64"`
}

// FormularioProducto carries the lookups of the product form.
type FormularioProducto struct {
	Categorias  []model.Categoria `json:"categorias"`
	Sucursales  []model.Sucursal  `json:"sucursales"`
	Almacenes   []model.Almacen   `json:"almacenes"`
	Proveedores []model.Proveedor `json:"proveedores"`
}
