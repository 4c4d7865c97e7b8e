package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ProductoService adds the multipart form and its lookups on top of the
// generic product CRUD.
type ProductoService interface {
	RecursoService[model.Producto]
	Formulario(ctx context.Context, token string) dto.FormularioProducto
	CrearConImagen(ctx context.Context, token string, form dto.ProductoForm, variantes []dto.VarianteForm) (dto.Pagina[model.Producto], error)
	ActualizarConImagen(ctx context.Context, token string, id model.ID, form dto.ProductoForm) (dto.Pagina[model.Producto], error)
}

type productoService struct {
	RecursoService[model.Producto]
	api         *infra.APIClient
	categorias  RecursoService[model.Categoria]
	sucursales  RecursoService[model.Sucursal]
	almacenes   RecursoService[model.Almacen]
	proveedores RecursoService[model.Proveedor]
}

func NewProductoService(api *infra.APIClient, tamanoPagina int) ProductoService {
	return &productoService{
		RecursoService: NewRecursoService[model.Producto](api, "/productos", tamanoPagina),
		api:            api,
		categorias:     NewRecursoService[model.Categoria](api, "/categorias", tamanoPagina),
		sucursales:     NewRecursoService[model.Sucursal](api, "/sucursales", tamanoPagina),
		almacenes:      NewRecursoService[model.Almacen](api, "/almacenes", tamanoPagina),
		proveedores:    NewRecursoService[model.Proveedor](api, "/proveedores", tamanoPagina),
	}
}

// Formulario loads the four lookups concurrently. A failed lookup is logged
// and leaves its list empty; the form still renders.
func (s *productoService) Formulario(ctx context.Context, token string) dto.FormularioProducto {
	out := dto.FormularioProducto{
		Categorias:  []model.Categoria{},
		Sucursales:  []model.Sucursal{},
		Almacenes:   []model.Almacen{},
		Proveedores: []model.Proveedor{},
	}
	var g errgroup.Group
	g.Go(func() error { return lookup(ctx, token, "categorias", s.categorias, &out.Categorias) })
	g.Go(func() error { return lookup(ctx, token, "sucursales", s.sucursales, &out.Sucursales) })
	g.Go(func() error { return lookup(ctx, token, "almacenes", s.almacenes, &out.Almacenes) })
	g.Go(func() error { return lookup(ctx, token, "proveedores", s.proveedores, &out.Proveedores) })
	_ = g.Wait()
	return out
}

func lookup[T Buscable](ctx context.Context, token, nombre string, svc RecursoService[T], dst *[]T) error {
	items, err := svc.Listar(ctx, token)
	if err != nil {
		log.Warn().Err(err).Str("lookup", nombre).Msg("producto: no se pudo cargar la lista")
		return nil
	}
	*dst = items
	return nil
}

func (s *productoService) CrearConImagen(ctx context.Context, token string, form dto.ProductoForm, variantes []dto.VarianteForm) (dto.Pagina[model.Producto], error) {
	body, contentType, err := productoMultipart(form, variantes)
	if err != nil {
		return dto.Pagina[model.Producto]{}, err
	}
	if _, err := s.api.DoRaw(ctx, token, http.MethodPost, "/productos", contentType, body); err != nil {
		return dto.Pagina[model.Producto]{}, err
	}
	return s.Pagina(ctx, token, "", 1), nil
}

// ActualizarConImagen edits the product fields; variants are managed from
// the inventory page once the product exists.
func (s *productoService) ActualizarConImagen(ctx context.Context, token string, id model.ID, form dto.ProductoForm) (dto.Pagina[model.Producto], error) {
	body, contentType, err := productoMultipart(form, nil)
	if err != nil {
		return dto.Pagina[model.Producto]{}, err
	}
	if _, err := s.api.DoRaw(ctx, token, http.MethodPut, "/productos/"+id.Segment(), contentType, body); err != nil {
		return dto.Pagina[model.Producto]{}, err
	}
	return s.Pagina(ctx, token, "", 1), nil
}

// ParseVariantes decodes the JSON "variantes" form field.
func ParseVariantes(raw string) ([]dto.VarianteForm, error) {
	if raw == "" {
		return nil, nil
	}
	var vs []dto.VarianteForm
	if err := json.Unmarshal([]byte(raw), &vs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVariantesInvalidas, err)
	}
	tallas := make(map[string]bool, len(vs))
	for _, v := range vs {
		if tallas[v.Talla] {
			return nil, fmt.Errorf("%w: talla %q repetida", ErrVariantesInvalidas, v.Talla)
		}
		tallas[v.Talla] = true
	}
	return vs, nil
}

func productoMultipart(form dto.ProductoForm, variantes []dto.VarianteForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	campos := []struct{ k, v string }{
		{"nombre", form.Nombre},
		{"marca", form.Marca},
		{"modelo", form.Modelo},
		{"color", form.Color},
		{"precio", form.Precio.StringFixed(2)},
		{"categoriaId", form.CategoriaID},
		{"proveedorId", form.ProveedorID},
	}
	for _, c := range campos {
		if c.v == "" {
			continue
		}
		if err := mw.WriteField(c.k, c.v); err != nil {
			return nil, "", err
		}
	}
	if len(variantes) > 0 {
		b, err := json.Marshal(variantes)
		if err != nil {
			return nil, "", err
		}
		if err := mw.WriteField("variantes", string(b)); err != nil {
			return nil, "", err
		}
	}
	if form.Imagen != nil {
		if err := adjuntarImagen(mw, form.Imagen); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func adjuntarImagen(mw *multipart.Writer, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("producto: abrir imagen: %w", err)
	}
	defer f.Close()
	part, err := mw.CreateFormFile("imagen", fh.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
