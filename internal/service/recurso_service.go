package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/rs/zerolog/log"
)

// Buscable is implemented by every listable resource: the fields the page's
// search box matches against.
type Buscable interface {
	CamposBusqueda() []string
}

// RecursoService is the CRUD contract shared by the admin resource pages.
// Lists are fetched whole and filtered/paginated locally.
type RecursoService[T Buscable] interface {
	Pagina(ctx context.Context, token, busqueda string, pagina int) dto.Pagina[T]
	Obtener(ctx context.Context, token string, id model.ID) (T, error)
	// Crear and Actualizar forward the record and return the refreshed page.
	Crear(ctx context.Context, token string, v T) (dto.Pagina[T], error)
	Actualizar(ctx context.Context, token string, id model.ID, v T) (dto.Pagina[T], error)
	Eliminar(ctx context.Context, token string, id model.ID) (dto.Pagina[T], error)
	Listar(ctx context.Context, token string) ([]T, error)
}

type recursoService[T Buscable] struct {
	api          *infra.APIClient
	endpoint     string
	tamanoPagina int
}

// NewRecursoService serves the backend collection at endpoint ("/categorias").
func NewRecursoService[T Buscable](api *infra.APIClient, endpoint string, tamanoPagina int) RecursoService[T] {
	if tamanoPagina <= 0 {
		tamanoPagina = 10
	}
	return &recursoService[T]{api: api, endpoint: endpoint, tamanoPagina: tamanoPagina}
}

func (s *recursoService[T]) Listar(ctx context.Context, token string) ([]T, error) {
	raw, err := s.api.Do(ctx, token, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}
	return infra.DecodeList[T](raw)
}

// Pagina never fails: a fetch error leaves the list empty and sets the banner.
func (s *recursoService[T]) Pagina(ctx context.Context, token, busqueda string, pagina int) dto.Pagina[T] {
	items, err := s.Listar(ctx, token)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", s.endpoint).Msg("recurso: no se pudo cargar la lista")
		p := Paginar([]T{}, pagina, s.tamanoPagina)
		p.Busqueda = busqueda
		p.Error = infra.MessageOf(err)
		return p
	}
	p := Paginar(Filtrar(items, busqueda), pagina, s.tamanoPagina)
	p.Busqueda = busqueda
	return p
}

func (s *recursoService[T]) Obtener(ctx context.Context, token string, id model.ID) (T, error) {
	raw, err := s.api.Do(ctx, token, http.MethodGet, s.endpoint+"/"+id.Segment(), nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return infra.Decode[T](raw)
}

func (s *recursoService[T]) Crear(ctx context.Context, token string, v T) (dto.Pagina[T], error) {
	if _, err := s.api.Do(ctx, token, http.MethodPost, s.endpoint, v); err != nil {
		return dto.Pagina[T]{}, err
	}
	return s.Pagina(ctx, token, "", 1), nil
}

func (s *recursoService[T]) Actualizar(ctx context.Context, token string, id model.ID, v T) (dto.Pagina[T], error) {
	if _, err := s.api.Do(ctx, token, http.MethodPut, s.endpoint+"/"+id.Segment(), v); err != nil {
		return dto.Pagina[T]{}, err
	}
	return s.Pagina(ctx, token, "", 1), nil
}

func (s *recursoService[T]) Eliminar(ctx context.Context, token string, id model.ID) (dto.Pagina[T], error) {
	if _, err := s.api.Do(ctx, token, http.MethodDelete, s.endpoint+"/"+id.Segment(), nil); err != nil {
		return dto.Pagina[T]{}, err
	}
	return s.Pagina(ctx, token, "", 1), nil
}

// Filtrar keeps the items with a search field containing q, case-insensitive.
// A blank query keeps everything.
func Filtrar[T Buscable](items []T, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, campo := range it.CamposBusqueda() {
			if strings.Contains(strings.ToLower(campo), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Paginar slices items into the requested page. The page number is clamped
// to [1, totalPaginas]; an empty list has one empty page.
func Paginar[T any](items []T, pagina, tamano int) dto.Pagina[T] {
	if tamano <= 0 {
		tamano = 10
	}
	total := len(items)
	totalPaginas := (total + tamano - 1) / tamano
	if totalPaginas == 0 {
		totalPaginas = 1
	}
	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPaginas {
		pagina = totalPaginas
	}
	desde := (pagina - 1) * tamano
	hasta := min(desde+tamano, total)
	page := make([]T, 0, hasta-desde)
	page = append(page, items[desde:hasta]...)
	return dto.Pagina[T]{
		Items:        page,
		Total:        total,
		Pagina:       pagina,
		TamanoPagina: tamano,
		TotalPaginas: totalPaginas,
	}
}
