package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categorias(n int) []model.Categoria {
	out := make([]model.Categoria, n)
	for i := range out {
		out[i] = model.Categoria{ID: model.ID(fmt.Sprint(i + 1)), Nombre: fmt.Sprintf("Categoria %02d", i+1)}
	}
	return out
}

func TestFiltrar_CaseInsensitive(t *testing.T) {
	desc := "Calzado de CORRER"
	items := []model.Categoria{
		{ID: "1", Nombre: "Running", Descripcion: &desc},
		{ID: "2", Nombre: "Formal"},
	}
	assert.Len(t, Filtrar(items, "  "), 2)
	assert.Equal(t, []model.Categoria{items[0]}, Filtrar(items, "correr"))
	assert.Equal(t, []model.Categoria{items[1]}, Filtrar(items, "FOR"))
	assert.Empty(t, Filtrar(items, "sandalia"))
}

func TestPaginar(t *testing.T) {
	items := categorias(23)

	p := Paginar(items, 1, 10)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 23, p.Total)
	assert.Equal(t, 3, p.TotalPaginas)

	p = Paginar(items, 3, 10)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, model.ID("21"), p.Items[0].ID)

	p = Paginar(items, 9, 10)
	assert.Equal(t, 3, p.Pagina, "clamped to the last page")

	p = Paginar(items, -2, 10)
	assert.Equal(t, 1, p.Pagina)

	p = Paginar([]model.Categoria{}, 4, 10)
	assert.Equal(t, 1, p.Pagina)
	assert.Equal(t, 1, p.TotalPaginas)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
}

func TestRecursoService_PaginaFiltersAndPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categorias", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		b, _ := json.Marshal(map[string]any{"data": categorias(15)})
		writeJSON(w, http.StatusOK, string(b))
	})
	svc := NewRecursoService[model.Categoria](newBackend(t, mux), "/categorias", 10)

	p := svc.Pagina(context.Background(), "tok", "categoria 1", 2)
	assert.Empty(t, p.Error)
	assert.Equal(t, 6, p.Total, "Categoria 10 to 15")
	assert.Equal(t, 1, p.Pagina)
	assert.Equal(t, "categoria 1", p.Busqueda)
}

func TestRecursoService_PaginaFailureSetsBanner(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clientes", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"message":"Sin permisos"}`)
	})
	svc := NewRecursoService[model.Cliente](newBackend(t, mux), "/clientes", 10)

	p := svc.Pagina(context.Background(), "tok", "", 1)
	assert.Equal(t, "Sin permisos", p.Error)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
}

func TestRecursoService_MutationsRefetch(t *testing.T) {
	var metodos []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sucursales", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":1,"nombre":"Centro"}]`)
	})
	mux.HandleFunc("GET /sucursales/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"id":`+r.PathValue("id")+`,"nombre":"Centro"}}`)
	})
	mux.HandleFunc("/sucursales/", func(w http.ResponseWriter, r *http.Request) {
		metodos = append(metodos, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /sucursales", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.True(t, strings.Contains(string(b), `"nombre":"Norte"`))
		metodos = append(metodos, "POST /sucursales")
		writeJSON(w, http.StatusCreated, `{"id":2}`)
	})
	svc := NewRecursoService[model.Sucursal](newBackend(t, mux), "/sucursales", 10)
	ctx := context.Background()

	p, err := svc.Crear(ctx, "tok", model.Sucursal{Nombre: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Total)

	_, err = svc.Actualizar(ctx, "tok", "1", model.Sucursal{Nombre: "Centro 2"})
	require.NoError(t, err)
	_, err = svc.Eliminar(ctx, "tok", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /sucursales", "PUT /sucursales/1", "DELETE /sucursales/1"}, metodos)

	s, err := svc.Obtener(ctx, "tok", "1")
	require.NoError(t, err)
	assert.Equal(t, model.ID("1"), s.ID)
}

func TestRecursoService_MutationErrorSurfaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /almacenes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, `{"error":{"message":"Almacén con stock"}}`)
	})
	svc := NewRecursoService[model.Almacen](newBackend(t, mux), "/almacenes", 10)

	_, err := svc.Eliminar(context.Background(), "tok", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Almacén con stock")
}
