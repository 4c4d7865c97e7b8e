package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
)

// newBackend serves mux under /api and returns a client pointed at it.
func newBackend(t *testing.T, mux *http.ServeMux) *infra.APIClient {
	t.Helper()
	srv := httptest.NewServer(http.StripPrefix("/api", mux))
	t.Cleanup(srv.Close)
	return infra.NewAPIClient(srv.URL+"/api", 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func sesionDe(rol model.Rol) model.Sesion {
	return model.Sesion{Token: "tok", Usuario: &model.UsuarioSesion{ID: "7", Nombres: "Ana", Tipo: rol}}
}
