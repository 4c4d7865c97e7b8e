package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/config"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// fakeBackend stands in for the REST API. Users log in with their role as
// e-mail local part: cajero@x, administrador@x...
func fakeBackend(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secreto" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
			return
		}
		rol := strings.SplitN(req.Email, "@", 2)[0]
		_, _ = w.Write([]byte(`{"data":{"token":"tok-` + rol + `","user":{"id":1,"nombres":"Ana","tipo":"` + rol + `"}}}`))
	})
	mux.HandleFunc("GET /api/categorias", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-administrador", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":1,"nombre":"Running"},{"id":2,"nombre":"Formal"}]`))
	})
	mux.HandleFunc("DELETE /api/categorias/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/productos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"nombre":"Runner","precio":30}`))
	})
	mux.HandleFunc("POST /api/cajas/{id}/abrir", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sesionCajaId":77}`))
	})
	mux.HandleFunc("GET /api/reportes/{tipo}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"producto":"a;b","total":10}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiURL string) *config.Config {
	return &config.Config{
		Env:                "test",
		SessionBackend:     "memory",
		SessionTTLHours:    12,
		SessionCookieName:  "posadmin_sid",
		APIBaseURL:         apiURL + "/api",
		APITimeoutSeconds:  2,
		PageSize:           10,
		LoginRatePerMinute: 100,
		ExportStoragePath:  t.TempDir(),
	}
}

type client struct {
	t      *testing.T
	engine http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T, rdb *redis.Client) *client {
	cfg := testConfig(t, fakeBackend(t).URL)
	if rdb != nil {
		cfg.SessionBackend = "redis"
	}
	return newClientWith(t, cfg, rdb)
}

func newClientWith(t *testing.T, cfg *config.Config, rdb *redis.Client) *client {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &client{t: t, engine: New(ctx, cfg, rdb)}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	var r *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "posadmin_sid" {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

func (c *client) login(rol model.Rol) {
	w := c.do(http.MethodPost, "/login", map[string]string{"email": string(rol) + "@tienda.com", "password": "secreto"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(c.t, c.cookie)
}

func TestLogin_RedirectsToRoleLanding(t *testing.T) {
	for rol, want := range map[model.Rol]string{
		model.RolAdministrador: model.PathDashboard,
		model.RolSupervisor:    model.PathDashboard,
		model.RolCajero:        model.PathAperturaCajas,
	} {
		c := newClient(t, nil)
		c.login(rol)

		w := c.do(http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, want, w.Header().Get("Location"))
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newClient(t, nil)
	w := c.do(http.MethodPost, "/login", map[string]string{"email": "cajero@tienda.com", "password": "mala"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
	assert.Nil(t, c.cookie)

	w = c.do(http.MethodPost, "/login", map[string]string{"email": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig(t, fakeBackend(t).URL)
	cfg.LoginRatePerMinute = 2
	c := newClientWith(t, cfg, nil)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"email":"cajero@tienda.com","password":"mala"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.RemoteAddr = "198.51.100.7:4242"
		w := httptest.NewRecorder()
		c.engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429, 429}, codes)
}

func TestLogin_RateLimitHonoursTrustedProxy(t *testing.T) {
	cfg := testConfig(t, fakeBackend(t).URL)
	cfg.LoginRatePerMinute = 1
	cfg.TrustedProxies = []string{"198.51.100.7"}
	c := newClientWith(t, cfg, nil)

	codes := make([]int, 0, 3)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/login",
			strings.NewReader(`{"email":"cajero@tienda.com","password":"mala"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", xff)
		req.RemoteAddr = "198.51.100.7:4242"
		w := httptest.NewRecorder()
		c.engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 429}, codes)
}

func TestGuard_EndToEnd(t *testing.T) {
	c := newClient(t, nil)

	w := c.do(http.MethodGet, "/admin/categorias", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	c.login(model.RolCajero)
	w = c.do(http.MethodGet, "/admin/categorias", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, model.PathAperturaCajas, w.Header().Get("Location"))

	w = c.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var layout struct {
		Navegacion []struct{ Path string } `json:"navegacion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &layout))
	assert.Len(t, layout.Navegacion, 2)
}

func TestRecursos_ListAndConfirmedDelete(t *testing.T) {
	c := newClient(t, nil)
	c.login(model.RolAdministrador)

	w := c.do(http.MethodGet, "/admin/categorias?q=run", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = c.do(http.MethodDelete, "/admin/categorias/2", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Contains(t, w.Body.String(), `/admin/categorias/2?confirmar=true`)

	w = c.do(http.MethodDelete, "/admin/categorias/2?confirmar=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPost, "/admin/categorias", map[string]string{"nombre": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"nombre":"min"`)
}

func TestPOS_OpenRegisterChargeAndLogout(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := newClient(t, rdb)
	c.login(model.RolCajero)
	sid := c.cookie.Value

	w := c.do(http.MethodPost, "/admin/apertura-cajas/3/abrir", map[string]any{"montoInicial": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "3", mr.HGet("sesion:"+sid, "cajaActiva"))
	assert.Equal(t, "77", mr.HGet("sesion:"+sid, "sesionCajaId"))

	w = c.do(http.MethodPost, "/admin/punto-venta/carrito", map[string]string{"producto_id": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/admin/punto-venta/cotizacion", map[string]any{"monto_recibido": 20})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":"30.00","recibido":"20.00","cambio":"0.00","restante":"10.00","puedeCobrar":false}`, w.Body.String())

	w = c.do(http.MethodPost, "/admin/punto-venta/cobro", map[string]any{"monto_recibido": 20})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = c.do(http.MethodPost, "/admin/punto-venta/cobro", map[string]any{"monto_recibido": 50})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"cambio":"20.00"`)

	w = c.do(http.MethodGet, "/admin/logout", nil)
	assert.Contains(t, w.Body.String(), `"cajaAbierta":true`)

	w = c.do(http.MethodPost, "/admin/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Nil(t, c.cookie)
	assert.False(t, mr.Exists("sesion:"+sid), "token, user, cajaActiva and sesionCajaId removed")
	assert.False(t, mr.Exists("carrito:"+sid))
}

func TestPOS_RejectsPathLikeProductID(t *testing.T) {
	c := newClient(t, nil)
	c.login(model.RolCajero)

	w := c.do(http.MethodPost, "/admin/punto-venta/carrito", map[string]string{"producto_id": "1/../../usuarios/7?rol=administrador"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"producto_id":"excludesall"`)
}

func TestReportes_CSVDownload(t *testing.T) {
	c := newClient(t, nil)
	c.login(model.RolSupervisor)

	w := c.do(http.MethodGet, "/admin/reportes/ventas/csv?inicio=2026-01-01&fin=2026-01-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="ventas_2026-01-01_2026-01-31.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "\uFEFFproducto;total\n\"a;b\";10\n", w.Body.String())

	w = c.do(http.MethodGet, "/admin/reportes/ventas?inicio=2026-02-01&fin=2026-01-01", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = c.do(http.MethodGet, "/admin/reportes/compras", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, "/admin/reportes/ventas/envios", map[string]string{"email": "jefe@tienda.com", "formato": "csv"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "no SMTP configured")
}

func TestHealth(t *testing.T) {
	c := newClient(t, nil)
	w := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"redis":"disabled","backend":"closed"}`, w.Body.String())
}
