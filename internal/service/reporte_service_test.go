package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fecha(s string) time.Time {
	t, _ := time.Parse(formatoFecha, s)
	return t
}

func TestParseFiltro(t *testing.T) {
	hoy := time.Date(2026, 3, 31, 15, 4, 0, 0, time.UTC)

	f, err := ParseFiltro("", "", "", hoy)
	require.NoError(t, err)
	assert.Equal(t, fecha("2026-03-01"), f.Inicio)
	assert.Equal(t, fecha("2026-03-31"), f.Fin)

	f, err = ParseFiltro("2026-01-01", "2026-01-31", " 2 ", hoy)
	require.NoError(t, err)
	assert.Equal(t, fecha("2026-01-01"), f.Inicio)
	assert.Equal(t, "2", f.SucursalID)

	f, err = ParseFiltro("", "2026-02-10", "", hoy)
	require.NoError(t, err)
	assert.Equal(t, fecha("2026-01-11"), f.Inicio)

	_, err = ParseFiltro("2026-02-01", "2026-01-01", "", hoy)
	assert.ErrorIs(t, err, ErrRangoFechas)

	_, err = ParseFiltro("01/02/2026", "", "", hoy)
	assert.ErrorIs(t, err, ErrFechaInvalida)

	_, err = ParseFiltro("2026-01-05", "2026-01-05", "", hoy)
	assert.NoError(t, err, "same day is a valid range")
}

func reportesBackend(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reportes/ventas", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-01-01", q.Get("fechaInicio"))
		assert.Equal(t, "2026-01-31", q.Get("fechaFin"))
		assert.Equal(t, "2", q.Get("sucursalId"))
		writeJSON(w, http.StatusOK, `{"data":[
			{"producto":"Runner; edición \"pro\"","cantidad":3,"total":37.5},
			{"producto":"Oxford","cantidad":1,"total":17.5}
		]}`)
	})
	mux.HandleFunc("GET /reportes/bi", func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("sucursalId"), "empty branch not sent")
		writeJSON(w, http.StatusOK, `{"ticketPromedio":25.1,"topCategorias":["running","casual"]}`)
	})
	return mux
}

var filtroEnero = model.FiltroReporte{Inicio: fecha("2026-01-01"), Fin: fecha("2026-01-31"), SucursalID: "2"}

func TestReporteService_ObtenerKeepsKeyOrder(t *testing.T) {
	svc := NewReporteService(newBackend(t, reportesBackend(t)), nil, t.TempDir())

	r, err := svc.Obtener(context.Background(), "tok", model.ReporteVentas, filtroEnero)
	require.NoError(t, err)
	require.Len(t, r.Filas, 2)
	assert.Equal(t, []string{"producto", "cantidad", "total"}, r.Columnas())

	resp := ReporteResponse(r)
	assert.Equal(t, "2026-01-01", resp.Inicio)
	assert.Equal(t, "2", resp.SucursalID)

	bi, err := svc.Obtener(context.Background(), "tok", model.ReporteBI, model.FiltroReporte{Inicio: fecha("2026-01-01"), Fin: fecha("2026-01-31")})
	require.NoError(t, err)
	require.Len(t, bi.Filas, 1, "summary object becomes one row")
	assert.Equal(t, []string{"ticketPromedio", "topCategorias"}, bi.Columnas())

	_, err = svc.Obtener(context.Background(), "tok", "compras", filtroEnero)
	assert.ErrorIs(t, err, ErrReporteInvalido)
}

func TestCSV_RoundTrip(t *testing.T) {
	svc := NewReporteService(newBackend(t, reportesBackend(t)), nil, t.TempDir())
	r, err := svc.Obtener(context.Background(), "tok", model.ReporteVentas, filtroEnero)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarCSV(&buf, r))
	assert.True(t, strings.HasPrefix(buf.String(), utf8BOM))
	assert.Contains(t, buf.String(), `"Runner; edición ""pro"""`)

	header, rows, err := LeerCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"producto", "cantidad", "total"}, header)
	assert.Equal(t, [][]string{
		{`Runner; edición "pro"`, "3", "37.5"},
		{"Oxford", "1", "17.5"},
	}, rows)
}

func TestCSV_RoundTripSemicolonField(t *testing.T) {
	r := model.Reporte{Filas: []model.Fila{
		{Claves: []string{"a", "b"}, Valores: map[string]any{"a": "a;b", "b": "línea\nnueva"}},
		{Claves: []string{"a", "b"}, Valores: map[string]any{"a": nil}},
	}}
	var buf bytes.Buffer
	require.NoError(t, EscribirCSV(&buf, r))

	header, rows, err := LeerCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, [][]string{{"a;b", "línea\nnueva"}, {"", ""}}, rows)
}

func TestCelda(t *testing.T) {
	assert.Equal(t, "", Celda(nil))
	assert.Equal(t, "true", Celda(true))
	assert.Equal(t, `["a","b"]`, Celda([]any{"a", "b"}))
	assert.Equal(t, `{"x":"<1>"}`, Celda(map[string]any{"x": "<1>"}))
}

func TestNombreArchivo(t *testing.T) {
	r := model.Reporte{Tipo: model.ReporteSesionesCaja, Filtro: filtroEnero}
	assert.Equal(t, "sesiones-caja_2026-01-01_2026-01-31.csv", NombreArchivo(r, "csv"))
}

func TestReporteService_ExportarPDF(t *testing.T) {
	svc := NewReporteService(newBackend(t, reportesBackend(t)), nil, t.TempDir())
	r, err := svc.Obtener(context.Background(), "tok", model.ReporteVentas, filtroEnero)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarPDF(&buf, r))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

type fakeDispatcher struct {
	err      error
	payloads []worker.ReporteEmailPayload
}

func (f *fakeDispatcher) EnqueueReporteEmail(_ context.Context, p worker.ReporteEmailPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func TestReporteService_Enviar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := &fakeDispatcher{}
	svc := NewReporteService(newBackend(t, reportesBackend(t)), d, dir)

	resp, err := svc.Enviar(context.Background(), "tok", model.ReporteVentas, filtroEnero, dto.EnvioReporteRequest{Email: "jefe@tienda.com", Formato: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "ventas_2026-01-01_2026-01-31.csv", resp.Archivo)
	assert.Equal(t, "en_cola", resp.Estado)

	require.Len(t, d.payloads, 1)
	p := d.payloads[0]
	assert.Equal(t, "jefe@tienda.com", p.ToEmail)
	assert.Equal(t, resp.Archivo, p.FileName)
	assert.Equal(t, dir, filepath.Dir(p.FilePath))

	f, err := os.Open(p.FilePath)
	require.NoError(t, err)
	defer f.Close()
	header, _, err := LeerCSV(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"producto", "cantidad", "total"}, header)
}

func TestReporteService_EnviarFailures(t *testing.T) {
	req := dto.EnvioReporteRequest{Email: "jefe@tienda.com", Formato: "pdf"}

	svc := NewReporteService(newBackend(t, reportesBackend(t)), nil, t.TempDir())
	_, err := svc.Enviar(context.Background(), "tok", model.ReporteVentas, filtroEnero, req)
	assert.ErrorIs(t, err, ErrEnvioNoDisponible)

	dir := t.TempDir()
	svc = NewReporteService(newBackend(t, reportesBackend(t)), &fakeDispatcher{err: errors.New("redis down")}, dir)
	_, err = svc.Enviar(context.Background(), "tok", model.ReporteVentas, filtroEnero, req)
	require.Error(t, err)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "file removed when the job could not be queued")
}

func TestReporteService_Dashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reportes/dashboard", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"ventasHoy":12,"stockBajo":3}}`)
	})
	svc := NewReporteService(newBackend(t, mux), nil, t.TempDir())
	d := svc.Dashboard(context.Background(), "tok")
	assert.Empty(t, d.Error)
	assert.EqualValues(t, 12, d.Resumen["ventasHoy"])

	svc = NewReporteService(newBackend(t, http.NewServeMux()), nil, t.TempDir())
	d = svc.Dashboard(context.Background(), "tok")
	assert.NotEmpty(t, d.Error)
	assert.NotNil(t, d.Resumen)
}
