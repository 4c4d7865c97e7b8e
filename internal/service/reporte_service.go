package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	formatoFecha       = "2006-01-02"
	diasPorDefecto     = 30
	formatoCSV         = "csv"
	formatoPDF         = "pdf"
	estadoEnvioEnCola  = "en_cola"
	asuntoEnvioReporte = "Reporte %s del %s al %s"
)

var titulos = map[model.TipoReporte]string{
	model.ReporteVentas:       "Reporte de Ventas",
	model.ReporteInventario:   "Reporte de Inventario",
	model.ReporteBI:           "Inteligencia de Negocio",
	model.ReporteSesionesCaja: "Sesiones de Caja",
	model.ReporteClientes:     "Reporte de Clientes",
}

// ReportDispatcher enqueues report e-mail jobs. Satisfied by *worker.Dispatcher.
type ReportDispatcher interface {
	EnqueueReporteEmail(ctx context.Context, p worker.ReporteEmailPayload) error
}

type ReporteService interface {
	// Dashboard fetches the pre-aggregated summary; a failure sets the banner.
	Dashboard(ctx context.Context, token string) dto.DashboardResponse
	Obtener(ctx context.Context, token string, tipo model.TipoReporte, f model.FiltroReporte) (model.Reporte, error)
	ExportarCSV(w io.Writer, r model.Reporte) error
	ExportarPDF(w io.Writer, r model.Reporte) error
	// Enviar renders the report into the export directory and queues it for
	// delivery by e-mail.
	Enviar(ctx context.Context, token string, tipo model.TipoReporte, f model.FiltroReporte, req dto.EnvioReporteRequest) (*dto.EnvioReporteResponse, error)
}

type reporteService struct {
	api        *infra.APIClient
	dispatcher ReportDispatcher
	exportDir  string
	now        func() time.Time
}

// NewReporteService builds the report service. dispatcher may be nil when
// e-mail delivery is not configured.
func NewReporteService(api *infra.APIClient, dispatcher ReportDispatcher, exportDir string) ReporteService {
	return &reporteService{api: api, dispatcher: dispatcher, exportDir: exportDir, now: time.Now}
}

// ParseFiltro reads the shared filter. Missing dates default to the last 30
// days ending today.
func ParseFiltro(inicio, fin, sucursal string, hoy time.Time) (model.FiltroReporte, error) {
	hoy = time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	f := model.FiltroReporte{Fin: hoy, Inicio: hoy.AddDate(0, 0, -diasPorDefecto), SucursalID: strings.TrimSpace(sucursal)}
	if fin != "" {
		t, err := time.Parse(formatoFecha, fin)
		if err != nil {
			return f, ErrFechaInvalida
		}
		f.Fin = t
		if inicio == "" {
			f.Inicio = t.AddDate(0, 0, -diasPorDefecto)
		}
	}
	if inicio != "" {
		t, err := time.Parse(formatoFecha, inicio)
		if err != nil {
			return f, ErrFechaInvalida
		}
		f.Inicio = t
	}
	if f.Inicio.After(f.Fin) {
		return f, ErrRangoFechas
	}
	return f, nil
}

func (s *reporteService) Obtener(ctx context.Context, token string, tipo model.TipoReporte, f model.FiltroReporte) (model.Reporte, error) {
	if !tipo.Valid() {
		return model.Reporte{}, ErrReporteInvalido
	}
	q := url.Values{}
	q.Set("fechaInicio", f.Inicio.Format(formatoFecha))
	q.Set("fechaFin", f.Fin.Format(formatoFecha))
	q.Set("sucursalId", f.SucursalID)
	raw, err := s.api.Do(ctx, token, http.MethodGet, infra.WithQuery("/reportes/"+string(tipo), q), nil)
	if err != nil {
		return model.Reporte{Tipo: tipo, Filtro: f, Filas: []model.Fila{}}, err
	}
	filas, err := decodeFilas(raw)
	if err != nil {
		return model.Reporte{Tipo: tipo, Filtro: f, Filas: []model.Fila{}}, err
	}
	return model.Reporte{Tipo: tipo, Filtro: f, Filas: filas}, nil
}

func (s *reporteService) Dashboard(ctx context.Context, token string) dto.DashboardResponse {
	raw, err := s.api.Do(ctx, token, http.MethodGet, "/reportes/dashboard", nil)
	if err == nil {
		var resumen map[string]any
		resumen, err = infra.Decode[map[string]any](raw)
		if err == nil {
			if resumen == nil {
				resumen = map[string]any{}
			}
			return dto.DashboardResponse{Resumen: resumen}
		}
	}
	log.Warn().Err(err).Msg("dashboard: no se pudo cargar el resumen")
	return dto.DashboardResponse{Resumen: map[string]any{}, Error: infra.MessageOf(err)}
}

// decodeFilas accepts a list of row objects, or a single summary object
// which becomes one row.
func decodeFilas(raw json.RawMessage) ([]model.Fila, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Fila{}, nil
	}
	if trimmed[0] == '{' {
		fila, err := infra.Decode[model.Fila](trimmed)
		if err != nil {
			return nil, err
		}
		return []model.Fila{fila}, nil
	}
	return infra.DecodeList[model.Fila](trimmed)
}

// ReporteResponse is the JSON page of one report tab.
func ReporteResponse(r model.Reporte) dto.ReporteResponse {
	filas := r.Filas
	if filas == nil {
		filas = []model.Fila{}
	}
	columnas := r.Columnas()
	if columnas == nil {
		columnas = []string{}
	}
	return dto.ReporteResponse{
		Tipo:       r.Tipo,
		Inicio:     r.Filtro.Inicio.Format(formatoFecha),
		Fin:        r.Filtro.Fin.Format(formatoFecha),
		SucursalID: r.Filtro.SucursalID,
		Columnas:   columnas,
		Filas:      filas,
	}
}

// NombreArchivo is "<tipo>_<inicio>_<fin>.<ext>".
func NombreArchivo(r model.Reporte, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", r.Tipo, r.Filtro.Inicio.Format(formatoFecha), r.Filtro.Fin.Format(formatoFecha), ext)
}

func (s *reporteService) ExportarCSV(w io.Writer, r model.Reporte) error {
	return EscribirCSV(w, r)
}

func (s *reporteService) ExportarPDF(w io.Writer, r model.Reporte) error {
	return infra.WritePDF(w, s.tablaPDF(r))
}

func (s *reporteService) tablaPDF(r model.Reporte) infra.TablaPDF {
	titulo, ok := titulos[r.Tipo]
	if !ok {
		titulo = "Reporte"
	}
	sub := fmt.Sprintf("Del %s al %s", r.Filtro.Inicio.Format(formatoFecha), r.Filtro.Fin.Format(formatoFecha))
	if r.Filtro.SucursalID != "" {
		sub += " · Sucursal " + r.Filtro.SucursalID
	}
	return infra.TablaPDF{
		Titulo:    titulo,
		Subtitulo: sub,
		Columnas:  r.Columnas(),
		Filas:     celdas(r),
		Generado:  s.now(),
	}
}

// ── Enviar ────────────────────────────────────────────────────────────────────

func (s *reporteService) Enviar(ctx context.Context, token string, tipo model.TipoReporte, f model.FiltroReporte, req dto.EnvioReporteRequest) (*dto.EnvioReporteResponse, error) {
	if s.dispatcher == nil {
		return nil, ErrEnvioNoDisponible
	}
	r, err := s.Obtener(ctx, token, tipo, f)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("reporte: crear directorio de exportación: %w", err)
	}
	nombre := NombreArchivo(r, req.Formato)
	// a random prefix keeps concurrent exports of the same range apart
	ruta := filepath.Join(s.exportDir, uuid.NewString()+"_"+nombre)
	if err := s.escribirArchivo(ruta, r, req.Formato); err != nil {
		return nil, err
	}

	payload := worker.ReporteEmailPayload{
		ToEmail:  req.Email,
		Subject:  fmt.Sprintf(asuntoEnvioReporte, tipo, r.Filtro.Inicio.Format(formatoFecha), r.Filtro.Fin.Format(formatoFecha)),
		Body:     "Adjuntamos el reporte solicitado desde el panel de administración.",
		FilePath: ruta,
		FileName: nombre,
	}
	if err := s.dispatcher.EnqueueReporteEmail(ctx, payload); err != nil {
		_ = os.Remove(ruta)
		return nil, fmt.Errorf("reporte: encolar envío: %w", err)
	}
	log.Info().Str("tipo", string(tipo)).Str("archivo", nombre).Str("to", req.Email).Msg("reporte: envío en cola")
	return &dto.EnvioReporteResponse{Archivo: nombre, Email: req.Email, Estado: estadoEnvioEnCola}, nil
}

func (s *reporteService) escribirArchivo(ruta string, r model.Reporte, formato string) (err error) {
	f, err := os.Create(ruta)
	if err != nil {
		return fmt.Errorf("reporte: crear archivo: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(ruta)
		}
	}()
	switch formato {
	case formatoPDF:
		return s.ExportarPDF(f, r)
	case formatoCSV:
		return s.ExportarCSV(f, r)
	default:
		return fmt.Errorf("reporte: formato %q no soportado", formato)
	}
}
