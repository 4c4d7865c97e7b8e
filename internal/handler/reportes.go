package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc service.ReporteService
	now func() time.Time
}

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc, now: time.Now}
}

// Dashboard GET /admin/dashboard
func (h *ReportesHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard(c.Request.Context(), middleware.GetSesion(c).Token))
}

// Tipos GET /admin/reportes: the dashboard tabs.
func (h *ReportesHandler) Tipos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tipos": model.TiposReporte})
}

// filtro parses :tipo and the query filter; false means a response was written.
func (h *ReportesHandler) filtro(c *gin.Context) (model.TipoReporte, model.FiltroReporte, bool) {
	tipo := model.TipoReporte(c.Param("tipo"))
	if !tipo.Valid() {
		respondError(c, service.ErrReporteInvalido)
		return tipo, model.FiltroReporte{}, false
	}
	f, err := service.ParseFiltro(c.Query("inicio"), c.Query("fin"), c.Query("sucursal"), h.now())
	if err != nil {
		respondError(c, err)
		return tipo, f, false
	}
	return tipo, f, true
}

// Reporte godoc
// @Summary Datos de una pestaña de reportes
// @Tags reportes
// @Produce json
// @Param tipo path string true "ventas | inventario | bi | sesiones-caja | clientes"
// @Param inicio query string false "AAAA-MM-DD"
// @Param fin query string false "AAAA-MM-DD"
// @Param sucursal query string false "Sucursal"
// @Success 200 {object} dto.ReporteResponse
// @Failure 422 {object} apierror.APIError
// @Router /admin/reportes/{tipo} [get]
func (h *ReportesHandler) Reporte(c *gin.Context) {
	tipo, f, ok := h.filtro(c)
	if !ok {
		return
	}
	r, err := h.svc.Obtener(c.Request.Context(), middleware.GetSesion(c).Token, tipo, f)
	resp := service.ReporteResponse(r)
	if err != nil {
		resp.Error = infra.MessageOf(err)
	}
	c.JSON(http.StatusOK, resp)
}

// CSV GET /admin/reportes/:tipo/csv
func (h *ReportesHandler) CSV(c *gin.Context) {
	h.exportar(c, "csv", "text/csv; charset=utf-8", h.svc.ExportarCSV)
}

// PDF GET /admin/reportes/:tipo/pdf
func (h *ReportesHandler) PDF(c *gin.Context) {
	h.exportar(c, "pdf", "application/pdf", h.svc.ExportarPDF)
}

func (h *ReportesHandler) exportar(c *gin.Context, ext, contentType string, write func(io.Writer, model.Reporte) error) {
	tipo, f, ok := h.filtro(c)
	if !ok {
		return
	}
	r, err := h.svc.Obtener(c.Request.Context(), middleware.GetSesion(c).Token, tipo, f)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, r); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.NombreArchivo(r, ext)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Enviar godoc
// @Summary Envia el reporte por correo como CSV o PDF
// @Tags reportes
// @Accept json
// @Produce json
// @Param tipo path string true "Tipo de reporte"
// @Param body body dto.EnvioReporteRequest true "Destino y formato"
// @Success 202 {object} dto.EnvioReporteResponse
// @Failure 503 {object} apierror.APIError
// @Router /admin/reportes/{tipo}/envios [post]
func (h *ReportesHandler) Enviar(c *gin.Context) {
	tipo, f, ok := h.filtro(c)
	if !ok {
		return
	}
	var req dto.EnvioReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Enviar(c.Request.Context(), middleware.GetSesion(c).Token, tipo, f, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
