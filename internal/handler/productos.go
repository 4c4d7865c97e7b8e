package handler

import (
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxImagenBytes = 5 << 20

// ProductosHandler replaces the generic create/update with the multipart
// form (image upload, size variants) and serves the form lookups.
type ProductosHandler struct {
	*RecursoHandler[model.Producto]
	svc service.ProductoService
}

func NewProductosHandler(svc service.ProductoService, base string) *ProductosHandler {
	return &ProductosHandler{RecursoHandler: NewRecursoHandler[model.Producto](svc, base), svc: svc}
}

func (h *ProductosHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.Listar)
	g.GET("/nuevo", h.Formulario)
	g.GET("/:id", h.Obtener)
	g.POST("", h.Crear)
	g.PUT("/:id", h.Actualizar)
	g.DELETE("/:id", h.Eliminar)
}

// Formulario GET /admin/productos/nuevo
func (h *ProductosHandler) Formulario(c *gin.Context) {
	s := middleware.GetSesion(c)
	c.JSON(http.StatusOK, h.svc.Formulario(c.Request.Context(), s.Token))
}

// Crear godoc
// @Summary Crea un producto con imagen y variantes por talla
// @Tags productos
// @Accept multipart/form-data
// @Produce json
// @Param nombre formData string true "Nombre"
// @Param precio formData number true "Precio"
// @Param categoriaId formData string true "Categoria"
// @Param variantes formData string false "JSON [{talla,stock,codigoBarras}]"
// @Param imagen formData file false "Imagen"
// @Success 201 {object} dto.Pagina[model.Producto]
// @Failure 422 {object} apierror.ValidationError
// @Router /admin/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}
	variantes, err := service.ParseVariantes(form.Variantes)
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range variantes {
		if !validateStruct(c, &variantes[i]) {
			return
		}
	}
	s := middleware.GetSesion(c)
	p, err := h.svc.CrearConImagen(c.Request.Context(), s.Token, form, variantes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Actualizar PUT /admin/productos/:id (multipart, variants ignored)
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}
	s := middleware.GetSesion(c)
	p, err := h.svc.ActualizarConImagen(c.Request.Context(), s.Token, model.ID(c.Param("id")), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductosHandler) bindForm(c *gin.Context) (dto.ProductoForm, bool) {
	var form dto.ProductoForm
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImagenBytes+1<<20)
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario inválido: "+err.Error()))
		return form, false
	}
	if form.PrecioRaw != "" {
		precio, err := decimal.NewFromString(form.PrecioRaw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"precio": "numeric"}))
			return form, false
		}
		form.Precio = precio
	}
	if !validateStruct(c, &form) {
		return form, false
	}
	if form.Imagen != nil && form.Imagen.Size > maxImagenBytes {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"imagen": "max"}))
		return form, false
	}
	return form, true
}
