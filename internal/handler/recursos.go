package handler

import (
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// RecursoHandler serves one admin resource page: list with search and
// pagination, detail, create, update and confirmed delete.
type RecursoHandler[T service.Buscable] struct {
	svc  service.RecursoService[T]
	base string
}

// NewRecursoHandler mounts svc under base ("/admin/categorias").
func NewRecursoHandler[T service.Buscable](svc service.RecursoService[T], base string) *RecursoHandler[T] {
	return &RecursoHandler[T]{svc: svc, base: base}
}

// Register adds the CRUD routes to g, which is rooted at h.base.
func (h *RecursoHandler[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.Listar)
	g.GET("/:id", h.Obtener)
	g.POST("", h.Crear)
	g.PUT("/:id", h.Actualizar)
	g.DELETE("/:id", h.Eliminar)
}

// Listar GET <base>?q=&page=
// A failed fetch still answers 200 with the error banner set.
func (h *RecursoHandler[T]) Listar(c *gin.Context) {
	s := middleware.GetSesion(c)
	c.JSON(http.StatusOK, h.svc.Pagina(c.Request.Context(), s.Token, c.Query("q"), queryInt(c, "page", 1)))
}

// Obtener GET <base>/:id
func (h *RecursoHandler[T]) Obtener(c *gin.Context) {
	s := middleware.GetSesion(c)
	v, err := h.svc.Obtener(c.Request.Context(), s.Token, model.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Crear POST <base>
func (h *RecursoHandler[T]) Crear(c *gin.Context) {
	var v T
	if !bindAndValidate(c, &v) {
		return
	}
	s := middleware.GetSesion(c)
	p, err := h.svc.Crear(c.Request.Context(), s.Token, v)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Actualizar PUT <base>/:id
func (h *RecursoHandler[T]) Actualizar(c *gin.Context) {
	var v T
	if !bindAndValidate(c, &v) {
		return
	}
	s := middleware.GetSesion(c)
	p, err := h.svc.Actualizar(c.Request.Context(), s.Token, model.ID(c.Param("id")), v)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Eliminar DELETE <base>/:id?confirmar=true
// Without confirmation nothing is sent to the backend and the client gets
// the URL to repeat the request with.
func (h *RecursoHandler[T]) Eliminar(c *gin.Context) {
	id := c.Param("id")
	if c.Query("confirmar") != "true" {
		c.JSON(http.StatusPreconditionRequired, apierror.NewConfirmation(
			"¿Está seguro de que desea eliminar este registro?",
			h.base+"/"+id+"?confirmar=true",
		))
		return
	}
	s := middleware.GetSesion(c)
	p, err := h.svc.Eliminar(c.Request.Context(), s.Token, model.ID(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
