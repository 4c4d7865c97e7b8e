package middleware

import (
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	SesionKey   = "sesion"
	SesionIDKey = "sesion_id"
)

// CookieConfig describes the browser cookie holding the session id.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Sessions resolves the session record of each request and guards the
// admin routes with it.
type Sessions struct {
	store  repository.SessionStore
	cookie CookieConfig
}

func NewSessions(store repository.SessionStore, cookie CookieConfig) *Sessions {
	return &Sessions{store: store, cookie: cookie}
}

// Load reads the session cookie and puts the record in the context. It
// never blocks the request; a missing cookie yields an empty record.
func (s *Sessions) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.load(c) {
			return
		}
		c.Next()
	}
}

func (s *Sessions) load(c *gin.Context) bool {
	if _, ok := c.Get(SesionKey); ok {
		return true
	}
	id, err := c.Cookie(s.cookie.Name)
	if err != nil || id == "" {
		c.Set(SesionKey, model.Sesion{})
		return true
	}
	ses, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("session: load failed")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, apierror.New("Sesión no disponible. Intente nuevamente."))
		return false
	}
	c.Set(SesionIDKey, id)
	c.Set(SesionKey, ses.Normalize())
	return true
}

// Require guards a route: no token redirects to the login page, a role
// outside roles redirects to the role's landing page. No roles admits any
// authenticated user.
func (s *Sessions) Require(roles ...model.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.guard(c, roles)
	}
}

// RequireRoute guards with the roles of the route table entry governing the
// request path, so the menu and the guard never disagree.
func (s *Sessions) RequireRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		var roles []model.Rol
		if r, ok := model.BuscarRuta(c.Request.URL.Path); ok {
			roles = r.Roles
		}
		s.guard(c, roles)
	}
}

func (s *Sessions) guard(c *gin.Context, roles []model.Rol) {
	if !s.load(c) {
		return
	}
	d := service.Decidir(GetSesion(c), roles)
	if !d.Permitido {
		c.Redirect(http.StatusFound, d.Redireccion)
		c.Abort()
		return
	}
	c.Next()
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string { return uuid.NewString() }

// Issue sends the cookie for session id. Login always issues a new id so an
// id never survives a change of user.
func (s *Sessions) Issue(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookie.Name, id, int(s.cookie.MaxAge.Seconds()), "/", "", s.cookie.Secure, true)
	c.Set(SesionIDKey, id)
}

// Expire deletes the session cookie from the browser.
func (s *Sessions) Expire(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookie.Name, "", -1, "/", "", s.cookie.Secure, true)
}

// GetSesion returns the record loaded for the request, or an empty one.
func GetSesion(c *gin.Context) model.Sesion {
	v, ok := c.Get(SesionKey)
	if !ok {
		return model.Sesion{}
	}
	ses, _ := v.(model.Sesion)
	return ses
}

// GetSesionID returns the session id from the cookie, or "".
func GetSesionID(c *gin.Context) string {
	return c.GetString(SesionIDKey)
}
