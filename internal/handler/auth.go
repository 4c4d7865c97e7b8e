package handler

import (
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	svc      service.AuthService
	sessions *middleware.Sessions
}

func NewAuthHandler(svc service.AuthService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

// LoginPage GET / and GET /login. A browser that already holds a session is
// sent to its landing page.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	s := middleware.GetSesion(c)
	if s.Autenticada() {
		c.Redirect(http.StatusFound, model.DefaultLanding(s.Rol()))
		return
	}
	c.JSON(http.StatusOK, dto.LoginView{Titulo: "Iniciar sesión"})
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 429 {object} apierror.APIError
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	id := middleware.NewSessionID()
	resp, err := h.svc.Login(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if prev := middleware.GetSesionID(c); prev != "" {
		if err := h.svc.Logout(c.Request.Context(), prev); err != nil {
			log.Warn().Err(err).Msg("login: no se pudo limpiar la sesión anterior")
		}
	}
	h.sessions.Issue(c, id)
	c.JSON(http.StatusOK, resp)
}

// LogoutPrompt GET /admin/logout
func (h *AuthHandler) LogoutPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, service.LogoutPrompt(middleware.GetSesion(c)))
}

// Logout godoc
// @Summary Cierra la sesion y vuelve al login
// @Tags auth
// @Success 302
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if id := middleware.GetSesionID(c); id != "" {
		if err := h.svc.Logout(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}
	}
	h.sessions.Expire(c)
	c.Redirect(http.StatusFound, model.PathLogin)
}

// Layout GET /admin: the user and the role-filtered menu.
func Layout(c *gin.Context) {
	c.JSON(http.StatusOK, service.Layout(middleware.GetSesion(c)))
}
