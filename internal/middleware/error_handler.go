package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler turns errors attached with c.Error into the JSON envelope.
// Backend failures keep their status and message; anything else is a 500
// with a generic message. Stack traces never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var apiErr *infra.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Int("backend_status", apiErr.Status).
				Err(err).
				Msg("backend error")
			c.AbortWithStatusJSON(apiErr.Status, apierror.New(apiErr.Message))
			return
		}
		if apiErr != nil {
			log.Error().Str("request_id", c.GetString(RequestIDKey)).Err(err).Msg("backend unreachable")
			c.AbortWithStatusJSON(http.StatusBadGateway, apierror.New(apiErr.Message))
			return
		}

		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg("unhandled error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, request_id
// and, when a session was loaded, the user's role.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		if rol := GetSesion(c).Rol(); rol != "" {
			ev = ev.Str("rol", string(rol))
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
