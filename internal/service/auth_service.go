package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type AuthService interface {
	// Login authenticates against the backend and stores token and user under
	// sesionID. The returned destination is the user's landing page.
	Login(ctx context.Context, sesionID string, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout removes every session key and the cart.
	Logout(ctx context.Context, sesionID string) error
}

type authService struct {
	api      *infra.APIClient
	store    repository.SessionStore
	carritos repository.CarritoRepository
	ttl      time.Duration
}

// DefaultSessionTTL applies when the configured lifetime is not positive;
// a session record never lives without expiry.
const DefaultSessionTTL = 8 * time.Hour

func NewAuthService(api *infra.APIClient, store repository.SessionStore, carritos repository.CarritoRepository, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &authService{api: api, store: store, carritos: carritos, ttl: ttl}
}

func (s *authService) Login(ctx context.Context, sesionID string, req dto.LoginRequest) (*dto.LoginResponse, error) {
	raw, err := s.api.Do(ctx, "", http.MethodPost, "/auth/login", req)
	if err != nil {
		status := infra.StatusOf(err)
		if status == http.StatusUnauthorized || status == http.StatusBadRequest || status == http.StatusNotFound {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	resp, err := infra.Decode[dto.BackendLoginResponse](raw)
	if err != nil {
		return nil, err
	}
	usuario := resp.User
	if usuario == nil {
		usuario = resp.Usuario
	}
	if resp.Token == "" || usuario == nil {
		return nil, ErrLoginInvalido
	}
	if !usuario.Tipo.Valid() {
		log.Warn().Str("tipo", string(usuario.Tipo)).Msg("login: rol desconocido")
	}

	ttl, err := ttlDesdeToken(resp.Token, s.ttl, time.Now())
	if err != nil {
		return nil, err
	}
	sesion := model.Sesion{Token: resp.Token, Usuario: usuario}
	if err := s.store.Set(ctx, sesionID, sesion, ttl); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Usuario: *usuario, Destino: model.DefaultLanding(usuario.Tipo)}, nil
}

func (s *authService) Logout(ctx context.Context, sesionID string) error {
	return errors.Join(
		s.store.Clear(ctx, sesionID),
		s.carritos.Delete(ctx, sesionID),
	)
}

// ttlDesdeToken keeps the session no longer than the backend token is valid.
// The token is not verified here; the backend verifies it on every call.
// A token that is already expired fails the login.
func ttlDesdeToken(token string, fallback time.Duration, now time.Time) (time.Duration, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback, nil
	}
	ttl := exp.Sub(now)
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: token vencido", ErrLoginInvalido)
	}
	if fallback > 0 && ttl > fallback {
		return fallback, nil
	}
	return ttl, nil
}
