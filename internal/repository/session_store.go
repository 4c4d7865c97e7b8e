package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
)

// Field names of a stored session; they match the keys the admin UI used in
// browser storage.
const (
	campoToken        = "token"
	campoUsuario      = "user"
	campoCajaActiva   = "cajaActiva"
	campoSesionCajaID = "sesionCajaId"
)

// ErrSesionNoEncontrada is returned by field-level writes on a record that
// expired or was cleared.
var ErrSesionNoEncontrada = errors.New("sesión no encontrada o vencida")

// SessionStore keeps one session record per browser session id.
// A missing record reads as an empty model.Sesion, not as an error.
type SessionStore interface {
	Get(ctx context.Context, id string) (model.Sesion, error)
	Set(ctx context.Context, id string, s model.Sesion, ttl time.Duration) error
	// SetCajaActiva writes the open-register markers without touching the rest.
	// It never recreates a missing record: ErrSesionNoEncontrada.
	SetCajaActiva(ctx context.Context, id, cajaID, sesionCajaID string) error
	// ClearCajaActiva removes both open-register markers.
	ClearCajaActiva(ctx context.Context, id string) error
	// Clear removes every field of the record.
	Clear(ctx context.Context, id string) error
}

func encodeSesion(s model.Sesion) (map[string]string, error) {
	campos := map[string]string{}
	if s.Token != "" {
		campos[campoToken] = s.Token
	}
	if s.Usuario != nil {
		b, err := json.Marshal(s.Usuario)
		if err != nil {
			return nil, err
		}
		campos[campoUsuario] = string(b)
	}
	if s.CajaActiva != "" {
		campos[campoCajaActiva] = s.CajaActiva
	}
	if s.SesionCajaID != "" {
		campos[campoSesionCajaID] = s.SesionCajaID
	}
	return campos, nil
}

// decodeSesion never fails on a corrupt user field: the record is then read as
// carrying no user, which the guard treats as an unknown role.
func decodeSesion(campos map[string]string) model.Sesion {
	s := model.Sesion{
		Token:        campos[campoToken],
		CajaActiva:   campos[campoCajaActiva],
		SesionCajaID: campos[campoSesionCajaID],
	}
	if raw, ok := campos[campoUsuario]; ok && raw != "" {
		var u model.UsuarioSesion
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.Usuario = &u
		}
	}
	return s.Normalize()
}
