package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CajaService opens and closes cash registers and keeps the session's
// cajaActiva / sesionCajaId markers in step with the backend.
type CajaService interface {
	Listar(ctx context.Context, s model.Sesion) dto.AperturaCajasResponse
	Abrir(ctx context.Context, sesionID string, s model.Sesion, cajaID model.ID, req dto.AbrirCajaRequest) (*dto.CajaAbiertaResponse, error)
	Cerrar(ctx context.Context, sesionID string, s model.Sesion, req dto.CerrarCajaRequest) error
}

type cajaService struct {
	api   *infra.APIClient
	store repository.SessionStore
}

func NewCajaService(api *infra.APIClient, store repository.SessionStore) CajaService {
	return &cajaService{api: api, store: store}
}

func (s *cajaService) Listar(ctx context.Context, ses model.Sesion) dto.AperturaCajasResponse {
	resp := dto.AperturaCajasResponse{
		Cajas:        []model.Caja{},
		CajaActiva:   ses.CajaActiva,
		SesionCajaID: ses.SesionCajaID,
	}
	raw, err := s.api.Do(ctx, ses.Token, http.MethodGet, "/cajas", nil)
	if err == nil {
		resp.Cajas, err = infra.DecodeList[model.Caja](raw)
	}
	if err != nil {
		log.Warn().Err(err).Msg("caja: no se pudo cargar la lista")
		resp.Cajas = []model.Caja{}
		resp.Error = infra.MessageOf(err)
	}
	return resp
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// One register per session. Re-opening the register already marked is
// forwarded so the backend decides.

func (s *cajaService) Abrir(ctx context.Context, sesionID string, ses model.Sesion, cajaID model.ID, req dto.AbrirCajaRequest) (*dto.CajaAbiertaResponse, error) {
	if ses.CajaAbierta() && ses.CajaActiva != string(cajaID) {
		return nil, ErrCajaYaAbierta
	}
	body := map[string]any{"montoInicial": monto(req.MontoInicial)}
	raw, err := s.api.Do(ctx, ses.Token, http.MethodPost, "/cajas/"+cajaID.Segment()+"/abrir", body)
	if err != nil {
		return nil, err
	}
	apertura, err := infra.Decode[dto.BackendAperturaResponse](raw)
	if err != nil {
		return nil, err
	}
	sesionCajaID := string(apertura.SesionCajaID)
	if sesionCajaID == "" {
		sesionCajaID = string(apertura.SesionID)
	}
	if err := s.store.SetCajaActiva(ctx, sesionID, string(cajaID), sesionCajaID); err != nil {
		return nil, err
	}
	log.Info().Str("caja", string(cajaID)).Str("sesion_caja_id", sesionCajaID).Msg("caja: abierta")
	return &dto.CajaAbiertaResponse{CajaActiva: string(cajaID), SesionCajaID: sesionCajaID}, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Markers are cleared only after the backend accepted the close.

func (s *cajaService) Cerrar(ctx context.Context, sesionID string, ses model.Sesion, req dto.CerrarCajaRequest) error {
	if !ses.CajaAbierta() {
		return ErrCajaCerrada
	}
	body := map[string]any{"montoFinal": monto(req.MontoFinal)}
	if ses.SesionCajaID != "" {
		body["sesionCajaId"] = ses.SesionCajaID
	}
	if req.Observaciones != "" {
		body["observaciones"] = req.Observaciones
	}
	if _, err := s.api.Do(ctx, ses.Token, http.MethodPost, "/cajas/"+model.ID(ses.CajaActiva).Segment()+"/cerrar", body); err != nil {
		return err
	}
	if err := s.store.ClearCajaActiva(ctx, sesionID); err != nil {
		return err
	}
	log.Info().Str("caja", ses.CajaActiva).Str("sesion_caja_id", ses.SesionCajaID).Msg("caja: cerrada")
	return nil
}

// monto sends an amount as a JSON number with two decimals.
func monto(d decimal.Decimal) json.Number { return json.Number(d.StringFixed(2)) }
