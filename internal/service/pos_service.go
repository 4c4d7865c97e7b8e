package service

import (
	"context"
	"net/http"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// POSService runs the point-of-sale screen for one session. sesionID keys
// the cart; the session record supplies the token and the open register.
type POSService interface {
	Carrito(ctx context.Context, sesionID string, s model.Sesion) (dto.CarritoResponse, error)
	Agregar(ctx context.Context, sesionID string, s model.Sesion, productoID model.ID) (dto.CarritoResponse, error)
	CambiarCantidad(ctx context.Context, sesionID string, s model.Sesion, lineaID model.ID, delta int) (dto.CarritoResponse, error)
	Quitar(ctx context.Context, sesionID string, s model.Sesion, lineaID model.ID) (dto.CarritoResponse, error)
	Vaciar(ctx context.Context, sesionID string) error
	Cotizar(ctx context.Context, sesionID string, recibido decimal.Decimal) (dto.CobroResponse, error)
	Cobrar(ctx context.Context, sesionID string, s model.Sesion, recibido decimal.Decimal) (*dto.VentaResponse, error)
	RegistrarMovimiento(ctx context.Context, s model.Sesion, req dto.MovimientoRequest) (*dto.MovimientoResponse, error)
}

type posService struct {
	api      *infra.APIClient
	carritos repository.CarritoRepository
	now      func() time.Time
}

func NewPOSService(api *infra.APIClient, carritos repository.CarritoRepository) POSService {
	return &posService{api: api, carritos: carritos, now: time.Now}
}

func (s *posService) Carrito(ctx context.Context, sesionID string, ses model.Sesion) (dto.CarritoResponse, error) {
	c, err := s.carritos.Get(ctx, sesionID)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	return carritoResponse(c, ses.CajaActiva), nil
}

// Agregar looks the product up in the backend so name and price come from
// the catalogue, not from the client.
func (s *posService) Agregar(ctx context.Context, sesionID string, ses model.Sesion, productoID model.ID) (dto.CarritoResponse, error) {
	raw, err := s.api.Do(ctx, ses.Token, http.MethodGet, "/productos/"+productoID.Segment(), nil)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	p, err := infra.Decode[model.Producto](raw)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	if p.ID == "" {
		p.ID = productoID
	}
	return s.mutar(ctx, sesionID, ses, func(c model.Carrito) (model.Carrito, error) {
		return AgregarLinea(c, model.LineaCarrito{ID: p.ID, Nombre: p.Nombre, PrecioUnitario: p.Precio}), nil
	})
}

func (s *posService) CambiarCantidad(ctx context.Context, sesionID string, ses model.Sesion, lineaID model.ID, delta int) (dto.CarritoResponse, error) {
	return s.mutar(ctx, sesionID, ses, func(c model.Carrito) (model.Carrito, error) {
		return CambiarCantidad(c, lineaID, delta)
	})
}

func (s *posService) Quitar(ctx context.Context, sesionID string, ses model.Sesion, lineaID model.ID) (dto.CarritoResponse, error) {
	return s.mutar(ctx, sesionID, ses, func(c model.Carrito) (model.Carrito, error) {
		return QuitarLinea(c, lineaID)
	})
}

func (s *posService) mutar(ctx context.Context, sesionID string, ses model.Sesion, fn func(model.Carrito) (model.Carrito, error)) (dto.CarritoResponse, error) {
	c, err := s.carritos.Get(ctx, sesionID)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	c, err = fn(c)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	if err := s.carritos.Save(ctx, sesionID, c); err != nil {
		return dto.CarritoResponse{}, err
	}
	return carritoResponse(c, ses.CajaActiva), nil
}

func (s *posService) Vaciar(ctx context.Context, sesionID string) error {
	return s.carritos.Delete(ctx, sesionID)
}

func (s *posService) Cotizar(ctx context.Context, sesionID string, recibido decimal.Decimal) (dto.CobroResponse, error) {
	c, err := s.carritos.Get(ctx, sesionID)
	if err != nil {
		return dto.CobroResponse{}, err
	}
	return CalcularCobro(c, recibido).Response(), nil
}

// ── Cobrar ────────────────────────────────────────────────────────────────────
// The sale is not posted to the backend: it is logged and the cart cleared.

func (s *posService) Cobrar(ctx context.Context, sesionID string, ses model.Sesion, recibido decimal.Decimal) (*dto.VentaResponse, error) {
	if !ses.CajaAbierta() {
		return nil, ErrCajaCerrada
	}
	c, err := s.carritos.Get(ctx, sesionID)
	if err != nil {
		return nil, err
	}
	if len(c.Lineas) == 0 {
		return nil, ErrCarritoVacio
	}
	cobro := CalcularCobro(c, recibido)
	if !cobro.PuedeCobrar {
		return nil, ErrPagoInsuficiente
	}

	venta := &dto.VentaResponse{
		Total:    cobro.Total.StringFixed(2),
		Recibido: cobro.Recibido.StringFixed(2),
		Cambio:   cobro.Cambio.StringFixed(2),
		Lineas:   lineasResponse(c),
		Fecha:    s.now().Format(time.RFC3339),
	}
	log.Info().
		Str("caja", ses.CajaActiva).
		Str("sesion_caja_id", ses.SesionCajaID).
		Str("usuario", usuarioID(ses)).
		Str("total", venta.Total).
		Str("recibido", venta.Recibido).
		Str("cambio", venta.Cambio).
		Int("lineas", len(c.Lineas)).
		Msg("pos: venta cobrada")

	if err := s.carritos.Delete(ctx, sesionID); err != nil {
		return nil, err
	}
	return venta, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Manual cash-in / cash-out against the open register. Logged only.

func (s *posService) RegistrarMovimiento(_ context.Context, ses model.Sesion, req dto.MovimientoRequest) (*dto.MovimientoResponse, error) {
	if !ses.CajaAbierta() {
		return nil, ErrCajaCerrada
	}
	mov := model.MovimientoCaja{
		Tipo:      req.Tipo,
		Monto:     req.Monto.Round(2),
		Motivo:    req.Motivo,
		CajaID:    ses.CajaActiva,
		CreatedAt: s.now(),
	}
	if ses.Usuario != nil {
		mov.Usuario = ses.Usuario.ID
	}
	log.Info().
		Str("caja", mov.CajaID).
		Str("sesion_caja_id", ses.SesionCajaID).
		Str("usuario", string(mov.Usuario)).
		Str("tipo", mov.Tipo).
		Str("monto", mov.Monto.StringFixed(2)).
		Str("motivo", mov.Motivo).
		Msg("pos: movimiento de caja")

	return &dto.MovimientoResponse{
		Tipo:   mov.Tipo,
		Monto:  mov.Monto.StringFixed(2),
		Motivo: mov.Motivo,
		CajaID: mov.CajaID,
	}, nil
}

func usuarioID(s model.Sesion) string {
	if s.Usuario == nil {
		return ""
	}
	return string(s.Usuario.ID)
}
