package service

import (
	"github.com/HanielHB/multienda-multicaja-sub000/internal/dto"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// AgregarLinea adds one unit of the product: a new line at the end, or one
// more unit of the existing line.
func AgregarLinea(c model.Carrito, l model.LineaCarrito) model.Carrito {
	for i := range c.Lineas {
		if c.Lineas[i].ID == l.ID {
			c.Lineas[i].Cantidad++
			return c
		}
	}
	l.Cantidad = 1
	c.Lineas = append(c.Lineas, l)
	return c
}

// CambiarCantidad adds delta to a line's quantity. Quantities never drop
// below 1; removing a line is QuitarLinea.
func CambiarCantidad(c model.Carrito, id model.ID, delta int) (model.Carrito, error) {
	for i := range c.Lineas {
		if c.Lineas[i].ID == id {
			c.Lineas[i].Cantidad = max(1, c.Lineas[i].Cantidad+delta)
			return c, nil
		}
	}
	return c, ErrLineaNoEncontrada
}

func QuitarLinea(c model.Carrito, id model.ID) (model.Carrito, error) {
	for i := range c.Lineas {
		if c.Lineas[i].ID == id {
			c.Lineas = append(c.Lineas[:i:i], c.Lineas[i+1:]...)
			return c, nil
		}
	}
	return c, ErrLineaNoEncontrada
}

func subtotal(l model.LineaCarrito) decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// TotalCarrito is the sum of unitPrice x quantity, rounded to cents.
func TotalCarrito(c model.Carrito) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lineas {
		total = total.Add(subtotal(l))
	}
	return total.Round(2)
}

// Cobro is the payment overlay state for a tendered amount.
type Cobro struct {
	Total       decimal.Decimal
	Recibido    decimal.Decimal
	Cambio      decimal.Decimal
	Restante    decimal.Decimal
	PuedeCobrar bool
}

// CalcularCobro derives change and remaining amount from the cart total and
// the amount received. A negative amount counts as zero.
func CalcularCobro(c model.Carrito, recibido decimal.Decimal) Cobro {
	total := TotalCarrito(c)
	if recibido.IsNegative() {
		recibido = decimal.Zero
	}
	recibido = recibido.Round(2)
	cambio := decimal.Max(decimal.Zero, recibido.Sub(total))
	restante := decimal.Max(decimal.Zero, total.Sub(recibido))
	return Cobro{
		Total:       total,
		Recibido:    recibido,
		Cambio:      cambio,
		Restante:    restante,
		PuedeCobrar: len(c.Lineas) > 0 && restante.IsZero(),
	}
}

func (c Cobro) Response() dto.CobroResponse {
	return dto.CobroResponse{
		Total:       c.Total.StringFixed(2),
		Recibido:    c.Recibido.StringFixed(2),
		Cambio:      c.Cambio.StringFixed(2),
		Restante:    c.Restante.StringFixed(2),
		PuedeCobrar: c.PuedeCobrar,
	}
}

func lineasResponse(c model.Carrito) []dto.LineaCarritoResponse {
	out := make([]dto.LineaCarritoResponse, 0, len(c.Lineas))
	for _, l := range c.Lineas {
		out = append(out, dto.LineaCarritoResponse{
			ID:             l.ID,
			Nombre:         l.Nombre,
			PrecioUnitario: l.PrecioUnitario.StringFixed(2),
			Cantidad:       l.Cantidad,
			Subtotal:       subtotal(l).StringFixed(2),
		})
	}
	return out
}

func carritoResponse(c model.Carrito, cajaActiva string) dto.CarritoResponse {
	return dto.CarritoResponse{
		Lineas:     lineasResponse(c),
		Total:      TotalCarrito(c).StringFixed(2),
		CajaActiva: cajaActiva,
	}
}
