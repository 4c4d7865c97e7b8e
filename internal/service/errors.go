package service

import "errors"

var (
	ErrCredenciales       = errors.New("Usuario o contraseña incorrectos")
	ErrLoginInvalido      = errors.New("Respuesta de login inválida")
	ErrCarritoVacio       = errors.New("El carrito está vacío")
	ErrLineaNoEncontrada  = errors.New("El producto no está en el carrito")
	ErrPagoInsuficiente   = errors.New("El monto recibido no cubre el total")
	ErrCajaCerrada        = errors.New("No hay una caja abierta en esta sesión")
	ErrCajaYaAbierta      = errors.New("Ya hay otra caja abierta en esta sesión")
	ErrReporteInvalido    = errors.New("Tipo de reporte desconocido")
	ErrRangoFechas        = errors.New("La fecha de inicio no puede ser posterior a la fecha de fin")
	ErrFechaInvalida      = errors.New("Fecha inválida, use el formato AAAA-MM-DD")
	ErrEnvioNoDisponible  = errors.New("El envío de reportes por correo no está configurado")
	ErrVariantesInvalidas = errors.New("Variantes inválidas")
)
