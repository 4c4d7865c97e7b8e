package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Report fields by their wire name (json, else form).
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service errors to statuses. Anything else, backend
// failures included, is left to middleware.ErrorHandler.
func respondError(c *gin.Context, err error) {
	status := 0
	switch {
	case errors.Is(err, service.ErrCredenciales), errors.Is(err, repository.ErrSesionNoEncontrada):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrLoginInvalido):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrLineaNoEncontrada), errors.Is(err, service.ErrReporteInvalido):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCajaCerrada), errors.Is(err, service.ErrCajaYaAbierta):
		status = http.StatusConflict
	case errors.Is(err, service.ErrCarritoVacio), errors.Is(err, service.ErrPagoInsuficiente),
		errors.Is(err, service.ErrRangoFechas), errors.Is(err, service.ErrFechaInvalida),
		errors.Is(err, service.ErrVariantesInvalidas):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrEnvioNoDisponible):
		status = http.StatusServiceUnavailable
	}
	if status != 0 {
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	_ = c.Error(err)
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
