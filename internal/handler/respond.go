package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/auth"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

// writeError maps a store or guard error to the response envelope. Every
// failure is terminal; nothing retries. Unexpected errors are logged and
// reported as an internal failure without leaking detail.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	if ve, ok := store.AsValidationError(err); ok {
		return resp.FailFields(c, http.StatusBadRequest, "datos no validos", ve.Fields)
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return resp.Fail(c, http.StatusNotFound, "recurso no encontrado")
	case errors.Is(err, store.ErrDuplicateEmail):
		return resp.Fail(c, http.StatusConflict, "el email ya esta registrado")
	case errors.Is(err, store.ErrEstablishmentExists):
		return resp.Fail(c, http.StatusConflict, "ya existe un establecimiento activo para esta cuenta")
	case errors.Is(err, store.ErrInvalidCredentials):
		return resp.Fail(c, http.StatusUnauthorized, "credenciales no validas")
	case errors.Is(err, auth.ErrUnauthenticated):
		prometheus.RecordAuthError("unauthenticated")
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	case errors.Is(err, auth.ErrForbidden):
		prometheus.RecordAuthError("forbidden")
		return resp.Fail(c, http.StatusForbidden, "no tiene permiso sobre este establecimiento")
	}

	log.Error("Unexpected error", zap.Error(err))
	return resp.Fail(c, http.StatusInternalServerError, "error interno del servidor")
}
