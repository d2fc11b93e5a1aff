package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/jwtutil"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

// adminContextKey is where the resolved administrator lives in the echo
// context
const adminContextKey = "admin"

// AuthMiddleware resolves the Bearer token to a live administrator record.
// The token only identifies the account; the record itself is loaded on
// every request so a deactivated account is rejected immediately, not
// when its token expires.
func AuthMiddleware(admins *store.AdminStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return resp.Fail(c, http.StatusUnauthorized, "se requiere un token de autorizacion")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return resp.Fail(c, http.StatusUnauthorized, "formato de autorizacion no valido, se espera un token Bearer")
			}

			tokenString := parts[1]

			claims, err := jwtutil.ValidateToken(tokenString)
			if err != nil {
				if errors.Is(err, jwtutil.ErrExpiredToken) {
					log.Warn("Expired JWT token")
					prometheus.RecordAuthError("expired_token")
					return resp.Fail(c, http.StatusUnauthorized, "el token ha expirado, inicie sesion de nuevo")
				}
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return resp.Fail(c, http.StatusUnauthorized, "token no valido")
			}

			admin, err := admins.FindByID(claims.AdminID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Warn("Token references unknown administrator", zap.Uint("admin_id", claims.AdminID))
					prometheus.RecordAuthError("unknown_admin")
					return resp.Fail(c, http.StatusUnauthorized, "la cuenta ya no existe")
				}
				log.Error("Administrator lookup failed", zap.Error(err))
				return resp.Fail(c, http.StatusInternalServerError, "error interno del servidor")
			}
			if !admin.Active {
				log.Warn("Deactivated administrator attempted access", zap.Uint("admin_id", admin.ID))
				prometheus.RecordAuthError("inactive_admin")
				return resp.Fail(c, http.StatusUnauthorized, "la cuenta esta desactivada")
			}

			c.Set(adminContextKey, admin)
			log.Debug("Administrator authenticated",
				zap.Uint("admin_id", admin.ID),
				zap.String("email", admin.Email))

			return next(c)
		}
	}
}

// CurrentAdmin returns the administrator resolved by AuthMiddleware
func CurrentAdmin(c echo.Context) (*model.Administrator, bool) {
	admin, ok := c.Get(adminContextKey).(*model.Administrator)
	return admin, ok
}

// SetCurrentAdmin stashes an administrator in the context. Exposed for
// handler tests.
func SetCurrentAdmin(c echo.Context, admin *model.Administrator) {
	c.Set(adminContextKey, admin)
}
