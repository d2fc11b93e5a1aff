package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

// RequireSuperAdmin restricts a route group to the elevated role. Must run
// after AuthMiddleware.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		admin, ok := CurrentAdmin(c)
		if !ok {
			prometheus.RecordAuthError("missing_identity")
			return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
		}
		if !admin.IsElevated() {
			log.Warn("Non-elevated administrator hit a superadmin route",
				zap.Uint("admin_id", admin.ID))
			prometheus.RecordAuthError("forbidden")
			return resp.Fail(c, http.StatusForbidden, "se requiere el rol de superadministrador")
		}

		return next(c)
	}
}
