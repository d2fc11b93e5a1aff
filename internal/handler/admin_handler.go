package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/middleware"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
)

// AdminHandler serves the superadmin-only account management surface.
// The route group is gated by middleware.RequireSuperAdmin.
type AdminHandler struct {
	Admins         *store.AdminStore
	Establishments *store.EstablishmentStore
}

// NewAdminHandler creates the superadmin handler
func NewAdminHandler(admins *store.AdminStore, establishments *store.EstablishmentStore) *AdminHandler {
	return &AdminHandler{Admins: admins, Establishments: establishments}
}

// ListAdmins returns a page of administrator accounts, passwords excluded
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	log := logger.FromContext(c)

	var page model.PaginationQuery
	if err := c.Bind(&page); err != nil {
		return resp.Fail(c, http.StatusBadRequest, "paginacion no valida")
	}
	page.Normalize()

	admins, total, err := h.Admins.List(page)
	if err != nil {
		return writeError(c, log, err)
	}

	return resp.OK(c, http.StatusOK, echo.Map{
		"administradores": admins,
		"pagination":      model.NewPaginationResult(total, page),
	})
}

// ToggleAdminActive flips an account's active flag. A superadmin cannot
// lock themselves out.
func (h *AdminHandler) ToggleAdminActive(c echo.Context) error {
	log := logger.FromContext(c)

	current, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return resp.Fail(c, http.StatusBadRequest, "identificador no valido")
	}
	if uint(id) == current.ID {
		return resp.Fail(c, http.StatusBadRequest, "no puede desactivar su propia cuenta")
	}

	admin, err := h.Admins.ToggleActive(uint(id))
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Administrator active flag toggled",
		zap.Uint("admin_id", admin.ID),
		zap.Bool("active", admin.Active))
	return resp.OKMessage(c, http.StatusOK, "estado actualizado", admin)
}

// ListAllEstablishments returns every establishment, inactive ones
// included
func (h *AdminHandler) ListAllEstablishments(c echo.Context) error {
	log := logger.FromContext(c)

	var page model.PaginationQuery
	if err := c.Bind(&page); err != nil {
		return resp.Fail(c, http.StatusBadRequest, "paginacion no valida")
	}
	page.Normalize()

	ests, total, err := h.Establishments.ListAll(page)
	if err != nil {
		return writeError(c, log, err)
	}

	return resp.OK(c, http.StatusOK, echo.Map{
		"establecimientos": ests,
		"pagination":       model.NewPaginationResult(total, page),
	})
}
