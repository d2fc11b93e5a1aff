package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/auth"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/middleware"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

// EstablishmentHandler serves the owner-scoped establishment surface.
// Every mutation runs the ownership guard before touching the store.
type EstablishmentHandler struct {
	Establishments *store.EstablishmentStore
	Guard          *auth.Guard
}

// NewEstablishmentHandler creates the guarded establishment handler
func NewEstablishmentHandler(establishments *store.EstablishmentStore, guard *auth.Guard) *EstablishmentHandler {
	return &EstablishmentHandler{Establishments: establishments, Guard: guard}
}

// Create registers the authenticated administrator's establishment
func (h *EstablishmentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}

	var req store.CreateInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse establishment creation request", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("create")
	defer prometheus.TrackDBOperation("insert")(time.Now())
	est, err := h.Establishments.CreateForAdmin(req, admin.ID)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment created",
		zap.Uint("id", est.ID),
		zap.Uint("owner_id", est.OwnerID),
		zap.String("nombre", est.Nombre))
	return resp.OKMessage(c, http.StatusCreated, "establecimiento creado", est)
}

// Mine returns the authenticated administrator's active establishment
func (h *EstablishmentHandler) Mine(c echo.Context) error {
	log := logger.FromContext(c)

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}

	est, err := h.Establishments.FindActiveByOwner(admin.ID)
	if err != nil {
		return writeError(c, log, err)
	}
	return resp.OK(c, http.StatusOK, est)
}

// Get returns one establishment after the ownership check
func (h *EstablishmentHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}
	return resp.OK(c, http.StatusOK, est)
}

// UpdateInfo replaces name, description, phone and email
func (h *EstablishmentHandler) UpdateInfo(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req store.BasicInfoUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse info update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("update_info")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.UpdateBasicInfo(est.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment info updated", zap.Uint("id", est.ID))
	return resp.OKMessage(c, http.StatusOK, "informacion actualizada", updated)
}

// UpdateAddress replaces the address triple
func (h *EstablishmentHandler) UpdateAddress(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req store.AddressUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse address update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("update_address")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.UpdateAddress(est.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment address updated", zap.Uint("id", est.ID))
	return resp.OKMessage(c, http.StatusOK, "direccion actualizada", updated)
}

// UpdateSchedule merges the submitted days into the weekly schedule
func (h *EstablishmentHandler) UpdateSchedule(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req map[string]store.ScheduleDayInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse schedule update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("update_schedule")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.UpdateSchedule(est.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment schedule updated", zap.Uint("id", est.ID))
	return resp.OKMessage(c, http.StatusOK, "horario actualizado", updated)
}

// UpdateMenu replaces the whole menu document
func (h *EstablishmentHandler) UpdateMenu(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req struct {
		Categorias []model.MenuCategory `json:"categorias"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse menu update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}
	if req.Categorias == nil {
		return resp.Fail(c, http.StatusBadRequest, "se espera una lista de categorias")
	}

	prometheus.RecordEstablishmentOperation("update_menu")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.UpdateMenu(est.ID, req.Categorias)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment menu updated", zap.Uint("id", est.ID))
	return resp.OKMessage(c, http.StatusOK, "menu actualizado", updated)
}

// UpdateSocialLinks replaces the social profile links
func (h *EstablishmentHandler) UpdateSocialLinks(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req store.SocialLinksUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse social links update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("update_socials")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.UpdateSocialLinks(est.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment social links updated", zap.Uint("id", est.ID))
	return resp.OKMessage(c, http.StatusOK, "redes sociales actualizadas", updated)
}

// AddImage appends image metadata to the establishment
func (h *EstablishmentHandler) AddImage(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	var req model.EstablishmentImage
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse image metadata", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	prometheus.RecordEstablishmentOperation("add_image")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.AddImage(est.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment image added",
		zap.Uint("id", est.ID),
		zap.String("filename", req.Filename))
	return resp.OKMessage(c, http.StatusCreated, "imagen registrada", updated)
}

// RemoveImage deletes image metadata by filename
func (h *EstablishmentHandler) RemoveImage(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	filename := c.Param("filename")

	prometheus.RecordEstablishmentOperation("remove_image")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.RemoveImage(est.ID, filename)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment image removed",
		zap.Uint("id", est.ID),
		zap.String("filename", filename))
	return resp.OKMessage(c, http.StatusOK, "imagen eliminada", updated)
}

// ToggleActive flips the establishment's active flag. Soft delete and
// reactivation share this path.
func (h *EstablishmentHandler) ToggleActive(c echo.Context) error {
	log := logger.FromContext(c)

	est, err := h.authorize(c)
	if err != nil {
		return writeError(c, log, err)
	}

	prometheus.RecordEstablishmentOperation("toggle_active")
	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Establishments.ToggleActive(est.ID)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Establishment active flag toggled",
		zap.Uint("id", est.ID),
		zap.Bool("active", updated.Active))
	return resp.OKMessage(c, http.StatusOK, "estado actualizado", updated)
}

// authorize parses the path id and runs the ownership guard. Returns the
// loaded establishment on allow.
func (h *EstablishmentHandler) authorize(c echo.Context) (*model.Establishment, error) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, store.ErrNotFound
	}

	return h.Guard.Authorize(admin, uint(id))
}
