package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/middleware"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/jwtutil"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/logger"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/resp"
	"github.com/Jennifer-MM1/restaurante-web-sub000/prometheus"
)

// AuthHandler serves registration, login and the administrator's own
// profile
type AuthHandler struct {
	Admins *store.AdminStore
}

// NewAuthHandler creates an auth handler backed by the admin store
func NewAuthHandler(admins *store.AdminStore) *AuthHandler {
	return &AuthHandler{Admins: admins}
}

// Register creates a new administrator account with the standard role
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req store.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	admin, err := h.Admins.Create(req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Administrator registered", zap.String("email", admin.Email))
	return resp.OKMessage(c, http.StatusCreated, "cuenta creada", admin)
}

// Login verifies credentials and issues a session token. A disabled
// account cannot log in even with the right password.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	admin, err := h.Admins.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Login for unknown email", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return resp.Fail(c, http.StatusUnauthorized, "credenciales no validas")
		}
		return writeError(c, log, err)
	}

	if !h.Admins.VerifyPassword(admin, req.Password) {
		log.Warn("Invalid password", zap.String("email", admin.Email))
		prometheus.RecordAuthError("invalid_password")
		return resp.Fail(c, http.StatusUnauthorized, "credenciales no validas")
	}

	if !admin.Active {
		log.Warn("Login attempt on deactivated account", zap.String("email", admin.Email))
		prometheus.RecordAuthError("inactive_admin")
		return resp.Fail(c, http.StatusUnauthorized, "la cuenta esta desactivada")
	}

	token, err := jwtutil.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return resp.Fail(c, http.StatusInternalServerError, "no se pudo generar el token")
	}

	if err := h.Admins.TouchLastAccess(admin.ID); err != nil {
		// Login still succeeds; the stamp is best effort.
		log.Warn("Failed to stamp last access", zap.Error(err))
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Administrator logged in", zap.String("email", admin.Email))

	admin.Password = ""
	return resp.OK(c, http.StatusOK, echo.Map{
		"token": token,
		"admin": admin,
	})
}

// GetProfile returns the authenticated administrator's own record
func (h *AuthHandler) GetProfile(c echo.Context) error {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}
	return resp.OK(c, http.StatusOK, admin)
}

// UpdateProfile mutates the administrator's own profile fields
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}

	var req store.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updated, err := h.Admins.UpdateProfile(admin.ID, req)
	if err != nil {
		return writeError(c, log, err)
	}

	log.Info("Profile updated", zap.Uint("admin_id", admin.ID))
	return resp.OKMessage(c, http.StatusOK, "perfil actualizado", updated)
}

// ChangePassword verifies the current password and stores a new hash
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		return resp.Fail(c, http.StatusUnauthorized, "se requiere autenticacion")
	}

	var req struct {
		PasswordActual string `json:"passwordActual"`
		PasswordNueva  string `json:"passwordNueva"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change", zap.Error(err))
		return resp.Fail(c, http.StatusBadRequest, "peticion no valida")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Admins.ChangePassword(admin.ID, req.PasswordActual, req.PasswordNueva); err != nil {
		return writeError(c, log, err)
	}

	log.Info("Password changed", zap.Uint("admin_id", admin.ID))
	return resp.OKMessage(c, http.StatusOK, "contrasena actualizada", nil)
}
