package database

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/pkg/config"
)

// SeedSuperAdmin creates the elevated account from configuration on first
// start. The elevated role is only ever assigned here; registration
// always produces the standard role. A no-op when the account exists or
// no seed credentials are configured.
func SeedSuperAdmin(cfg *config.Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))

	var count int64
	if err := db.Model(&model.Administrator{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), 12)
	if err != nil {
		return err
	}

	admin := &model.Administrator{
		Nombre:   "Super",
		Apellido: "Admin",
		Email:    email,
		Password: string(hashed),
		Role:     model.RoleSuperAdmin,
		Active:   true,
	}
	return db.Create(admin).Error
}
