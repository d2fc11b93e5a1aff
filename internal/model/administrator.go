package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Administrator roles. Exactly two; "superadmin" bypasses ownership checks.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// AdminPreferences stores per-account UI preferences as a jsonb column
type AdminPreferences struct {
	Notificaciones bool   `json:"notificaciones"`
	Tema           string `json:"tema"`
}

func (p AdminPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *AdminPreferences) Scan(value interface{}) error {
	if value == nil {
		*p = AdminPreferences{}
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*p = AdminPreferences{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// Administrator represents an account that manages at most one establishment.
// Accounts are never hard-deleted; the Active flag gates login instead.
type Administrator struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Nombre       string           `json:"nombre" gorm:"type:varchar(100);not null"`
	Apellido     string           `json:"apellido" gorm:"type:varchar(100);not null"`
	Email        string           `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password     string           `json:"-" gorm:"type:varchar(255)"`
	Telefono     string           `json:"telefono" gorm:"type:varchar(30)"`
	Role         string           `json:"rol" gorm:"type:varchar(20);not null;default:admin"`
	Active       bool             `json:"activo" gorm:"default:true"`
	Preferences  AdminPreferences `json:"preferencias" gorm:"type:jsonb"`
	CreatedAt    time.Time        `json:"created_at"`
	LastAccessAt *time.Time       `json:"ultimo_acceso,omitempty"`
}

// IsElevated reports whether the account has cross-tenant access
func (a *Administrator) IsElevated() bool {
	return a.Role == RoleSuperAdmin
}

// jsonBytes normalizes the raw driver value of a jsonb column
func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported source type for jsonb column")
	}
}
