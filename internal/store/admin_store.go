package store

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
)

// bcryptCost is deliberately above the library default; hashing a password
// takes tens of milliseconds on purpose.
const bcryptCost = 12

// AdminStore persists administrator identities and credentials
type AdminStore struct {
	DB *gorm.DB
}

// NewAdminStore creates a new administrator store
func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{DB: db}
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Telefono string `json:"telefono"`
}

// Create registers a new administrator with the standard role. The email is
// normalized to lowercase and checked for uniqueness before insert; the
// password is hashed before it ever touches the database.
func (s *AdminStore) Create(in RegisterInput) (*model.Administrator, error) {
	ve := &ValidationError{}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Telefono = strings.TrimSpace(in.Telefono)

	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if in.Apellido == "" {
		ve.Add("apellido", "el apellido es obligatorio")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		ve.Add("email", "el email no es valido")
	}
	if len(in.Password) < 6 {
		ve.Add("password", "la contrasena debe tener al menos 6 caracteres")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	var count int64
	if err := s.DB.Model(&model.Administrator{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Administrator{
		Nombre:   in.Nombre,
		Apellido: in.Apellido,
		Email:    in.Email,
		Password: string(hashed),
		Telefono: in.Telefono,
		Role:     model.RoleAdmin,
		Active:   true,
	}
	if err := s.DB.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// FindByEmail returns the administrator for a login attempt. This is the
// only read path that includes the password hash.
func (s *AdminStore) FindByEmail(email string) (*model.Administrator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var admin model.Administrator
	if err := s.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindByID loads an administrator with the password hash omitted
func (s *AdminStore) FindByID(id uint) (*model.Administrator, error) {
	var admin model.Administrator
	if err := s.DB.Omit("password").First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// VerifyPassword compares a plaintext password against the stored hash
func (s *AdminStore) VerifyPassword(admin *model.Administrator, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) == nil
}

// ProfileUpdate carries the mutable profile fields. Email and role are
// immutable through this path.
type ProfileUpdate struct {
	Nombre      string                  `json:"nombre"`
	Apellido    string                  `json:"apellido"`
	Telefono    string                  `json:"telefono"`
	Preferences *model.AdminPreferences `json:"preferencias,omitempty"`
}

// UpdateProfile mutates the profile fields of an administrator. The
// password column is never written here, so the hash is never re-applied
// to an unchanged value.
func (s *AdminStore) UpdateProfile(id uint, in ProfileUpdate) (*model.Administrator, error) {
	ve := &ValidationError{}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Telefono = strings.TrimSpace(in.Telefono)
	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if in.Apellido == "" {
		ve.Add("apellido", "el apellido es obligatorio")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	updates := map[string]interface{}{
		"nombre":   in.Nombre,
		"apellido": in.Apellido,
		"telefono": in.Telefono,
	}
	if in.Preferences != nil {
		updates["preferences"] = *in.Preferences
	}

	result := s.DB.Model(&model.Administrator{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(id)
}

// ChangePassword verifies the current password and re-hashes the new one.
// Hashing happens only on this path.
func (s *AdminStore) ChangePassword(id uint, current, next string) error {
	var admin model.Administrator
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !s.VerifyPassword(&admin, current) {
		return ErrInvalidCredentials
	}
	if len(next) < 6 {
		ve := &ValidationError{}
		ve.Add("password", "la contrasena debe tener al menos 6 caracteres")
		return ve
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return err
	}
	return s.DB.Model(&model.Administrator{}).Where("id = ?", id).Update("password", string(hashed)).Error
}

// TouchLastAccess stamps the last-access timestamp, used on login
func (s *AdminStore) TouchLastAccess(id uint) error {
	now := time.Now()
	return s.DB.Model(&model.Administrator{}).Where("id = ?", id).Update("last_access_at", now).Error
}

// List returns a page of administrators with passwords omitted
func (s *AdminStore) List(q model.PaginationQuery) ([]model.Administrator, int64, error) {
	q.Normalize()

	var total int64
	if err := s.DB.Model(&model.Administrator{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admins []model.Administrator
	err := s.DB.Omit("password").
		Order("id").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Find(&admins).Error
	if err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

// ToggleActive flips the active flag of an administrator account.
// Deactivation is the only terminal state; rows are never deleted.
func (s *AdminStore) ToggleActive(id uint) (*model.Administrator, error) {
	admin, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&model.Administrator{}).Where("id = ?", id).Update("active", !admin.Active).Error; err != nil {
		return nil, err
	}
	admin.Active = !admin.Active
	return admin, nil
}
