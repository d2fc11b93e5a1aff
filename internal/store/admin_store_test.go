package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
)

func TestAdminStoreCreate(t *testing.T) {
	s := NewAdminStore(testDB(t))

	admin, err := s.Create(RegisterInput{
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Email:    "Ana@X.com",
		Password: "secret1",
		Telefono: "+5215555555555",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.Active)
	assert.Equal(t, "ana@x.com", admin.Email, "email must be normalized to lowercase")
	assert.NotEqual(t, "secret1", admin.Password, "password must be stored hashed")
	assert.True(t, strings.HasPrefix(admin.Password, "$2"), "expected a bcrypt hash")
}

func TestAdminStoreCreateDuplicateEmail(t *testing.T) {
	s := NewAdminStore(testDB(t))
	registerAdmin(t, s, "ana@x.com")

	_, err := s.Create(RegisterInput{
		Nombre:   "Otra",
		Apellido: "Persona",
		Email:    "ANA@x.com",
		Password: "different",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, s.DB.Model(&model.Administrator{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no new record on conflict")
}

func TestAdminStoreCreateValidation(t *testing.T) {
	s := NewAdminStore(testDB(t))

	_, err := s.Create(RegisterInput{Email: "not-an-email", Password: "123"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)

	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "nombre")
	assert.Contains(t, fields, "apellido")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAdminStoreFindByIDOmitsPassword(t *testing.T) {
	s := NewAdminStore(testDB(t))
	created := registerAdmin(t, s, "ana@x.com")

	loaded, err := s.FindByID(created.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Password)
	assert.Equal(t, created.Email, loaded.Email)
}

func TestAdminStoreVerifyPassword(t *testing.T) {
	s := NewAdminStore(testDB(t))
	registerAdmin(t, s, "ana@x.com")

	admin, err := s.FindByEmail("ana@x.com")
	require.NoError(t, err)

	assert.True(t, s.VerifyPassword(admin, "secret1"))
	assert.False(t, s.VerifyPassword(admin, "wrong"))
}

func TestAdminStoreChangePassword(t *testing.T) {
	s := NewAdminStore(testDB(t))
	created := registerAdmin(t, s, "ana@x.com")

	require.ErrorIs(t, s.ChangePassword(created.ID, "wrong", "newsecret"), ErrInvalidCredentials)

	require.NoError(t, s.ChangePassword(created.ID, "secret1", "newsecret"))

	admin, err := s.FindByEmail("ana@x.com")
	require.NoError(t, err)
	assert.True(t, s.VerifyPassword(admin, "newsecret"))
	assert.False(t, s.VerifyPassword(admin, "secret1"))
}

func TestAdminStoreUpdateProfileKeepsPassword(t *testing.T) {
	s := NewAdminStore(testDB(t))
	created := registerAdmin(t, s, "ana@x.com")

	before, err := s.FindByEmail("ana@x.com")
	require.NoError(t, err)

	updated, err := s.UpdateProfile(created.ID, ProfileUpdate{
		Nombre:   "Ana Maria",
		Apellido: "Ruiz",
		Telefono: "+5215550000000",
		Preferences: &model.AdminPreferences{
			Notificaciones: true,
			Tema:           "oscuro",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Nombre)
	assert.Equal(t, "oscuro", updated.Preferences.Tema)

	after, err := s.FindByEmail("ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, before.Password, after.Password, "profile update must not touch the hash")
}

func TestAdminStoreToggleActive(t *testing.T) {
	s := NewAdminStore(testDB(t))
	created := registerAdmin(t, s, "ana@x.com")

	toggled, err := s.ToggleActive(created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = s.ToggleActive(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active, "double toggle returns to the original state")

	_, err = s.ToggleActive(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
