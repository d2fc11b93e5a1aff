package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/store"
)

func setupGuard(t *testing.T) (*Guard, *store.EstablishmentStore, *store.AdminStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Administrator{}, &model.Establishment{}))

	ests := store.NewEstablishmentStore(db)
	return NewGuard(ests), ests, store.NewAdminStore(db)
}

func createOwnerWithEstablishment(t *testing.T, admins *store.AdminStore, ests *store.EstablishmentStore, email string) (*model.Administrator, *model.Establishment) {
	t.Helper()

	owner, err := admins.Create(store.RegisterInput{
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)

	est, err := ests.CreateForAdmin(store.CreateInput{
		Nombre:       "La Esquina",
		Categoria:    model.CategoriaBar,
		Descripcion:  "Bar de barrio",
		Calle:        "Av. Juarez 10",
		Ciudad:       "Puebla",
		CodigoPostal: "72000",
		Telefono:     "+522221234567",
		Email:        "contacto@laesquina.mx",
	}, owner.ID)
	require.NoError(t, err)

	return owner, est
}

func TestGuardOwnerAllowed(t *testing.T) {
	guard, ests, admins := setupGuard(t)
	owner, est := createOwnerWithEstablishment(t, admins, ests, "ana@x.com")

	got, err := guard.Authorize(owner, est.ID)
	require.NoError(t, err)
	assert.Equal(t, est.ID, got.ID)
}

func TestGuardCrossTenantForbidden(t *testing.T) {
	guard, ests, admins := setupGuard(t)
	_, est := createOwnerWithEstablishment(t, admins, ests, "ana@x.com")

	other, err := admins.Create(store.RegisterInput{
		Nombre:   "Berta",
		Apellido: "Lopez",
		Email:    "berta@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = guard.Authorize(other, est.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGuardElevatedBypassesOwnership(t *testing.T) {
	guard, ests, admins := setupGuard(t)
	_, est := createOwnerWithEstablishment(t, admins, ests, "ana@x.com")

	super := &model.Administrator{ID: 999, Role: model.RoleSuperAdmin, Active: true}

	got, err := guard.Authorize(super, est.ID)
	require.NoError(t, err)
	assert.Equal(t, est.ID, got.ID)
}

func TestGuardMissingEstablishment(t *testing.T) {
	guard, _, admins := setupGuard(t)

	admin, err := admins.Create(store.RegisterInput{
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = guard.Authorize(admin, 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The elevated role still needs the record to exist.
	super := &model.Administrator{ID: 999, Role: model.RoleSuperAdmin, Active: true}
	_, err = guard.Authorize(super, 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
