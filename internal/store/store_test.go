package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
)

// testDB opens a fresh in-memory database migrated with both models
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Administrator{}, &model.Establishment{}))
	return db
}

// registerAdmin creates an administrator for tests that need an owner
func registerAdmin(t *testing.T, s *AdminStore, email string) *model.Administrator {
	t.Helper()

	admin, err := s.Create(RegisterInput{
		Nombre:   "Ana",
		Apellido: "Ruiz",
		Email:    email,
		Password: "secret1",
		Telefono: "+5215555555555",
	})
	require.NoError(t, err)
	return admin
}

// validCreateInput returns a create payload that passes validation
func validCreateInput() CreateInput {
	return CreateInput{
		Nombre:       "La Esquina",
		Categoria:    model.CategoriaCafeteria,
		Descripcion:  "Cafe de barrio",
		Calle:        "Av. Juarez 10",
		Ciudad:       "Puebla",
		CodigoPostal: "72000",
		Telefono:     "+522221234567",
		Email:        "contacto@laesquina.mx",
	}
}
