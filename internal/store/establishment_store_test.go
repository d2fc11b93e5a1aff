package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
)

func newStores(t *testing.T) (*AdminStore, *EstablishmentStore) {
	db := testDB(t)
	return NewAdminStore(db), NewEstablishmentStore(db)
}

// backdate rewinds the record's updated_at so a strict After assertion
// can observe the next write re-stamping it. UpdateColumn skips the
// automatic timestamp tracking.
func backdate(t *testing.T, ests *EstablishmentStore, id uint) time.Time {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	err := ests.DB.Model(&model.Establishment{}).Where("id = ?", id).
		UpdateColumn("updated_at", past).Error
	require.NoError(t, err)
	return past
}

func TestCreateForAdmin(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")

	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, est.OwnerID)
	assert.True(t, est.Active)
	assert.Equal(t, model.CategoriaCafeteria, est.Categoria)
	assert.Equal(t, "contacto@laesquina.mx", est.Email)
}

func TestCreateForAdminSecondActiveConflicts(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")

	first, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	in := validCreateInput()
	in.Nombre = "El Segundo"
	_, err = ests.CreateForAdmin(in, owner.ID)
	require.ErrorIs(t, err, ErrEstablishmentExists)

	// The existing record is untouched.
	reloaded, err := ests.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "La Esquina", reloaded.Nombre)

	var count int64
	require.NoError(t, ests.DB.Model(&model.Establishment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateForAdminAfterDeactivation(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")

	first, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	_, err = ests.ToggleActive(first.ID)
	require.NoError(t, err)

	// Uniqueness applies to active establishments only.
	in := validCreateInput()
	in.Nombre = "El Segundo"
	_, err = ests.CreateForAdmin(in, owner.ID)
	require.NoError(t, err)
}

func TestCreateForAdminValidation(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")

	in := CreateInput{Categoria: "discoteca", Email: "bad"}
	_, err := ests.CreateForAdmin(in, owner.ID)
	ve, ok := AsValidationError(err)
	require.True(t, ok)

	fields := make(map[string]bool)
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"nombre", "categoria", "descripcion", "calle", "ciudad", "codigoPostal", "telefono", "email"} {
		assert.True(t, fields[want], "expected a field error for %s", want)
	}
}

func TestUpdateBasicInfo(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	updated, err := ests.UpdateBasicInfo(est.ID, BasicInfoUpdate{
		Nombre:      "  La Esquina Nueva  ",
		Descripcion: "Renovado",
		Telefono:    "+522229876543",
		Email:       "HOLA@LaEsquina.MX",
	})
	require.NoError(t, err)
	assert.Equal(t, "La Esquina Nueva", updated.Nombre)
	assert.Equal(t, "hola@laesquina.mx", updated.Email, "email normalized to lowercase")

	// All four fields are required together.
	_, err = ests.UpdateBasicInfo(est.ID, BasicInfoUpdate{Nombre: "Solo Nombre"})
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestUpdateAddress(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	updated, err := ests.UpdateAddress(est.ID, AddressUpdate{
		Calle:        "Calle Nueva 5",
		Ciudad:       "Cholula",
		CodigoPostal: "72760",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cholula", updated.Ciudad)

	_, err = ests.UpdateAddress(est.ID, AddressUpdate{Calle: "Sin Ciudad"})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "the address triple is required as a unit")
}

func TestUpdateSchedule(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	abierto := true
	apertura := "09:00"
	cierre := "18:00"
	updated, err := ests.UpdateSchedule(est.ID, map[string]ScheduleDayInput{
		"lunes":   {Abierto: &abierto, Apertura: &apertura, Cierre: &cierre},
		"martes":  {Abierto: &abierto, Apertura: &apertura},
		"feriado": {Abierto: &abierto},
	})
	require.NoError(t, err)

	assert.True(t, updated.Horario.Lunes.Abierto)
	assert.Equal(t, "09:00", updated.Horario.Lunes.Apertura)
	assert.Equal(t, "18:00", updated.Horario.Lunes.Cierre)
	assert.Equal(t, "", updated.Horario.Martes.Cierre, "absent sub-fields default to empty")
	assert.False(t, updated.Horario.Miercoles.Abierto, "untouched days keep their zero value")
}

func TestUpdateScheduleAcceptsAnyOrdering(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	// Closing before opening is stored verbatim; ordering is not checked
	// at this layer.
	abierto := true
	apertura := "22:00"
	cierre := "06:00"
	updated, err := ests.UpdateSchedule(est.ID, map[string]ScheduleDayInput{
		"viernes": {Abierto: &abierto, Apertura: &apertura, Cierre: &cierre},
	})
	require.NoError(t, err)
	assert.Equal(t, "22:00", updated.Horario.Viernes.Apertura)
	assert.Equal(t, "06:00", updated.Horario.Viernes.Cierre)
}

func TestUpdateMenuRoundTrip(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)
	past := backdate(t, ests, est.ID)

	menu := []model.MenuCategory{
		{
			Nombre: "Bebidas",
			Items: []model.MenuItem{
				{Nombre: "Cafe americano", Precio: 35},
				{Nombre: "Latte", Descripcion: "Con leche entera", Precio: 48.50},
			},
		},
		{
			Nombre: "Postres",
			Items: []model.MenuItem{
				{Nombre: "Pan de elote", Precio: 0},
			},
		},
	}

	updated, err := ests.UpdateMenu(est.ID, menu)
	require.NoError(t, err)

	reloaded, err := ests.FindByID(est.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Menu(menu), reloaded.Menu, "menu round-trips structurally")

	// Unrelated slices stay untouched.
	assert.Equal(t, est.Calle, reloaded.Calle)
	assert.Equal(t, est.Horario, reloaded.Horario)
	assert.True(t, updated.UpdatedAt.After(past), "update re-stamps updated_at")
}

func TestUpdateMenuValidation(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	_, err = ests.UpdateMenu(est.ID, []model.MenuCategory{
		{
			Nombre: "Bebidas",
			Items: []model.MenuItem{
				{Nombre: "", Precio: -5},
			},
		},
		{Nombre: ""},
	})
	ve, ok := AsValidationError(err)
	require.True(t, ok)

	fields := make(map[string]bool)
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["menu[0].items[0].nombre"])
	assert.True(t, fields["menu[0].items[0].precio"])
	assert.True(t, fields["menu[1].nombre"])
}

func TestUpdateSocialLinks(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	updated, err := ests.UpdateSocialLinks(est.ID, SocialLinksUpdate{
		Facebook:  "https://facebook.com/laesquina",
		Instagram: "@laesquina",
		Twitter:   " laesquina ",
		Website:   "https://laesquina.mx",
	})
	require.NoError(t, err)
	assert.Equal(t, "@laesquina", updated.Redes.Instagram, "instagram stored verbatim")
	assert.Equal(t, "laesquina", updated.Redes.Twitter, "twitter trimmed, not validated")

	_, err = ests.UpdateSocialLinks(est.ID, SocialLinksUpdate{Facebook: "not a url"})
	_, ok := AsValidationError(err)
	assert.True(t, ok)

	_, err = ests.UpdateSocialLinks(est.ID, SocialLinksUpdate{Website: "also-bad"})
	_, ok = AsValidationError(err)
	assert.True(t, ok)
}

func TestToggleActiveIdempotentPair(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	past := backdate(t, ests, est.ID)
	first, err := ests.ToggleActive(est.ID)
	require.NoError(t, err)
	assert.False(t, first.Active)
	assert.True(t, first.UpdatedAt.After(past), "first toggle re-stamps updated_at")

	past = backdate(t, ests, est.ID)
	second, err := ests.ToggleActive(est.ID)
	require.NoError(t, err)
	assert.True(t, second.Active, "toggling twice returns to the original value")
	assert.True(t, second.UpdatedAt.After(past), "second toggle re-stamps updated_at")

	// The record survives deactivation; soft delete only.
	var count int64
	require.NoError(t, ests.DB.Model(&model.Establishment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddImageCap(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	for i := 0; i < model.MaxImages; i++ {
		_, err := ests.AddImage(est.ID, model.EstablishmentImage{
			Filename:   fmtImageName(i),
			URL:        "https://cdn.example.com/" + fmtImageName(i),
			Size:       1024,
			UploadedAt: time.Now(),
			Path:       "/uploads/" + fmtImageName(i),
		})
		require.NoError(t, err)
	}

	_, err = ests.AddImage(est.ID, model.EstablishmentImage{
		Filename: "overflow.jpg",
		URL:      "https://cdn.example.com/overflow.jpg",
	})
	_, ok := AsValidationError(err)
	assert.True(t, ok, "the image list is capped")
}

func TestRemoveImage(t *testing.T) {
	admins, ests := newStores(t)
	owner := registerAdmin(t, admins, "ana@x.com")
	est, err := ests.CreateForAdmin(validCreateInput(), owner.ID)
	require.NoError(t, err)

	_, err = ests.AddImage(est.ID, model.EstablishmentImage{
		Filename: "frente.jpg",
		URL:      "https://cdn.example.com/frente.jpg",
	})
	require.NoError(t, err)

	updated, err := ests.RemoveImage(est.ID, "frente.jpg")
	require.NoError(t, err)
	assert.Empty(t, updated.Imagenes)

	_, err = ests.RemoveImage(est.ID, "no-existe.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveFilters(t *testing.T) {
	admins, ests := newStores(t)

	ownerA := registerAdmin(t, admins, "a@x.com")
	ownerB := registerAdmin(t, admins, "b@x.com")
	ownerC := registerAdmin(t, admins, "c@x.com")

	inA := validCreateInput()
	inA.Nombre = "Cafe Centro"
	_, err := ests.CreateForAdmin(inA, ownerA.ID)
	require.NoError(t, err)

	inB := validCreateInput()
	inB.Nombre = "Bar Norte"
	inB.Categoria = model.CategoriaBar
	inB.Ciudad = "Monterrey"
	_, err = ests.CreateForAdmin(inB, ownerB.ID)
	require.NoError(t, err)

	inC := validCreateInput()
	inC.Nombre = "Cafe Sur"
	estC, err := ests.CreateForAdmin(inC, ownerC.ID)
	require.NoError(t, err)
	_, err = ests.ToggleActive(estC.ID)
	require.NoError(t, err)

	page := model.PaginationQuery{Page: 1, PageSize: 10}

	all, total, err := ests.ListActive(CatalogFilter{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total, "inactive establishments never appear")
	assert.Len(t, all, 2)

	bars, _, err := ests.ListActive(CatalogFilter{Categoria: model.CategoriaBar}, page)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "Bar Norte", bars[0].Nombre)

	puebla, _, err := ests.ListActive(CatalogFilter{Ciudad: "Puebla"}, page)
	require.NoError(t, err)
	require.Len(t, puebla, 1)
	assert.Equal(t, "Cafe Centro", puebla[0].Nombre)

	search, _, err := ests.ListActive(CatalogFilter{Search: "Centro"}, page)
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Cafe Centro", search[0].Nombre)

	_, err = ests.FindActiveByID(estC.ID)
	assert.ErrorIs(t, err, ErrNotFound, "deactivated records are invisible to the catalog")
}

func fmtImageName(i int) string {
	return "img-" + string(rune('a'+i)) + ".jpg"
}
