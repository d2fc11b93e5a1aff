package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Jennifer-MM1/restaurante-web-sub000/internal/model"
)

// EstablishmentStore owns the establishment lifecycle. Ownership is decided
// before any of these mutations run; none of them re-derives it.
type EstablishmentStore struct {
	DB *gorm.DB
}

// NewEstablishmentStore creates a new establishment store
func NewEstablishmentStore(db *gorm.DB) *EstablishmentStore {
	return &EstablishmentStore{DB: db}
}

// CreateInput carries the fields required to register an establishment
type CreateInput struct {
	Nombre       string `json:"nombre"`
	Categoria    string `json:"categoria"`
	Descripcion  string `json:"descripcion"`
	Calle        string `json:"calle"`
	Ciudad       string `json:"ciudad"`
	CodigoPostal string `json:"codigoPostal"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
}

// CreateForAdmin registers the owner's single establishment. An owner with
// an existing active establishment gets ErrEstablishmentExists; uniqueness
// is enforced by this check, not by a database constraint.
func (s *EstablishmentStore) CreateForAdmin(in CreateInput, ownerID uint) (*model.Establishment, error) {
	ve := &ValidationError{}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	in.Calle = strings.TrimSpace(in.Calle)
	in.Ciudad = strings.TrimSpace(in.Ciudad)
	in.CodigoPostal = strings.TrimSpace(in.CodigoPostal)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if !model.ValidCategoria(in.Categoria) {
		ve.Add("categoria", "categoria no valida")
	}
	if in.Descripcion == "" {
		ve.Add("descripcion", "la descripcion es obligatoria")
	}
	if in.Calle == "" {
		ve.Add("calle", "la calle es obligatoria")
	}
	if in.Ciudad == "" {
		ve.Add("ciudad", "la ciudad es obligatoria")
	}
	if in.CodigoPostal == "" {
		ve.Add("codigoPostal", "el codigo postal es obligatorio")
	}
	if in.Telefono == "" {
		ve.Add("telefono", "el telefono es obligatorio")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		ve.Add("email", "el email no es valido")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	var count int64
	err := s.DB.Model(&model.Establishment{}).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEstablishmentExists
	}

	est := &model.Establishment{
		Nombre:       in.Nombre,
		Categoria:    in.Categoria,
		Descripcion:  in.Descripcion,
		Calle:        in.Calle,
		Ciudad:       in.Ciudad,
		CodigoPostal: in.CodigoPostal,
		Telefono:     in.Telefono,
		Email:        in.Email,
		OwnerID:      ownerID,
		Active:       true,
	}
	if err := s.DB.Create(est).Error; err != nil {
		return nil, err
	}
	return est, nil
}

// FindByID loads an establishment regardless of its active flag
func (s *EstablishmentStore) FindByID(id uint) (*model.Establishment, error) {
	var est model.Establishment
	if err := s.DB.First(&est, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &est, nil
}

// FindActiveByOwner returns the owner's active establishment
func (s *EstablishmentStore) FindActiveByOwner(ownerID uint) (*model.Establishment, error) {
	var est model.Establishment
	err := s.DB.Where("owner_id = ? AND active = ?", ownerID, true).First(&est).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &est, nil
}

// BasicInfoUpdate carries the general-information slice of the document
type BasicInfoUpdate struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
}

// UpdateBasicInfo replaces name, description, phone and email as a unit
func (s *EstablishmentStore) UpdateBasicInfo(id uint, in BasicInfoUpdate) (*model.Establishment, error) {
	ve := &ValidationError{}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Descripcion = strings.TrimSpace(in.Descripcion)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if in.Descripcion == "" {
		ve.Add("descripcion", "la descripcion es obligatoria")
	}
	if in.Telefono == "" {
		ve.Add("telefono", "el telefono es obligatorio")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		ve.Add("email", "el email no es valido")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	return s.applyUpdates(id, map[string]interface{}{
		"nombre":      in.Nombre,
		"descripcion": in.Descripcion,
		"telefono":    in.Telefono,
		"email":       in.Email,
	})
}

// AddressUpdate carries the address triple, required as a unit
type AddressUpdate struct {
	Calle        string `json:"calle"`
	Ciudad       string `json:"ciudad"`
	CodigoPostal string `json:"codigoPostal"`
}

// UpdateAddress replaces the full address triple
func (s *EstablishmentStore) UpdateAddress(id uint, in AddressUpdate) (*model.Establishment, error) {
	ve := &ValidationError{}
	in.Calle = strings.TrimSpace(in.Calle)
	in.Ciudad = strings.TrimSpace(in.Ciudad)
	in.CodigoPostal = strings.TrimSpace(in.CodigoPostal)

	if in.Calle == "" {
		ve.Add("calle", "la calle es obligatoria")
	}
	if in.Ciudad == "" {
		ve.Add("ciudad", "la ciudad es obligatoria")
	}
	if in.CodigoPostal == "" {
		ve.Add("codigoPostal", "el codigo postal es obligatorio")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	return s.applyUpdates(id, map[string]interface{}{
		"calle":         in.Calle,
		"ciudad":        in.Ciudad,
		"codigo_postal": in.CodigoPostal,
	})
}

// ScheduleDayInput is one day's slice of a schedule update
type ScheduleDayInput struct {
	Abierto  *bool   `json:"abierto,omitempty"`
	Apertura *string `json:"apertura,omitempty"`
	Cierre   *string `json:"cierre,omitempty"`
}

// UpdateSchedule merges the given days into the stored weekly schedule.
// Only the seven fixed day keys are honored; anything else in the payload
// is ignored. Absent sub-fields reset to their zero value. Opening and
// closing times are stored verbatim with no ordering check.
func (s *EstablishmentStore) UpdateSchedule(id uint, days map[string]ScheduleDayInput) (*model.Establishment, error) {
	est, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	horario := est.Horario
	for key, in := range days {
		day := DayFromInput(in)
		switch key {
		case "lunes":
			horario.Lunes = day
		case "martes":
			horario.Martes = day
		case "miercoles":
			horario.Miercoles = day
		case "jueves":
			horario.Jueves = day
		case "viernes":
			horario.Viernes = day
		case "sabado":
			horario.Sabado = day
		case "domingo":
			horario.Domingo = day
		}
	}

	return s.applyUpdates(id, map[string]interface{}{"horario": horario})
}

// DayFromInput materializes one day, defaulting absent sub-fields
func DayFromInput(in ScheduleDayInput) model.DaySchedule {
	var day model.DaySchedule
	if in.Abierto != nil {
		day.Abierto = *in.Abierto
	}
	if in.Apertura != nil {
		day.Apertura = *in.Apertura
	}
	if in.Cierre != nil {
		day.Cierre = *in.Cierre
	}
	return day
}

// UpdateMenu replaces the whole menu document. Every category needs a name
// and every item needs a name and a non-negative price.
func (s *EstablishmentStore) UpdateMenu(id uint, categories []model.MenuCategory) (*model.Establishment, error) {
	ve := &ValidationError{}
	for ci, cat := range categories {
		if strings.TrimSpace(cat.Nombre) == "" {
			ve.Add(fmt.Sprintf("menu[%d].nombre", ci), "el nombre de la categoria es obligatorio")
		}
		for ii, item := range cat.Items {
			if strings.TrimSpace(item.Nombre) == "" {
				ve.Add(fmt.Sprintf("menu[%d].items[%d].nombre", ci, ii), "el nombre del plato es obligatorio")
			}
			if item.Precio < 0 {
				ve.Add(fmt.Sprintf("menu[%d].items[%d].precio", ci, ii), "el precio no puede ser negativo")
			}
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	return s.applyUpdates(id, map[string]interface{}{"menu": model.Menu(categories)})
}

// SocialLinksUpdate carries the social profile slice
type SocialLinksUpdate struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Website   string `json:"website"`
}

// UpdateSocialLinks replaces the social links. Facebook and website, when
// present, must parse as absolute URLs; instagram and twitter are stored
// verbatim after trimming.
func (s *EstablishmentStore) UpdateSocialLinks(id uint, in SocialLinksUpdate) (*model.Establishment, error) {
	ve := &ValidationError{}
	in.Facebook = strings.TrimSpace(in.Facebook)
	in.Instagram = strings.TrimSpace(in.Instagram)
	in.Twitter = strings.TrimSpace(in.Twitter)
	in.Website = strings.TrimSpace(in.Website)

	if in.Facebook != "" && !validURL(in.Facebook) {
		ve.Add("facebook", "la URL de facebook no es valida")
	}
	if in.Website != "" && !validURL(in.Website) {
		ve.Add("website", "la URL del sitio web no es valida")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	redes := model.SocialLinks{
		Facebook:  in.Facebook,
		Instagram: in.Instagram,
		Twitter:   in.Twitter,
		Website:   in.Website,
	}
	return s.applyUpdates(id, map[string]interface{}{"redes": redes})
}

// AddImage appends image metadata, enforcing the per-establishment cap
func (s *EstablishmentStore) AddImage(id uint, img model.EstablishmentImage) (*model.Establishment, error) {
	ve := &ValidationError{}
	img.Filename = strings.TrimSpace(img.Filename)
	if img.Filename == "" {
		ve.Add("filename", "el nombre del archivo es obligatorio")
	}
	if img.URL == "" {
		ve.Add("url", "la URL de la imagen es obligatoria")
	}
	if img.Size < 0 {
		ve.Add("size", "el tamano no puede ser negativo")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	est, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if len(est.Imagenes) >= model.MaxImages {
		ve.Add("imagenes", fmt.Sprintf("no se pueden guardar mas de %d imagenes", model.MaxImages))
		return nil, ve
	}

	if img.UploadedAt.IsZero() {
		img.UploadedAt = time.Now()
	}
	imagenes := append(est.Imagenes, img)
	return s.applyUpdates(id, map[string]interface{}{"imagenes": imagenes})
}

// RemoveImage deletes image metadata by filename
func (s *EstablishmentStore) RemoveImage(id uint, filename string) (*model.Establishment, error) {
	est, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	imagenes := make(model.ImageList, 0, len(est.Imagenes))
	found := false
	for _, img := range est.Imagenes {
		if img.Filename == filename {
			found = true
			continue
		}
		imagenes = append(imagenes, img)
	}
	if !found {
		return nil, ErrNotFound
	}

	return s.applyUpdates(id, map[string]interface{}{"imagenes": imagenes})
}

// ToggleActive flips the active flag. Used both for the owner's soft
// delete and for reactivation.
func (s *EstablishmentStore) ToggleActive(id uint) (*model.Establishment, error) {
	est, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdates(id, map[string]interface{}{"active": !est.Active})
}

// CatalogFilter carries the public listing filters
type CatalogFilter struct {
	Categoria string `query:"categoria"`
	Ciudad    string `query:"ciudad"`
	Search    string `query:"q"`
}

// ListActive returns a page of active establishments for the public catalog
func (s *EstablishmentStore) ListActive(f CatalogFilter, q model.PaginationQuery) ([]model.Establishment, int64, error) {
	q.Normalize()

	query := s.DB.Model(&model.Establishment{}).Where("active = ?", true)
	if f.Categoria != "" {
		query = query.Where("categoria = ?", f.Categoria)
	}
	if f.Ciudad != "" {
		query = query.Where("ciudad = ?", f.Ciudad)
	}
	if f.Search != "" {
		query = query.Where("nombre LIKE ?", "%"+f.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ests []model.Establishment
	err := query.Order("nombre").Limit(q.PageSize).Offset(q.Offset()).Find(&ests).Error
	if err != nil {
		return nil, 0, err
	}
	return ests, total, nil
}

// FindActiveByID returns an active establishment for the public catalog
func (s *EstablishmentStore) FindActiveByID(id uint) (*model.Establishment, error) {
	var est model.Establishment
	err := s.DB.Where("id = ? AND active = ?", id, true).First(&est).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &est, nil
}

// ListAll returns every establishment including inactive ones. Reserved
// for the elevated role.
func (s *EstablishmentStore) ListAll(q model.PaginationQuery) ([]model.Establishment, int64, error) {
	q.Normalize()

	var total int64
	if err := s.DB.Model(&model.Establishment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ests []model.Establishment
	err := s.DB.Order("id").Limit(q.PageSize).Offset(q.Offset()).Find(&ests).Error
	if err != nil {
		return nil, 0, err
	}
	return ests, total, nil
}

// applyUpdates writes one column slice and re-reads the record. Updates
// touches only the given columns, so two racing updates on different
// slices interleave with last-write-wins semantics on updated_at.
func (s *EstablishmentStore) applyUpdates(id uint, updates map[string]interface{}) (*model.Establishment, error) {
	result := s.DB.Model(&model.Establishment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(id)
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
