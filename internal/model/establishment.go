package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Establishment categories. Fixed enumeration; validated at creation.
const (
	CategoriaComedor      = "comedor"
	CategoriaBar          = "bar"
	CategoriaCafeteria    = "cafeteria"
	CategoriaComidaRapida = "comida-rapida"
	CategoriaPanaderia    = "panaderia"
	CategoriaOtro         = "otro"
)

// Categorias lists every valid establishment category
var Categorias = []string{
	CategoriaComedor,
	CategoriaBar,
	CategoriaCafeteria,
	CategoriaComidaRapida,
	CategoriaPanaderia,
	CategoriaOtro,
}

// ValidCategoria reports whether the value belongs to the fixed enumeration
func ValidCategoria(c string) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// MaxImages caps the image metadata list per establishment
const MaxImages = 20

// DaySchedule holds the opening state for a single day of the week
type DaySchedule struct {
	Abierto  bool   `json:"abierto"`
	Apertura string `json:"apertura"`
	Cierre   string `json:"cierre"`
}

// WeekSchedule is the fixed seven-day schedule stored as a jsonb column
type WeekSchedule struct {
	Lunes     DaySchedule `json:"lunes"`
	Martes    DaySchedule `json:"martes"`
	Miercoles DaySchedule `json:"miercoles"`
	Jueves    DaySchedule `json:"jueves"`
	Viernes   DaySchedule `json:"viernes"`
	Sabado    DaySchedule `json:"sabado"`
	Domingo   DaySchedule `json:"domingo"`
}

func (s WeekSchedule) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		*s = WeekSchedule{}
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*s = WeekSchedule{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// MenuItem is a single dish or drink inside a menu category
type MenuItem struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
}

// MenuCategory is an ordered group of menu items
type MenuCategory struct {
	Nombre string     `json:"nombre"`
	Items  []MenuItem `json:"items"`
}

// Menu is the ordered list of menu categories stored as a jsonb column
type Menu []MenuCategory

func (m Menu) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(Menu{})
	}
	return json.Marshal(m)
}

func (m *Menu) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// EstablishmentImage holds the metadata of one uploaded image
type EstablishmentImage struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
	Path       string    `json:"path"`
}

// ImageList is the ordered image metadata stored as a jsonb column
type ImageList []EstablishmentImage

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ImageList{})
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// SocialLinks stores the establishment's social profiles as a jsonb column.
// Facebook and website are validated as URLs on update; instagram and
// twitter are stored verbatim.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Website   string `json:"website,omitempty"`
}

func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = SocialLinks{}
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*s = SocialLinks{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Establishment is the directory listing owned by exactly one administrator.
// Deactivation via the Active flag is the only removal path; the owner
// reference is preserved for history.
type Establishment struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Nombre       string       `json:"nombre" gorm:"type:varchar(150);not null"`
	Categoria    string       `json:"categoria" gorm:"type:varchar(30);not null;index:idx_establishments_categoria_active"`
	Descripcion  string       `json:"descripcion" gorm:"type:text"`
	Calle        string       `json:"calle" gorm:"type:varchar(150)"`
	Ciudad       string       `json:"ciudad" gorm:"type:varchar(100);index:idx_establishments_ciudad_active"`
	CodigoPostal string       `json:"codigoPostal" gorm:"type:varchar(10)"`
	Telefono     string       `json:"telefono" gorm:"type:varchar(30)"`
	Email        string       `json:"email" gorm:"type:varchar(100)"`
	Horario      WeekSchedule `json:"horario" gorm:"type:jsonb"`
	Menu         Menu         `json:"menu" gorm:"type:jsonb"`
	Imagenes     ImageList    `json:"imagenes" gorm:"type:jsonb"`
	Redes        SocialLinks  `json:"redesSociales" gorm:"type:jsonb"`
	OwnerID      uint         `json:"owner_id" gorm:"index:idx_establishments_owner_active;not null"`
	Active       bool         `json:"activo" gorm:"default:true;index:idx_establishments_owner_active;index:idx_establishments_categoria_active;index:idx_establishments_ciudad_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
