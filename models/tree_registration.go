package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	CategoryFruit  = "buah"
	CategoryTimber = "kayu"

	GenderMale   = "laki-laki"
	GenderFemale = "perempuan"
)

// TreeRegistration is one planting record submitted through the public form.
// Rows are append-only: the API exposes no update or delete for them.
type TreeRegistration struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string      `gorm:"size:255;index;not null" json:"email"`
	FullName     string      `gorm:"size:200;not null" json:"full_name"`
	Gender       string      `gorm:"size:20;not null" json:"gender"`
	Address      string      `gorm:"type:text;not null" json:"address"`
	WhatsApp     string      `gorm:"column:whatsapp;size:30;not null" json:"whatsapp"`
	OPDID        *uuid.UUID  `gorm:"column:opd_id;type:uuid;index" json:"opd_id"`
	OPD          *OPD        `gorm:"foreignKey:OPDID;constraint:OnDelete:SET NULL" json:"opd,omitempty"`
	TreeCount    int         `gorm:"not null" json:"tree_count"`
	TreeType     string      `gorm:"size:100;not null" json:"tree_type"`
	TreeCategory string      `gorm:"size:20;not null" json:"tree_category"`
	Latitude     *float64    `json:"latitude"`
	Longitude    *float64    `json:"longitude"`
	LocationText string      `gorm:"type:text" json:"location_text,omitempty"`
	PhotoURL     *string     `json:"photo_url"`
	PhotoURLs    StringArray `gorm:"column:photo_urls" json:"photo_urls,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

// BeforeCreate hook for TreeRegistration
func (t *TreeRegistration) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// HasLocation reports whether both coordinates were captured.
func (t TreeRegistration) HasLocation() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// OPDName returns the unit name or "-" for registrations without a unit.
func (t TreeRegistration) OPDName() string {
	if t.OPD == nil {
		return "-"
	}
	return t.OPD.Name
}

// StringArray stores a list of strings as text[] on Postgres and as the same
// array literal in a text column on other dialects.
type StringArray pq.StringArray

func (StringArray) GormDataType() string {
	return "string_array"
}

func (StringArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src interface{}) error {
	return (*pq.StringArray)(a).Scan(src)
}
