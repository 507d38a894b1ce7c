package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OPD (Organisasi Perangkat Daerah) is a regional government unit. Planting
// contributions are aggregated per OPD against its personnel target.
type OPD struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	PersonnelCount      int       `gorm:"not null;default:0" json:"personnel_count"`
	TreeTargetPerPerson int       `gorm:"not null;default:5" json:"tree_target_per_person"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (OPD) TableName() string {
	return "opd"
}

// BeforeCreate hook for OPD
func (o *OPD) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// TotalTarget is the number of trees the whole unit is expected to plant.
func (o OPD) TotalTarget() int {
	return o.PersonnelCount * o.TreeTargetPerPerson
}

// DefaultTreeTargetPerPerson is used when an OPD is created without a target.
const DefaultTreeTargetPerPerson = 5
