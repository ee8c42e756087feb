package models

import (
	"time"

	"gorm.io/datatypes"
)

type Patient struct {
	ID                  string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NationalID          string    `gorm:"column:national_id;type:text;uniqueIndex" json:"nationalId"`
	FullName            string    `gorm:"column:full_name;type:text" json:"fullName"`
	BirthDate           time.Time `gorm:"column:birth_date;type:date" json:"birthDate"`
	CNAMCategory        string    `gorm:"column:cnam_category;type:text" json:"cnamCategory"`
	CurrentPlafondUsage float64   `gorm:"column:current_plafond_usage" json:"currentPlafondUsage"`
	DentistID           string    `gorm:"column:dentist_id;type:uuid;index" json:"dentistId"`

	// Client-side extras (contact info, notes) passed through untouched.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Patient) TableName() string { return "patients" }
