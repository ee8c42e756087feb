package models

import (
	"time"

	"github.com/lib/pq"
)

type Bulletin struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PatientID    string         `gorm:"column:patient_id;type:uuid;index" json:"patientId"`
	DentistID    string         `gorm:"column:dentist_id;type:uuid;index" json:"dentistId"`
	VisitDate    time.Time      `gorm:"column:visit_date;type:date" json:"visitDate"`
	ActCodes     pq.StringArray `gorm:"column:act_codes;type:text[]" json:"actCodes"`
	TotalAmount  float64        `gorm:"column:total_amount" json:"totalAmount"`
	Status       string         `gorm:"column:status;type:text" json:"status"`
	BordereauRef string         `gorm:"column:bordereau_ref;type:text" json:"bordereauRef"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Bulletin) TableName() string { return "bulletins" }
