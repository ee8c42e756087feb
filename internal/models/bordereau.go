package models

import "time"

type Bordereau struct {
	ID                  string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Ref                 string     `gorm:"column:ref;type:text" json:"ref"`
	DentistID           string     `gorm:"column:dentist_id;type:uuid;index" json:"dentistId"`
	CreationDate        time.Time  `gorm:"column:creation_date;type:date" json:"creationDate"`
	TotalAmount         float64    `gorm:"column:total_amount" json:"totalAmount"`
	Status              string     `gorm:"column:status;type:text" json:"status"`
	ExpectedPaymentDate *time.Time `gorm:"column:expected_payment_date;type:date" json:"expectedPaymentDate"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Bordereau) TableName() string { return "bordereaux" }
