package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mellah-kais/cnam-server/internal/models"
)

type PatientRepository interface {
	Upsert(ctx context.Context, p *models.Patient) error
}

type patientRepo struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) PatientRepository {
	return &patientRepo{db: db}
}

// Upsert keys on national_id: the client may re-register a patient it does
// not know the server id for, but the national id is stable.
func (r *patientRepo) Upsert(ctx context.Context, p *models.Patient) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "national_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "birth_date", "cnam_category", "current_plafond_usage", "dentist_id", "metadata", "updated_at"}),
		}).
		Create(p).Error
}
