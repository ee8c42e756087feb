package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mellah-kais/cnam-server/internal/models"
)

type BordereauRepository interface {
	Upsert(ctx context.Context, b *models.Bordereau) error
}

type bordereauRepo struct {
	db *gorm.DB
}

func NewBordereauRepo(db *gorm.DB) BordereauRepository {
	return &bordereauRepo{db: db}
}

func (r *bordereauRepo) Upsert(ctx context.Context, b *models.Bordereau) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "total_amount", "expected_payment_date", "dentist_id", "updated_at"}),
		}).
		Create(b).Error
}
