package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mellah-kais/cnam-server/internal/models"
)

type BulletinRepository interface {
	Upsert(ctx context.Context, b *models.Bulletin) error
}

type bulletinRepo struct {
	db *gorm.DB
}

func NewBulletinRepo(db *gorm.DB) BulletinRepository {
	return &bulletinRepo{db: db}
}

func (r *bulletinRepo) Upsert(ctx context.Context, b *models.Bulletin) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "bordereau_ref", "total_amount", "act_codes", "dentist_id", "updated_at"}),
		}).
		Create(b).Error
}
