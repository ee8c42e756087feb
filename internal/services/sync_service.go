package services

import (
	"context"
	"time"

	pgrepo "github.com/mellah-kais/cnam-server/internal/repositories/postgres"

	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

// SyncService upserts client-side records for the authenticated dentist.
// Records are owned by the mobile client; the server is a mirror.
type SyncService interface {
	SyncPatients(ctx context.Context, dentistID string, patients []models.Patient) error
	SyncBulletins(ctx context.Context, dentistID string, bulletins []models.Bulletin) error
	SyncBordereaux(ctx context.Context, dentistID string, bordereaux []models.Bordereau) error
}

type syncService struct {
	patients   pgrepo.PatientRepository
	bulletins  pgrepo.BulletinRepository
	bordereaux pgrepo.BordereauRepository
}

func NewSyncService(patients pgrepo.PatientRepository, bulletins pgrepo.BulletinRepository, bordereaux pgrepo.BordereauRepository) SyncService {
	return &syncService{patients: patients, bulletins: bulletins, bordereaux: bordereaux}
}

func (s *syncService) SyncPatients(ctx context.Context, dentistID string, patients []models.Patient) error {
	const op = "SyncService.SyncPatients"

	for i := range patients {
		p := patients[i]
		p.DentistID = dentistID
		p.UpdatedAt = time.Now().UTC()
		if err := s.patients.Upsert(ctx, &p); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to upsert patient", err)
		}
	}
	return nil
}

func (s *syncService) SyncBulletins(ctx context.Context, dentistID string, bulletins []models.Bulletin) error {
	const op = "SyncService.SyncBulletins"

	for i := range bulletins {
		b := bulletins[i]
		b.DentistID = dentistID
		b.UpdatedAt = time.Now().UTC()
		if err := s.bulletins.Upsert(ctx, &b); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to upsert bulletin", err)
		}
	}
	return nil
}

func (s *syncService) SyncBordereaux(ctx context.Context, dentistID string, bordereaux []models.Bordereau) error {
	const op = "SyncService.SyncBordereaux"

	for i := range bordereaux {
		b := bordereaux[i]
		b.DentistID = dentistID
		b.UpdatedAt = time.Now().UTC()
		if err := s.bordereaux.Upsert(ctx, &b); err != nil {
			return utils.E(utils.CodeInternal, op, "failed to upsert bordereau", err)
		}
	}
	return nil
}
