// File: internal/repository/record/interface.go
package record

import (
	"context"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// RecordRepository handles medical record persistence. Every lookup is
// scoped to the owning user: a record owned by someone else behaves
// exactly like a missing record.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) (*domain.MedicalRecord, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*domain.MedicalRecord, error)
	FindByUser(ctx context.Context, userID uint, skip, limit int) ([]domain.MedicalRecord, error)
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.MedicalRecord, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	CountWithTranslation(ctx context.Context, userID uint) (int64, error)
	CountWithSuggestions(ctx context.Context, userID uint) (int64, error)
	UpdateFields(ctx context.Context, id, userID uint, fields map[string]interface{}) (*domain.MedicalRecord, error)
	Delete(ctx context.Context, id, userID uint) error
}
