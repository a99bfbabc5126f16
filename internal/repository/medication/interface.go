// File: internal/repository/medication/interface.go
package medication

import (
	"context"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// MedicationRepository handles the shared medication reference table.
// Name lookups are case-insensitive.
type MedicationRepository interface {
	Create(ctx context.Context, med *domain.Medication) (*domain.Medication, error)
	FindByID(ctx context.Context, id uint) (*domain.Medication, error)
	FindByName(ctx context.Context, name string) (*domain.Medication, error)
	FindAll(ctx context.Context) ([]domain.Medication, error)
	List(ctx context.Context, skip, limit int, discontinuedOnly bool) ([]domain.Medication, int64, error)
	Search(ctx context.Context, query string, skip, limit int, includeDiscontinued bool) ([]domain.Medication, error)
}
