// File: internal/services/medications/service.go
package medications

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/repository/medication"
)

// Logger interface for the medications service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Service exposes the medication reference table and the text extractor.
type Service struct {
	repo   medication.MedicationRepository
	logger Logger
}

// NewService creates a medications service.
func NewService(repo medication.MedicationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a page of the reference table plus the unpaginated total.
func (s *Service) List(ctx context.Context, skip, limit int, discontinuedOnly bool) ([]domain.Medication, int64, error) {
	return s.repo.List(ctx, skip, limit, discontinuedOnly)
}

// Search matches the query against medication names and uses,
// case-insensitively. Discontinued entries are hidden unless asked for.
func (s *Service) Search(ctx context.Context, query string, skip, limit int, includeDiscontinued bool) ([]domain.Medication, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query cannot be empty")
	}
	return s.repo.Search(ctx, query, skip, limit, includeDiscontinued)
}

// GetByID looks up one medication.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Medication, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByName looks up one medication by exact name, ignoring case.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Medication, error) {
	return s.repo.FindByName(ctx, name)
}

// Create adds a reference entry. Duplicate names (ignoring case) surface
// the repository's ErrDuplicateMedication.
func (s *Service) Create(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	created, err := s.repo.Create(ctx, med)
	if err != nil {
		return nil, err
	}
	s.logger.Info("medication added to reference table", "medication_id", created.ID, "name", created.Name)
	return created, nil
}

// ExtractContext scans free text for known medication names. Each name
// must appear as a whole word; substring matches inside longer words do not
// count. A medication is reported at most once, and output order follows
// the reference table, not text appearance. An empty table yields an empty
// slice and no error.
func (s *Service) ExtractContext(ctx context.Context, text string) ([]domain.MedicationHit, error) {
	hits := []domain.MedicationHit{}
	if strings.TrimSpace(text) == "" {
		return hits, nil
	}

	meds, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range meds {
		med := &meds[i]
		if med.Name == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(med.Name) + `\b`)
		if err != nil {
			s.logger.Warn("skipping unmatchable medication name", "name", med.Name, "error", err)
			continue
		}
		if pattern.MatchString(text) {
			hits = append(hits, med.ToHit())
		}
	}

	s.logger.Debug("medication extraction finished", "text_length", len(text), "hits", len(hits))
	return hits, nil
}
