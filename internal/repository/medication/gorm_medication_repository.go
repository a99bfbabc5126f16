// File: internal/repository/medication/gorm_medication_repository.go
package medication

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/medbridge/go-medbridge/internal/domain"
	"gorm.io/gorm"
)

var (
	// ErrMedicationNotFound is returned when no medication matches the lookup.
	ErrMedicationNotFound = errors.New("medication not found")
	// ErrDuplicateMedication is returned when a medication with the same
	// name (ignoring case) already exists.
	ErrDuplicateMedication = errors.New("medication with this name already exists")
)

type gormMedicationRepository struct {
	db *gorm.DB
}

// NewGormMedicationRepository creates a GORM-backed medication repository.
func NewGormMedicationRepository(db *gorm.DB) MedicationRepository {
	return &gormMedicationRepository{db: db}
}

func (r *gormMedicationRepository) Create(ctx context.Context, med *domain.Medication) (*domain.Medication, error) {
	if strings.TrimSpace(med.Name) == "" {
		return nil, errors.New("medication name cannot be empty")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Medication{}).
		Where("LOWER(name) = ?", strings.ToLower(med.Name)).
		Count(&count).Error
	if err != nil {
		log.Printf("[MedicationRepository] Database error checking medication name: %v", err)
		return nil, errors.New("database error creating medication")
	}
	if count > 0 {
		return nil, ErrDuplicateMedication
	}
	if err := r.db.WithContext(ctx).Create(med).Error; err != nil {
		log.Printf("[MedicationRepository] Database error during medication creation: %v", err)
		return nil, errors.New("database error creating medication")
	}
	return med, nil
}

func (r *gormMedicationRepository) FindByID(ctx context.Context, id uint) (*domain.Medication, error) {
	if id == 0 {
		return nil, ErrMedicationNotFound
	}
	var med domain.Medication
	err := r.db.WithContext(ctx).First(&med, id).Error
	return r.handleFindError(err, &med)
}

func (r *gormMedicationRepository) FindByName(ctx context.Context, name string) (*domain.Medication, error) {
	var med domain.Medication
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&med).Error
	return r.handleFindError(err, &med)
}

// FindAll returns the whole table in insertion order. The text extractor
// depends on that order being stable between calls.
func (r *gormMedicationRepository) FindAll(ctx context.Context) ([]domain.Medication, error) {
	var meds []domain.Medication
	err := r.db.WithContext(ctx).Order("id asc").Find(&meds).Error
	if err != nil {
		log.Printf("[MedicationRepository] Database error loading medications: %v", err)
		return nil, errors.New("database error loading medications")
	}
	return meds, nil
}

func (r *gormMedicationRepository) List(ctx context.Context, skip, limit int, discontinuedOnly bool) ([]domain.Medication, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Medication{})
	if discontinuedOnly {
		query = query.Where("discontinued = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[MedicationRepository] Database error counting medications: %v", err)
		return nil, 0, errors.New("database error counting medications")
	}

	var meds []domain.Medication
	err := query.Order("id asc").Offset(skip).Limit(limit).Find(&meds).Error
	if err != nil {
		log.Printf("[MedicationRepository] Database error listing medications: %v", err)
		return nil, 0, errors.New("database error listing medications")
	}
	return meds, total, nil
}

func (r *gormMedicationRepository) Search(ctx context.Context, query string, skip, limit int, includeDiscontinued bool) ([]domain.Medication, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := r.db.WithContext(ctx).Model(&domain.Medication{}).
		Where("LOWER(name) LIKE ? OR LOWER(uses) LIKE ?", pattern, pattern)
	if !includeDiscontinued {
		q = q.Where("discontinued = ?", false)
	}

	var meds []domain.Medication
	err := q.Order("id asc").Offset(skip).Limit(limit).Find(&meds).Error
	if err != nil {
		log.Printf("[MedicationRepository] Database error searching medications: %v", err)
		return nil, errors.New("database error searching medications")
	}
	return meds, nil
}

func (r *gormMedicationRepository) handleFindError(err error, med *domain.Medication) (*domain.Medication, error) {
	if err == nil {
		return med, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMedicationNotFound
	}
	log.Printf("[MedicationRepository] Database query error: %v", err)
	return nil, errors.New("database query failed")
}
