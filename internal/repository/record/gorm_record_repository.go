// File: internal/repository/record/gorm_record_repository.go
package record

import (
	"context"
	"errors"
	"log"

	"github.com/medbridge/go-medbridge/internal/domain"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when no record matches the id/user pair.
var ErrRecordNotFound = errors.New("medical record not found")

type gormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a GORM-backed medical record repository.
func NewGormRecordRepository(db *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: db}
}

func (r *gormRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	if record.UserID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Printf("[RecordRepository] Database error during record creation: %v", err)
		return nil, errors.New("database error creating record")
	}
	return record, nil
}

func (r *gormRecordRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*domain.MedicalRecord, error) {
	if id == 0 || userID == 0 {
		return nil, ErrRecordNotFound
	}
	var record domain.MedicalRecord
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	return r.handleFindError(err, &record)
}

func (r *gormRecordRepository) FindByUser(ctx context.Context, userID uint, skip, limit int) ([]domain.MedicalRecord, error) {
	var records []domain.MedicalRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Offset(skip).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		log.Printf("[RecordRepository] Database error listing records for user %d: %v", userID, err)
		return nil, errors.New("database error listing records")
	}
	return records, nil
}

func (r *gormRecordRepository) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]domain.MedicalRecord, error) {
	var records []domain.MedicalRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		log.Printf("[RecordRepository] Database error listing recent records for user %d: %v", userID, err)
		return nil, errors.New("database error listing recent records")
	}
	return records, nil
}

func (r *gormRecordRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, "user_id = ?", userID)
}

func (r *gormRecordRepository) CountWithTranslation(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, "user_id = ? AND translated_text IS NOT NULL", userID)
}

func (r *gormRecordRepository) CountWithSuggestions(ctx context.Context, userID uint) (int64, error) {
	return r.countWhere(ctx, "user_id = ? AND lifestyle_suggestions IS NOT NULL", userID)
}

// UpdateFields applies one UPDATE with all given columns, then reloads the
// row. Nil values clear columns, which is how cached AI text is dropped in
// the same statement as the edit that invalidated it.
func (r *gormRecordRepository) UpdateFields(ctx context.Context, id, userID uint, fields map[string]interface{}) (*domain.MedicalRecord, error) {
	if len(fields) == 0 {
		return r.FindByIDAndUser(ctx, id, userID)
	}
	result := r.db.WithContext(ctx).Model(&domain.MedicalRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		log.Printf("[RecordRepository] Database error updating record %d: %v", id, result.Error)
		return nil, errors.New("database error updating record")
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.FindByIDAndUser(ctx, id, userID)
}

func (r *gormRecordRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.MedicalRecord{})
	if result.Error != nil {
		log.Printf("[RecordRepository] Database error deleting record %d: %v", id, result.Error)
		return errors.New("database error deleting record")
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *gormRecordRepository) countWhere(ctx context.Context, cond string, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MedicalRecord{}).Where(cond, userID).Count(&count).Error
	if err != nil {
		log.Printf("[RecordRepository] Database error counting records for user %d: %v", userID, err)
		return 0, errors.New("database error counting records")
	}
	return count, nil
}

func (r *gormRecordRepository) handleFindError(err error, record *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	if err == nil {
		return record, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	log.Printf("[RecordRepository] Database query error: %v", err)
	return nil, errors.New("database query failed")
}
