// File: internal/domain/medical_record.go
package domain

import "time"

// DefaultRecordType is used when a record is created without an explicit type.
const DefaultRecordType = "doctor_note"

// MedicalRecord is a free-text medical document owned by one user.
// TranslatedText and LifestyleSuggestions hold cached AI output; both are
// cleared together whenever OriginalText changes, so a record never carries
// a translation of text it no longer contains.
type MedicalRecord struct {
	ID                   uint     `gorm:"primarykey"`
	UserID               uint     `gorm:"index;not null"`
	Title                string   `gorm:"not null"`
	OriginalText         string   `gorm:"type:text"`
	ImageData            *string  `gorm:"type:text"` // base64-encoded upload, if any
	OCRExtractedText     *string  `gorm:"type:text"`
	OCRConfidence        *float64 // 0..1, mean word confidence
	TranslatedText       *string  `gorm:"type:text"`
	LifestyleSuggestions *string  `gorm:"type:text"`
	RecordType           string   `gorm:"default:doctor_note"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasTranslation reports whether a cached translation is present.
func (r *MedicalRecord) HasTranslation() bool {
	return r.TranslatedText != nil && *r.TranslatedText != ""
}

// HasSuggestions reports whether cached lifestyle suggestions are present.
func (r *MedicalRecord) HasSuggestions() bool {
	return r.LifestyleSuggestions != nil && *r.LifestyleSuggestions != ""
}

// HasCachedAIResults reports whether both AI fields are populated. The
// explain flow only serves from cache when the full pair is available.
func (r *MedicalRecord) HasCachedAIResults() bool {
	return r.HasTranslation() && r.HasSuggestions()
}
