// File: internal/dtos/record.go
package dtos

import (
	"strings"
	"time"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// CreateRecordRequest is the JSON body for POST /api/records. Multipart
// image uploads bypass this and are read straight from the form.
type CreateRecordRequest struct {
	Title        string `json:"title"`
	OriginalText string `json:"original_text"`
	RecordType   string `json:"record_type"`
}

func (r *CreateRecordRequest) Sanitize() {
	r.Title = strings.TrimSpace(r.Title)
	r.RecordType = strings.TrimSpace(r.RecordType)
}

func (r *CreateRecordRequest) Validate() map[string]string {
	problems := map[string]string{}
	if r.Title == "" || len(r.Title) > 200 {
		problems["title"] = "Title is required and must be at most 200 characters."
	}
	if r.OriginalText == "" {
		problems["original_text"] = "Record text is required."
	}
	return problems
}

// UpdateRecordRequest is the body for PUT /api/records/{id}. Absent fields
// stay unchanged; sending original_text clears the cached AI columns.
type UpdateRecordRequest struct {
	Title        *string `json:"title"`
	OriginalText *string `json:"original_text"`
	RecordType   *string `json:"record_type"`
}

func (r *UpdateRecordRequest) Validate() map[string]string {
	problems := map[string]string{}
	if r.Title != nil && (strings.TrimSpace(*r.Title) == "" || len(*r.Title) > 200) {
		problems["title"] = "Title must be 1-200 characters."
	}
	if r.OriginalText != nil && *r.OriginalText == "" {
		problems["original_text"] = "Record text cannot be empty."
	}
	return problems
}

// RecordResponse is the full record projection, cached AI text included.
type RecordResponse struct {
	ID                   uint     `json:"id"`
	UserID               uint     `json:"user_id"`
	Title                string   `json:"title"`
	OriginalText         string   `json:"original_text"`
	RecordType           string   `json:"record_type"`
	TranslatedText       *string  `json:"translated_text"`
	LifestyleSuggestions *string  `json:"lifestyle_suggestions"`
	OCRExtractedText     *string  `json:"ocr_extracted_text,omitempty"`
	OCRConfidence        *float64 `json:"ocr_confidence,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

// RecordSummary is the list view: no body text, just flags telling the
// client whether cached AI results exist.
type RecordSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	RecordType     string `json:"record_type"`
	CreatedAt      string `json:"created_at"`
	HasTranslation bool   `json:"has_translation"`
	HasSuggestions bool   `json:"has_suggestions"`
}

// ExplainResponse is the body of POST /api/ai/explain/{id}. Either half may
// be null after a partially failed refresh.
type ExplainResponse struct {
	Translation *string `json:"translation"`
	Suggestions *string `json:"suggestions"`
	Cached      bool    `json:"cached"`
}

// RecordFromDomain maps a record row to the full projection.
func RecordFromDomain(rec *domain.MedicalRecord) RecordResponse {
	return RecordResponse{
		ID:                   rec.ID,
		UserID:               rec.UserID,
		Title:                rec.Title,
		OriginalText:         rec.OriginalText,
		RecordType:           rec.RecordType,
		TranslatedText:       rec.TranslatedText,
		LifestyleSuggestions: rec.LifestyleSuggestions,
		OCRExtractedText:     rec.OCRExtractedText,
		OCRConfidence:        rec.OCRConfidence,
		CreatedAt:            rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            rec.UpdatedAt.Format(time.RFC3339),
	}
}

// SummaryFromDomain maps a record row to its list view.
func SummaryFromDomain(rec *domain.MedicalRecord) RecordSummary {
	return RecordSummary{
		ID:             rec.ID,
		Title:          rec.Title,
		RecordType:     rec.RecordType,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		HasTranslation: rec.HasTranslation(),
		HasSuggestions: rec.HasSuggestions(),
	}
}

// SummariesFromDomain maps a page of records to list views. The result is
// never nil so empty pages serialize as [] rather than null.
func SummariesFromDomain(recs []domain.MedicalRecord) []RecordSummary {
	summaries := make([]RecordSummary, len(recs))
	for i := range recs {
		summaries[i] = SummaryFromDomain(&recs[i])
	}
	return summaries
}
