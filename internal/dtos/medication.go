// File: internal/dtos/medication.go
package dtos

import (
	"strings"
	"time"

	"github.com/medbridge/go-medbridge/internal/domain"
)

// CreateMedicationRequest is the body for POST /api/medications.
type CreateMedicationRequest struct {
	Name                  string  `json:"name"`
	URL                   string  `json:"url"`
	Uses                  string  `json:"uses"`
	SideEffects           string  `json:"side_effects"`
	Discontinued          bool    `json:"discontinued"`
	DiscontinuationReason *string `json:"discontinuation_reason"`
}

func (r *CreateMedicationRequest) Sanitize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateMedicationRequest) Validate() map[string]string {
	problems := map[string]string{}
	if r.Name == "" {
		problems["name"] = "Medication name is required."
	}
	return problems
}

// ToDomain maps the creation payload to a reference table row.
func (r *CreateMedicationRequest) ToDomain() *domain.Medication {
	return &domain.Medication{
		Name:                  r.Name,
		URL:                   r.URL,
		Uses:                  r.Uses,
		SideEffects:           r.SideEffects,
		Discontinued:          r.Discontinued,
		DiscontinuationReason: r.DiscontinuationReason,
	}
}

// MedicationResponse is the full reference-table projection.
type MedicationResponse struct {
	ID                    uint    `json:"id"`
	Name                  string  `json:"name"`
	URL                   string  `json:"url"`
	Uses                  string  `json:"uses"`
	SideEffects           string  `json:"side_effects"`
	Discontinued          bool    `json:"discontinued"`
	DiscontinuationReason *string `json:"discontinuation_reason"`
	CreatedAt             string  `json:"created_at"`
}

// MedicationSummary is the trimmed search/list projection.
type MedicationSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Uses         string `json:"uses"`
	Discontinued bool   `json:"discontinued"`
}

// MedicationListResponse wraps a page of summaries with its pagination
// echo, as the original list endpoint did.
type MedicationListResponse struct {
	Medications []MedicationSummary `json:"medications"`
	Total       int64               `json:"total"`
	Skip        int                 `json:"skip"`
	Limit       int                 `json:"limit"`
}

// ExtractRequest is the body for POST /api/medications/extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse lists the reference-table hits found in the text.
type ExtractResponse struct {
	MedicationsFound []domain.MedicationHit `json:"medications_found"`
	Count            int                    `json:"count"`
}

// MedicationFromDomain maps a reference row to the full projection.
func MedicationFromDomain(med *domain.Medication) MedicationResponse {
	return MedicationResponse{
		ID:                    med.ID,
		Name:                  med.Name,
		URL:                   med.URL,
		Uses:                  med.Uses,
		SideEffects:           med.SideEffects,
		Discontinued:          med.Discontinued,
		DiscontinuationReason: med.DiscontinuationReason,
		CreatedAt:             med.CreatedAt.Format(time.RFC3339),
	}
}

// MedicationSummariesFromDomain maps rows to search summaries, never nil.
func MedicationSummariesFromDomain(meds []domain.Medication) []MedicationSummary {
	summaries := make([]MedicationSummary, len(meds))
	for i, med := range meds {
		summaries[i] = MedicationSummary{
			ID:           med.ID,
			Name:         med.Name,
			Uses:         med.Uses,
			Discontinued: med.Discontinued,
		}
	}
	return summaries
}
