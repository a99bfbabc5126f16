// File: internal/domain/medication.go
package domain

import "time"

// Medication is one row of the reference table scanned for mentions in
// patient text. The table is read-mostly; rows are seeded or added by
// authenticated users and never mutated by the AI subsystem.
type Medication struct {
	ID                    uint   `gorm:"primarykey"`
	Name                  string `gorm:"uniqueIndex;not null"`
	URL                   string
	Uses                  string  `gorm:"type:text"`
	SideEffects           string  `gorm:"type:text"`
	Discontinued          bool    `gorm:"default:false"`
	DiscontinuationReason *string `gorm:"type:text"`
	CreatedAt             time.Time
}

// MedicationHit is the read-only projection returned by text extraction.
type MedicationHit struct {
	Name                  string  `json:"name"`
	Uses                  string  `json:"uses"`
	SideEffects           string  `json:"side_effects"`
	Discontinued          bool    `json:"discontinued"`
	DiscontinuationReason *string `json:"discontinuation_reason"`
}

// ToHit projects a reference row into the shape used for prompt enrichment.
func (m *Medication) ToHit() MedicationHit {
	return MedicationHit{
		Name:                  m.Name,
		Uses:                  m.Uses,
		SideEffects:           m.SideEffects,
		Discontinued:          m.Discontinued,
		DiscontinuationReason: m.DiscontinuationReason,
	}
}
