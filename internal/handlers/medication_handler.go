// File: internal/handlers/medication_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/repository/medication"
	"github.com/medbridge/go-medbridge/internal/services/medications"
)

// MedicationHandler serves the public medication reference and the
// authenticated create endpoint.
type MedicationHandler struct {
	medications *medications.Service
}

func NewMedicationHandler(ms *medications.Service) *MedicationHandler {
	return &MedicationHandler{medications: ms}
}

// List pages through the reference, optionally only discontinued drugs.
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 100)
	meds, total, err := h.medications.List(r.Context(), skip, limit, queryBool(r, "discontinued_only"))
	if err != nil {
		log.Printf("[MedicationHandler] list failed: %v", err)
		writeError(w, "Could not list medications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.MedicationListResponse{
		Medications: dtos.MedicationSummariesFromDomain(meds),
		Total:       total,
		Skip:        skip,
		Limit:       limit,
	})
}

// Search finds medications whose name contains the query substring.
func (h *MedicationHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, `Query parameter "q" is required`, http.StatusBadRequest)
		return
	}

	skip, limit := pagination(r, 50)
	meds, err := h.medications.Search(r.Context(), query, skip, limit, queryBool(r, "include_discontinued"))
	if err != nil {
		log.Printf("[MedicationHandler] search failed: %v", err)
		writeError(w, "Could not search medications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.MedicationSummariesFromDomain(meds))
}

// Get returns one medication by numeric ID.
func (h *MedicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid medication ID", http.StatusBadRequest)
		return
	}

	med, err := h.medications.GetByID(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.MedicationFromDomain(med))
}

// GetByName returns one medication by exact name, case-insensitively.
func (h *MedicationHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	med, err := h.medications.GetByName(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.MedicationFromDomain(med))
}

// Create adds a medication to the reference.
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}

	var req dtos.CreateMedicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Sanitize()
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	med, err := h.medications.Create(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, medication.ErrDuplicateMedication) {
			writeError(w, "Medication with this name already exists", http.StatusConflict)
			return
		}
		log.Printf("[MedicationHandler] create failed: %v", err)
		writeError(w, "Could not create medication", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.MedicationFromDomain(med))
}

// Extract scans free text for known medication names.
func (h *MedicationHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req dtos.ExtractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, `Field "text" is required`, http.StatusBadRequest)
		return
	}

	hits, err := h.medications.ExtractContext(r.Context(), req.Text)
	if err != nil {
		log.Printf("[MedicationHandler] extract failed: %v", err)
		writeError(w, "Could not extract medications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ExtractResponse{
		MedicationsFound: hits,
		Count:            len(hits),
	})
}

func (h *MedicationHandler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, medication.ErrMedicationNotFound) {
		writeError(w, "Medication not found", http.StatusNotFound)
		return
	}
	log.Printf("[MedicationHandler] lookup failed: %v", err)
	writeError(w, "Could not load medication", http.StatusInternalServerError)
}
