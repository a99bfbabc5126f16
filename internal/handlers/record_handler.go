// File: internal/handlers/record_handler.go
package handlers

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/medbridge/go-medbridge/internal/dtos"
	"github.com/medbridge/go-medbridge/internal/services/records"
)

// maxUploadBytes caps multipart uploads of scanned documents.
const maxUploadBytes = 10 << 20

// RecordHandler serves CRUD for a user's medical records.
type RecordHandler struct {
	records *records.Service
}

func NewRecordHandler(rs *records.Service) *RecordHandler {
	return &RecordHandler{records: rs}
}

// Create accepts either a JSON body or a multipart form carrying an "image"
// file of a scanned document.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.createFromImage(w, r, userID)
		return
	}

	var req dtos.CreateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.create(w, r, userID, req)
}

func (h *RecordHandler) create(w http.ResponseWriter, r *http.Request, userID uint, req dtos.CreateRecordRequest) {
	req.Sanitize()
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	rec, err := h.records.Create(r.Context(), userID, records.CreateInput{
		Title:        req.Title,
		OriginalText: req.OriginalText,
		RecordType:   req.RecordType,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.RecordFromDomain(rec))
}

func (h *RecordHandler) createFromImage(w http.ResponseWriter, r *http.Request, userID uint) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			// Multipart without an image part is treated as a form-encoded
			// create, same as the JSON path.
			h.create(w, r, userID, dtos.CreateRecordRequest{
				Title:        r.FormValue("title"),
				OriginalText: r.FormValue("original_text"),
				RecordType:   r.FormValue("record_type"),
			})
			return
		}
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, "No selected file", http.StatusBadRequest)
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Could not read uploaded file", http.StatusBadRequest)
		return
	}

	rec, err := h.records.CreateFromImage(r.Context(), userID, records.CreateImageInput{
		Title:      r.FormValue("title"),
		RecordType: r.FormValue("record_type"),
		Image:      image,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.RecordFromDomain(rec))
}

// List returns the current user's records in list view, newest data first.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	skip, limit := pagination(r, 100)
	recs, err := h.records.List(r.Context(), userID, skip, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.SummariesFromDomain(recs))
}

// Get returns one record owned by the current user.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	rec, err := h.records.Get(r.Context(), userID, recordID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RecordFromDomain(rec))
}

// Update edits a record; changing original_text clears the cached AI output.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	var req dtos.UpdateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeFieldErrors(w, problems)
		return
	}

	rec, err := h.records.Update(r.Context(), userID, recordID, records.UpdateInput{
		Title:        req.Title,
		OriginalText: req.OriginalText,
		RecordType:   req.RecordType,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos.RecordFromDomain(rec))
}

// Delete removes a record owned by the current user.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	recordID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid record ID", http.StatusBadRequest)
		return
	}

	if err := h.records.Delete(r.Context(), userID, recordID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps a records service failure onto a status code.
func (h *RecordHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case records.IsNotFound(err):
		writeError(w, "Medical record not found", http.StatusNotFound)
	case records.IsValidation(err):
		var recErr *records.RecordError
		errors.As(err, &recErr)
		writeError(w, recErr.Message, http.StatusBadRequest)
	default:
		log.Printf("[RecordHandler] unexpected error: %v", err)
		writeError(w, "Something went wrong on our end.", http.StatusInternalServerError)
	}
}
