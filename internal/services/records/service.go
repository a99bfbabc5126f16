// File: internal/services/records/service.go
package records

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/repository/record"
	"github.com/medbridge/go-medbridge/internal/services/ai"
)

// pendingAnalysisText is stored as the record body when an image upload
// could not be analyzed by any provider.
const pendingAnalysisText = "Image processing pending..."

// defaultImageTitle names image uploads that arrive without a title.
const defaultImageTitle = "Uploaded Medical Image"

// recentRecordCount is the dashboard's recent-records window.
const recentRecordCount = 5

// Service owns medical record CRUD, the cached explain flow, and indexing
// of new records for retrieval.
type Service struct {
	records record.RecordRepository
	gateway Gateway
	index   Indexer
	ocr     TextExtractor
	logger  Logger
}

// NewService creates a records service. ocr may be nil when no OCR backend
// is available; image uploads then rely on the gateway alone.
func NewService(records record.RecordRepository, gateway Gateway, index Indexer, ocr TextExtractor, logger Logger) *Service {
	return &Service{
		records: records,
		gateway: gateway,
		index:   index,
		ocr:     ocr,
		logger:  logger,
	}
}

// Create stores a new text record and indexes it for retrieval.
func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*domain.MedicalRecord, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, NewValidationError("create", "title is required")
	}
	if strings.TrimSpace(input.OriginalText) == "" {
		return nil, NewValidationError("create", "original_text is required")
	}
	recordType := input.RecordType
	if recordType == "" {
		recordType = domain.DefaultRecordType
	}

	created, err := s.records.Create(ctx, &domain.MedicalRecord{
		UserID:       userID,
		Title:        input.Title,
		OriginalText: input.OriginalText,
		RecordType:   recordType,
	})
	if err != nil {
		return nil, NewInternalError("create", err)
	}

	s.indexRecord(ctx, created)
	return created, nil
}

// CreateFromImage stores an uploaded image as a record. The gateway's
// vision analysis becomes the record body; when every provider fails the
// body is a pending placeholder. OCR output supplements the record but
// never blocks it.
func (s *Service) CreateFromImage(ctx context.Context, userID uint, input CreateImageInput) (*domain.MedicalRecord, error) {
	if len(input.Image) == 0 {
		return nil, NewValidationError("create_image", "image payload is empty")
	}
	title := input.Title
	if title == "" {
		title = defaultImageTitle
	}
	recordType := input.RecordType
	if recordType == "" {
		recordType = domain.DefaultRecordType
	}

	originalText := pendingAnalysisText
	if s.gateway.IsConfigured() {
		text, err := s.gateway.Complete(ctx, ai.ImageAnalysisRequest(input.Image))
		if err != nil {
			s.logger.Warn("image analysis failed, storing placeholder", "error", err)
		} else {
			originalText = text
		}
	}

	rec := &domain.MedicalRecord{
		UserID:       userID,
		Title:        title,
		OriginalText: originalText,
		RecordType:   recordType,
	}

	encoded := base64.StdEncoding.EncodeToString(input.Image)
	rec.ImageData = &encoded

	if s.ocr != nil {
		text, confidence, err := s.ocr.ExtractText(input.Image)
		if err != nil {
			s.logger.Warn("OCR extraction failed", "error", err)
		} else if text != "" {
			rec.OCRExtractedText = &text
			rec.OCRConfidence = &confidence
		}
	}

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		return nil, NewInternalError("create_image", err)
	}

	s.indexRecord(ctx, created)
	return created, nil
}

// Get returns one record owned by the user.
func (s *Service) Get(ctx context.Context, userID, recordID uint) (*domain.MedicalRecord, error) {
	rec, err := s.records.FindByIDAndUser(ctx, recordID, userID)
	if err != nil {
		return nil, s.mapRepositoryError("get", err)
	}
	return rec, nil
}

// List returns a page of the user's records.
func (s *Service) List(ctx context.Context, userID uint, skip, limit int) ([]domain.MedicalRecord, error) {
	recs, err := s.records.FindByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, NewInternalError("list", err)
	}
	return recs, nil
}

// Update edits a record. An edit that touches OriginalText clears both
// cached AI columns in the same UPDATE, so new text never coexists with a
// stale translation.
func (s *Service) Update(ctx context.Context, userID, recordID uint, input UpdateInput) (*domain.MedicalRecord, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, NewValidationError("update", "title cannot be empty")
		}
		fields["title"] = *input.Title
	}
	if input.RecordType != nil {
		fields["record_type"] = *input.RecordType
	}
	if input.OriginalText != nil {
		fields["original_text"] = *input.OriginalText
		fields["translated_text"] = nil
		fields["lifestyle_suggestions"] = nil
	}

	rec, err := s.records.UpdateFields(ctx, recordID, userID, fields)
	if err != nil {
		return nil, s.mapRepositoryError("update", err)
	}
	return rec, nil
}

// Delete removes a record owned by the user.
func (s *Service) Delete(ctx context.Context, userID, recordID uint) error {
	if err := s.records.Delete(ctx, recordID, userID); err != nil {
		return s.mapRepositoryError("delete", err)
	}
	return nil
}

// Count returns how many records the user owns.
func (s *Service) Count(ctx context.Context, userID uint) (int64, error) {
	count, err := s.records.CountByUser(ctx, userID)
	if err != nil {
		return 0, NewInternalError("count", err)
	}
	return count, nil
}

// Dashboard aggregates the user's record statistics and the most recent
// records.
func (s *Service) Dashboard(ctx context.Context, userID uint) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalRecords, err = s.records.CountByUser(ctx, userID); err != nil {
		return DashboardStats{}, NewInternalError("dashboard", err)
	}
	if stats.RecordsWithTranslation, err = s.records.CountWithTranslation(ctx, userID); err != nil {
		return DashboardStats{}, NewInternalError("dashboard", err)
	}
	if stats.RecordsWithSuggestions, err = s.records.CountWithSuggestions(ctx, userID); err != nil {
		return DashboardStats{}, NewInternalError("dashboard", err)
	}
	if stats.RecentRecords, err = s.records.FindRecentByUser(ctx, userID, recentRecordCount); err != nil {
		return DashboardStats{}, NewInternalError("dashboard", err)
	}
	return stats, nil
}

// Explain returns the cached translation/suggestions pair, or refreshes it
// through the gateway. The two prompts run concurrently and fail
// independently: a partial success persists the successful half and
// reports the other as null. A failed refresh never clears existing cache.
func (s *Service) Explain(ctx context.Context, userID, recordID uint, forceRefresh bool) (ExplainResult, error) {
	rec, err := s.records.FindByIDAndUser(ctx, recordID, userID)
	if err != nil {
		return ExplainResult{}, s.mapRepositoryError("explain", err)
	}

	if !forceRefresh && rec.HasCachedAIResults() {
		return ExplainResult{
			Translation: rec.TranslatedText,
			Suggestions: rec.LifestyleSuggestions,
			Cached:      true,
		}, nil
	}

	if !s.gateway.IsConfigured() {
		return ExplainResult{}, NewUnavailableError("explain", nil)
	}

	var (
		translation    string
		suggestions    string
		translationErr error
		suggestionsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		translation, translationErr = s.gateway.Complete(gctx, ai.TranslationPrompt(rec.OriginalText))
		return nil
	})
	g.Go(func() error {
		suggestions, suggestionsErr = s.gateway.Complete(gctx, ai.SuggestionsPrompt(rec.OriginalText))
		return nil
	})
	_ = g.Wait()

	if translationErr != nil && suggestionsErr != nil {
		s.logger.Warn("explain refresh failed on both prompts",
			"record_id", recordID,
			"translation_error", translationErr,
			"suggestions_error", suggestionsErr)
		return ExplainResult{}, NewUnavailableError("explain", translationErr)
	}

	fields := map[string]interface{}{}
	result := ExplainResult{Cached: false}
	if translationErr == nil {
		fields["translated_text"] = translation
		result.Translation = &translation
	} else {
		s.logger.Warn("translation half of explain failed", "record_id", recordID, "error", translationErr)
	}
	if suggestionsErr == nil {
		fields["lifestyle_suggestions"] = suggestions
		result.Suggestions = &suggestions
	} else {
		s.logger.Warn("suggestions half of explain failed", "record_id", recordID, "error", suggestionsErr)
	}

	if _, err := s.records.UpdateFields(ctx, recordID, userID, fields); err != nil {
		return ExplainResult{}, s.mapRepositoryError("explain", err)
	}
	return result, nil
}

// indexRecord submits the record body for retrieval. Indexing is
// best-effort: the index swallows its own failures, so a nil return here
// is the norm.
func (s *Service) indexRecord(ctx context.Context, rec *domain.MedicalRecord) {
	if s.index == nil {
		return
	}
	err := s.index.Add(ctx, strconv.FormatUint(uint64(rec.ID), 10), rec.OriginalText, map[string]interface{}{
		"title":   rec.Title,
		"type":    rec.RecordType,
		"user_id": rec.UserID,
	})
	if err != nil {
		s.logger.Warn("record indexing failed", "record_id", rec.ID, "error", err)
	}
}

func (s *Service) mapRepositoryError(operation string, err error) error {
	if errors.Is(err, record.ErrRecordNotFound) {
		return NewNotFoundError(operation)
	}
	return NewInternalError(operation, err)
}
