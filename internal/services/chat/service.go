// File: internal/services/chat/service.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/medbridge/go-medbridge/internal/domain"
	"github.com/medbridge/go-medbridge/internal/services/ai"
)

// contextHits is how many index fragments are retrieved per message.
const contextHits = 3

// Service answers patient chat messages, enriching the prompt with the
// patient's own records and the medication reference table.
type Service struct {
	gateway     Gateway
	searcher    Searcher
	medications MedicationExtractor
	logger      Logger
}

// NewService creates a chat service. searcher and medications may be nil;
// the corresponding enrichment is then skipped.
func NewService(gateway Gateway, searcher Searcher, medications MedicationExtractor, logger Logger) *Service {
	return &Service{
		gateway:     gateway,
		searcher:    searcher,
		medications: medications,
		logger:      logger,
	}
}

// Chat builds the context block for one message and returns the
// completion. Retrieved fragments belonging to other users are dropped
// before they can reach the prompt.
func (s *Service) Chat(ctx context.Context, userID uint, input Input) (string, error) {
	if strings.TrimSpace(input.Message) == "" {
		return "", errors.New("message cannot be empty")
	}
	if !s.gateway.IsConfigured() {
		return "", ai.NewUnavailableError("chat")
	}

	var parts []string
	if input.IncludeContext && s.searcher != nil {
		hits := s.searcher.Query(ctx, input.Message, contextHits)
		kept := 0
		for _, hit := range hits {
			if !hitBelongsTo(hit.Metadata, userID) {
				continue
			}
			parts = append(parts, hit.Text)
			kept++
		}
		s.logger.Debug("record context retrieved", "user_id", userID, "hits", len(hits), "kept", kept)
	}

	if s.medications != nil {
		medHits, err := s.medications.ExtractContext(ctx, input.Message)
		if err != nil {
			s.logger.Warn("medication enrichment failed", "error", err)
		} else {
			for _, hit := range medHits {
				parts = append(parts, medicationLine(hit))
			}
		}
	}

	contextText := strings.Join(parts, "\n\n")
	answer, err := s.gateway.Complete(ctx, ai.ChatPrompt(input.Message, contextText, input.Image))
	if err != nil {
		return "", err
	}
	return answer, nil
}

// medicationLine renders one reference-table hit as a context line.
func medicationLine(hit domain.MedicationHit) string {
	line := fmt.Sprintf("Medication reference: %s. Uses: %s. Side effects: %s.", hit.Name, hit.Uses, hit.SideEffects)
	if hit.Discontinued {
		line += " NOTE: this medication has been discontinued"
		if hit.DiscontinuationReason != nil && *hit.DiscontinuationReason != "" {
			line += " (" + *hit.DiscontinuationReason + ")"
		}
		line += "."
	}
	return line
}

// hitBelongsTo checks the index entry's user_id metadata against the
// caller. Entries reloaded from disk carry JSON numbers (float64); fresh
// entries carry the uint they were stored with.
func hitBelongsTo(metadata map[string]interface{}, userID uint) bool {
	raw, ok := metadata["user_id"]
	if !ok {
		return false
	}
	switch id := raw.(type) {
	case float64:
		return id >= 0 && uint(id) == userID
	case uint:
		return id == userID
	case int:
		return id >= 0 && uint(id) == userID
	case int64:
		return id >= 0 && uint(id) == userID
	case string:
		parsed, err := strconv.ParseUint(id, 10, 64)
		return err == nil && uint(parsed) == userID
	default:
		return false
	}
}
