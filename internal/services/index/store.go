// File: internal/services/index/store.go

// Package index implements a flat-file embedding store with cosine top-N
// retrieval. Entries are append-only: record edits do not re-embed or
// replace earlier entries, so retrieved text can lag the current record
// content. Adds and queries are best-effort and degrade silently rather
// than failing their callers.
package index

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"sort"
	"sync"
)

// Entry is one stored text fragment. The JSON field names define the
// on-disk document format.
type Entry struct {
	ID        string                 `json:"id"`
	Text      string                 `json:"text"`
	Metadata  map[string]interface{} `json:"meta"`
	Embedding []float32              `json:"embedding"`
}

// Index holds all entries in memory and mirrors them to a single JSON file.
// A mutex serializes the whole-file read-modify-write; queries take it
// briefly to snapshot entries.
type Index struct {
	config   *Config
	embedder Embedder
	logger   Logger

	mu      sync.Mutex
	entries []Entry
}

// New builds the index and restores entries from the persisted file. A
// missing file is an empty index; a corrupt file is logged and treated as
// empty.
func New(config *Config, embedder Embedder, logger Logger) (*Index, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	idx := &Index{config: config, embedder: embedder, logger: logger}
	idx.load()
	return idx, nil
}

func (idx *Index) load() {
	raw, err := os.ReadFile(idx.config.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			idx.logger.Warn("could not read index file, starting empty", "path", idx.config.Path, "error", err.Error())
		}
		return
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		idx.logger.Warn("corrupt index file, starting empty", "path", idx.config.Path, "error", err.Error())
		return
	}

	idx.entries = entries
	idx.logger.Info("index loaded", "path", idx.config.Path, "entries", len(entries))
}

// Add embeds text and appends an entry, persisting the whole file before
// returning. Indexing is best-effort: every failure is logged and swallowed
// so callers never fail because enrichment did.
func (idx *Index) Add(ctx context.Context, id, text string, metadata map[string]interface{}) error {
	embedding, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		idx.logger.Warn("embedding failed, skipping index add", "id", id, "error", err.Error())
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Embedding length must stay constant per index instance or cosine
	// scores become meaningless.
	if len(idx.entries) > 0 && len(embedding) != len(idx.entries[0].Embedding) {
		idx.logger.Warn("embedding dimension mismatch, skipping index add",
			"id", id, "got", len(embedding), "want", len(idx.entries[0].Embedding))
		return nil
	}

	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	idx.entries = append(idx.entries, Entry{ID: id, Text: text, Metadata: metadata, Embedding: embedding})

	if err := idx.persistLocked(); err != nil {
		idx.logger.Warn("could not persist index", "path", idx.config.Path, "error", err.Error())
	}
	return nil
}

// Query embeds the text and returns the topN most similar entries, ranked
// descending with ties kept in insertion order. Embedding failure or an
// empty store yields an empty slice, never an error.
func (idx *Index) Query(ctx context.Context, text string, topN int) []SearchHit {
	if topN <= 0 {
		return []SearchHit{}
	}

	embedding, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		idx.logger.Warn("embedding failed, returning no hits", "error", err.Error())
		return []SearchHit{}
	}

	idx.mu.Lock()
	entries := make([]Entry, len(idx.entries))
	copy(entries, idx.entries)
	idx.mu.Unlock()

	if len(entries) == 0 {
		return []SearchHit{}
	}

	hits := make([]SearchHit, 0, len(entries))
	for _, entry := range entries {
		hits = append(hits, SearchHit{
			Text:     entry.Text,
			Score:    cosineSimilarity(embedding, entry.Embedding),
			Metadata: entry.Metadata,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	if len(hits) > topN {
		hits = hits[:topN]
	}
	return hits
}

// Len reports the number of stored entries.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.entries)
}

func (idx *Index) persistLocked() error {
	raw, err := json.Marshal(idx.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(idx.config.Path, raw, 0644)
}

// cosineSimilarity computes similarity in [-1, 1]; zero-norm or mismatched
// vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
