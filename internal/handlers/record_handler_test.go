// File: internal/handlers/record_handler_test.go
package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) doMultipart(t *testing.T, path, token string, fields map[string]string, fileName string, fileBytes []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileBytes != nil {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileBytes)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestRecordCRUDRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	recordID := env.createRecord(t, token, "Checkup", "BP 120/80")

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/records/%d", recordID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var rec struct {
		Title          string  `json:"title"`
		OriginalText   string  `json:"original_text"`
		RecordType     string  `json:"record_type"`
		TranslatedText *string `json:"translated_text"`
	}
	decodeBody(t, rr, &rec)
	assert.Equal(t, "Checkup", rec.Title)
	assert.Equal(t, "BP 120/80", rec.OriginalText)
	assert.Equal(t, "doctor_note", rec.RecordType, "record type defaults when omitted")
	assert.Nil(t, rec.TranslatedText)

	rr = env.do(t, http.MethodGet, "/api/records", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []struct {
		ID             uint   `json:"id"`
		Title          string `json:"title"`
		HasTranslation bool   `json:"has_translation"`
		HasSuggestions bool   `json:"has_suggestions"`
	}
	decodeBody(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, recordID, list[0].ID)
	assert.False(t, list[0].HasTranslation)
	assert.False(t, list[0].HasSuggestions)

	newTitle := "Annual checkup"
	rr = env.do(t, http.MethodPut, fmt.Sprintf("/api/records/%d", recordID), token, map[string]string{"title": newTitle})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), newTitle)

	rr = env.do(t, http.MethodDelete, fmt.Sprintf("/api/records/%d", recordID), token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/records/%d", recordID), token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Medical record not found")
}

func TestRecordOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	env.register(t, "bob", "bob@example.com", "secret456")
	aliceToken := env.login(t, "alice", "secret123")
	bobToken := env.login(t, "bob", "secret456")

	recordID := env.createRecord(t, aliceToken, "Private", "Diagnosis text")

	path := fmt.Sprintf("/api/records/%d", recordID)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, bobToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, path, bobToken, map[string]string{"title": "hijack"}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, bobToken, nil).Code)

	// Still intact for the owner.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, path, aliceToken, nil).Code)
}

func TestUpdateClearsCachedExplanation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")
	env.provider.configure("Plain-language explanation.")

	recordID := env.createRecord(t, token, "Checkup", "BP 120/80")

	rr := env.do(t, http.MethodPost, fmt.Sprintf("/api/ai/explain/%d", recordID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, fmt.Sprintf("/api/records/%d", recordID), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var before struct {
		TranslatedText       *string `json:"translated_text"`
		LifestyleSuggestions *string `json:"lifestyle_suggestions"`
	}
	decodeBody(t, rr, &before)
	require.NotNil(t, before.TranslatedText)
	require.NotNil(t, before.LifestyleSuggestions)

	rr = env.do(t, http.MethodPut, fmt.Sprintf("/api/records/%d", recordID), token, map[string]string{
		"original_text": "BP 150/95",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var after struct {
		OriginalText         string  `json:"original_text"`
		TranslatedText       *string `json:"translated_text"`
		LifestyleSuggestions *string `json:"lifestyle_suggestions"`
	}
	decodeBody(t, rr, &after)
	assert.Equal(t, "BP 150/95", after.OriginalText)
	assert.Nil(t, after.TranslatedText, "editing the source text must invalidate the cached translation")
	assert.Nil(t, after.LifestyleSuggestions, "editing the source text must invalidate the cached suggestions")
}

func TestCreateRecordFromImage(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	rr := env.doMultipart(t, "/api/records", token, nil, "scan.png", []byte("fake-png-bytes"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var rec struct {
		Title            string   `json:"title"`
		OriginalText     string   `json:"original_text"`
		RecordType       string   `json:"record_type"`
		OCRExtractedText *string  `json:"ocr_extracted_text"`
		OCRConfidence    *float64 `json:"ocr_confidence"`
	}
	decodeBody(t, rr, &rec)
	assert.Equal(t, "Uploaded Medical Image", rec.Title)
	assert.Equal(t, "doctor_note", rec.RecordType)
	assert.Equal(t, "Image processing pending...", rec.OriginalText, "no vision provider configured, placeholder stored")
	require.NotNil(t, rec.OCRExtractedText)
	assert.Equal(t, "BP 140/90", *rec.OCRExtractedText)
	require.NotNil(t, rec.OCRConfidence)
	assert.InDelta(t, 0.9, *rec.OCRConfidence, 1e-9)
}

func TestCreateRecordValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")
	token := env.login(t, "alice", "secret123")

	rr := env.do(t, http.MethodPost, "/api/records", token, map[string]string{
		"original_text": "text without a title",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, rr, &resp)
	assert.Contains(t, resp.Errors, "title")
}
