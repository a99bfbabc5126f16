// File: internal/services/ocr/ocr_test.go
package ocr

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
)

func TestMeanWordConfidence(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Word: "Lisinopril", Confidence: 90},
		{Word: "10mg", Confidence: 70},
		{Word: "   ", Confidence: 5},
	}
	assert.InDelta(t, 0.8, meanWordConfidence(boxes), 1e-9, "whitespace boxes are excluded from the mean")
}

func TestMeanWordConfidenceEmpty(t *testing.T) {
	assert.Zero(t, meanWordConfidence(nil))
	assert.Zero(t, meanWordConfidence([]gosseract.BoundingBox{{Word: " ", Confidence: 99}}))
}
