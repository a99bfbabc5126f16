// File: internal/services/ocr/ocr.go
package ocr

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Logger interface for the OCR adapter.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Adapter runs Tesseract over uploaded images. A fresh client is created
// per call: gosseract clients are not safe for concurrent reuse.
type Adapter struct {
	logger Logger
}

// NewAdapter creates an OCR adapter.
func NewAdapter(logger Logger) *Adapter {
	return &Adapter{logger: logger}
}

// ExtractText recognizes text in the image and reports the mean word-level
// confidence scaled to [0,1]. Finding no text is not an error: the caller
// gets empty text, zero confidence, and a nil error.
func (a *Adapter) ExtractText(image []byte) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", 0, err
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, nil
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		a.logger.Warn("word confidence lookup failed", "error", err)
		return text, 0, nil
	}

	return text, meanWordConfidence(boxes), nil
}

// meanWordConfidence averages Tesseract's per-word confidence (0..100)
// into a 0..1 score, skipping whitespace-only boxes.
func meanWordConfidence(boxes []gosseract.BoundingBox) float64 {
	var sum float64
	var count int
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		sum += box.Confidence
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) / 100.0
}
