//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/supagonava/ocrgrid/hocr"
	"github.com/supagonava/ocrgrid/model"
)

// PageSegMode is Tesseract's page segmentation mode
type PageSegMode = gosseract.PageSegMode

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeWords returns one annotation per recognised word, in Tesseract's
// iteration order. Boxes are image pixels.
func (c *Client) RecognizeWords(imageData []byte) ([]model.WordAnnotation, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get word boxes: %w", err)
	}

	words := make([]model.WordAnnotation, 0, len(boxes))
	for _, b := range boxes {
		box := model.NewBBox(b.Box.Min.X, b.Box.Min.Y, b.Box.Max.X, b.Box.Max.Y)
		words = append(words, model.NewWordAnnotation(model.CleanText(strings.TrimSpace(b.Word)), box))
	}
	return words, nil
}

// Document recognises the image and builds a document from Tesseract's
// hOCR output. Tesseract finds no tables.
func (c *Client) Document(imageData []byte) (*model.Document, []model.Warning, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, nil, fmt.Errorf("failed to set image: %w", err)
	}

	out, err := c.client.HOCRText()
	if err != nil {
		return nil, nil, fmt.Errorf("OCR failed: %w", err)
	}

	parsed, err := hocr.ParseString(out)
	if err != nil {
		return nil, nil, err
	}
	doc, warnings := parsed.ToDocument()
	return doc, warnings, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+tha").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
