//go:build !ocr

package ocr

import "github.com/supagonava/ocrgrid/model"

// PageSegMode represents page segmentation modes for OCR.
type PageSegMode int

// Page segmentation modes (matching the OCR-enabled implementation).
const (
	PSM_OSD_ONLY      PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD      PageSegMode = 1  // Automatic with OSD
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE   PageSegMode = 7  // Single text line
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeWords returns ErrOCRNotEnabled.
func (c *Client) RecognizeWords(imageData []byte) ([]model.WordAnnotation, error) {
	return nil, ErrOCRNotEnabled
}

// Document returns ErrOCRNotEnabled.
func (c *Client) Document(imageData []byte) (*model.Document, []model.Warning, error) {
	return nil, nil, ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns ErrOCRNotEnabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
