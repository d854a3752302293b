// Package format detects which OCR provider produced a payload.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when a payload matches no supported provider
var ErrUnknownFormat = errors.New("format: unrecognised OCR payload")

// Format represents a supported provider payload.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Textract indicates an AWS Textract response.
	Textract
	// AzureLayout indicates an Azure Document Intelligence analyze result.
	AzureLayout
	// AzureRead indicates an Azure Vision image analysis read result.
	AzureRead
	// DocumentAI indicates a Google Document AI document.
	DocumentAI
	// HOCR indicates an hOCR document.
	HOCR
	// Image indicates a raster image for local Tesseract recognition.
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Textract:
		return "Textract"
	case AzureLayout:
		return "AzureLayout"
	case AzureRead:
		return "AzureRead"
	case DocumentAI:
		return "DocumentAI"
	case HOCR:
		return "hOCR"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Textract, AzureLayout, AzureRead, DocumentAI:
		return ".json"
	case HOCR:
		return ".hocr"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension. JSON files are
// Unknown because every cloud provider uses them; use DetectFromBytes.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hocr", ".html", ".htm", ".xhtml":
		return HOCR
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return Image
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes for image signatures and hOCR markup.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if isImage(data) {
		return Image
	}
	if isHOCR(data) {
		return HOCR
	}
	return Unknown
}

func isImage(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case bytes.HasPrefix(data, []byte("BM")) && len(data) >= 26:
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return true
	}
	return false
}

// isHOCR reports whether the data is markup carrying hOCR classes
func isHOCR(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return false
	}
	return bytes.Contains(data, []byte("ocr_page")) || bytes.Contains(data, []byte("ocrx_word"))
}

// DetectFromBytes inspects the payload. Images and hOCR are recognised by
// their leading bytes; JSON bodies by their top-level keys.
func DetectFromBytes(data []byte) (Format, error) {
	if f := DetectFromMagic(data); f != Unknown {
		return f, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Unknown, ErrUnknownFormat
	}

	has := func(k string) bool {
		_, ok := keys[k]
		return ok
	}

	switch {
	case has("Blocks"):
		return Textract, nil
	case has("readResult"):
		return AzureRead, nil
	case has("analyzeResult"):
		return AzureLayout, nil
	case has("document"):
		return DocumentAI, nil
	case has("pages") && (has("apiVersion") || has("modelId")):
		return AzureLayout, nil
	case has("pages") && (has("text") || has("mimeType") || has("uri")):
		return DocumentAI, nil
	case has("pages"):
		return AzureLayout, nil
	}
	return Unknown, ErrUnknownFormat
}
