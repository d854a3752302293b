// Package ocr runs Tesseract locally and reads page sizes from image
// headers.
//
// The Tesseract client wraps gosseract and is only compiled with the "ocr"
// build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Without the tag every client method returns ErrOCRNotEnabled. [ImageSize]
// is always available.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")
