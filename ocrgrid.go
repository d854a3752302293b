// Package ocrgrid provides a fluent API for turning OCR provider output into
// reading-order text and structured tables.
//
// Basic usage:
//
//	doc, warnings, err := ocrgrid.Open("textract.json").
//	    PageSize(1240, 1754).
//	    Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", ocrgrid.FormatWarnings(warnings))
//	}
//
// The provider is detected from the payload. With options:
//
//	text, _, err := ocrgrid.FromBytes(body).
//	    Format(format.AzureLayout).
//	    VerticalTolerance(8).
//	    EmptyCellText("").
//	    Text()
//
// For advanced use cases, the provider packages (textract, azure, docai,
// hocr, ocr) and the tables and layout packages are also available.
package ocrgrid

import (
	"fmt"
	"io"
)

// Open returns an Extractor for the named file. The file is read by the
// first terminal operation.
//
// Example:
//
//	text, warnings, err := ocrgrid.Open("page.hocr").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
		logger:   discardLogger(),
	}
}

// FromBytes returns an Extractor for an in-memory payload.
//
// Example:
//
//	doc, warnings, err := ocrgrid.FromBytes(body).PageSize(1000, 1400).Document()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		loaded:  true,
		options: defaultOptions(),
		logger:  discardLogger(),
	}
}

// FromReader reads the whole payload and returns an Extractor for it. A read
// error is reported by the first terminal operation.
func FromReader(r io.Reader) *Extractor {
	data, err := io.ReadAll(r)
	e := FromBytes(data)
	if err != nil {
		e.err = fmt.Errorf("failed to read payload: %w", err)
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := ocrgrid.Must(ocrgrid.Open("textract.json").PageSize(1000, 500).JSON())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := ocrgrid.MustText(ocrgrid.Open("page.hocr").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
