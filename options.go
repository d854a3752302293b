package ocrgrid

import (
	"github.com/supagonava/ocrgrid/format"
	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/tables"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Provider format; Unknown means detect
	format format.Format

	// Pixel size of the analysed page
	page model.PageSize

	// Table synthesis
	line           layout.LineConfig
	emptyCellText  string
	skipTables     bool
	useCellContent bool

	// Tesseract languages, "+" separated
	language string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	config := tables.DefaultConfig()
	return ExtractOptions{
		format:        format.Unknown,
		line:          config.Line,
		emptyCellText: config.EmptyCellText,
	}
}

// clone returns a copy of the options. Every field is a value, so a plain
// copy is deep.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}

// tablesConfig returns the validated table configuration
func (o ExtractOptions) tablesConfig() (tables.Config, error) {
	config := tables.Config{Line: o.line, EmptyCellText: o.emptyCellText}
	if err := config.Validate(); err != nil {
		return tables.Config{}, err
	}
	return config, nil
}
