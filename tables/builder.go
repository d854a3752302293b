package tables

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
)

// ErrInvalidCellIndex is returned for a cell whose row or column index is below 1
var ErrInvalidCellIndex = errors.New("tables: cell index must be 1 or greater")

// Builder synthesizes tables from cell entries and page words
type Builder struct {
	config Config
	lines  *layout.LineDetector
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultConfig())
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{
		config: config,
		lines:  layout.NewLineDetectorWithConfig(config.Line),
	}
}

// Config returns the builder's configuration
func (b *Builder) Config() Config {
	return b.config
}

// Build creates the table with the given id.
//
// Entries must be in relationship order. Cell entries add text, confidence
// and polygon to their row; MergedCell entries only set merged_cells, and a
// later span for the same position replaces an earlier one. Cell polygons are
// converted with norm. Words must already be in pixel space.
func (b *Builder) Build(id string, entries []CellEntry, words []model.WordAnnotation, norm model.Normalizer) (*model.Table, []model.Warning, error) {
	table := model.NewTable(id)
	var warnings []model.Warning

	var index *WordIndex
	for _, entry := range entries {
		if entry.RowIndex < 1 || entry.ColumnIndex < 1 {
			return nil, warnings, fmt.Errorf("%w: %s %q in %s at row %d, column %d",
				ErrInvalidCellIndex, entry.Kind, entry.BlockID, id, entry.RowIndex, entry.ColumnIndex)
		}

		switch entry.Kind {
		case MergedCell:
			table.MergedCells.Set(entry.RowIndex, entry.ColumnIndex, entry.Span())

		case Cell:
			if index == nil && entry.Text == nil {
				index = NewWordIndex(words)
			}
			text, poly, warn := b.cellContent(entry, index, norm)
			if warn != nil {
				warnings = append(warnings, *warn)
			}

			table.Rows.Append(entry.RowIndex, text)
			table.Scores.Append(entry.RowIndex, formatConfidence(entry.Confidence))
			table.Polygon.Append(entry.RowIndex, poly)
			if entry.IsMerged() {
				table.MergedCells.Set(entry.RowIndex, entry.ColumnIndex, entry.Span())
			}

		default:
			return nil, warnings, fmt.Errorf("tables: unknown cell kind %d for %q", entry.Kind, entry.BlockID)
		}
	}

	table.Recount()
	return table, warnings, nil
}

// cellContent returns the text and pixel polygon of a data cell
func (b *Builder) cellContent(entry CellEntry, index *WordIndex, norm model.Normalizer) (string, model.Polygon, *model.Warning) {
	poly := norm.Polygon(entry.Polygon)
	if poly == nil {
		poly = model.Polygon{}
	}

	if entry.Text != nil {
		text := model.CleanText(*entry.Text)
		if text == "" {
			text = b.config.EmptyCellText
		}
		return text, poly, nil
	}

	if len(poly) == 0 {
		w := model.NewWarning(model.WarnMissingGeometry, entry.BlockID,
			"cell at row %d, column %d has no polygon", entry.RowIndex, entry.ColumnIndex)
		return b.config.EmptyCellText, poly, &w
	}

	inside := index.Within(model.RegionOf(poly))
	if len(inside) == 0 {
		return b.config.EmptyCellText, poly, nil
	}
	return strings.TrimSpace(b.lines.JoinLines(inside)), poly, nil
}

// formatConfidence renders a confidence in its shortest round-trip form.
// Integral values keep a ".0" suffix and decimal exponents outside [-4, 16)
// switch to exponent notation, so 98 prints as "98.0" and 0.00001 as "1e-05".
func formatConfidence(c *float64) string {
	if c == nil {
		return ""
	}
	v := *c
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	exp := strconv.FormatFloat(v, 'e', -1, 64)
	e, err := strconv.Atoi(exp[strings.LastIndexByte(exp, 'e')+1:])
	if err == nil && (e < -4 || e >= 16) {
		return exp
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Build creates a table using the default configuration
func Build(id string, entries []CellEntry, words []model.WordAnnotation, norm model.Normalizer) (*model.Table, []model.Warning, error) {
	return NewBuilder().Build(id, entries, words, norm)
}
