package tables

import (
	"github.com/supagonava/ocrgrid/model"
)

// CellKind distinguishes data cells from span descriptors
type CellKind int

const (
	// Cell is an ordinary cell that receives text
	Cell CellKind = iota
	// MergedCell only describes a span and carries no text
	MergedCell
)

// String returns a string representation of the kind
func (k CellKind) String() string {
	switch k {
	case Cell:
		return "CELL"
	case MergedCell:
		return "MERGED_CELL"
	default:
		return "UNKNOWN"
	}
}

// CellEntry is one cell record of a table, in provider relationship order.
// Indices are 1-based.
type CellEntry struct {
	Kind        CellKind
	RowIndex    int
	ColumnIndex int
	RowSpan     int
	ColumnSpan  int

	// Confidence is the provider's raw confidence, nil when absent
	Confidence *float64

	// Polygon is the cell region in the normalizer's input units
	Polygon []model.FloatPoint

	// Text, when set, is used as the cell text instead of the contained words
	Text *string

	// BlockID identifies the record in warnings
	BlockID string
}

// IsMerged reports whether the entry spans more than one grid position
func (e CellEntry) IsMerged() bool {
	return e.RowSpan > 1 || e.ColumnSpan > 1
}

// Span returns the entry's span
func (e CellEntry) Span() model.Span {
	return model.Span{RowSpan: e.RowSpan, ColumnSpan: e.ColumnSpan}
}

// Float returns a pointer to v, for filling Confidence
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s, for filling Text
func String(s string) *string {
	return &s
}
