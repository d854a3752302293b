package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// RowMap maps a 1-based row index to the row's ordered values. Rows may be
// sparse. Iteration and JSON output are ordered by numeric row index.
type RowMap[T any] struct {
	rows map[int][]T
}

// Append adds a value to the end of a row, creating the row if needed
func (m *RowMap[T]) Append(row int, v T) {
	if m.rows == nil {
		m.rows = make(map[int][]T)
	}
	m.rows[row] = append(m.rows[row], v)
}

// Get returns the values of a row, or nil when the row does not exist
func (m RowMap[T]) Get(row int) []T {
	return m.rows[row]
}

// Has reports whether the row exists
func (m RowMap[T]) Has(row int) bool {
	_, ok := m.rows[row]
	return ok
}

// Len returns the number of rows
func (m RowMap[T]) Len() int {
	return len(m.rows)
}

// Keys returns the row indices in ascending order
func (m RowMap[T]) Keys() []int {
	keys := make([]int, 0, len(m.rows))
	for k := range m.rows {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MaxLen returns the length of the longest row, 0 for an empty map
func (m RowMap[T]) MaxLen() int {
	longest := 0
	for _, row := range m.rows {
		if len(row) > longest {
			longest = len(row)
		}
	}
	return longest
}

// MarshalJSON writes {"row": [values...]} with keys in numeric order
func (m RowMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(k)))
		buf.WriteByte(':')
		v, err := json.Marshal(m.rows[k])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", k, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by decimal row index
func (m *RowMap[T]) UnmarshalJSON(data []byte) error {
	var raw map[string][]T
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.rows = make(map[int][]T, len(raw))
	for k, v := range raw {
		row, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("row key %q: %w", k, err)
		}
		if v == nil {
			v = []T{}
		}
		m.rows[row] = v
	}
	return nil
}

// Span describes how many grid rows and columns a merged cell covers
type Span struct {
	RowSpan    int `json:"row_span"`
	ColumnSpan int `json:"column_span"`
}

// MergeMap maps (row, column) to the span of the merged cell anchored there
type MergeMap struct {
	cells map[int]map[int]Span
}

// Set records a span, overwriting any previous span for the same position
func (m *MergeMap) Set(row, col int, span Span) {
	if m.cells == nil {
		m.cells = make(map[int]map[int]Span)
	}
	if m.cells[row] == nil {
		m.cells[row] = make(map[int]Span)
	}
	m.cells[row][col] = span
}

// Get returns the span anchored at (row, col)
func (m MergeMap) Get(row, col int) (Span, bool) {
	span, ok := m.cells[row][col]
	return span, ok
}

// Len returns the number of merged cells
func (m MergeMap) Len() int {
	n := 0
	for _, cols := range m.cells {
		n += len(cols)
	}
	return n
}

// Rows returns the row indices holding merged cells in ascending order
func (m MergeMap) Rows() []int {
	rows := make([]int, 0, len(m.cells))
	for r := range m.cells {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Columns returns the column indices of merged cells in a row in ascending order
func (m MergeMap) Columns(row int) []int {
	cols := make([]int, 0, len(m.cells[row]))
	for c := range m.cells[row] {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// MarshalJSON writes {"row": {"col": {row_span, column_span}}} in numeric order
func (m MergeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range m.Rows() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(r)))
		buf.WriteString(":{")
		for j, c := range m.Columns(r) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(c)))
			buf.WriteByte(':')
			v, err := json.Marshal(m.cells[r][c])
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the nested object written by MarshalJSON
func (m *MergeMap) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]Span
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.cells = nil
	for rk, cols := range raw {
		row, err := strconv.Atoi(rk)
		if err != nil {
			return fmt.Errorf("merged row key %q: %w", rk, err)
		}
		for ck, span := range cols {
			col, err := strconv.Atoi(ck)
			if err != nil {
				return fmt.Errorf("merged column key %q: %w", ck, err)
			}
			m.Set(row, col, span)
		}
	}
	return nil
}
