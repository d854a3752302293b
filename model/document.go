package model

import "strings"

// Document is the combined result reconstructed from one provider response
type Document struct {
	// TextAnnotations holds every word in the order the provider emitted it
	TextAnnotations []WordAnnotation `json:"text_annotations"`

	// FormatText is the page text, one line per row, in reading order
	FormatText string `json:"format_text"`

	// Tables holds the synthesized tables, in provider order
	Tables []*Table `json:"tables"`
}

// NewDocument creates an empty document whose lists serialise as []
func NewDocument() *Document {
	return &Document{
		TextAnnotations: make([]WordAnnotation, 0),
		Tables:          make([]*Table, 0),
	}
}

// AddWord appends a word annotation
func (d *Document) AddWord(w WordAnnotation) {
	d.TextAnnotations = append(d.TextAnnotations, w)
}

// AddTable appends a table
func (d *Document) AddTable(t *Table) {
	d.Tables = append(d.Tables, t)
}

// WordCount returns the number of word annotations
func (d *Document) WordCount() int {
	return len(d.TextAnnotations)
}

// GetTable returns a table by id
func (d *Document) GetTable(id string) *Table {
	for _, t := range d.Tables {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ExtractText returns the formatted text followed by each table as tab
// separated rows
func (d *Document) ExtractText() string {
	var sb strings.Builder
	sb.WriteString(d.FormatText)
	for _, t := range d.Tables {
		sb.WriteString("\n")
		sb.WriteString(t.GetText())
	}
	return sb.String()
}
