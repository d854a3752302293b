package textract

import (
	"errors"
	"fmt"

	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/tables"
)

// ErrMissingBlock is returned when a table references a block id that is not
// in the response
var ErrMissingBlock = errors.New("textract: table references an unknown block")

// Options controls how a response is turned into a document
type Options struct {
	// Page is the pixel size of the analysed image. Required.
	Page model.PageSize

	// Tables configures cell text synthesis. Nil means
	// tables.DefaultConfig().
	Tables *tables.Config

	// SkipTables leaves Document.Tables empty
	SkipTables bool
}

// DefaultOptions returns options for a page of the given size
func DefaultOptions(page model.PageSize) Options {
	config := tables.DefaultConfig()
	return Options{Page: page, Tables: &config}
}

// Analyze builds a document from a Textract response.
//
// WORD blocks become word annotations in response order. LINE blocks are
// written to the formatted text in reading order. Each TABLE block becomes a
// table with id "table-N", numbered from 1 in response order, whose cells take
// the words on the table's page. Every page shares opts.Page.
func Analyze(resp *Response, opts Options) (*model.Document, []model.Warning, error) {
	norm, err := model.NewNormalizer(opts.Page)
	if err != nil {
		return nil, nil, err
	}

	blocks, warnings := resp.TypedBlocks()
	doc := model.NewDocument()

	byID := make(map[string]Block, len(blocks))
	var lines []layout.TextLine
	var tableBlocks []*TableBlock
	var wordPages []int

	for _, b := range blocks {
		byID[b.Header().ID] = b

		switch blk := b.(type) {
		case *WordBlock:
			rect, ok := blk.Rect()
			if !ok {
				warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry, blk.ID, "word has no bounding box"))
				continue
			}
			if !blk.HasText {
				warnings = append(warnings, model.NewWarning(model.WarnMissingText, blk.ID, "word has no text"))
			}
			doc.AddWord(model.NewWordAnnotation(blk.Text, norm.Rect(rect)))
			wordPages = append(wordPages, blk.Page)

		case *LineBlock:
			rect, ok := blk.Rect()
			if !ok {
				warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry, blk.ID, "line has no bounding box"))
				lines = append(lines, layout.TextLine{Text: blk.Text, Page: blk.Page})
				continue
			}
			lines = append(lines, layout.NewTextLineAt(blk.Text, norm.Rect(rect), norm.Origin(rect), blk.Page))

		case *TableBlock:
			tableBlocks = append(tableBlocks, blk)
		}
	}

	doc.FormatText = layout.FormatText(lines)

	if opts.SkipTables {
		return doc, warnings, nil
	}

	builder := tables.NewBuilderWithConfig(tables.Resolve(opts.Tables))
	for i, tb := range tableBlocks {
		id := fmt.Sprintf("table-%d", i+1)

		entries, err := tableEntries(tb, byID)
		if err != nil {
			return nil, warnings, fmt.Errorf("%s: %w", id, err)
		}

		table, tableWarnings, err := builder.Build(id, entries, wordsOnPage(doc.TextAnnotations, wordPages, tb.Page), norm)
		warnings = append(warnings, tableWarnings...)
		if err != nil {
			return nil, warnings, err
		}
		doc.AddTable(table)
	}

	return doc, warnings, nil
}

// tableEntries resolves a table's cell references in relationship order.
// References to blocks other than cells are ignored.
func tableEntries(tb *TableBlock, byID map[string]Block) ([]tables.CellEntry, error) {
	entries := make([]tables.CellEntry, 0, len(tb.Cells))
	for _, ref := range tb.Cells {
		b, ok := byID[ref.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrMissingBlock, ref.Relation, ref.ID)
		}

		switch c := b.(type) {
		case *CellBlock:
			entries = append(entries, tables.CellEntry{
				Kind:        tables.Cell,
				RowIndex:    c.RowIndex,
				ColumnIndex: c.ColumnIndex,
				RowSpan:     c.RowSpan,
				ColumnSpan:  c.ColumnSpan,
				Confidence:  c.Confidence,
				Polygon:     c.Polygon(),
				BlockID:     c.ID,
			})
		case *MergedCellBlock:
			entries = append(entries, tables.CellEntry{
				Kind:        tables.MergedCell,
				RowIndex:    c.RowIndex,
				ColumnIndex: c.ColumnIndex,
				RowSpan:     c.RowSpan,
				ColumnSpan:  c.ColumnSpan,
				Confidence:  c.Confidence,
				Polygon:     c.Polygon(),
				BlockID:     c.ID,
			})
		}
	}
	return entries, nil
}

// wordsOnPage returns the words whose page matches, keeping order
func wordsOnPage(words []model.WordAnnotation, pages []int, page int) []model.WordAnnotation {
	result := make([]model.WordAnnotation, 0, len(words))
	for i, w := range words {
		if pages[i] == page {
			result = append(result, w)
		}
	}
	return result
}

// AnalyzeBytes decodes and analyzes a Textract JSON response
func AnalyzeBytes(data []byte, opts Options) (*model.Document, []model.Warning, error) {
	resp, err := DecodeBytes(data)
	if err != nil {
		return nil, nil, err
	}
	return Analyze(resp, opts)
}
