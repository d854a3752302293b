package azure

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/tables"
)

var (
	// ErrNoResult is returned when a body carries no analysis result
	ErrNoResult = errors.New("azure: response has no analyze result")

	// ErrNotSucceeded is returned for an operation body whose status is not "succeeded"
	ErrNotSucceeded = errors.New("azure: analyze operation has not succeeded")
)

// Options controls how a result is turned into a document
type Options struct {
	// Page is the pixel size to scale page geometry to. When zero, pages
	// measured in pixels keep their own size and any other unit is an error.
	Page model.PageSize

	// Tables configures cell text synthesis. Nil means
	// tables.DefaultConfig().
	Tables *tables.Config

	// SkipTables leaves Document.Tables empty
	SkipTables bool

	// UseCellContent takes cell text from the service instead of from the
	// words inside each cell
	UseCellContent bool
}

// DecodeLayout reads a Document Intelligence result. Both the operation body
// ({"status": ..., "analyzeResult": {...}}) and a bare analyze result are
// accepted.
func DecodeLayout(r io.Reader) (*AnalyzeResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Azure response: %w", err)
	}

	var envelope struct {
		Status        string          `json:"status"`
		AnalyzeResult json.RawMessage `json:"analyzeResult"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode Azure response: %w", err)
	}

	if envelope.AnalyzeResult != nil {
		if envelope.Status != "" && !strings.EqualFold(envelope.Status, "succeeded") {
			return nil, fmt.Errorf("%w: status %q", ErrNotSucceeded, envelope.Status)
		}
		var result AnalyzeResult
		if err := json.Unmarshal(envelope.AnalyzeResult, &result); err != nil {
			return nil, fmt.Errorf("failed to decode Azure analyze result: %w", err)
		}
		return &result, nil
	}

	var result AnalyzeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode Azure analyze result: %w", err)
	}
	if result.Pages == nil {
		return nil, ErrNoResult
	}
	return &result, nil
}

// AnalyzeLayout builds a document from a Document Intelligence result.
//
// Words come from every page in page order. The formatted text holds, in
// service order, each paragraph that has no vertex inside a table on the same
// page, with newlines removed. Results without paragraphs fall back to the
// page lines in reading order. Tables are named "Table N". A non-empty
// table reports the service's row and column counts when they exceed the
// anchored cells.
func AnalyzeLayout(result *AnalyzeResult, opts Options) (*model.Document, []model.Warning, error) {
	norms, err := pageNormalizers(result.Pages, opts.Page)
	if err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument()
	var warnings []model.Warning
	var wordPages []int

	for _, page := range result.Pages {
		norm := norms[page.PageNumber]
		for i, w := range page.Words {
			if len(w.Polygon) < 8 {
				warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry,
					fmt.Sprintf("pages[%d].words[%d]", page.PageNumber, i), "word %q has no polygon", w.Content))
				continue
			}
			box := norm.Polygon(model.FlatPoints(w.Polygon)).BBox()
			doc.AddWord(model.NewWordAnnotation(w.Content, box))
			wordPages = append(wordPages, page.PageNumber)
		}
	}

	tableRegions := tablePolygons(result.Tables, norms)
	if len(result.Paragraphs) > 0 {
		var sb strings.Builder
		for _, p := range result.Paragraphs {
			if withinTable(p, tableRegions, norms) {
				continue
			}
			sb.WriteString(strings.TrimSpace(strings.ReplaceAll(p.Content, "\n", "")))
			sb.WriteString("\n")
		}
		doc.FormatText = sb.String()
	} else {
		doc.FormatText = layout.FormatText(pageLines(result.Pages, norms))
	}

	if opts.SkipTables {
		return doc, warnings, nil
	}

	builder := tables.NewBuilderWithConfig(tables.Resolve(opts.Tables))

	for i, t := range result.Tables {
		id := fmt.Sprintf("Table %d", i+1)
		pageNumber := tablePage(t)
		norm, ok := norms[pageNumber]
		if !ok {
			return nil, warnings, fmt.Errorf("%s: references unknown page %d", id, pageNumber)
		}

		table, tableWarnings, err := builder.Build(id, cellEntries(i, t, opts.UseCellContent), wordsOnPage(doc.TextAnnotations, wordPages, pageNumber), norm)
		warnings = append(warnings, tableWarnings...)
		if err != nil {
			return nil, warnings, err
		}
		keepServiceCounts(table, t)
		doc.AddTable(table)
	}

	return doc, warnings, nil
}

// pageNormalizers scales each page from its own unit to pixels
func pageNormalizers(pages []Page, target model.PageSize) (map[int]model.Normalizer, error) {
	norms := make(map[int]model.Normalizer, len(pages))
	for _, p := range pages {
		size := target
		if size.IsZero() {
			if p.Unit != "" && p.Unit != UnitPixel {
				return nil, fmt.Errorf("%w: page %d is measured in %s, a pixel size is required",
					model.ErrInvalidPageSize, p.PageNumber, p.Unit)
			}
			size = model.PageSize{Width: int(p.Width), Height: int(p.Height)}
		}
		norm, err := model.NewScaledNormalizer(size, p.Width, p.Height)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p.PageNumber, err)
		}
		norms[p.PageNumber] = norm
	}
	return norms, nil
}

type tableRegion struct {
	page    int
	polygon model.Polygon
}

func tablePolygons(ts []Table, norms map[int]model.Normalizer) []tableRegion {
	var regions []tableRegion
	for _, t := range ts {
		if len(t.BoundingRegions) == 0 {
			continue
		}
		br := t.BoundingRegions[0]
		norm, ok := norms[br.PageNumber]
		if !ok {
			continue
		}
		regions = append(regions, tableRegion{page: br.PageNumber, polygon: norm.Polygon(model.FlatPoints(br.Polygon))})
	}
	return regions
}

// withinTable reports whether any vertex of the paragraph's first region lies
// inside a table on the same page
func withinTable(p Paragraph, regions []tableRegion, norms map[int]model.Normalizer) bool {
	if len(p.BoundingRegions) == 0 {
		return false
	}
	br := p.BoundingRegions[0]
	norm, ok := norms[br.PageNumber]
	if !ok {
		return false
	}

	for _, pt := range norm.Polygon(model.FlatPoints(br.Polygon)) {
		for _, r := range regions {
			if r.page == br.PageNumber && r.polygon.ContainsPoint(pt) {
				return true
			}
		}
	}
	return false
}

func pageLines(pages []Page, norms map[int]model.Normalizer) []layout.TextLine {
	var lines []layout.TextLine
	for _, page := range pages {
		norm := norms[page.PageNumber]
		for _, l := range page.Lines {
			if len(l.Polygon) < 8 {
				lines = append(lines, layout.TextLine{Text: l.Content, Page: page.PageNumber})
				continue
			}
			box := norm.Polygon(model.FlatPoints(l.Polygon)).BBox()
			lines = append(lines, layout.NewTextLine(l.Content, box, page.PageNumber))
		}
	}
	return lines
}

func tablePage(t Table) int {
	if len(t.BoundingRegions) > 0 {
		return t.BoundingRegions[0].PageNumber
	}
	for _, c := range t.Cells {
		if len(c.BoundingRegions) > 0 {
			return c.BoundingRegions[0].PageNumber
		}
	}
	return 1
}

// keepServiceCounts reports the service grid size for a non-empty table. A
// grid row covered only by a row span has no anchored cell, so the recount
// falls short of it.
func keepServiceCounts(table *model.Table, t Table) {
	if table.Rows.Len() == 0 {
		return
	}
	table.RowCount = max(table.RowCount, t.RowCount)
	table.ColumnCount = max(table.ColumnCount, t.ColumnCount)
}

// cellEntries converts 0-based cells into 1-based builder entries
func cellEntries(tableIndex int, t Table, useContent bool) []tables.CellEntry {
	entries := make([]tables.CellEntry, 0, len(t.Cells))
	for i, c := range t.Cells {
		entry := tables.CellEntry{
			Kind:        tables.Cell,
			RowIndex:    c.RowIndex + 1,
			ColumnIndex: c.ColumnIndex + 1,
			RowSpan:     spanOrOne(c.RowSpan),
			ColumnSpan:  spanOrOne(c.ColumnSpan),
			BlockID:     fmt.Sprintf("tables[%d].cells[%d]", tableIndex, i),
		}
		if len(c.BoundingRegions) > 0 {
			entry.Polygon = model.FlatPoints(c.BoundingRegions[0].Polygon)
		}
		if useContent {
			entry.Text = tables.String(c.Content)
		}
		entries = append(entries, entry)
	}
	return entries
}

func spanOrOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func wordsOnPage(words []model.WordAnnotation, pages []int, page int) []model.WordAnnotation {
	result := make([]model.WordAnnotation, 0, len(words))
	for i, w := range words {
		if pages[i] == page {
			result = append(result, w)
		}
	}
	return result
}
