package docai

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/tables"
)

// Options controls how a document is turned into a model document
type Options struct {
	// Page is the pixel size to scale every page to. When zero, each page
	// uses its own dimension.
	Page model.PageSize

	// Tables configures cell text synthesis. Nil means
	// tables.DefaultConfig().
	Tables *tables.Config

	// SkipTables leaves Document.Tables empty
	SkipTables bool

	// UseCellContent takes cell text from the cell's text anchor instead of
	// from the words inside each cell
	UseCellContent bool
}

// page holds the per-page state shared by tokens, lines and tables
type page struct {
	number int
	dim    model.FloatPoint
	norm   model.Normalizer
}

// Analyze builds a document from a Document AI document.
//
// Tokens become word annotations in page order. Lines are written to the
// formatted text in reading order. Each page table becomes a table with id
// "table-N", numbered from 1 across the document. Header rows come before
// body rows.
func Analyze(doc *documentaipb.Document, opts Options) (*model.Document, []model.Warning, error) {
	text := []rune(doc.GetText())
	result := model.NewDocument()
	var warnings []model.Warning
	var lines []layout.TextLine

	pages := make([]page, 0, len(doc.GetPages()))
	wordPages := make([]int, 0)

	for i, p := range doc.GetPages() {
		pg, err := newPage(i, p, opts.Page)
		if err != nil {
			return nil, nil, err
		}
		pages = append(pages, pg)

		for j, token := range p.GetTokens() {
			id := fmt.Sprintf("pages[%d].tokens[%d]", i, j)
			poly, ok := pg.polygon(token.GetLayout())
			if !ok {
				warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry, id, "token has no bounding poly"))
				continue
			}
			word := anchorText(token.GetLayout().GetTextAnchor(), text)
			if word == "" {
				warnings = append(warnings, model.NewWarning(model.WarnMissingText, id, "token has no text"))
			}
			result.AddWord(model.NewWordAnnotation(word, pg.norm.Polygon(poly).BBox()))
			wordPages = append(wordPages, pg.number)
		}

		for _, line := range p.GetLines() {
			lineText := anchorText(line.GetLayout().GetTextAnchor(), text)
			poly, ok := pg.polygon(line.GetLayout())
			if !ok {
				lines = append(lines, layout.TextLine{Text: lineText, Page: pg.number})
				continue
			}
			lines = append(lines, layout.NewTextLine(lineText, pg.norm.Polygon(poly).BBox(), pg.number))
		}
	}

	result.FormatText = layout.FormatText(lines)

	if opts.SkipTables {
		return result, warnings, nil
	}

	builder := tables.NewBuilderWithConfig(tables.Resolve(opts.Tables))

	n := 0
	for i, p := range doc.GetPages() {
		pg := pages[i]
		words := wordsOnPage(result.TextAnnotations, wordPages, pg.number)

		for j, t := range p.GetTables() {
			n++
			id := fmt.Sprintf("table-%d", n)
			entries := pg.cellEntries(fmt.Sprintf("pages[%d].tables[%d]", i, j), t, text, opts.UseCellContent)

			table, tableWarnings, err := builder.Build(id, entries, words, pg.norm)
			warnings = append(warnings, tableWarnings...)
			if err != nil {
				return nil, warnings, err
			}
			result.AddTable(table)
		}
	}

	return result, warnings, nil
}

func newPage(index int, p *documentaipb.Document_Page, target model.PageSize) (page, error) {
	number := int(p.GetPageNumber())
	if number == 0 {
		number = index + 1
	}

	dim := model.FloatPoint{X: float64(p.GetDimension().GetWidth()), Y: float64(p.GetDimension().GetHeight())}
	size := target
	if size.IsZero() {
		size = model.PageSize{Width: int(dim.X), Height: int(dim.Y)}
	}

	norm, err := model.NewNormalizer(size)
	if err != nil {
		return page{}, fmt.Errorf("page %d: %w", number, err)
	}
	return page{number: number, dim: dim, norm: norm}, nil
}

// polygon returns the layout's vertices in unit-square space. Pixel vertices
// are divided by the page dimension.
func (pg page) polygon(l *documentaipb.Document_Page_Layout) ([]model.FloatPoint, bool) {
	bp := l.GetBoundingPoly()

	if nv := bp.GetNormalizedVertices(); len(nv) > 0 {
		points := make([]model.FloatPoint, len(nv))
		for i, v := range nv {
			points[i] = model.FloatPoint{X: widen(v.GetX()), Y: widen(v.GetY())}
		}
		return points, true
	}

	if v := bp.GetVertices(); len(v) > 0 && pg.dim.X > 0 && pg.dim.Y > 0 {
		points := make([]model.FloatPoint, len(v))
		for i, p := range v {
			points[i] = model.FloatPoint{X: float64(p.GetX()) / pg.dim.X, Y: float64(p.GetY()) / pg.dim.Y}
		}
		return points, true
	}

	return nil, false
}

// cellEntries flattens header rows then body rows into 1-based entries. The
// column index of a cell is one past the spans of the cells before it.
func (pg page) cellEntries(prefix string, t *documentaipb.Document_Page_Table, text []rune, useContent bool) []tables.CellEntry {
	rows := append(append([]*documentaipb.Document_Page_Table_TableRow{}, t.GetHeaderRows()...), t.GetBodyRows()...)

	var entries []tables.CellEntry
	for r, row := range rows {
		col := 1
		for c, cell := range row.GetCells() {
			entry := tables.CellEntry{
				Kind:        tables.Cell,
				RowIndex:    r + 1,
				ColumnIndex: col,
				RowSpan:     spanOrOne(cell.GetRowSpan()),
				ColumnSpan:  spanOrOne(cell.GetColSpan()),
				Confidence:  confidence(cell.GetLayout().GetConfidence()),
				BlockID:     fmt.Sprintf("%s.rows[%d].cells[%d]", prefix, r, c),
			}
			if poly, ok := pg.polygon(cell.GetLayout()); ok {
				entry.Polygon = poly
			}
			if useContent {
				entry.Text = tables.String(anchorText(cell.GetLayout().GetTextAnchor(), text))
			}
			entries = append(entries, entry)
			col += entry.ColumnSpan
		}
	}
	return entries
}

// anchorText joins the anchor's segments, clamped to the text, and trims
// surrounding whitespace
func anchorText(anchor *documentaipb.Document_TextAnchor, text []rune) string {
	if anchor == nil {
		return ""
	}
	if len(anchor.GetTextSegments()) == 0 {
		return model.CleanText(strings.TrimSpace(anchor.GetContent()))
	}

	var sb strings.Builder
	for _, seg := range anchor.GetTextSegments() {
		start := clamp(int(seg.GetStartIndex()), len(text))
		end := clamp(int(seg.GetEndIndex()), len(text))
		if start > end {
			start = end
		}
		sb.WriteString(string(text[start:end]))
	}
	return model.CleanText(strings.TrimSpace(sb.String()))
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func spanOrOne(n int32) int {
	if n < 1 {
		return 1
	}
	return int(n)
}

// widen converts through the shortest decimal form, so 0.7 stays 0.7 rather
// than 0.699999988 and truncation lands on the expected pixel
func widen(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'f', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}

// confidence returns the widened score. Zero is treated as unset.
func confidence(c float32) *float64 {
	if c == 0 {
		return nil
	}
	return tables.Float(widen(c))
}

func wordsOnPage(words []model.WordAnnotation, pages []int, number int) []model.WordAnnotation {
	result := make([]model.WordAnnotation, 0, len(words))
	for i, w := range words {
		if pages[i] == number {
			result = append(result, w)
		}
	}
	return result
}
