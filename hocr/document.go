package hocr

import (
	"fmt"
	"strings"

	"github.com/supagonava/ocrgrid/layout"
	"github.com/supagonava/ocrgrid/model"
)

// ToDocument converts the parsed hOCR into a document. hOCR boxes are
// already in pixels. Word annotations keep document order. Each line is
// written as its words joined by single spaces, in reading order. hOCR has
// no tables.
func (d *Document) ToDocument() (*model.Document, []model.Warning) {
	doc := model.NewDocument()
	var warnings []model.Warning
	var lines []layout.TextLine

	for p, page := range d.Pages {
		for l, line := range page.Lines {
			texts := make([]string, 0, len(line.Words))

			for w, word := range line.Words {
				id := word.ID
				if id == "" {
					id = fmt.Sprintf("pages[%d].lines[%d].words[%d]", p, l, w)
				}
				if word.Text != "" {
					texts = append(texts, word.Text)
				}
				if !word.Box.Valid {
					warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry, id, "word %q has no bbox", word.Text))
					continue
				}
				if word.Text == "" {
					warnings = append(warnings, model.NewWarning(model.WarnMissingText, id, "word has no text"))
				}
				doc.AddWord(model.NewWordAnnotation(model.CleanText(word.Text), word.Box.BBox))
			}

			text := model.CleanText(strings.Join(texts, " "))
			if line.Box.Valid {
				lines = append(lines, layout.NewTextLine(text, line.Box.BBox, p+1))
			} else {
				lines = append(lines, layout.TextLine{Text: text, Page: p + 1})
			}
		}
	}

	doc.FormatText = layout.FormatText(lines)
	return doc, warnings
}

// PageSize returns the size of the first page, or the zero size when the
// document has no page box
func (d *Document) PageSize() model.PageSize {
	if len(d.Pages) == 0 {
		return model.PageSize{}
	}
	return d.Pages[0].Size()
}
