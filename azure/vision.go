package azure

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/supagonava/ocrgrid/model"
)

// DecodeRead reads a Vision image analysis body with a read result
func DecodeRead(r io.Reader) (*ReadResponse, error) {
	var resp ReadResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode Azure read response: %w", err)
	}
	if resp.ReadResult == nil {
		return nil, ErrNoResult
	}
	return &resp, nil
}

// AnalyzeRead builds a document from a Vision read result. Coordinates are
// already in pixels. Each word box spans the minimum and maximum of its
// polygon. Lines are written in service order. There are no tables.
func AnalyzeRead(resp *ReadResponse) (*model.Document, []model.Warning, error) {
	if resp.ReadResult == nil {
		return nil, nil, ErrNoResult
	}

	doc := model.NewDocument()
	var warnings []model.Warning
	var sb strings.Builder

	for b, block := range resp.ReadResult.Blocks {
		for l, line := range block.Lines {
			sb.WriteString(line.Text)
			sb.WriteString("\n")

			for w, word := range line.Words {
				if len(word.BoundingPolygon) == 0 {
					warnings = append(warnings, model.NewWarning(model.WarnMissingGeometry,
						fmt.Sprintf("blocks[%d].lines[%d].words[%d]", b, l, w), "word %q has no polygon", word.Text))
					continue
				}
				doc.AddWord(model.NewWordAnnotation(word.Text, enclosingBox(word.BoundingPolygon)))
			}
		}
	}

	doc.FormatText = sb.String()
	return doc, warnings, nil
}

// enclosingBox returns the min/max box of the vertices, truncated to pixels
func enclosingBox(points []ReadPoint) model.BBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return model.NewBBox(int(minX), int(minY), int(maxX), int(maxY))
}

// PageSize returns the analysed image size reported by the service
func (r *ReadResponse) PageSize() model.PageSize {
	return model.PageSize{Width: r.Metadata.Width, Height: r.Metadata.Height}
}
