package docai

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/supagonava/ocrgrid/model"
)

func anchor(start, end int64) *documentaipb.Document_TextAnchor {
	return &documentaipb.Document_TextAnchor{
		TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: start, EndIndex: end}},
	}
}

func normalized(x1, y1, x2, y2 float32) *documentaipb.BoundingPoly {
	return &documentaipb.BoundingPoly{NormalizedVertices: []*documentaipb.NormalizedVertex{
		{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
	}}
}

func pageLayout(start, end int64, poly *documentaipb.BoundingPoly) *documentaipb.Document_Page_Layout {
	return &documentaipb.Document_Page_Layout{TextAnchor: anchor(start, end), BoundingPoly: poly}
}

func tableCell(poly *documentaipb.BoundingPoly, conf float32, start, end int64) *documentaipb.Document_Page_Table_TableCell {
	return &documentaipb.Document_Page_Table_TableCell{
		Layout:  &documentaipb.Document_Page_Layout{TextAnchor: anchor(start, end), BoundingPoly: poly, Confidence: conf},
		RowSpan: 1,
		ColSpan: 1,
	}
}

// newTestDocument is a 1000x500 page holding a two by two table
func newTestDocument() *documentaipb.Document {
	return &documentaipb.Document{
		Text: "Name Qty\nApple 3\n",
		Pages: []*documentaipb.Document_Page{{
			PageNumber: 1,
			Dimension:  &documentaipb.Document_Page_Dimension{Width: 1000, Height: 500, Unit: "pixels"},
			Tokens: []*documentaipb.Document_Page_Token{
				{Layout: pageLayout(0, 5, normalized(0.1, 0.1, 0.2, 0.14))},
				{Layout: pageLayout(5, 9, normalized(0.5, 0.1, 0.6, 0.14))},
				{Layout: pageLayout(9, 15, normalized(0.1, 0.2, 0.2, 0.24))},
				{Layout: pageLayout(15, 17, normalized(0.5, 0.2, 0.52, 0.24))},
			},
			Lines: []*documentaipb.Document_Page_Line{
				{Layout: pageLayout(9, 17, normalized(0.1, 0.2, 0.52, 0.24))},
				{Layout: pageLayout(0, 9, normalized(0.1, 0.1, 0.6, 0.14))},
			},
			Tables: []*documentaipb.Document_Page_Table{{
				HeaderRows: []*documentaipb.Document_Page_Table_TableRow{{Cells: []*documentaipb.Document_Page_Table_TableCell{
					tableCell(normalized(0.05, 0.05, 0.4, 0.18), 0.9, 0, 4),
					tableCell(normalized(0.4, 0.05, 0.9, 0.18), 0, 5, 8),
				}}},
				BodyRows: []*documentaipb.Document_Page_Table_TableRow{{Cells: []*documentaipb.Document_Page_Table_TableCell{
					tableCell(normalized(0.05, 0.18, 0.4, 0.3), 0.75, 9, 16),
					tableCell(normalized(0.4, 0.18, 0.9, 0.3), 0.5, 15, 16),
				}}},
			}},
		}},
	}
}

// ============================================================================
// Analyze Tests
// ============================================================================

func TestAnalyze(t *testing.T) {
	doc, warnings, err := Analyze(newTestDocument(), Options{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	t.Run("tokens", func(t *testing.T) {
		want := []model.WordAnnotation{
			model.NewWordAnnotation("Name", model.NewBBox(100, 50, 200, 70)),
			model.NewWordAnnotation("Qty", model.NewBBox(500, 50, 600, 70)),
			model.NewWordAnnotation("Apple", model.NewBBox(100, 100, 200, 120)),
			model.NewWordAnnotation("3", model.NewBBox(500, 100, 520, 120)),
		}
		if !reflect.DeepEqual(doc.TextAnnotations, want) {
			t.Errorf("TextAnnotations = %v, want %v", doc.TextAnnotations, want)
		}
	})

	t.Run("lines in reading order", func(t *testing.T) {
		if doc.FormatText != "Name Qty\nApple 3\n" {
			t.Errorf("FormatText = %q", doc.FormatText)
		}
	})

	t.Run("table", func(t *testing.T) {
		if len(doc.Tables) != 1 {
			t.Fatalf("len(Tables) = %d, want 1", len(doc.Tables))
		}
		table := doc.Tables[0]
		if table.ID != "table-1" {
			t.Errorf("ID = %q, want table-1", table.ID)
		}
		if !reflect.DeepEqual(table.Rows.Get(1), []string{"Name", "Qty"}) {
			t.Errorf("row 1 = %v", table.Rows.Get(1))
		}
		if !reflect.DeepEqual(table.Rows.Get(2), []string{"Apple", "3"}) {
			t.Errorf("row 2 = %v", table.Rows.Get(2))
		}
		if !reflect.DeepEqual(table.Scores.Get(1), []string{"0.9", ""}) {
			t.Errorf("scores 1 = %v, want [0.9 \"\"]", table.Scores.Get(1))
		}
		if !reflect.DeepEqual(table.Scores.Get(2), []string{"0.75", "0.5"}) {
			t.Errorf("scores 2 = %v", table.Scores.Get(2))
		}
		wantPoly := model.Polygon{{X: 50, Y: 25}, {X: 400, Y: 25}, {X: 400, Y: 90}, {X: 50, Y: 90}}
		if got := table.Polygon.Get(1)[0]; !reflect.DeepEqual(got, wantPoly) {
			t.Errorf("polygon(1,1) = %v, want %v", got, wantPoly)
		}
	})
}

func TestAnalyzeUseCellContent(t *testing.T) {
	doc, _, err := Analyze(newTestDocument(), Options{UseCellContent: true})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	// The second body cell anchor covers "3\n"
	if got, _ := doc.Tables[0].Cell(2, 2); got != "3" {
		t.Errorf("Cell(2, 2) = %q, want 3", got)
	}
	if got, _ := doc.Tables[0].Cell(1, 2); got != "Qty" {
		t.Errorf("Cell(1, 2) = %q, want Qty", got)
	}
}

func TestAnalyzeScaledPage(t *testing.T) {
	doc, _, err := Analyze(newTestDocument(), Options{Page: model.PageSize{Width: 2000, Height: 1000}})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := doc.TextAnnotations[0].BBox; got != model.NewBBox(200, 100, 400, 140) {
		t.Errorf("BBox = %+v, want {200 100 400 140}", got)
	}
}

func TestAnalyzeColumnSpans(t *testing.T) {
	pb := newTestDocument()
	wide := tableCell(normalized(0.05, 0.3, 0.9, 0.4), 0, 0, 0)
	wide.ColSpan = 2
	last := tableCell(normalized(0.9, 0.3, 0.95, 0.4), 0, 0, 0)
	pb.Pages[0].Tables[0].BodyRows = append(pb.Pages[0].Tables[0].BodyRows,
		&documentaipb.Document_Page_Table_TableRow{Cells: []*documentaipb.Document_Page_Table_TableCell{wide, last}})

	doc, _, err := Analyze(pb, Options{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	table := doc.Tables[0]

	if span, ok := table.MergedCells.Get(3, 1); !ok || span != (model.Span{RowSpan: 1, ColumnSpan: 2}) {
		t.Errorf("MergedCells.Get(3, 1) = %+v, %v", span, ok)
	}
	if _, ok := table.MergedCells.Get(3, 3); ok {
		t.Error("a cell after a spanning cell is not merged")
	}
	if !reflect.DeepEqual(table.Rows.Get(3), []string{"-", "-"}) {
		t.Errorf("row 3 = %v", table.Rows.Get(3))
	}
}

func TestAnalyzePixelVertices(t *testing.T) {
	pb := &documentaipb.Document{
		Text: "Total",
		Pages: []*documentaipb.Document_Page{{
			Dimension: &documentaipb.Document_Page_Dimension{Width: 1000, Height: 500},
			Tokens: []*documentaipb.Document_Page_Token{{
				Layout: pageLayout(0, 5, &documentaipb.BoundingPoly{Vertices: []*documentaipb.Vertex{
					{X: 100, Y: 50}, {X: 200, Y: 50}, {X: 200, Y: 70}, {X: 100, Y: 70},
				}}),
			}, {
				Layout: pageLayout(0, 5, nil),
			}},
		}},
	}

	doc, warnings, err := Analyze(pb, Options{})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if doc.WordCount() != 1 {
		t.Fatalf("WordCount() = %d, want 1", doc.WordCount())
	}
	if got := doc.TextAnnotations[0].BBox; got != model.NewBBox(100, 50, 200, 70) {
		t.Errorf("BBox = %+v, want {100 50 200 70}", got)
	}
	if len(warnings) != 1 || warnings[0].Code != model.WarnMissingGeometry || warnings[0].BlockID != "pages[0].tokens[1]" {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestAnalyzeMissingDimension(t *testing.T) {
	pb := &documentaipb.Document{Pages: []*documentaipb.Document_Page{{PageNumber: 1}}}
	if _, _, err := Analyze(pb, Options{}); !errors.Is(err, model.ErrInvalidPageSize) {
		t.Errorf("Analyze() error = %v, want ErrInvalidPageSize", err)
	}
}

func TestAnalyzeSkipTables(t *testing.T) {
	doc, _, err := Analyze(newTestDocument(), Options{SkipTables: true})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("len(Tables) = %d, want 0", len(doc.Tables))
	}
}

// ============================================================================
// Text Anchor Tests
// ============================================================================

func TestAnchorText(t *testing.T) {
	text := []rune("ชื่อ ราคา\n")
	tests := []struct {
		name   string
		anchor *documentaipb.Document_TextAnchor
		want   string
	}{
		{"nil", nil, ""},
		{"code points", anchor(5, 10), "ราคา"},
		{"clamped", anchor(5, 99), "ราคา"},
		{"inverted", anchor(8, 2), ""},
		{"content only", &documentaipb.Document_TextAnchor{Content: " total "}, "total"},
		{"segments joined", &documentaipb.Document_TextAnchor{TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
			{StartIndex: 0, EndIndex: 4}, {StartIndex: 5, EndIndex: 9},
		}}, "ชื่อราคา"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anchorText(tt.anchor, text); got != tt.want {
				t.Errorf("anchorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	if confidence(0) != nil {
		t.Error("confidence(0) should be unset")
	}
	if got := confidence(0.7); got == nil || *got != 0.7 {
		t.Errorf("confidence(0.7) = %v, want 0.7", got)
	}
}

// ============================================================================
// Decode Tests
// ============================================================================

func TestDecode(t *testing.T) {
	data, err := protojson.Marshal(newTestDocument())
	if err != nil {
		t.Fatalf("protojson.Marshal() error = %v", err)
	}

	pb, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if pb.GetText() != "Name Qty\nApple 3\n" || len(pb.GetPages()) != 1 {
		t.Errorf("Decode() text = %q, pages = %d", pb.GetText(), len(pb.GetPages()))
	}
}

func TestDecodeProcessResponse(t *testing.T) {
	data, err := protojson.Marshal(&documentaipb.ProcessResponse{Document: newTestDocument()})
	if err != nil {
		t.Fatalf("protojson.Marshal() error = %v", err)
	}

	pb, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if len(pb.GetPages()[0].GetTokens()) != 4 {
		t.Errorf("tokens = %d, want 4", len(pb.GetPages()[0].GetTokens()))
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := DecodeBytes([]byte(`{"pages": 3}`)); err == nil {
		t.Error("DecodeBytes() expected error")
	}
}
