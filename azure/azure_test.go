package azure

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/supagonava/ocrgrid/model"
	"github.com/supagonava/ocrgrid/tables"
)

const layoutOperation = `{
  "status": "succeeded",
  "createdDateTime": "2024-03-01T10:00:00Z",
  "lastUpdatedDateTime": "2024-03-01T10:00:03Z",
  "analyzeResult": {
    "apiVersion": "2023-07-31",
    "modelId": "prebuilt-layout",
    "content": "Invoice\nItem Price\nPen 5\nThank you",
    "pages": [{
      "pageNumber": 1, "angle": 0, "width": 1000, "height": 800, "unit": "pixel",
      "words": [
        {"content": "Invoice", "polygon": [100, 50, 300, 50, 300, 90, 100, 90], "confidence": 0.99},
        {"content": "Item", "polygon": [120, 420, 200, 420, 200, 450, 120, 450], "confidence": 0.98},
        {"content": "Price", "polygon": [620, 420, 700, 420, 700, 450, 620, 450], "confidence": 0.97},
        {"content": "Pen", "polygon": [120, 520, 200, 520, 200, 550, 120, 550], "confidence": 0.96},
        {"content": "5", "polygon": [620, 520, 650, 520, 650, 550, 620, 550], "confidence": 0.95},
        {"content": "lost", "polygon": [], "confidence": 0.5}
      ],
      "lines": [{"content": "Invoice", "polygon": [100, 50, 300, 50, 300, 90, 100, 90]}]
    }],
    "paragraphs": [
      {"content": "Invoice", "boundingRegions": [{"pageNumber": 1, "polygon": [100, 50, 300, 50, 300, 90, 100, 90]}]},
      {"content": "Item", "boundingRegions": [{"pageNumber": 1, "polygon": [120, 420, 200, 420, 200, 450, 120, 450]}]},
      {"content": "Thank\nyou", "boundingRegions": [{"pageNumber": 1, "polygon": [100, 700, 400, 700, 400, 750, 100, 750]}]}
    ],
    "tables": [{
      "rowCount": 2, "columnCount": 2,
      "boundingRegions": [{"pageNumber": 1, "polygon": [100, 400, 900, 400, 900, 600, 100, 600]}],
      "cells": [
        {"kind": "columnHeader", "rowIndex": 0, "columnIndex": 0, "content": "Item",
         "boundingRegions": [{"pageNumber": 1, "polygon": [100, 400, 500, 400, 500, 500, 100, 500]}]},
        {"kind": "columnHeader", "rowIndex": 0, "columnIndex": 1, "content": "Price",
         "boundingRegions": [{"pageNumber": 1, "polygon": [500, 400, 900, 400, 900, 500, 500, 500]}]},
        {"rowIndex": 1, "columnIndex": 0, "content": "Pen (blue)",
         "boundingRegions": [{"pageNumber": 1, "polygon": [100, 500, 500, 500, 500, 600, 100, 600]}]},
        {"rowIndex": 1, "columnIndex": 1, "rowSpan": 1, "columnSpan": 1, "content": "5",
         "boundingRegions": [{"pageNumber": 1, "polygon": [500, 500, 900, 500, 900, 600, 500, 600]}]}
      ]
    }]
  }
}`

func decodeLayoutFixture(t *testing.T, data string) *AnalyzeResult {
	t.Helper()
	result, err := DecodeLayout(strings.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeLayout() error = %v", err)
	}
	return result
}

// ============================================================================
// Document Intelligence Tests
// ============================================================================

func TestDecodeLayout(t *testing.T) {
	result := decodeLayoutFixture(t, layoutOperation)
	if result.ModelID != "prebuilt-layout" {
		t.Errorf("ModelID = %q", result.ModelID)
	}
	if len(result.Pages) != 1 || len(result.Tables) != 1 {
		t.Errorf("pages = %d, tables = %d", len(result.Pages), len(result.Tables))
	}

	bare := `{"apiVersion": "2023-07-31", "pages": [{"pageNumber": 1, "width": 10, "height": 10, "unit": "pixel"}]}`
	if _, err := DecodeLayout(strings.NewReader(bare)); err != nil {
		t.Errorf("DecodeLayout() bare result error = %v", err)
	}
}

func TestDecodeLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"running", `{"status": "running", "analyzeResult": {}}`, ErrNotSucceeded},
		{"no result", `{"Blocks": []}`, ErrNoResult},
		{"invalid", `{`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLayout(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("DecodeLayout() expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("DecodeLayout() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnalyzeLayout(t *testing.T) {
	doc, warnings, err := AnalyzeLayout(decodeLayoutFixture(t, layoutOperation), Options{})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}

	t.Run("words", func(t *testing.T) {
		if doc.WordCount() != 5 {
			t.Fatalf("WordCount() = %d, want 5", doc.WordCount())
		}
		if got := doc.TextAnnotations[0]; got.Text != "Invoice" || got.BBox != model.NewBBox(100, 50, 300, 90) {
			t.Errorf("TextAnnotations[0] = %+v", got)
		}
		if len(warnings) != 1 || warnings[0].Code != model.WarnMissingGeometry {
			t.Errorf("warnings = %v", warnings)
		}
	})

	t.Run("paragraphs outside tables", func(t *testing.T) {
		if doc.FormatText != "Invoice\nThankyou\n" {
			t.Errorf("FormatText = %q", doc.FormatText)
		}
	})

	t.Run("tables", func(t *testing.T) {
		if len(doc.Tables) != 1 {
			t.Fatalf("len(Tables) = %d", len(doc.Tables))
		}
		table := doc.Tables[0]
		if table.ID != "Table 1" {
			t.Errorf("ID = %q", table.ID)
		}
		if !reflect.DeepEqual(table.Rows.Get(1), []string{"Item", "Price"}) {
			t.Errorf("row 1 = %v", table.Rows.Get(1))
		}
		// Text comes from the words inside each cell, not from cell content
		if !reflect.DeepEqual(table.Rows.Get(2), []string{"Pen", "5"}) {
			t.Errorf("row 2 = %v", table.Rows.Get(2))
		}
		if table.RowCount != 2 || table.ColumnCount != 2 {
			t.Errorf("counts = %d x %d", table.RowCount, table.ColumnCount)
		}
		if !reflect.DeepEqual(table.Scores.Get(1), []string{"", ""}) {
			t.Errorf("scores 1 = %v, want empty confidences", table.Scores.Get(1))
		}
	})
}

func TestAnalyzeLayoutUseCellContent(t *testing.T) {
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, layoutOperation), Options{UseCellContent: true})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	if got, _ := doc.Tables[0].Cell(2, 1); got != "Pen (blue)" {
		t.Errorf("Cell(2, 1) = %q, want service content", got)
	}
}

func TestAnalyzeLayoutSkipTables(t *testing.T) {
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, layoutOperation), Options{SkipTables: true})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("len(Tables) = %d, want 0", len(doc.Tables))
	}
	// Paragraph filtering still uses table regions
	if doc.FormatText != "Invoice\nThankyou\n" {
		t.Errorf("FormatText = %q", doc.FormatText)
	}
}

func TestAnalyzeLayoutMergedCell(t *testing.T) {
	data := `{"pages": [{"pageNumber": 1, "width": 100, "height": 100, "unit": "pixel", "words": []}],
	  "tables": [{"rowCount": 1, "columnCount": 2, "cells": [
	    {"rowIndex": 0, "columnIndex": 0, "columnSpan": 2, "content": "wide",
	     "boundingRegions": [{"pageNumber": 1, "polygon": [0, 0, 100, 0, 100, 50, 0, 50]}]}
	  ]}]}`
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	table := doc.Tables[0]
	if span, ok := table.MergedCells.Get(1, 1); !ok || span != (model.Span{RowSpan: 1, ColumnSpan: 2}) {
		t.Errorf("MergedCells.Get(1, 1) = %+v, %v", span, ok)
	}
	if got, _ := table.Cell(1, 1); got != "-" {
		t.Errorf("Cell(1, 1) = %q, want placeholder", got)
	}
}

func TestAnalyzeLayoutKeepsServiceCounts(t *testing.T) {
	data := `{"pages": [{"pageNumber": 1, "width": 100, "height": 100, "unit": "pixel", "words": []}],
	  "tables": [{"rowCount": 2, "columnCount": 1, "cells": [
	    {"rowIndex": 0, "columnIndex": 0, "rowSpan": 2, "content": "tall",
	     "boundingRegions": [{"pageNumber": 1, "polygon": [0, 0, 100, 0, 100, 100, 0, 100]}]}
	  ]}]}`
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	table := doc.Tables[0]
	if table.Rows.Len() != 1 {
		t.Errorf("Rows.Len() = %d, want 1", table.Rows.Len())
	}
	if table.RowCount != 2 || table.ColumnCount != 1 {
		t.Errorf("counts = %d x %d, want 2 x 1", table.RowCount, table.ColumnCount)
	}
	if span, ok := table.MergedCells.Get(1, 1); !ok || span != (model.Span{RowSpan: 2, ColumnSpan: 1}) {
		t.Errorf("MergedCells.Get(1, 1) = %+v, %v", span, ok)
	}
}

func TestAnalyzeLayoutEmptyTableIgnoresServiceCounts(t *testing.T) {
	data := `{"pages": [{"pageNumber": 1, "width": 100, "height": 100, "unit": "pixel", "words": []}],
	  "tables": [{"rowCount": 3, "columnCount": 3, "cells": []}]}`
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	if table := doc.Tables[0]; table.RowCount != 0 || table.ColumnCount != 0 {
		t.Errorf("counts = %d x %d, want 0 x 0", table.RowCount, table.ColumnCount)
	}
}

func TestAnalyzeLayoutExplicitZeroTableConfig(t *testing.T) {
	data := `{"pages": [{"pageNumber": 1, "width": 100, "height": 100, "unit": "pixel", "words": []}],
	  "tables": [{"rowCount": 1, "columnCount": 1, "cells": [
	    {"rowIndex": 0, "columnIndex": 0, "content": "",
	     "boundingRegions": [{"pageNumber": 1, "polygon": [0, 0, 100, 0, 100, 100, 0, 100]}]}
	  ]}]}`
	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{Tables: &tables.Config{}})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	if got, _ := doc.Tables[0].Cell(1, 1); got != "" {
		t.Errorf("Cell(1, 1) = %q, want empty placeholder", got)
	}
}

func TestAnalyzeLayoutInchPages(t *testing.T) {
	data := `{"pages": [{"pageNumber": 1, "width": 8.5, "height": 11, "unit": "inch",
	  "words": [{"content": "one", "polygon": [1, 1, 2, 1, 2, 1.5, 1, 1.5]}],
	  "lines": [{"content": "one", "polygon": [1, 1, 2, 1, 2, 1.5, 1, 1.5]}]}]}`

	if _, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{}); !errors.Is(err, model.ErrInvalidPageSize) {
		t.Errorf("AnalyzeLayout() error = %v, want ErrInvalidPageSize", err)
	}

	doc, _, err := AnalyzeLayout(decodeLayoutFixture(t, data), Options{Page: model.PageSize{Width: 850, Height: 1100}})
	if err != nil {
		t.Fatalf("AnalyzeLayout() error = %v", err)
	}
	if got := doc.TextAnnotations[0].BBox; got != model.NewBBox(100, 100, 200, 150) {
		t.Errorf("BBox = %+v, want {100 100 200 150}", got)
	}
	// No paragraphs: page lines are used
	if doc.FormatText != "one\n" {
		t.Errorf("FormatText = %q", doc.FormatText)
	}
}

// ============================================================================
// Vision Read Tests
// ============================================================================

const readResponse = `{
  "modelVersion": "2023-10-01",
  "metadata": {"width": 640, "height": 480},
  "readResult": {"blocks": [{"lines": [
    {"text": "Hello world", "boundingPolygon": [{"x": 10, "y": 10}, {"x": 200, "y": 10}, {"x": 200, "y": 40}, {"x": 10, "y": 40}],
     "words": [
       {"text": "Hello", "boundingPolygon": [{"x": 10.7, "y": 12}, {"x": 90, "y": 10.2}, {"x": 91.9, "y": 40}, {"x": 11, "y": 41}], "confidence": 0.99},
       {"text": "world", "boundingPolygon": [], "confidence": 0.9}
     ]},
    {"text": "Second", "words": [{"text": "Second", "boundingPolygon": [{"x": 10, "y": 60}, {"x": 80, "y": 60}, {"x": 80, "y": 90}, {"x": 10, "y": 90}]}]}
  ]}]}
}`

func TestAnalyzeRead(t *testing.T) {
	resp, err := DecodeRead(strings.NewReader(readResponse))
	if err != nil {
		t.Fatalf("DecodeRead() error = %v", err)
	}
	if resp.PageSize() != (model.PageSize{Width: 640, Height: 480}) {
		t.Errorf("PageSize() = %+v", resp.PageSize())
	}

	doc, warnings, err := AnalyzeRead(resp)
	if err != nil {
		t.Fatalf("AnalyzeRead() error = %v", err)
	}
	if doc.FormatText != "Hello world\nSecond\n" {
		t.Errorf("FormatText = %q", doc.FormatText)
	}
	if doc.WordCount() != 2 {
		t.Fatalf("WordCount() = %d, want 2", doc.WordCount())
	}
	if got := doc.TextAnnotations[0].BBox; got != model.NewBBox(10, 10, 91, 41) {
		t.Errorf("BBox = %+v, want min/max enclosure", got)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v", warnings)
	}
	if len(doc.Tables) != 0 {
		t.Error("read results carry no tables")
	}
}

func TestDecodeReadWithoutResult(t *testing.T) {
	if _, err := DecodeRead(strings.NewReader(`{"modelVersion": "x"}`)); !errors.Is(err, ErrNoResult) {
		t.Errorf("DecodeRead() error = %v, want ErrNoResult", err)
	}
	if _, _, err := AnalyzeRead(&ReadResponse{}); !errors.Is(err, ErrNoResult) {
		t.Errorf("AnalyzeRead() error = %v, want ErrNoResult", err)
	}
}
