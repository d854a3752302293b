package textract

import (
	"sort"

	"github.com/supagonava/ocrgrid/model"
)

// Block is one of PageBlock, LineBlock, WordBlock, TableBlock, CellBlock or
// MergedCellBlock
type Block interface {
	// Header returns the fields every block carries
	Header() *BlockHeader

	// Type returns the Textract block type name
	Type() string

	sealed()
}

// BlockHeader holds the fields shared by all block kinds
type BlockHeader struct {
	ID         string
	Page       int
	Confidence *float64
	Geometry   *Geometry
}

// Header returns the header itself, so embedding types satisfy Block
func (h *BlockHeader) Header() *BlockHeader { return h }

func (h *BlockHeader) sealed() {}

// Rect returns the block's bounding box, or false when the block has none
func (h *BlockHeader) Rect() (model.FractionalRect, bool) {
	if h.Geometry == nil || h.Geometry.BoundingBox == nil {
		return model.FractionalRect{}, false
	}
	bb := h.Geometry.BoundingBox
	return model.FractionalRect{Left: bb.Left, Top: bb.Top, Width: bb.Width, Height: bb.Height}, true
}

// Polygon returns the block's polygon vertices. When only a bounding box is
// present its four corners are returned clockwise from top-left.
func (h *BlockHeader) Polygon() []model.FloatPoint {
	if h.Geometry == nil {
		return nil
	}
	if len(h.Geometry.Polygon) > 0 {
		points := make([]model.FloatPoint, len(h.Geometry.Polygon))
		for i, p := range h.Geometry.Polygon {
			points[i] = model.FloatPoint{X: p.X, Y: p.Y}
		}
		return points
	}
	if bb := h.Geometry.BoundingBox; bb != nil {
		r, b := bb.Left+bb.Width, bb.Top+bb.Height
		return []model.FloatPoint{{X: bb.Left, Y: bb.Top}, {X: r, Y: bb.Top}, {X: r, Y: b}, {X: bb.Left, Y: b}}
	}
	return nil
}

// PageBlock is a page of the document
type PageBlock struct {
	BlockHeader
	Children []string
}

// Type returns PAGE
func (*PageBlock) Type() string { return TypePage }

// LineBlock is a line of text as Textract grouped it
type LineBlock struct {
	BlockHeader
	Text     string
	Children []string
}

// Type returns LINE
func (*LineBlock) Type() string { return TypeLine }

// WordBlock is a single recognised word
type WordBlock struct {
	BlockHeader
	Text     string
	HasText  bool
	TextType string
}

// Type returns WORD
func (*WordBlock) Type() string { return TypeWord }

// TableRef is one cell reference of a table, in relationship order
type TableRef struct {
	ID       string
	Relation string
}

// TableBlock is a detected table
type TableBlock struct {
	BlockHeader
	Cells       []TableRef
	EntityTypes []string
}

// Type returns TABLE
func (*TableBlock) Type() string { return TypeTable }

// CellBlock is a table cell. Indices are 1-based.
type CellBlock struct {
	BlockHeader
	RowIndex    int
	ColumnIndex int
	RowSpan     int
	ColumnSpan  int
	Children    []string
	EntityTypes []string
}

// Type returns CELL
func (*CellBlock) Type() string { return TypeCell }

// MergedCellBlock describes cells merged into one span
type MergedCellBlock struct {
	BlockHeader
	RowIndex    int
	ColumnIndex int
	RowSpan     int
	ColumnSpan  int
	Children    []string
}

// Type returns MERGED_CELL
func (*MergedCellBlock) Type() string { return TypeMergedCell }

// TypedBlocks converts the raw blocks into typed blocks, preserving order.
// Blocks of any other type are dropped with one warning per type.
func (r *Response) TypedBlocks() ([]Block, []model.Warning) {
	blocks := make([]Block, 0, len(r.Blocks))
	unsupported := make(map[string]int)

	for i := range r.Blocks {
		b, ok := convertBlock(&r.Blocks[i])
		if !ok {
			unsupported[r.Blocks[i].BlockType]++
			continue
		}
		blocks = append(blocks, b)
	}

	types := make([]string, 0, len(unsupported))
	for t := range unsupported {
		types = append(types, t)
	}
	sort.Strings(types)

	var warnings []model.Warning
	for _, t := range types {
		warnings = append(warnings, model.NewWarning(model.WarnUnsupportedBlock, "",
			"skipped %d %s block(s)", unsupported[t], t))
	}

	return blocks, warnings
}

func convertBlock(raw *RawBlock) (Block, bool) {
	page := raw.Page
	if page == 0 {
		page = 1
	}
	header := BlockHeader{ID: raw.ID, Page: page, Confidence: raw.Confidence, Geometry: raw.Geometry}

	switch raw.BlockType {
	case TypePage:
		return &PageBlock{BlockHeader: header, Children: raw.children(RelationChild)}, true
	case TypeLine:
		return &LineBlock{BlockHeader: header, Text: deref(raw.Text), Children: raw.children(RelationChild)}, true
	case TypeWord:
		return &WordBlock{BlockHeader: header, Text: deref(raw.Text), HasText: raw.Text != nil, TextType: raw.TextType}, true
	case TypeTable:
		var refs []TableRef
		for _, rel := range raw.Relationships {
			if rel.Type != RelationChild && rel.Type != RelationMergedCell {
				continue
			}
			for _, id := range rel.Ids {
				refs = append(refs, TableRef{ID: id, Relation: rel.Type})
			}
		}
		return &TableBlock{BlockHeader: header, Cells: refs, EntityTypes: raw.EntityTypes}, true
	case TypeCell:
		return &CellBlock{
			BlockHeader: header,
			RowIndex:    raw.RowIndex,
			ColumnIndex: raw.ColumnIndex,
			RowSpan:     raw.RowSpan,
			ColumnSpan:  raw.ColumnSpan,
			Children:    raw.children(RelationChild),
			EntityTypes: raw.EntityTypes,
		}, true
	case TypeMergedCell:
		return &MergedCellBlock{
			BlockHeader: header,
			RowIndex:    raw.RowIndex,
			ColumnIndex: raw.ColumnIndex,
			RowSpan:     raw.RowSpan,
			ColumnSpan:  raw.ColumnSpan,
			Children:    raw.children(RelationChild),
		}, true
	default:
		return nil, false
	}
}

// children returns the ids of all relationships of the given type
func (raw *RawBlock) children(relType string) []string {
	var ids []string
	for _, rel := range raw.Relationships {
		if rel.Type == relType {
			ids = append(ids, rel.Ids...)
		}
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
