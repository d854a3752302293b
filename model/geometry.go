package model

import (
	"math"
)

// Point represents a pixel coordinate
type Point struct {
	X, Y int
}

// BBox represents an axis-aligned bounding box in pixel space.
// Y grows downwards, so Top <= Bottom.
type BBox struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// NewBBox creates a bounding box from its edges
func NewBBox(left, top, right, bottom int) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

// NewBBoxFromPoints creates a bounding box spanning two opposite corners
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		Left:   minInt(p1.X, p2.X),
		Top:    minInt(p1.Y, p2.Y),
		Right:  maxInt(p1.X, p2.X),
		Bottom: maxInt(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() int {
	return b.Right - b.Left
}

// Height returns the vertical extent
func (b BBox) Height() int {
	return b.Bottom - b.Top
}

// TopLeft returns the top-left corner
func (b BBox) TopLeft() Point {
	return Point{X: b.Left, Y: b.Top}
}

// BottomRight returns the bottom-right corner
func (b BBox) BottomRight() Point {
	return Point{X: b.Right, Y: b.Bottom}
}

// Corners returns the four corners clockwise from top-left
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.Left, Y: b.Top},
		{X: b.Right, Y: b.Top},
		{X: b.Right, Y: b.Bottom},
		{X: b.Left, Y: b.Bottom},
	}
}

// Polygon returns the box as a clockwise quad
func (b BBox) Polygon() Polygon {
	c := b.Corners()
	return Polygon{c[0], c[1], c[2], c[3]}
}

// ContainsPoint checks if a point lies within the closed bounds of the box
func (b BBox) ContainsPoint(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right &&
		p.Y >= b.Top && p.Y <= b.Bottom
}

// Contains reports whether every corner of other lies inside b. Partial
// overlap is not containment.
func (b BBox) Contains(other BBox) bool {
	for _, c := range other.Corners() {
		if !b.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// Bounds returns the box itself
func (b BBox) Bounds() BBox {
	return b
}

// Intersects checks if two bounding boxes share any point
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Union returns the smallest box enclosing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   minInt(b.Left, other.Left),
		Top:    minInt(b.Top, other.Top),
		Right:  maxInt(b.Right, other.Right),
		Bottom: maxInt(b.Bottom, other.Bottom),
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() int {
	return b.Width() * b.Height()
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Polygon is an ordered list of points. Quads produced by OCR providers run
// clockwise from the top-left corner.
type Polygon []Point

// BBox returns the box spanned by point[0] and point[2] for quads, and the
// min/max enclosure for any other polygon.
func (p Polygon) BBox() BBox {
	if len(p) == 4 {
		return NewBBoxFromPoints(p[0], p[2])
	}
	return p.Bounds()
}

// Bounds returns the smallest axis-aligned box enclosing every point
func (p Polygon) Bounds() BBox {
	if len(p) == 0 {
		return BBox{}
	}
	box := BBox{Left: p[0].X, Top: p[0].Y, Right: p[0].X, Bottom: p[0].Y}
	for _, pt := range p[1:] {
		box.Left = minInt(box.Left, pt.X)
		box.Top = minInt(box.Top, pt.Y)
		box.Right = maxInt(box.Right, pt.X)
		box.Bottom = maxInt(box.Bottom, pt.Y)
	}
	return box
}

// IsAxisAligned reports whether the polygon is a clockwise quad whose edges are
// parallel to the page axes.
func (p Polygon) IsAxisAligned() bool {
	if len(p) != 4 {
		return false
	}
	return p[0].Y == p[1].Y && p[1].X == p[2].X &&
		p[2].Y == p[3].Y && p[3].X == p[0].X &&
		p[0].X <= p[1].X && p[1].Y <= p[2].Y
}

// ContainsPoint tests a point with ray casting.
//
// Points exactly on an edge or a vertex have unspecified classification.
// Horizontal edges (p1.Y == p2.Y) never pass the band test below, so the
// intersection x is never computed for them and no division by zero occurs.
func (p Polygon) ContainsPoint(pt Point) bool {
	n := len(p)
	if n < 3 {
		return false
	}

	x, y := float64(pt.X), float64(pt.Y)
	inside := false
	var xinters float64

	p1 := p[0]
	for i := 1; i <= n; i++ {
		p2 := p[i%n]
		p1x, p1y := float64(p1.X), float64(p1.Y)
		p2x, p2y := float64(p2.X), float64(p2.Y)
		if y > math.Min(p1y, p2y) && y <= math.Max(p1y, p2y) && x <= math.Max(p1x, p2x) {
			if p1y != p2y {
				xinters = (y-p1y)*(p2x-p1x)/(p2y-p1y) + p1x
			}
			if p1x == p2x || x <= xinters {
				inside = !inside
			}
		}
		p1 = p2
	}

	return inside
}

// Contains reports whether every corner of box tests inside the polygon
func (p Polygon) Contains(box BBox) bool {
	if len(p) < 3 {
		return false
	}
	for _, c := range box.Corners() {
		if !p.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// Region is anything a word box can be tested against for containment
type Region interface {
	// Contains reports whether box lies fully inside the region
	Contains(box BBox) bool

	// Bounds returns the axis-aligned enclosure of the region
	Bounds() BBox
}

// RegionOf selects the containment strategy from the polygon's shape: an
// axis-aligned quad uses the corner test, anything else uses ray casting.
func RegionOf(p Polygon) Region {
	if p.IsAxisAligned() {
		return NewBBoxFromPoints(p[0], p[2])
	}
	return p
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
