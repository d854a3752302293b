package model

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned when a page dimension is zero or negative.
// Every derived box would collapse to zero area, so it is never tolerated.
var ErrInvalidPageSize = errors.New("invalid page size")

// PageSize is the pixel size of the page image the provider analysed. OCR
// responses do not carry it, so callers supply it.
type PageSize struct {
	Width  int
	Height int
}

// IsZero reports whether no page size was supplied
func (p PageSize) IsZero() bool {
	return p.Width == 0 && p.Height == 0
}

// Validate returns ErrInvalidPageSize unless both dimensions are positive
func (p PageSize) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidPageSize, p.Width, p.Height)
	}
	return nil
}

// FractionalRect is a rectangle in unit-square space, each field in [0,1]
type FractionalRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// FloatPoint is a point in provider space (unit-square or provider units)
type FloatPoint struct {
	X, Y float64
}

// Normalizer converts provider geometry into pixel space. Scaled values are
// truncated toward zero.
type Normalizer struct {
	scaleX float64
	scaleY float64
}

// NewNormalizer returns a normalizer for unit-square geometry on a page of
// the given pixel size.
func NewNormalizer(page PageSize) (Normalizer, error) {
	if err := page.Validate(); err != nil {
		return Normalizer{}, err
	}
	return Normalizer{scaleX: float64(page.Width), scaleY: float64(page.Height)}, nil
}

// NewScaledNormalizer returns a normalizer for geometry expressed in provider
// units (pixels, inches) where the page measures unitWidth x unitHeight.
func NewScaledNormalizer(page PageSize, unitWidth, unitHeight float64) (Normalizer, error) {
	if err := page.Validate(); err != nil {
		return Normalizer{}, err
	}
	if unitWidth <= 0 || unitHeight <= 0 {
		return Normalizer{}, fmt.Errorf("%w: provider page %gx%g", ErrInvalidPageSize, unitWidth, unitHeight)
	}
	return Normalizer{
		scaleX: float64(page.Width) / unitWidth,
		scaleY: float64(page.Height) / unitHeight,
	}, nil
}

// Rect converts a fractional rectangle. Right and bottom are derived from the
// truncated origin plus the truncated extent.
func (n Normalizer) Rect(r FractionalRect) BBox {
	left := int(r.Left * n.scaleX)
	top := int(r.Top * n.scaleY)
	return BBox{
		Left:   left,
		Top:    top,
		Right:  left + int(r.Width*n.scaleX),
		Bottom: top + int(r.Height*n.scaleY),
	}
}

// Origin returns the top-left corner of a fractional rectangle in pixel
// space without truncation
func (n Normalizer) Origin(r FractionalRect) FloatPoint {
	return FloatPoint{X: r.Left * n.scaleX, Y: r.Top * n.scaleY}
}

// Point converts a single point
func (n Normalizer) Point(p FloatPoint) Point {
	return Point{X: int(p.X * n.scaleX), Y: int(p.Y * n.scaleY)}
}

// Polygon converts every point of a polygon, preserving order
func (n Normalizer) Polygon(points []FloatPoint) Polygon {
	if len(points) == 0 {
		return nil
	}
	poly := make(Polygon, len(points))
	for i, p := range points {
		poly[i] = n.Point(p)
	}
	return poly
}

// FlatPoints pairs a flat [x1, y1, x2, y2, ...] coordinate list into points.
// A trailing odd value is ignored.
func FlatPoints(coords []float64) []FloatPoint {
	if len(coords) < 2 {
		return nil
	}
	points := make([]FloatPoint, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, FloatPoint{X: coords[i], Y: coords[i+1]})
	}
	return points
}
