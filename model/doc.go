// Package model provides the intermediate representation for OCR output
// reconstructed into text and tables.
//
// All provider adapters (Textract, Azure, Document AI, hOCR, Tesseract)
// ultimately produce these types, making them the primary API for consuming
// recognised content.
//
// # Geometry
//
// Geometric primitives work in integer pixel space with the origin at the
// top-left corner of the page:
//
//   - [Point] - a pixel coordinate
//   - [BBox] - an axis-aligned box {left, top, right, bottom}
//   - [Polygon] - an ordered list of points (clockwise from top-left for quads)
//
// Provider geometry arrives in unit-square space (fractions of the page) or
// in provider units. A [Normalizer] scales it into pixels:
//
//	norm, err := model.NewNormalizer(model.PageSize{Width: 1000, Height: 500})
//	box := norm.Rect(model.FractionalRect{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4})
//	// box == BBox{Left: 100, Top: 100, Right: 400, Bottom: 300}
//
// # Containment
//
// The [Region] interface answers whether a word box lies fully inside a
// region. [BBox] implements it with a corner test, [Polygon] with ray
// casting. [RegionOf] selects the implementation from the polygon's shape.
//
// # Documents and Tables
//
// A [Document] holds word annotations in emission order, the formatted page
// text, and the synthesized [Table] values. Table rows are kept in [RowMap]
// and [MergeMap], explicit ordered maps that serialise with numerically sorted
// keys.
//
// # Warnings
//
// Anomalies local to one block (missing geometry, unsupported block types)
// never abort a document. They are reported as [Warning] values so callers
// can observe what was skipped.
package model
