// Package layout rebuilds text lines from positioned OCR words and orders
// provider lines for reading.
//
// # Line Detection
//
// The [LineDetector] groups words into horizontal bands by the bottom edge
// of their boxes:
//
//	detector := layout.NewLineDetector()
//	lines := detector.Detect(words)
//	text := lines.GetText()
//
// Bottoms are visited top to bottom. A band takes every unassigned word whose
// bottom is within [LineConfig.VerticalTolerance] of the band's anchor, and a
// word joins the first band that reaches it. Words in a band are joined
// directly when the gap between them is at most [LineConfig.HorizontalGap]
// pixels and with a single space otherwise.
//
// [JoinLines] is a shortcut using the default thresholds (5 and 4 pixels).
//
// # Reading Order
//
// [FormatText] sorts provider lines by page, top and left and writes each on
// its own line:
//
//	text := layout.FormatText([]layout.TextLine{
//		layout.NewTextLine("Invoice", box, 1),
//	})
//
// Lines without geometry are appended after the positioned lines.
package layout
