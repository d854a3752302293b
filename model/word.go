package model

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// WordAnnotation is a recognised word and its pixel box
type WordAnnotation struct {
	BBox BBox   `json:"bbox"`
	Text string `json:"text"`
}

// NewWordAnnotation creates a word annotation with cleaned text
func NewWordAnnotation(text string, box BBox) WordAnnotation {
	return WordAnnotation{Text: CleanText(text), BBox: box}
}

// CleanText trims surrounding whitespace and composes the text to Unicode NFC.
// Providers disagree on whether combining marks arrive pre-composed.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

type bboxJSON struct {
	Pt1    [2]int `json:"pt1"`
	Pt2    [2]int `json:"pt2"`
	Left   int    `json:"l"`
	Top    int    `json:"t"`
	Right  int    `json:"r"`
	Bottom int    `json:"b"`
}

// MarshalJSON writes the box as {pt1, pt2, l, t, r, b}
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(bboxJSON{
		Pt1:    [2]int{b.Left, b.Top},
		Pt2:    [2]int{b.Right, b.Bottom},
		Left:   b.Left,
		Top:    b.Top,
		Right:  b.Right,
		Bottom: b.Bottom,
	})
}

// UnmarshalJSON reads the l, t, r, b fields
func (b *BBox) UnmarshalJSON(data []byte) error {
	var raw bboxJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = BBox{Left: raw.Left, Top: raw.Top, Right: raw.Right, Bottom: raw.Bottom}
	return nil
}
