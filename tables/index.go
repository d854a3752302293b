package tables

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/supagonava/ocrgrid/model"
)

// WordIndex is a spatial index over a fixed set of words
type WordIndex struct {
	words []model.WordAnnotation
	tr    rtree.RTreeG[int]
}

// NewWordIndex indexes the words by their boxes
func NewWordIndex(words []model.WordAnnotation) *WordIndex {
	idx := &WordIndex{words: words}
	for i, w := range words {
		idx.tr.Insert(rectOf(w.BBox), rectMax(w.BBox), i)
	}
	return idx
}

// Len returns the number of indexed words
func (idx *WordIndex) Len() int {
	return len(idx.words)
}

// Within returns the words whose boxes lie entirely inside the region, in
// input order
func (idx *WordIndex) Within(region model.Region) []model.WordAnnotation {
	bounds := region.Bounds()

	var hits []int
	idx.tr.Search(rectOf(bounds), rectMax(bounds), func(_, _ [2]float64, i int) bool {
		if region.Contains(idx.words[i].BBox) {
			hits = append(hits, i)
		}
		return true
	})
	sort.Ints(hits)

	result := make([]model.WordAnnotation, len(hits))
	for k, i := range hits {
		result[k] = idx.words[i]
	}
	return result
}

func rectOf(b model.BBox) [2]float64 {
	return [2]float64{float64(b.Left), float64(b.Top)}
}

func rectMax(b model.BBox) [2]float64 {
	return [2]float64{float64(b.Right), float64(b.Bottom)}
}
