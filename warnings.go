package ocrgrid

import (
	"strings"

	"github.com/supagonava/ocrgrid/model"
)

// Warning is a non-fatal issue found during extraction. Extraction
// succeeded, but the result may be incomplete.
type Warning = model.Warning

// FormatWarnings returns the warnings one per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// CountWarnings returns how many warnings carry each code
func CountWarnings(warnings []Warning) map[model.WarningCode]int {
	counts := make(map[model.WarningCode]int)
	for _, w := range warnings {
		counts[w.Code]++
	}
	return counts
}
