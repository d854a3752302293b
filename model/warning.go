package model

import "fmt"

// WarningCode classifies a non-fatal anomaly
type WarningCode string

const (
	// WarnMissingGeometry marks a block skipped because it carries no usable geometry
	WarnMissingGeometry WarningCode = "missing_geometry"
	// WarnUnsupportedBlock marks provider block types outside the supported set
	WarnUnsupportedBlock WarningCode = "unsupported_block"
	// WarnMissingText marks a text-bearing block that carried no text
	WarnMissingText WarningCode = "missing_text"
)

// Warning records something that was skipped or degraded while building a
// document. Processing continued.
type Warning struct {
	Code    WarningCode
	BlockID string
	Message string
}

// NewWarning creates a warning with a formatted message
func NewWarning(code WarningCode, blockID, format string, args ...any) Warning {
	return Warning{Code: code, BlockID: blockID, Message: fmt.Sprintf(format, args...)}
}

// String formats the warning for display
func (w Warning) String() string {
	if w.BlockID == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Code, w.BlockID, w.Message)
}
