package tables

import (
	"github.com/supagonava/ocrgrid/layout"
)

// Config holds table builder configuration
type Config struct {
	// Line is used to join the words of one cell
	Line layout.LineConfig

	// EmptyCellText is written for cells that contain no words (default: "-")
	EmptyCellText string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Line:          layout.DefaultLineConfig(),
		EmptyCellText: "-",
	}
}

// Resolve returns *c, or DefaultConfig() when c is nil
func Resolve(c *Config) Config {
	if c == nil {
		return DefaultConfig()
	}
	return *c
}

// Validate checks the line thresholds
func (c Config) Validate() error {
	return c.Line.Validate()
}
