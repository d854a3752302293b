// Package tables synthesizes table grids from provider cell records and the
// words found on the page.
//
// # Building Tables
//
// A provider describes a table as a list of [CellEntry] values in
// relationship order. The [Builder] turns them into a [model.Table]:
//
//	builder := tables.NewBuilder()
//	table, warnings, err := builder.Build("table-1", entries, words, normalizer)
//
// For each [CellKind] Cell entry the builder normalizes the cell polygon,
// collects every word whose box lies entirely inside it and joins those
// words with the [layout.LineDetector]. A cell without words gets
// [Config.EmptyCellText]. Cell text, confidence and polygon are appended to
// the row in entry order, so column order is whatever the provider emitted.
//
// MergedCell entries only record a span under merged_cells and never add
// text to a row.
//
// # Word Lookup
//
// Words are indexed once per build in an R-tree ([WordIndex]). Candidates
// from the index are filtered with the exact containment test of the cell
// region and returned in input order.
//
// # Configuration
//
//	config := tables.DefaultConfig()
//	config.EmptyCellText = ""
//	builder := tables.NewBuilderWithConfig(config)
package tables
