// Package table provides the tabular data container persisted alongside a
// figure and re-read by generated reproduction scripts.
//
// A Table is an ordered set of named columns over rows of text cells.
// Serialization is row-oriented CSV with a header row and an optional
// leading index column. Column order is part of the table's identity and
// survives a CSV round-trip.
package table
