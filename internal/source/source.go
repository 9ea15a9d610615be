// Package source reads raw trip datasets from CSV files and SQLite databases.
package source

import (
	"context"
	"path/filepath"
	"strings"
)

// Table is a raw dataset: header names and string cells in source order.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1 when absent.
func (t Table) Index(name string) int {
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// Read loads the dataset at path. SQLite files are recognised by extension;
// everything else is parsed as CSV with a header row.
func Read(ctx context.Context, path string) (Table, error) {
	if IsSQLite(path) {
		return ReadSQLite(ctx, path)
	}
	return ReadCSVFile(path)
}

// IsSQLite reports whether path names a SQLite dataset.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}
