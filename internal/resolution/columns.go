package resolution

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Absent is the index of a field no header cell matched.
const Absent Index = -1

// Index is a resolved column position, or Absent.
type Index int

func (i Index) Resolved() bool {
	return i >= 0
}

// Cell returns the row's value at i. Absent and out of range read as "".
func (i Index) Cell(row []string) string {
	if !i.Resolved() || int(i) >= len(row) {
		return ""
	}
	return row[i]
}

// FieldMarkers maps a logical field to its header marker substrings, in
// priority order. Markers are lowercase.
type FieldMarkers map[string][]string

// ColumnMap is the result of matching one header row against FieldMarkers.
// It is never modified after ResolveColumns returns it.
type ColumnMap struct {
	indices map[string]Index
}

// Index returns the column for field, or Absent if the field was not
// resolved or is unknown.
func (m ColumnMap) Index(field string) Index {
	if idx, ok := m.indices[field]; ok {
		return idx
	}
	return Absent
}

// Cell reads field from row.
func (m ColumnMap) Cell(row []string, field string) string {
	return m.Index(field).Cell(row)
}

// MaxIndex returns the largest resolved index among fields, or Absent.
func (m ColumnMap) MaxIndex(fields ...string) Index {
	best := Absent
	for _, f := range fields {
		if idx := m.Index(f); idx > best {
			best = idx
		}
	}
	return best
}

// AnyResolved reports whether at least one of fields resolved.
func (m ColumnMap) AnyResolved(fields ...string) bool {
	return m.MaxIndex(fields...).Resolved()
}

// LocateHeader returns the index of the first row with a cell containing
// any of markers, case-insensitively.
func LocateHeader(grid [][]string, markers []string) (int, bool) {
	for i, row := range grid {
		for _, cell := range row {
			if ContainsAny(cell, markers) {
				log.Debug().Int("row", i).Str("cell", cell).Msg("Located header row")
				return i, true
			}
		}
	}
	log.Debug().Strs("markers", markers).Int("rows", len(grid)).Msg("No header row found")
	return 0, false
}

// ResolveColumns matches each field against header. Alternate markers are
// tried in order and, for each marker, cells left to right; the first hit
// wins. Two columns sharing a marker always resolve to the leftmost.
func ResolveColumns(header []string, fields FieldMarkers) ColumnMap {
	indices := make(map[string]Index, len(fields))
	for field, markers := range fields {
		indices[field] = findColumn(header, markers)
	}
	return ColumnMap{indices: indices}
}

func findColumn(header []string, markers []string) Index {
	for _, marker := range markers {
		for i, cell := range header {
			if strings.Contains(strings.ToLower(cell), marker) {
				return Index(i)
			}
		}
	}
	return Absent
}

// ContainsAny reports whether s contains any of markers, ignoring case.
func ContainsAny(s string, markers []string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
