package processing

import (
	"strings"

	"cox_coop/internal/resolution"

	"github.com/rs/zerolog/log"
)

// ClassifyRows returns the rows after headerIdx that hold real data under
// schema. Blank rows, restated headers and checkbox placeholders are
// dropped silently.
func ClassifyRows(grid [][]string, headerIdx int, cols resolution.ColumnMap, schema Schema) [][]string {
	if headerIdx < 0 || headerIdx >= len(grid) {
		return nil
	}

	header := grid[headerIdx]
	byIdentity := cols.AnyResolved(schema.Identity...)
	var valid [][]string
	dropped := 0
	for _, row := range grid[headerIdx+1:] {
		var ok bool
		if byIdentity {
			ok = hasIdentity(row, header, cols, schema)
		} else {
			ok = hasAnyValue(row)
		}
		if !ok {
			dropped++
			continue
		}
		valid = append(valid, row)
	}

	log.Debug().
		Int("header_row", headerIdx).
		Int("valid", len(valid)).
		Int("dropped", dropped).
		Msg("Classified rows")
	return valid
}

func hasIdentity(row, header []string, cols resolution.ColumnMap, schema Schema) bool {
	for _, field := range schema.Identity {
		value := strings.TrimSpace(cols.Cell(row, field))
		if value == "" {
			continue
		}
		if restatesHeader(value, field, header, cols, schema) || resolution.ContainsAny(value, schema.Noise) {
			continue
		}
		if schema.RejectPlaceholders && isPlaceholder(value) {
			continue
		}
		return true
	}
	return false
}

// restatesHeader reports whether value repeats the header text for field.
// Schemas with RejectMarkerText also reject any value mentioning a marker.
func restatesHeader(value, field string, header []string, cols resolution.ColumnMap, schema Schema) bool {
	if schema.RejectMarkerText {
		return resolution.ContainsAny(value, schema.Fields[field])
	}
	return strings.EqualFold(value, strings.TrimSpace(cols.Index(field).Cell(header)))
}

// hasAnyValue is the fallback when no identity column could be resolved.
func hasAnyValue(row []string) bool {
	for _, cell := range row {
		value := strings.TrimSpace(cell)
		if value != "" && !isPlaceholder(value) {
			return true
		}
	}
	return false
}

func isPlaceholder(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), placeholder)
}
