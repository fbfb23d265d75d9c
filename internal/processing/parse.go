package processing

import (
	"strings"

	"cox_coop/internal/resolution"

	"github.com/rs/zerolog/log"
)

// Category is one of the roster's content domains.
type Category struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var RosterCategories = []Category{
	{Name: "Written Content", Code: "WRT"},
	{Name: "Digital Music", Code: "MUS"},
	{Name: "Digital Image", Code: "IMG"},
	{Name: "Video / Animation", Code: "VID"},
	{Name: "Software & Dev", Code: "DEV"},
	{Name: "Organization", Code: "ORG"},
	{Name: "Education", Code: "EDU"},
	{Name: "Digital Business", Code: "BIZ"},
	{Name: "Marketing & PR", Code: "MKT"},
	{Name: "Voice / Audio", Code: "AUD"},
	{Name: "Automation", Code: "AUT"},
}

// ParseRoster turns the roster tab into creators. A grid without a
// recognisable header yields no creators.
func ParseRoster(grid [][]string) []Creator {
	rows, cols, ok := classify(grid, RosterSchema)
	if !ok {
		return nil
	}

	creators := make([]Creator, 0, len(rows))
	for _, row := range rows {
		creators = append(creators, ToCreator(row, cols))
	}
	log.Debug().Int("count", len(creators)).Msg("Parsed creator roster")
	return creators
}

// ParseSubmissions turns a response tab into submissions.
func ParseSubmissions(grid [][]string) []Submission {
	rows, cols, ok := classify(grid, SubmissionSchema)
	if !ok {
		return nil
	}

	subs := make([]Submission, 0, len(rows))
	for _, row := range rows {
		sub := ToSubmission(row, cols)
		if sub.empty() {
			continue
		}
		subs = append(subs, sub)
	}
	log.Debug().Int("count", len(subs)).Msg("Parsed submissions")
	return subs
}

func classify(grid [][]string, schema Schema) ([][]string, resolution.ColumnMap, bool) {
	headerIdx, ok := resolution.LocateHeader(grid, schema.HeaderMarkers)
	if !ok {
		return nil, resolution.ColumnMap{}, false
	}
	cols := resolution.ResolveColumns(grid[headerIdx], schema.Fields)
	return ClassifyRows(grid, headerIdx, cols, schema), cols, true
}

// FilterByContentType keeps creators whose content type contains query,
// ignoring case. An empty query keeps everyone.
func FilterByContentType(creators []Creator, query string) []Creator {
	if query == "" {
		return creators
	}
	q := strings.ToLower(query)
	var out []Creator
	for _, c := range creators {
		if strings.Contains(strings.ToLower(c.ContentType), q) {
			out = append(out, c)
		}
	}
	return out
}
