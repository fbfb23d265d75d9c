package processing

import (
	"reflect"
	"testing"

	"cox_coop/internal/resolution"
)

var rosterGrid = [][]string{
	{"COX COOP Creator Roster🔥"},
	{},
	{"", "Updated weekly by facilitators"},
	{"#", "User Name", "X Handel", "Type of Content", "Focus Area", "Open for collaboration?", "Specialities", "Issue", "Proposed Solution"},
	{"1", "Ann", "@ann", "Digital Music", "Beats", "Yes", "Mixing", "", ""},
	{"2", "", "@bo", "Written Content", "", "No", "", "Reach", "Threads"},
	{"3", "", "", "", "", "", "", "", ""},
	{"4", "User Name", "Handel", "", "", "", "", "", ""},
	{"5", "COX COOP Creator Roster", "", "", "", "", "", "", ""},
	{"6", "Cy"},
}

func TestParseRoster(t *testing.T) {
	creators := ParseRoster(rosterGrid)

	if len(creators) != 3 {
		t.Fatalf("Expected 3 creators, got %d: %+v", len(creators), creators)
	}

	want := Creator{
		UserName:      "Ann",
		Handle:        "@ann",
		ContentType:   "Digital Music",
		FocusArea:     "Beats",
		OpenForCollab: "Yes",
		Specialties:   "Mixing",
	}
	if creators[0] != want {
		t.Errorf("Creator 0:\n got %+v\nwant %+v", creators[0], want)
	}
	if creators[1].Handle != "@bo" || creators[1].ProposedSolution != "Threads" {
		t.Errorf("Unexpected creator 1: %+v", creators[1])
	}
	// Ragged row: everything past its length reads as empty.
	if creators[2].UserName != "Cy" || creators[2].Handle != "" || creators[2].Issue != "" {
		t.Errorf("Unexpected creator 2: %+v", creators[2])
	}
}

func TestParseRosterMissingHeader(t *testing.T) {
	grids := [][][]string{
		nil,
		{{"no"}, {"header", "here"}},
	}
	for _, g := range grids {
		if got := ParseRoster(g); len(got) != 0 {
			t.Errorf("Expected no creators, got %v", got)
		}
		if got := ParseSubmissions(g); len(got) != 0 {
			t.Errorf("Expected no submissions, got %v", got)
		}
	}
}

func TestColumnOrderIndependence(t *testing.T) {
	original := [][]string{
		{"User Name", "Handle", "Type of content", "Focus area"},
		{"Ann", "@ann", "Video", "Shorts"},
		{"Bo", "", "Audio", ""},
	}
	// Same data, columns permuted.
	perm := []int{3, 1, 0, 2}
	permuted := make([][]string, len(original))
	for i, row := range original {
		permuted[i] = make([]string, len(perm))
		for j, p := range perm {
			permuted[i][j] = row[p]
		}
	}

	a := ParseRoster(original)
	b := ParseRoster(permuted)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Column order changed records:\n%+v\n%+v", a, b)
	}
}

func TestClassifyRowsNoise(t *testing.T) {
	grid := [][]string{
		{"Timestamp", "User Name", "Handle", "Response"},
		{"", "", "", ""},
		{"FALSE", "", "", ""},
		{"", "", "false", "anything"},
		{"Timestamp", "", "", ""},
		{"", "User Name", "", ""},
		{"2025-01-01 10:00:00", "", "", ""},
		{"", "", "@ann", ""},
	}
	header, ok := resolution.LocateHeader(grid, SubmissionSchema.HeaderMarkers)
	if !ok {
		t.Fatal("Header not found")
	}
	cols := resolution.ResolveColumns(grid[header], SubmissionSchema.Fields)
	rows := ClassifyRows(grid, header, cols, SubmissionSchema)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 valid rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "2025-01-01 10:00:00" || rows[1][2] != "@ann" {
		t.Errorf("Unexpected rows: %v", rows)
	}
}

func TestParseSubmissionsKeepsMarkerLikeValues(t *testing.T) {
	grid := [][]string{
		{"Timestamp", "User Name", "Handle", "Tip"},
		{"", "", "@handlecraft", "tip text"},
		{"", "Timestamp Tim", "", "tip two"},
		{"", "", "handle", ""},
	}

	subs := ParseSubmissions(grid)
	if len(subs) != 2 {
		t.Fatalf("Expected 2 submissions, got %d: %+v", len(subs), subs)
	}
	if subs[0].Handle != "@handlecraft" || subs[0].Content != "tip text" {
		t.Errorf("Unexpected submission %+v", subs[0])
	}
	if subs[1].UserName != "Timestamp Tim" {
		t.Errorf("Unexpected submission %+v", subs[1])
	}
}

func TestClassifyRowsWithoutIdentityColumns(t *testing.T) {
	grid := [][]string{
		{"User Response Sheet"},
		{"Timestamp-less form"},
		{"FALSE", ""},
		{"", "real answer"},
	}
	schema := Schema{
		HeaderMarkers:      []string{"response"},
		Fields:             SubmissionSchema.Fields,
		Identity:           SubmissionSchema.Identity,
		RejectPlaceholders: true,
	}
	cols := resolution.ResolveColumns(grid[0], schema.Fields)
	rows := ClassifyRows(grid, 0, cols, schema)
	// No identity column resolves, so every non-empty, non-placeholder
	// row counts.
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d: %v", len(rows), rows)
	}
}

func TestClassifyRowsBadHeaderIndex(t *testing.T) {
	if rows := ClassifyRows([][]string{{"a"}}, 3, resolution.ColumnMap{}, SubmissionSchema); rows != nil {
		t.Errorf("Expected nil, got %v", rows)
	}
}

func TestToSubmission(t *testing.T) {
	header := []string{"Timestamp", "User Name", "Handle", "Category", "Issue", "Solution"}
	row := []string{"2025-01-01", "Ann", "@ann", "Platform", "slow load", "restart works"}

	cols := resolution.ResolveColumns(header, SubmissionSchema.Fields)
	got := ToSubmission(row, cols)

	want := Submission{
		Timestamp: "2025-01-01",
		UserName:  "Ann",
		Handle:    "@ann",
		Content:   "Platform | slow load | restart works",
		RawRow:    row,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToSubmission():\n got %+v\nwant %+v", got, want)
	}
}

func TestToSubmissionSkipsEmptyCells(t *testing.T) {
	header := []string{"Timestamp", "User Name", "Handle", "A", "B", "C", "D"}
	row := []string{"2025-01-01", "Ann", "", "one", "", "three", ""}

	cols := resolution.ResolveColumns(header, SubmissionSchema.Fields)
	if got := ToSubmission(row, cols).Content; got != "one | three" {
		t.Errorf("Content = %q, want %q", got, "one | three")
	}
}

func TestToSubmissionNoIdentityColumns(t *testing.T) {
	cols := resolution.ResolveColumns([]string{"Q1", "Q2"}, SubmissionSchema.Fields)
	got := ToSubmission([]string{"a", "b"}, cols)
	if got.Content != "a | b" || got.Timestamp != "" {
		t.Errorf("Unexpected submission %+v", got)
	}
}

func TestParseSubmissions(t *testing.T) {
	grid := [][]string{
		{"Weekly Feedback & Solutions to X Team 🔥"},
		{"Timestamp", "User Name", "X Handle", "Category", "Issue", "Solution"},
		{"2025-01-02 10:00:00", "Ann", "@ann", "Tools", "X", "Y"},
		{"FALSE", "", "", "", "", ""},
		{"", "", "", "", "", ""},
		{"2025-01-03 09:00:00", "", "@bo", "", "Slow", ""},
	}

	subs := ParseSubmissions(grid)
	if len(subs) != 2 {
		t.Fatalf("Expected 2 submissions, got %d: %+v", len(subs), subs)
	}
	if subs[0].Content != "Tools | X | Y" {
		t.Errorf("Content = %q", subs[0].Content)
	}
	if subs[1].Handle != "@bo" || subs[1].Content != "Slow" {
		t.Errorf("Unexpected submission %+v", subs[1])
	}
}

func TestFilterByContentType(t *testing.T) {
	creators := []Creator{
		{UserName: "Ann", ContentType: "Digital Music, Voice / Audio"},
		{UserName: "Bo", ContentType: "Written Content"},
		{UserName: "Cy"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Ann", "Bo", "Cy"}},
		{"digital music", []string{"Ann"}},
		{"CONTENT", []string{"Bo"}},
		{"Automation", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var names []string
			for _, c := range FilterByContentType(creators, tt.query) {
				names = append(names, c.UserName)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestRosterCategories(t *testing.T) {
	if len(RosterCategories) != 11 {
		t.Errorf("Expected 11 categories, got %d", len(RosterCategories))
	}
	seen := map[string]bool{}
	for _, c := range RosterCategories {
		if seen[c.Code] {
			t.Errorf("Duplicate code %s", c.Code)
		}
		seen[c.Code] = true
	}
}
