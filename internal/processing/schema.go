package processing

import "cox_coop/internal/resolution"

// Logical field names shared by the roster and response tabs.
const (
	FieldTimestamp           = "timestamp"
	FieldUserName            = "userName"
	FieldHandle              = "handle"
	FieldContentType         = "contentType"
	FieldFocusArea           = "focusArea"
	FieldOpenForCollab       = "openForCollab"
	FieldCollabExpectations  = "collabExpectations"
	FieldCollabTopics        = "collabTopics"
	FieldSpecialties         = "specialties"
	FieldWillingToFacilitate = "willingToFacilitate"
	FieldIssue               = "issue"
	FieldProposedSolution    = "proposedSolution"
)

// placeholder is how an unticked checkbox cell comes back from the API.
const placeholder = "FALSE"

// Schema describes how to find and validate rows in one kind of tab.
type Schema struct {
	// HeaderMarkers identify the header row.
	HeaderMarkers []string
	Fields        resolution.FieldMarkers
	// Identity fields decide whether a row is real data.
	Identity []string
	// Noise markers flag restated banner text in an identity cell.
	Noise []string
	// RejectMarkerText drops identity values that mention any field marker,
	// not only exact copies of the header cell.
	RejectMarkerText   bool
	RejectPlaceholders bool
}

var RosterSchema = Schema{
	HeaderMarkers: []string{"user name"},
	Fields: resolution.FieldMarkers{
		FieldUserName:            {"user name"},
		FieldHandle:              {"handel", "handle"},
		FieldContentType:         {"type of content"},
		FieldFocusArea:           {"focus area"},
		FieldOpenForCollab:       {"open for collabor"},
		FieldCollabExpectations:  {"describe what type"},
		FieldCollabTopics:        {"what type of collabor"},
		FieldSpecialties:         {"specialities", "specialties"},
		FieldWillingToFacilitate: {"willing to lead"},
		FieldIssue:               {"issue"},
		FieldProposedSolution:    {"proposed solution"},
	},
	Identity:         []string{FieldUserName, FieldHandle},
	Noise:            []string{"creator roster"},
	RejectMarkerText: true,
}

var SubmissionSchema = Schema{
	HeaderMarkers: []string{"timestamp", "user name"},
	Fields: resolution.FieldMarkers{
		FieldTimestamp: {"timestamp"},
		FieldUserName:  {"user name"},
		FieldHandle:    {"handle", "handel"},
	},
	Identity:           []string{FieldTimestamp, FieldUserName, FieldHandle},
	RejectPlaceholders: true,
}
