package processing

import (
	"strings"

	"cox_coop/internal/resolution"
)

// ContentSeparator joins the free-text answers of a response row.
const ContentSeparator = " | "

type Creator struct {
	UserName            string `json:"userName"`
	Handle              string `json:"handle"`
	ContentType         string `json:"contentType"`
	FocusArea           string `json:"focusArea"`
	OpenForCollab       string `json:"openForCollab"`
	CollabExpectations  string `json:"collabExpectations"`
	CollabTopics        string `json:"collabTopics"`
	Specialties         string `json:"specialties"`
	WillingToFacilitate string `json:"willingToFacilitate"`
	Issue               string `json:"issue"`
	ProposedSolution    string `json:"proposedSolution"`
}

// Submission is one feedback, tip or vision response.
type Submission struct {
	Timestamp string   `json:"timestamp"`
	UserName  string   `json:"userName"`
	Handle    string   `json:"handle"`
	Content   string   `json:"content"`
	RawRow    []string `json:"rawRow"`
}

func (s Submission) empty() bool {
	return s.Timestamp == "" && s.UserName == "" && s.Content == ""
}

func ToCreator(row []string, cols resolution.ColumnMap) Creator {
	return Creator{
		UserName:            cols.Cell(row, FieldUserName),
		Handle:              cols.Cell(row, FieldHandle),
		ContentType:         cols.Cell(row, FieldContentType),
		FocusArea:           cols.Cell(row, FieldFocusArea),
		OpenForCollab:       cols.Cell(row, FieldOpenForCollab),
		CollabExpectations:  cols.Cell(row, FieldCollabExpectations),
		CollabTopics:        cols.Cell(row, FieldCollabTopics),
		Specialties:         cols.Cell(row, FieldSpecialties),
		WillingToFacilitate: cols.Cell(row, FieldWillingToFacilitate),
		Issue:               cols.Cell(row, FieldIssue),
		ProposedSolution:    cols.Cell(row, FieldProposedSolution),
	}
}

// ToSubmission maps a response row. Content is every non-empty cell after
// the rightmost identity column, in order.
func ToSubmission(row []string, cols resolution.ColumnMap) Submission {
	start := int(cols.MaxIndex(FieldTimestamp, FieldUserName, FieldHandle)) + 1

	var parts []string
	for i := start; i < len(row); i++ {
		if row[i] != "" {
			parts = append(parts, row[i])
		}
	}

	return Submission{
		Timestamp: cols.Cell(row, FieldTimestamp),
		UserName:  cols.Cell(row, FieldUserName),
		Handle:    cols.Cell(row, FieldHandle),
		Content:   strings.Join(parts, ContentSeparator),
		RawRow:    row,
	}
}
