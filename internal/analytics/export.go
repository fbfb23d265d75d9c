package analytics

import (
	"fmt"
	"strings"
	"time"

	"cox_coop/internal/processing"
)

// Export kinds, also used in download filenames.
const (
	KindCreators = "creators"
	KindFeedback = "feedback"
	KindTips     = "tips"
	KindVision   = "vision"
)

var (
	creatorHeader    = []string{"User Name", "Handle", "Content Type", "Focus Area", "Open for Collab", "Specialties"}
	submissionHeader = []string{"Timestamp", "User Name", "Handle", "Content"}
)

// Export holds one CSV document per entity kind.
type Export struct {
	Creators string
	Feedback string
	Tips     string
	Vision   string
}

// Document returns the CSV for kind.
func (e Export) Document(kind string) (string, bool) {
	switch kind {
	case KindCreators:
		return e.Creators, true
	case KindFeedback:
		return e.Feedback, true
	case KindTips:
		return e.Tips, true
	case KindVision:
		return e.Vision, true
	}
	return "", false
}

func ExportCSV(data Data) Export {
	creatorRows := make([][]string, 0, len(data.Creators))
	for _, c := range data.Creators {
		creatorRows = append(creatorRows, []string{c.UserName, c.Handle, c.ContentType, c.FocusArea, c.OpenForCollab, c.Specialties})
	}

	return Export{
		Creators: buildCSV(creatorHeader, creatorRows),
		Feedback: submissionsCSV(data.Feedback),
		Tips:     submissionsCSV(data.Tips),
		Vision:   submissionsCSV(data.Vision),
	}
}

// ExportFilename names a download, e.g. cox-coop-tips-2025-01-31.csv.
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("cox-coop-%s-%s.csv", kind, now.Format(time.DateOnly))
}

func submissionsCSV(subs []processing.Submission) string {
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, []string{s.Timestamp, s.UserName, s.Handle, s.Content})
	}
	return buildCSV(submissionHeader, rows)
}

// buildCSV writes an unquoted header line followed by rows whose every
// field is quoted. Lines are separated by "\n" with no trailing newline.
func buildCSV(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
	}
	return b.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
