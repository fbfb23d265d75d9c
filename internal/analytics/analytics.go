// Package analytics derives dashboard statistics and exports from the
// parsed roster and response tabs.
package analytics

import (
	"sort"
	"strings"
	"time"

	"cox_coop/internal/processing"
)

type SheetStats struct {
	CreatorCount  int `json:"creatorCount"`
	FeedbackCount int `json:"feedbackCount"`
	TipsCount     int `json:"tipsCount"`
	VisionCount   int `json:"visionCount"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Trends struct {
	DailyActivity     []DailyCount    `json:"dailyActivity"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}

// Data is everything the admin dashboard shows for one request.
type Data struct {
	Creators []processing.Creator    `json:"creators"`
	Feedback []processing.Submission `json:"feedback"`
	Tips     []processing.Submission `json:"tips"`
	Vision   []processing.Submission `json:"vision"`
	Stats    SheetStats              `json:"stats"`
	Trends   Trends                  `json:"trends"`
}

func ComputeStats(creators []processing.Creator, feedback, tips, vision []processing.Submission) SheetStats {
	return SheetStats{
		CreatorCount:  len(creators),
		FeedbackCount: len(feedback),
		TipsCount:     len(tips),
		VisionCount:   len(vision),
	}
}

// dateLayouts are the date renderings a response tab's timestamp column
// has been seen to use.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2006/1/2",
}

// dateKey returns the calendar date of a spreadsheet timestamp as
// YYYY-MM-DD.
func dateKey(timestamp string) (string, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(timestamp), " ")
	datePart, _, _ = strings.Cut(datePart, "T")
	if datePart == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}

// ComputeDailyActivity counts submissions per calendar day, oldest first.
// Submissions without a parseable date are left out.
func ComputeDailyActivity(subs ...[]processing.Submission) []DailyCount {
	counts := make(map[string]int)
	for _, set := range subs {
		for _, s := range set {
			if key, ok := dateKey(s.Timestamp); ok {
				counts[key]++
			}
		}
	}

	activity := make([]DailyCount, 0, len(counts))
	for date, n := range counts {
		activity = append(activity, DailyCount{Date: date, Count: n})
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date < activity[j].Date
	})
	return activity
}

// ComputeCategoryBreakdown tallies records by entity kind. It does not look
// at the category a submitter picked on the form.
func ComputeCategoryBreakdown(creators []processing.Creator, feedback, tips, vision []processing.Submission) []CategoryCount {
	return []CategoryCount{
		{Category: "Creators", Count: len(creators)},
		{Category: "Feedback", Count: len(feedback)},
		{Category: "Tips", Count: len(tips)},
		{Category: "Vision", Count: len(vision)},
	}
}

// Assemble computes stats and trends for already parsed record sets. Nil
// sets become empty so they encode as [] rather than null.
func Assemble(creators []processing.Creator, feedback, tips, vision []processing.Submission) Data {
	creators, feedback, tips, vision = orEmpty(creators), orEmpty(feedback), orEmpty(tips), orEmpty(vision)
	return Data{
		Creators: creators,
		Feedback: feedback,
		Tips:     tips,
		Vision:   vision,
		Stats:    ComputeStats(creators, feedback, tips, vision),
		Trends: Trends{
			DailyActivity:     ComputeDailyActivity(feedback, tips, vision),
			CategoryBreakdown: ComputeCategoryBreakdown(creators, feedback, tips, vision),
		},
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
