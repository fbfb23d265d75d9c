// Package submission validates form posts and appends them to their tab.
package submission

import (
	"context"
	"errors"
	"strings"
	"time"

	"cox_coop/internal/config"

	"github.com/rs/zerolog/log"
)

// TimestampLayout is how submissions are stamped. The date part comes
// first so daily activity can group on it.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrWriteFailed = errors.New("failed to write submission")

// ValidationError reports a missing required field. Message is safe to show
// to the submitter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Feedback struct {
	UserName string `json:"userName"`
	Handle   string `json:"handle"`
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Solution string `json:"solution"`
}

type Tip struct {
	UserName string `json:"userName"`
	Handle   string `json:"handle"`
	Category string `json:"category"`
	Tip      string `json:"tip"`
	Details  string `json:"details"`
}

type Vision struct {
	UserName       string `json:"userName"`
	Handle         string `json:"handle"`
	Goal           string `json:"goal"`
	Timeline       string `json:"timeline"`
	Accountability string `json:"accountability"`
}

type Registration struct {
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

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func requireIdentity(userName, handle string) error {
	if blank(userName) && blank(handle) {
		return &ValidationError{Message: "Username or handle is required"}
	}
	return nil
}

func (f Feedback) Validate() error {
	if err := requireIdentity(f.UserName, f.Handle); err != nil {
		return err
	}
	if blank(f.Issue) || blank(f.Solution) {
		return &ValidationError{Message: "Issue and solution are required"}
	}
	return nil
}

func (t Tip) Validate() error {
	if err := requireIdentity(t.UserName, t.Handle); err != nil {
		return err
	}
	if blank(t.Tip) {
		return &ValidationError{Message: "Tip is required"}
	}
	return nil
}

func (v Vision) Validate() error {
	if err := requireIdentity(v.UserName, v.Handle); err != nil {
		return err
	}
	if blank(v.Goal) {
		return &ValidationError{Message: "Goal is required"}
	}
	return nil
}

func (r Registration) Validate() error {
	return requireIdentity(r.UserName, r.Handle)
}

// Row builders produce the exact column order of each tab.

func (f Feedback) Row(ts string) []string {
	return []string{ts, f.UserName, f.Handle, f.Category, f.Issue, f.Solution}
}

func (t Tip) Row(ts string) []string {
	return []string{ts, t.UserName, t.Handle, t.Category, t.Tip, t.Details}
}

func (v Vision) Row(ts string) []string {
	return []string{ts, v.UserName, v.Handle, v.Goal, v.Timeline, v.Accountability}
}

// Row has no timestamp column; the roster tab does not keep one.
func (r Registration) Row() []string {
	return []string{
		r.UserName,
		r.Handle,
		r.ContentType,
		r.FocusArea,
		r.OpenForCollab,
		r.CollabExpectations,
		r.CollabTopics,
		r.Specialties,
		r.WillingToFacilitate,
		r.Issue,
		r.ProposedSolution,
	}
}

// Appender writes one row to a tab and reports success.
type Appender interface {
	AppendRow(ctx context.Context, tab string, values []string) bool
}

// Notifier is told about every accepted submission.
type Notifier interface {
	NotifySubmission(kind, who, summary string)
}

type Service struct {
	appender Appender
	tabs     config.Tabs
	notifier Notifier
	now      func() time.Time
}

// NewService builds a Service. notifier may be nil.
func NewService(appender Appender, tabs config.Tabs, notifier Notifier) *Service {
	return &Service{
		appender: appender,
		tabs:     tabs,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

func (s *Service) SubmitFeedback(ctx context.Context, f Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "feedback", s.tabs.Feedback, f.Row(s.timestamp()), who(f.UserName, f.Handle), f.Issue)
}

func (s *Service) SubmitTip(ctx context.Context, t Tip) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "tip", s.tabs.Tips, t.Row(s.timestamp()), who(t.UserName, t.Handle), t.Tip)
}

func (s *Service) SubmitVision(ctx context.Context, v Vision) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "vision", s.tabs.Vision, v.Row(s.timestamp()), who(v.UserName, v.Handle), v.Goal)
}

func (s *Service) RegisterCreator(ctx context.Context, r Registration) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "creator", s.tabs.Roster, r.Row(), who(r.UserName, r.Handle), r.ContentType)
}

func (s *Service) write(ctx context.Context, kind, tab string, row []string, who, summary string) error {
	if !s.appender.AppendRow(ctx, tab, row) {
		log.Warn().Str("kind", kind).Str("tab", tab).Msg("Submission was not written")
		return ErrWriteFailed
	}

	log.Info().Str("kind", kind).Str("who", who).Msg("Submission recorded")
	if s.notifier != nil {
		s.notifier.NotifySubmission(kind, who, summary)
	}
	return nil
}

// who prefers the handle, matching how creators are identified on the
// roster.
func who(userName, handle string) string {
	if h := strings.TrimSpace(handle); h != "" {
		return h
	}
	return strings.TrimSpace(userName)
}
