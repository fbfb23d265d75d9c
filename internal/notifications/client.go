package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cox_coop/internal/circuitbreaker"
	"cox_coop/internal/retry"

	"github.com/rs/zerolog/log"
)

type Config struct {
	BaseURL  string
	Topic    string
	Enabled  bool
	Priority string
	Retry    retry.Config
	// Consecutive failed sends before notifications pause for BreakerReset.
	BreakerFailures int
	BreakerReset    time.Duration
}

// Client posts plain-text messages to an ntfy topic.
type Client struct {
	httpClient *http.Client
	cfg        Config
	breaker    *circuitbreaker.Breaker
	pending    sync.WaitGroup

	totalSent   atomic.Int64
	totalFailed atomic.Int64
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error {
	return e.Underlying
}

func (e *NotificationError) IsRetryable() bool {
	switch e.Type {
	case "network", "server", "rate_limit":
		return true
	default:
		return false
	}
}

func isRetryable(err error) bool {
	var nErr *NotificationError
	if errors.As(err, &nErr) {
		return nErr.IsRetryable()
	}
	// Timeouts and cancellations from the attempt context.
	return errors.Is(err, context.DeadlineExceeded)
}

func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	cfg.Retry.Retryable = isRetryable
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerReset == 0 {
		cfg.BreakerReset = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cfg:     cfg,
		breaker: circuitbreaker.New("ntfy", cfg.BreakerFailures, cfg.BreakerReset),
	}
}

// Send delivers message with retries. Disabled clients succeed silently.
func (c *Client) Send(ctx context.Context, title, message string) error {
	if !c.cfg.Enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	err := c.breaker.Execute(func() error {
		_, err := retry.WithRetry(ctx, c.cfg.Retry, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, c.sendOnce(ctx, title, message)
		})
		return err
	})
	if err != nil {
		c.totalFailed.Add(1)
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			log.Warn().Msg("Circuit breaker open, skipping notification")
		}
		return err
	}

	c.totalSent.Add(1)
	return nil
}

func (c *Client) sendOnce(ctx context.Context, title, message string) error {
	url := fmt.Sprintf("%s/%s", c.cfg.BaseURL, c.cfg.Topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}
	req.Header.Set("Content-Type", "text/plain")
	if title != "" {
		req.Header.Set("Title", title)
	}
	if c.cfg.Priority != "" {
		req.Header.Set("Priority", c.cfg.Priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Debug().Int("status_code", resp.StatusCode).Msg("Notification sent")
	return nil
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return "auth"
	case statusCode == http.StatusTooManyRequests:
		return "rate_limit"
	case statusCode >= 500:
		return "server"
	default:
		return "client"
	}
}

// NotifySubmission announces a new form submission in the background.
// The request context is not used so a finished request does not cancel
// the delivery.
func (c *Client) NotifySubmission(kind, who, summary string) {
	if !c.cfg.Enabled {
		return
	}
	title := fmt.Sprintf("COX Coop: new %s", kind)
	message := formatSubmission(who, summary)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.Send(context.Background(), title, message); err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("Submission notification failed")
		}
	}()
}

// Wait blocks until background notifications finish or ctx is done. It
// reports whether every delivery finished.
func (c *Client) Wait(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

const maxSummaryLength = 200

func formatSubmission(who, summary string) string {
	if who == "" {
		who = "anonymous"
	}
	summary = strings.TrimSpace(summary)
	if r := []rune(summary); len(r) > maxSummaryLength {
		summary = string(r[:maxSummaryLength]) + "..."
	}
	if summary == "" {
		return fmt.Sprintf("From %s", who)
	}
	return fmt.Sprintf("From %s\n%s", who, summary)
}

// Metrics returns counts of delivered and failed notifications.
func (c *Client) Metrics() (sent, failed int64) {
	return c.totalSent.Load(), c.totalFailed.Load()
}
