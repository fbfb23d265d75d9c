package config

import (
	"errors"
	"net/http"
	"time"

	"cox_coop/internal/retry"

	"google.golang.org/api/googleapi"
)

type ResilienceConfig struct {
	SheetRead    retry.Config
	SheetAppend  retry.Config
	Notification retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	SheetRead: retry.Config{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Timeout:    10 * time.Second,
		Retryable:  IsTransientSheetsError,
	},
	// Appends are never repeated: a retried append that actually landed
	// would leave a duplicate row.
	SheetAppend: retry.Config{
		MaxRetries: 0,
		BaseDelay:  time.Second,
		MaxDelay:   time.Second,
		Timeout:    15 * time.Second,
	},
	Notification: retry.Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    10 * time.Second,
	},
}

// IsTransientSheetsError reports rate limiting and server side failures
// from the Sheets API. Everything else (bad key, unknown tab) is permanent.
func IsTransientSheetsError(err error) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}
	return gErr.Code == http.StatusTooManyRequests || gErr.Code >= http.StatusInternalServerError
}
