package app

import (
	"time"

	"cox_coop/internal/config"
)

// DefaultSpreadsheetID is the live COX Coop sheet.
const DefaultSpreadsheetID = "1V9uYRt5ObBET5T9CkAaG7qbM8qJUlvZeT7zeG_XXs2M"

// Settings is the process configuration read from the environment.
type Settings struct {
	Production bool
	Port       string

	SpreadsheetID  string
	SheetsAPIKey   string
	ServiceAccount string
	SheetsCacheTTL time.Duration
	Tabs           config.Tabs

	AdminPassword     string
	AdminPasswordHash string
	SessionHashKey    []byte
	SessionBlockKey   []byte
	CSRFKey           []byte
	TrustedOrigins    []string

	SubmitRatePerMinute int

	NtfyEnabled  bool
	NtfyURL      string
	NtfyTopic    string
	NtfyPriority string
}
