package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cox_coop/internal/admin"
	"cox_coop/internal/config"
	"cox_coop/internal/notifications"
	"cox_coop/internal/sheets"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	// Request handlers log through zerolog.Ctx; fall back to the global
	// logger when no request logger is attached.
	zerolog.DefaultContextLogger = &log.Logger

	zerolog.SetGlobalLevel(parseLevel(os.Getenv("LOGLEVEL"), os.Getenv("ENV") == "production"))

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

func parseLevel(value string, production bool) zerolog.Level {
	levelStr := strings.ToLower(strings.TrimSpace(value))
	switch levelStr {
	case "":
		if production {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
		return zerolog.InfoLevel
	}
	return level
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid boolean, using default")
		return defaultValue
	}
	return b
}

// getEnvKey reads a secret key. Values are base64 when they decode cleanly,
// raw bytes otherwise.
func getEnvKey(key string) []byte {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(value); err == nil && len(b) >= 16 {
		return b
	}
	return []byte(value)
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadSettings reads the process configuration. A tabs file that cannot be
// read is fatal; everything else degrades to defaults.
func LoadSettings() (Settings, error) {
	tabs, err := config.LoadTabs(os.Getenv("TABS_FILE"))
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Production: os.Getenv("ENV") == "production",
		Port:       GetEnvWithDefault("PORT", "8080"),

		SpreadsheetID:  GetEnvWithDefault("GOOGLE_SHEET_ID", DefaultSpreadsheetID),
		SheetsAPIKey:   os.Getenv("GOOGLE_SHEETS_API_KEY"),
		ServiceAccount: os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY"),
		SheetsCacheTTL: getEnvDuration("SHEETS_CACHE_TTL", 60*time.Second),
		Tabs:           tabs,

		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionHashKey:    getEnvKey("SESSION_HASH_KEY"),
		SessionBlockKey:   getEnvKey("SESSION_BLOCK_KEY"),
		CSRFKey:           getEnvKey("CSRF_KEY"),
		TrustedOrigins:    getEnvList("CSRF_TRUSTED_ORIGINS"),

		SubmitRatePerMinute: getEnvInt("SUBMIT_RATE_PER_MINUTE", 10),

		NtfyEnabled:  getEnvBool("NTFY_ENABLED", false),
		NtfyURL:      GetEnvWithDefault("NTFY_URL", "https://ntfy.sh"),
		NtfyTopic:    GetEnvWithDefault("NTFY_TOPIC", "cox-coop"),
		NtfyPriority: GetEnvWithDefault("NTFY_PRIORITY", "default"),
	}

	if n := len(s.SessionBlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return Settings{}, fmt.Errorf("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes, got %d", n)
	}
	if len(s.CSRFKey) == 0 {
		log.Warn().Msg("CSRF_KEY not set; using a random key for this process")
		s.CSRFKey = securecookie.GenerateRandomKey(32)
	} else if len(s.CSRFKey) != 32 {
		return Settings{}, fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(s.CSRFKey))
	}

	return s, nil
}

// InitializeClients creates the read client and the append client.
func InitializeClients(ctx context.Context, s Settings) (*sheets.Client, *sheets.Writer, error) {
	log.Debug().Msg("Initializing clients")

	reader, err := sheets.NewClient(ctx, sheets.ReaderConfig{
		SpreadsheetID: s.SpreadsheetID,
		APIKey:        s.SheetsAPIKey,
		CacheTTL:      s.SheetsCacheTTL,
		Retry:         config.DefaultResilienceConfig.SheetRead,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	writer := sheets.NewWriter(ctx, sheets.WriterConfig{
		SpreadsheetID:   s.SpreadsheetID,
		CredentialsJSON: s.ServiceAccount,
		Retry:           config.DefaultResilienceConfig.SheetAppend,
	})

	log.Debug().Msg("Clients initialized successfully")
	return reader, writer, nil
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient(s Settings) *notifications.Client {
	log.Debug().
		Bool("enabled", s.NtfyEnabled).
		Str("base_url", s.NtfyURL).
		Str("topic", s.NtfyTopic).
		Str("priority", s.NtfyPriority).
		Msg("Initializing notification client")

	client := notifications.NewClient(notifications.Config{
		BaseURL:  s.NtfyURL,
		Topic:    s.NtfyTopic,
		Enabled:  s.NtfyEnabled,
		Priority: s.NtfyPriority,
		Retry:    config.DefaultResilienceConfig.Notification,
	})

	if s.NtfyEnabled {
		log.Info().Str("topic", s.NtfyTopic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}
	return client
}

func InitializeGate(s Settings) (*admin.Gate, error) {
	return admin.NewGate(admin.Config{
		Password:     s.AdminPassword,
		PasswordHash: s.AdminPasswordHash,
		HashKey:      s.SessionHashKey,
		BlockKey:     s.SessionBlockKey,
		Secure:       s.Production,
	})
}
