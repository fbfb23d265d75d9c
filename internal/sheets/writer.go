package sheets

import (
	"context"
	"encoding/json"

	"cox_coop/internal/metrics"
	"cox_coop/internal/retry"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// WriterConfig configures the service-account append client.
type WriterConfig struct {
	SpreadsheetID string
	// CredentialsJSON is the serialized service account key.
	CredentialsJSON string
	Retry           retry.Config
}

// Writer appends rows with service-account credentials. Like Client it
// never reports errors past its boundary.
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
	retry         retry.Config
}

func NewWriter(ctx context.Context, cfg WriterConfig, opts ...option.ClientOption) *Writer {
	if cfg.CredentialsJSON == "" {
		log.Warn().Msg("Google service account credentials not configured; submissions will fail")
		return newWriterForService(nil, cfg)
	}
	if !json.Valid([]byte(cfg.CredentialsJSON)) {
		log.Error().Msg("Google service account credentials are not valid JSON; submissions will fail")
		return newWriterForService(nil, cfg)
	}

	opts = append([]option.ClientOption{
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create authenticated sheets service")
		return newWriterForService(nil, cfg)
	}

	return newWriterForService(service, cfg)
}

func newWriterForService(service *sheets.Service, cfg WriterConfig) *Writer {
	return &Writer{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		retry:         cfg.Retry,
	}
}

// AppendRow appends values as one new row at the end of tab, exactly in
// the given column order, as if a person had typed them.
func (w *Writer) AppendRow(ctx context.Context, tab string, values []string) bool {
	if w.service == nil {
		log.Error().Str("tab", tab).Msg("Google service account credentials not configured")
		metrics.RecordSheetAppend(tab, metrics.OutcomeNoConfig)
		return false
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := retry.WithRetry(ctx, w.retry, func(ctx context.Context) (*sheets.AppendValuesResponse, error) {
		return w.service.Spreadsheets.Values.Append(w.spreadsheetID, tab+"!A:Z", valueRange).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
	})
	if err != nil {
		log.Error().Err(err).Str("tab", tab).Msg("Failed to append row")
		metrics.RecordSheetAppend(tab, metrics.OutcomeError)
		return false
	}

	log.Info().Str("tab", tab).Int("columns", len(values)).Msg("Appended row")
	metrics.RecordSheetAppend(tab, metrics.OutcomeOK)
	return true
}
