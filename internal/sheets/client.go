package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cox_coop/internal/metrics"
	"cox_coop/internal/retry"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ReaderConfig configures the read-only client.
type ReaderConfig struct {
	SpreadsheetID string
	APIKey        string
	CacheTTL      time.Duration
	Retry         retry.Config
}

// Client reads tab ranges with the public API key. It never reports
// failures to callers: a failed read is an empty Grid.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	cacheTTL      time.Duration
	retry         retry.Config
	cache         sync.Map
	now           func() time.Time
}

type cachedGrid struct {
	grid      Grid
	timestamp time.Time
}

func NewClient(ctx context.Context, cfg ReaderConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("Google Sheets API key not configured; sheet reads will return no data")
		return newClientForService(nil, cfg), nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newClientForService(service, cfg), nil
}

func newClientForService(service *sheets.Service, cfg ReaderConfig) *Client {
	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		cacheTTL:      cfg.CacheTTL,
		retry:         cfg.Retry,
		now:           time.Now,
	}
}

// FetchGrid reads tab!rng (rng defaults to A:Z). Any failure, including a
// missing API key, yields an empty grid. Returned grids may be shared with
// the response cache and must be treated as read-only.
func (c *Client) FetchGrid(ctx context.Context, tab, rng string) Grid {
	if rng == "" {
		rng = DefaultRange
	}
	a1 := tab + "!" + rng

	if c.service == nil {
		log.Error().Str("tab", tab).Msg("Google Sheets API key not configured")
		metrics.RecordSheetRead(tab, metrics.OutcomeNoConfig)
		return nil
	}

	if cached, ok := c.cache.Load(a1); ok {
		entry := cached.(cachedGrid)
		if c.now().Sub(entry.timestamp) < c.cacheTTL {
			log.Debug().Str("tab", tab).Int("rows", len(entry.grid)).Msg("Serving sheet data from cache")
			metrics.RecordSheetRead(tab, metrics.OutcomeCached)
			return entry.grid
		}
	}

	log.Debug().Str("tab", tab).Str("range", rng).Msg("Reading sheet data")
	resp, err := retry.WithRetry(ctx, c.retry, func(ctx context.Context) (*sheets.ValueRange, error) {
		return c.service.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	})
	if err != nil {
		log.Error().Err(err).Str("tab", tab).Msg("Failed to fetch sheet data")
		metrics.RecordSheetRead(tab, metrics.OutcomeError)
		return nil
	}

	grid := toGrid(resp.Values)
	if c.cacheTTL > 0 {
		c.cache.Store(a1, cachedGrid{grid: grid, timestamp: c.now()})
	}

	log.Debug().Str("tab", tab).Int("rows", len(grid)).Msg("Retrieved sheet data")
	metrics.RecordSheetRead(tab, metrics.OutcomeOK)
	return grid
}
