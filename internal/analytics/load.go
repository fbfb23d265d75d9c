package analytics

import (
	"context"
	"time"

	"cox_coop/internal/config"
	"cox_coop/internal/processing"
	"cox_coop/internal/sheets"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// GridFetcher reads one tab. Implementations report failure as an empty
// grid, never an error.
type GridFetcher interface {
	FetchGrid(ctx context.Context, tab, rng string) sheets.Grid
}

// Load fetches the roster and the three response tabs concurrently. A tab
// that cannot be read contributes an empty record set and nothing else.
func Load(ctx context.Context, fetcher GridFetcher, tabs config.Tabs) Data {
	start := time.Now()

	var (
		creators               []processing.Creator
		feedback, tips, vision []processing.Submission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		creators = processing.ParseRoster(fetcher.FetchGrid(gctx, tabs.Roster, ""))
		return nil
	})
	g.Go(func() error {
		feedback = processing.ParseSubmissions(fetcher.FetchGrid(gctx, tabs.Feedback, ""))
		return nil
	})
	g.Go(func() error {
		tips = processing.ParseSubmissions(fetcher.FetchGrid(gctx, tabs.Tips, ""))
		return nil
	})
	g.Go(func() error {
		vision = processing.ParseSubmissions(fetcher.FetchGrid(gctx, tabs.Vision, ""))
		return nil
	})
	_ = g.Wait()

	data := Assemble(creators, feedback, tips, vision)
	log.Debug().
		Int("creators", data.Stats.CreatorCount).
		Int("feedback", data.Stats.FeedbackCount).
		Int("tips", data.Stats.TipsCount).
		Int("vision", data.Stats.VisionCount).
		Dur("elapsed", time.Since(start)).
		Msg("Loaded analytics")
	return data
}

func LoadRoster(ctx context.Context, fetcher GridFetcher, tab string) []processing.Creator {
	return processing.ParseRoster(fetcher.FetchGrid(ctx, tab, ""))
}
