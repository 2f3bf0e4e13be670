package collector

import (
	"context"

	"sepawatch/internal/model"
)

// Fetcher defines the interface for fetching market data. One call covers
// one re-qualification: the trailing one-year daily window for a ticker.
type Fetcher interface {
	// FetchDailyHistory returns roughly one year of daily bars for the
	// ticker, oldest first. An empty slice means the provider had no data.
	FetchDailyHistory(ctx context.Context, ticker string) ([]model.OHLCV, error)
	Name() string
}
