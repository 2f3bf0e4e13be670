package requalify

import (
	"context"

	"github.com/rs/zerolog/log"

	"sepawatch/internal/calculator"
	"sepawatch/internal/collector"
	"sepawatch/internal/model"
	"sepawatch/internal/strategy"
)

// Status classifies the outcome of one re-qualification attempt.
type Status string

const (
	// StatusQualified: all six predicates still hold; Record is set.
	StatusQualified Status = "qualified"
	// StatusFetchFailed: the provider returned an error or no data. The
	// only outcome surfaced as a warning.
	StatusFetchFailed Status = "fetch_failed"
	// StatusInsufficientHistory: fewer than 200 bars, or lookbacks could
	// not be verified. An expected steady state, skipped silently.
	StatusInsufficientHistory Status = "insufficient_history"
	// StatusNotQualified: criteria evaluated cleanly but at least one
	// predicate failed. Not an error.
	StatusNotQualified Status = "not_qualified"
)

// Result is the outcome of re-qualifying one candidate. Record is non-nil
// only when Status is StatusQualified. Series is non-nil whenever indicators
// were computed, so callers can chart even non-qualifying tickers.
type Result struct {
	Status   Status
	Record   *model.QualificationRecord
	Criteria model.CriteriaResult
	Series   *model.IndicatorSeries
}

// Requalifier orchestrates fetch, indicator computation, and criteria
// evaluation for a single candidate. It holds no mutable state: identical
// fetched data yields identical results.
type Requalifier struct {
	fetcher collector.Fetcher
}

// New creates a Requalifier on top of the given market-data fetcher.
func New(fetcher collector.Fetcher) *Requalifier {
	return &Requalifier{fetcher: fetcher}
}

// Requalify fetches one year of daily history for the candidate's ticker,
// recomputes indicators and criteria, and produces a qualification record
// if all six predicates still pass. Failures are isolated to this ticker.
func (r *Requalifier) Requalify(ctx context.Context, row model.CandidateRow) Result {
	bars, err := r.fetcher.FetchDailyHistory(ctx, row.Ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", row.Ticker).Str("source", r.fetcher.Name()).
			Msg("price history fetch failed, skipping ticker")
		return Result{Status: StatusFetchFailed}
	}
	if len(bars) == 0 {
		log.Warn().Str("ticker", row.Ticker).Str("source", r.fetcher.Name()).
			Msg("provider returned no price history, skipping ticker")
		return Result{Status: StatusFetchFailed}
	}

	series, ok := calculator.ComputeIndicators(row.Ticker, bars)
	if !ok {
		log.Debug().Str("ticker", row.Ticker).Int("bars", len(bars)).
			Msg("insufficient history for indicators")
		return Result{Status: StatusInsufficientHistory}
	}

	criteria := strategy.Evaluate(series, row.Baseline)
	switch criteria.Verdict {
	case model.VerdictCannotVerify:
		return Result{Status: StatusInsufficientHistory, Criteria: criteria, Series: series}
	case model.VerdictFail:
		return Result{Status: StatusNotQualified, Criteria: criteria, Series: series}
	}

	latestClose := series.Latest().Close
	record := &model.QualificationRecord{
		Ticker:        row.Ticker,
		Company:       row.Company,
		Sector:        row.Sector,
		Industry:      row.Industry,
		CurrentPrice:  latestClose,
		BaselinePrice: row.Price,
		MarketCapM:    row.MarketCapM,
		Criteria:      *criteria.Criteria,
		Changed:       criteria.Changed,
		FetchedAt:     series.Latest().Time,
	}
	if row.Price > 0 {
		record.PriceChangePct = (latestClose/row.Price - 1) * 100
	}

	return Result{Status: StatusQualified, Record: record, Criteria: criteria, Series: series}
}
