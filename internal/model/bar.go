package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// IndicatorSeries is a daily price series augmented with the four SEPA
// moving averages. The MA slices are index-aligned with Bars; cells before
// a full window have no value and hold NaN.
type IndicatorSeries struct {
	Symbol string
	Bars   []OHLCV
	MA5    []float64
	MA50   []float64
	MA150  []float64
	MA200  []float64
}

// Len returns the number of bars in the series.
func (s *IndicatorSeries) Len() int { return len(s.Bars) }

// Latest returns the most recent bar. Callers must check Len() > 0 first.
func (s *IndicatorSeries) Latest() OHLCV { return s.Bars[len(s.Bars)-1] }
