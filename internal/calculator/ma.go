package calculator

import (
	"errors"
	"math"

	"sepawatch/internal/model"
)

// MinBars is the shortest daily series the SEPA indicator set is defined on.
// Shorter series yield no indicators at all.
const MinBars = 200

// RollingSMA computes the trailing simple moving average column for the
// given window. The result is index-aligned with prices; cells before index
// window-1 hold NaN (no extrapolation, no forward fill).
func RollingSMA(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// ComputeIndicators augments a daily price series with the four SEPA moving
// averages (5/50/150/200). A series shorter than MinBars yields (nil, false):
// a normal "insufficient data" outcome, not an error.
func ComputeIndicators(symbol string, bars []model.OHLCV) (*model.IndicatorSeries, bool) {
	if len(bars) < MinBars {
		return nil, false
	}
	closes := extractCloses(bars)
	series := &model.IndicatorSeries{Symbol: symbol, Bars: bars}
	for _, col := range []struct {
		window int
		dst    *[]float64
	}{
		{5, &series.MA5},
		{50, &series.MA50},
		{150, &series.MA150},
		{200, &series.MA200},
	} {
		ma, err := RollingSMA(closes, col.window)
		if err != nil {
			return nil, false
		}
		*col.dst = ma
	}
	return series, true
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
