package calculator

import (
	"errors"
	"math"

	"sepawatch/internal/model"
)

// LowestLow scans the most recent window bars (or all bars if fewer exist)
// and returns the minimum of the low column.
func LowestLow(bars []model.OHLCV, window int) (float64, error) {
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	n := len(bars)
	start := n - window
	if start < 0 {
		start = 0
	}
	low := math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return low, nil
}
