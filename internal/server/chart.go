package server

import (
	"math"

	"sepawatch/internal/model"
)

// chartData carries the candlestick series and MA overlays as parallel
// arrays. MA cells without a full window are null.
type chartData struct {
	Dates []string   `json:"dates"`
	Open  []float64  `json:"open"`
	High  []float64  `json:"high"`
	Low   []float64  `json:"low"`
	Close []float64  `json:"close"`
	MA5   []*float64 `json:"ma5"`
	MA50  []*float64 `json:"ma50"`
	MA150 []*float64 `json:"ma150"`
	MA200 []*float64 `json:"ma200"`
}

func buildChart(s *model.IndicatorSeries) *chartData {
	n := s.Len()
	c := &chartData{
		Dates: make([]string, n),
		Open:  make([]float64, n),
		High:  make([]float64, n),
		Low:   make([]float64, n),
		Close: make([]float64, n),
	}
	for i, bar := range s.Bars {
		c.Dates[i] = bar.Time.Format("2006-01-02")
		c.Open[i] = bar.Open
		c.High[i] = bar.High
		c.Low[i] = bar.Low
		c.Close[i] = bar.Close
	}
	c.MA5 = maColumn(s.MA5)
	c.MA50 = maColumn(s.MA50)
	c.MA150 = maColumn(s.MA150)
	c.MA200 = maColumn(s.MA200)
	return c
}

// maColumn converts NaN cells to nulls so the column survives JSON encoding.
func maColumn(ma []float64) []*float64 {
	out := make([]*float64, len(ma))
	for i, v := range ma {
		if !math.IsNaN(v) {
			value := v
			out[i] = &value
		}
	}
	return out
}
