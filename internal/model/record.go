package model

import "time"

// QualificationRecord combines a candidate's static fields with the freshly
// computed price and criteria. It exists only for tickers that still pass
// all six predicates.
type QualificationRecord struct {
	Ticker         string      `json:"ticker"`
	Company        string      `json:"company"`
	Sector         string      `json:"sector"`
	Industry       string      `json:"industry"`
	CurrentPrice   float64     `json:"current_price"`
	BaselinePrice  float64     `json:"baseline_price"`
	PriceChangePct float64     `json:"price_change_pct"`
	MarketCapM     float64     `json:"market_cap_m"`
	Criteria       CriteriaSet `json:"criteria_details"`
	Changed        bool        `json:"criteria_changed"`
	FetchedAt      time.Time   `json:"fetched_at"`
}
