package model

// CandidateRow is one row of the pre-screened SEPA candidate list, captured
// at list-export time. Rows are immutable snapshots: loaded once, never
// mutated.
type CandidateRow struct {
	Ticker     string      `json:"ticker"`
	Company    string      `json:"company"`
	Sector     string      `json:"sector"`
	Industry   string      `json:"industry"`
	Price      float64     `json:"price"`        // last close when the list was exported
	MarketCapM float64     `json:"market_cap_m"` // market cap in millions of dollars
	Baseline   CriteriaSet `json:"criteria_details"`
}
