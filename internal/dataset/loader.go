package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sepawatch/internal/model"
)

// requiredColumns are the CSV columns a candidate export must carry.
var requiredColumns = []string{
	"ticker", "company", "sector", "industry", "price", "market_cap_m", "criteria_details",
}

// criteriaKeys are the exact six predicate keys the embedded criteria map
// must contain. Anything else is a schema mismatch.
var criteriaKeys = []string{
	"above_200d", "ma150_above_200d", "ma50_above_both",
	"above_5d", "ma200_rising", "up_30pct_from_52w_low",
}

// Load reads the candidate list from a CSV export. Every row must parse,
// including the embedded criteria_details JSON map: any malformed row fails
// the whole load, so callers never see a partial dataset.
func Load(path string) ([]model.CandidateRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidate list: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read candidate list: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("candidate list %s has no data rows", path)
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]model.CandidateRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("candidate list missing column %q", required)
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (model.CandidateRow, error) {
	get := func(name string) string {
		idx := cols[name]
		if idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	ticker := strings.ToUpper(get("ticker"))
	if ticker == "" {
		return model.CandidateRow{}, fmt.Errorf("empty ticker")
	}

	price, err := strconv.ParseFloat(get("price"), 64)
	if err != nil {
		return model.CandidateRow{}, fmt.Errorf("parse price: %w", err)
	}
	marketCap, err := strconv.ParseFloat(get("market_cap_m"), 64)
	if err != nil {
		return model.CandidateRow{}, fmt.Errorf("parse market_cap_m: %w", err)
	}

	baseline, err := parseCriteria(get("criteria_details"))
	if err != nil {
		return model.CandidateRow{}, fmt.Errorf("ticker %s: %w", ticker, err)
	}

	return model.CandidateRow{
		Ticker:     ticker,
		Company:    get("company"),
		Sector:     get("sector"),
		Industry:   get("industry"),
		Price:      price,
		MarketCapM: marketCap,
		Baseline:   baseline,
	}, nil
}

// parseCriteria deserializes the embedded criteria map into the typed
// six-field struct, failing fast on any schema mismatch: missing keys,
// unknown keys, or non-boolean values.
func parseCriteria(raw string) (model.CriteriaSet, error) {
	var m map[string]bool
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return model.CriteriaSet{}, fmt.Errorf("parse criteria_details: %w", err)
	}
	if len(m) != len(criteriaKeys) {
		return model.CriteriaSet{}, fmt.Errorf("criteria_details has %d keys, want %d", len(m), len(criteriaKeys))
	}
	for _, key := range criteriaKeys {
		if _, ok := m[key]; !ok {
			return model.CriteriaSet{}, fmt.Errorf("criteria_details missing key %q", key)
		}
	}
	return model.CriteriaSet{
		Above200d:         m["above_200d"],
		MA150Above200d:    m["ma150_above_200d"],
		MA50AboveBoth:     m["ma50_above_both"],
		Above5d:           m["above_5d"],
		MA200Rising:       m["ma200_rising"],
		Up30PctFrom52wLow: m["up_30pct_from_52w_low"],
	}, nil
}
