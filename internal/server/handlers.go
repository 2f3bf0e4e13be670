package server

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"sepawatch/internal/cache"
	"sepawatch/internal/model"
	"sepawatch/internal/requalify"
)

// Handlers serves the dashboard API over the loaded candidate dataset.
type Handlers struct {
	rows        []model.CandidateRow
	requalifier *requalify.Requalifier
	store       cache.Store
	ttl         time.Duration
	now         func() time.Time
}

// NewHandlers creates the handler set. rows is the full candidate dataset,
// loaded once at startup and never mutated.
func NewHandlers(rows []model.CandidateRow, rq *requalify.Requalifier, store cache.Store, ttl time.Duration) *Handlers {
	return &Handlers{
		rows:        rows,
		requalifier: rq,
		store:       store,
		ttl:         ttl,
		now:         time.Now,
	}
}

// capFilter is the user-selected sector / market-cap filter.
type capFilter struct {
	sector string
	minCap float64
	maxCap float64
}

func parseFilter(r *http.Request) capFilter {
	q := r.URL.Query()
	f := capFilter{
		sector: strings.TrimSpace(q.Get("sector")),
		minCap: math.Inf(-1),
		maxCap: math.Inf(1),
	}
	if strings.EqualFold(f.sector, "all") {
		f.sector = ""
	}
	if v, err := strconv.ParseFloat(q.Get("min_cap"), 64); err == nil {
		f.minCap = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_cap"), 64); err == nil {
		f.maxCap = v
	}
	return f
}

func (h *Handlers) filtered(f capFilter) []model.CandidateRow {
	out := make([]model.CandidateRow, 0, len(h.rows))
	for _, row := range h.rows {
		if row.MarketCapM < f.minCap || row.MarketCapM > f.maxCap {
			continue
		}
		if f.sector != "" && row.Sector != f.sector {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Candidates handles GET /api/candidates.
func (h *Handlers) Candidates(w http.ResponseWriter, r *http.Request) {
	rows := h.filtered(parseFilter(r))
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(rows),
		"candidates": rows,
	})
}

// Sectors handles GET /api/sectors: the sector filter options and the
// dataset's market-cap bounds for the range slider.
func (h *Handlers) Sectors(w http.ResponseWriter, r *http.Request) {
	seen := make(map[string]bool)
	sectors := make([]string, 0)
	minCap, maxCap := math.Inf(1), math.Inf(-1)
	for _, row := range h.rows {
		if !seen[row.Sector] {
			seen[row.Sector] = true
			sectors = append(sectors, row.Sector)
		}
		if row.MarketCapM < minCap {
			minCap = row.MarketCapM
		}
		if row.MarketCapM > maxCap {
			maxCap = row.MarketCapM
		}
	}
	sort.Strings(sectors)
	if len(h.rows) == 0 {
		minCap, maxCap = 0, 0
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": sectors,
		"min_cap": minCap,
		"max_cap": maxCap,
	})
}

// Stats handles GET /api/stats: summary statistics for the filtered set
// plus per-sector market-cap totals over the whole dataset (the sector pie
// always shows the full list, matching the dashboard layout).
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	rows := h.filtered(parseFilter(r))

	var mean, median float64
	if len(rows) > 0 {
		caps := make([]float64, len(rows))
		sum := 0.0
		for i, row := range rows {
			caps[i] = row.MarketCapM
			sum += row.MarketCapM
		}
		sort.Float64s(caps)
		mean = sum / float64(len(caps))
		mid := len(caps) / 2
		if len(caps)%2 == 1 {
			median = caps[mid]
		} else {
			median = (caps[mid-1] + caps[mid]) / 2
		}
	}

	totals := make(map[string]float64)
	for _, row := range h.rows {
		totals[row.Sector] += row.MarketCapM
	}
	sectors := make([]map[string]interface{}, 0, len(totals))
	for sector, total := range totals {
		sectors = append(sectors, map[string]interface{}{
			"sector":       sector,
			"market_cap_m": total,
		})
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i]["sector"].(string) < sectors[j]["sector"].(string)
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":        len(rows),
		"mean_cap_m":   mean,
		"median_cap_m": median,
		"sectors":      sectors,
	})
}

// analysisResponse is the per-ticker analysis payload. Chart and Criteria
// are present whenever indicators could be computed; Record only when the
// ticker still qualifies.
type analysisResponse struct {
	Ticker   string                     `json:"ticker"`
	Status   requalify.Status           `json:"status"`
	Warning  string                     `json:"warning,omitempty"`
	Record   *model.QualificationRecord `json:"record,omitempty"`
	Criteria *model.CriteriaResult      `json:"criteria,omitempty"`
	Chart    *chartData                 `json:"chart,omitempty"`
}

// Analysis handles GET /api/analysis/{ticker}: one synchronous
// re-qualification, served from the TTL cache when fresh.
func (h *Handlers) Analysis(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	row, ok := h.findRow(ticker)
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown_ticker",
			"ticker is not in the candidate list: "+ticker)
		return
	}

	bucket := cache.Bucket(h.now(), h.ttl)
	if payload, hit, err := h.store.Get(ticker, bucket); err != nil {
		log.Error().Err(err).Str("ticker", ticker).Msg("cache read failed")
	} else if hit {
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}
	w.Header().Set("X-Cache", "MISS")

	result := h.requalifier.Requalify(r.Context(), row)
	resp := analysisResponse{Ticker: ticker, Status: result.Status}
	if result.Status == requalify.StatusFetchFailed {
		resp.Warning = "could not fetch price history for " + ticker
	}
	if result.Series != nil {
		resp.Chart = buildChart(result.Series)
	}
	if result.Criteria.Verdict != "" {
		criteria := result.Criteria
		resp.Criteria = &criteria
	}
	resp.Record = result.Record

	// Transient fetch failures are not cached; a later selection should
	// retry inside the same bucket.
	if result.Status != requalify.StatusFetchFailed {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.store.Put(ticker, bucket, payload); err != nil {
				log.Error().Err(err).Str("ticker", ticker).Msg("cache write failed")
			}
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"candidates": len(h.rows),
	})
}

// NotFound handles unmatched routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeError(w, http.StatusNotFound, "not_found", "no such endpoint: "+r.URL.Path)
}

func (h *Handlers) findRow(ticker string) (model.CandidateRow, bool) {
	for _, row := range h.rows {
		if row.Ticker == ticker {
			return row, true
		}
	}
	return model.CandidateRow{}, false
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
