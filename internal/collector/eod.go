package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"sepawatch/internal/model"
)

// EODFetcher implements Fetcher using a MarketStack-style end-of-day REST
// API. Selected when a base URL is configured; one request per ticker, no
// pagination.
type EODFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewEODFetcher creates a new fetcher with optional proxy support.
func NewEODFetcher(baseURL, apiKey, proxyURL string) *EODFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &EODFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *EODFetcher) Name() string { return "eod" }

// eodBar is the expected JSON shape of one end-of-day record.
type eodBar struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
	Date   string  `json:"date"`
}

var eodDateFormats = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02",
}

func parseEODDate(s string) (time.Time, bool) {
	for _, layout := range eodDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FetchDailyHistory requests the trailing 1-year daily window in a single
// call. 400 records comfortably covers a year of trading days.
func (f *EODFetcher) FetchDailyHistory(ctx context.Context, ticker string) ([]model.OHLCV, error) {
	now := time.Now()
	endpoint := fmt.Sprintf("%s/eod?access_key=%s&symbols=%s&date_from=%s&date_to=%s&limit=400",
		f.BaseURL, url.QueryEscape(f.APIKey), url.QueryEscape(ticker),
		now.AddDate(-1, 0, 0).Format("2006-01-02"), now.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eod fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("eod: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data []eodBar `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("eod decode: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(payload.Data))
	for _, b := range payload.Data {
		t, ok := parseEODDate(b.Date)
		if !ok || b.Close <= 0 || b.High <= 0 || b.Low <= 0 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   t,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
