package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "ticker,company,sector,industry,price,market_cap_m,criteria_details\n"

const goodCriteria = `"{""above_200d"":true,""ma150_above_200d"":true,""ma50_above_both"":true,""above_5d"":true,""ma200_rising"":true,""up_30pct_from_52w_low"":false}"`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ParsesRows(t *testing.T) {
	path := writeCSV(t, header+
		"aapl,Apple Inc.,Technology,Consumer Electronics,185.5,2900000,"+goodCriteria+"\n"+
		"NVDA,NVIDIA Corp,Technology,Semiconductors,450.25,1100000,"+goodCriteria+"\n")

	rows, err := Load(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "AAPL", rows[0].Ticker) // tickers normalized to upper case
	assert.Equal(t, "Apple Inc.", rows[0].Company)
	assert.Equal(t, "Technology", rows[0].Sector)
	assert.Equal(t, "Consumer Electronics", rows[0].Industry)
	assert.InDelta(t, 185.5, rows[0].Price, 1e-9)
	assert.InDelta(t, 2900000, rows[0].MarketCapM, 1e-9)
	assert.True(t, rows[0].Baseline.Above200d)
	assert.False(t, rows[0].Baseline.Up30PctFrom52wLow)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCSV(t, "ticker,company,sector,industry,price,market_cap_m\n"+
		"AAPL,Apple,Tech,Hardware,1,1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "criteria_details")
}

func TestLoad_MalformedCriteriaFailsWholeLoad(t *testing.T) {
	path := writeCSV(t, header+
		"AAPL,Apple,Tech,Hardware,185.5,2900000,"+goodCriteria+"\n"+
		"BADX,Broken,Tech,Hardware,10,100,not-json\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoad_MissingCriteriaKey(t *testing.T) {
	// Only five of the six required keys.
	partial := `"{""above_200d"":true,""ma150_above_200d"":true,""ma50_above_both"":true,""above_5d"":true,""ma200_rising"":true}"`
	path := writeCSV(t, header+"AAPL,Apple,Tech,Hardware,185.5,2900000,"+partial+"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "criteria_details")
}

func TestLoad_UnknownCriteriaKey(t *testing.T) {
	extra := `"{""above_200d"":true,""ma150_above_200d"":true,""ma50_above_both"":true,""above_5d"":true,""ma200_rising"":true,""up_30pct_from_52w_low"":true,""rsi_ok"":true}"`
	path := writeCSV(t, header+"AAPL,Apple,Tech,Hardware,185.5,2900000,"+extra+"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadPrice(t *testing.T) {
	path := writeCSV(t, header+"AAPL,Apple,Tech,Hardware,n/a,2900000,"+goodCriteria+"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}
