package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepawatch/internal/calculator"
	"sepawatch/internal/collector"
	"sepawatch/internal/model"
)

func allTrue() model.CriteriaSet {
	return model.CriteriaSet{
		Above200d:         true,
		MA150Above200d:    true,
		MA50AboveBoth:     true,
		Above5d:           true,
		MA200Rising:       true,
		Up30PctFrom52wLow: true,
	}
}

func risingSeries(t *testing.T) *model.IndicatorSeries {
	t.Helper()
	series, ok := calculator.ComputeIndicators("TEST", collector.GenerateBars(100, 200, 252))
	require.True(t, ok)
	return series
}

func TestEvaluate_RisingSeriesPassesAll(t *testing.T) {
	result := Evaluate(risingSeries(t), allTrue())

	assert.Equal(t, model.VerdictPass, result.Verdict)
	require.NotNil(t, result.Criteria)
	assert.True(t, result.Criteria.Above200d)
	assert.True(t, result.Criteria.MA150Above200d)
	assert.True(t, result.Criteria.MA50AboveBoth)
	assert.True(t, result.Criteria.Above5d)
	assert.True(t, result.Criteria.MA200Rising)
	assert.True(t, result.Criteria.Up30PctFrom52wLow)
	assert.False(t, result.Changed)
}

func TestEvaluate_FallingSeriesFails(t *testing.T) {
	series, ok := calculator.ComputeIndicators("TEST", collector.GenerateBars(200, 100, 252))
	require.True(t, ok)

	result := Evaluate(series, allTrue())

	assert.Equal(t, model.VerdictFail, result.Verdict)
	require.NotNil(t, result.Criteria)
	assert.False(t, result.Criteria.Above200d)
	assert.False(t, result.Criteria.MA200Rising)
	assert.True(t, result.Changed)
}

func TestEvaluate_ChangedFlag(t *testing.T) {
	series := risingSeries(t)

	// Baseline matches the fresh evaluation exactly: nothing changed.
	result := Evaluate(series, allTrue())
	assert.False(t, result.Changed)

	// A single differing baseline predicate flips the changed flag,
	// regardless of the overall verdict.
	baseline := allTrue()
	baseline.Above200d = false
	result = Evaluate(series, baseline)
	assert.Equal(t, model.VerdictPass, result.Verdict)
	assert.True(t, result.Changed)
}

func TestEvaluate_NilSeriesCannotVerify(t *testing.T) {
	result := Evaluate(nil, allTrue())
	assert.Equal(t, model.VerdictCannotVerify, result.Verdict)
	assert.Nil(t, result.Criteria)
	assert.True(t, result.Changed)
}

func TestEvaluate_MonthLookbackUndefinedCannotVerify(t *testing.T) {
	// 210 bars: indicators exist, but MA200 thirty bars back (index 180)
	// has no full window yet.
	series, ok := calculator.ComputeIndicators("TEST", collector.GenerateBars(100, 200, 210))
	require.True(t, ok)

	result := Evaluate(series, allTrue())
	assert.Equal(t, model.VerdictCannotVerify, result.Verdict)
	assert.Nil(t, result.Criteria)
	assert.True(t, result.Changed)
}

func TestEvaluate_AllSixAlwaysComputed(t *testing.T) {
	// A failing series still yields a full criteria set: predicates are
	// never short-circuited.
	series, ok := calculator.ComputeIndicators("TEST", collector.GenerateBars(200, 100, 252))
	require.True(t, ok)

	result := Evaluate(series, model.CriteriaSet{})
	require.NotNil(t, result.Criteria)
	// The series bottoms right at its latest close, so the 52-week-low
	// predicate fails alongside the trend predicates.
	assert.False(t, result.Criteria.Up30PctFrom52wLow)
	assert.False(t, result.Criteria.Above5d)
}
