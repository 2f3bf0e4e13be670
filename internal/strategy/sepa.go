package strategy

import (
	"math"

	"sepawatch/internal/calculator"
	"sepawatch/internal/model"
)

// Lookbacks are pure index offsets over trading bars, mirroring the export
// pipeline that produced the baseline snapshots. Not calendar periods.
const (
	monthLookback = 30  // MA200 slope comparison uses the bar at index n-30
	yearLookback  = 252 // 52-week low window
	lowGainMin    = 0.30
)

// Evaluate re-checks the six SEPA predicates against an indicator-augmented
// series and compares them with the baseline snapshot. All six predicates
// are always computed; the overall verdict is pass only when every one
// holds, and Changed reports whether any predicate flipped vs the baseline.
//
// A series shorter than calculator.MinBars, or one whose MA200 is still
// undefined at the 30-bar lookback, cannot be verified: the result carries
// VerdictCannotVerify, no criteria, and Changed=true.
func Evaluate(s *model.IndicatorSeries, baseline model.CriteriaSet) model.CriteriaResult {
	if s == nil || s.Len() < calculator.MinBars {
		return cannotVerify()
	}

	n := s.Len()
	latest := s.Latest()
	ma5 := s.MA5[n-1]
	ma50 := s.MA50[n-1]
	ma150 := s.MA150[n-1]
	ma200 := s.MA200[n-1]
	ma200MonthAgo := s.MA200[n-monthLookback]

	if math.IsNaN(ma200) || math.IsNaN(ma200MonthAgo) {
		return cannotVerify()
	}

	low52w, err := calculator.LowestLow(s.Bars, yearLookback)
	if err != nil || low52w <= 0 {
		return cannotVerify()
	}

	criteria := model.CriteriaSet{
		Above200d:         latest.Close > ma200,
		MA150Above200d:    ma150 > ma200,
		MA50AboveBoth:     ma50 > ma150 && ma50 > ma200,
		Above5d:           latest.Close > ma5,
		MA200Rising:       ma200 > ma200MonthAgo,
		Up30PctFrom52wLow: latest.Close/low52w-1 > lowGainMin,
	}

	verdict := model.VerdictFail
	if criteria.AllPass() {
		verdict = model.VerdictPass
	}

	return model.CriteriaResult{
		Verdict:  verdict,
		Criteria: &criteria,
		Changed:  criteria != baseline,
	}
}

func cannotVerify() model.CriteriaResult {
	return model.CriteriaResult{Verdict: model.VerdictCannotVerify, Changed: true}
}
