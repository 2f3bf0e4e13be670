package model

// CriteriaSet holds the six SEPA trend predicates. Field order matches the
// evaluation order; the JSON keys are fixed by the candidate-list export
// format and must never change.
type CriteriaSet struct {
	Above200d         bool `json:"above_200d"`
	MA150Above200d    bool `json:"ma150_above_200d"`
	MA50AboveBoth     bool `json:"ma50_above_both"`
	Above5d           bool `json:"above_5d"`
	MA200Rising       bool `json:"ma200_rising"`
	Up30PctFrom52wLow bool `json:"up_30pct_from_52w_low"`
}

// AllPass reports whether every predicate holds.
func (c CriteriaSet) AllPass() bool {
	return c.Above200d && c.MA150Above200d && c.MA50AboveBoth &&
		c.Above5d && c.MA200Rising && c.Up30PctFrom52wLow
}

// Verdict is the three-valued outcome of a criteria evaluation. A series too
// short to evaluate yields VerdictCannotVerify, which is distinct from a
// genuine failing evaluation.
type Verdict string

const (
	VerdictPass         Verdict = "pass"
	VerdictFail         Verdict = "fail"
	VerdictCannotVerify Verdict = "cannot_verify"
)

// CriteriaResult is the output of re-checking the six predicates against
// fresh price history. Criteria is nil when the verdict is cannot_verify.
type CriteriaResult struct {
	Verdict  Verdict      `json:"verdict"`
	Criteria *CriteriaSet `json:"criteria,omitempty"`
	Changed  bool         `json:"changed"`
}
