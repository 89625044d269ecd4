// Package analysis unifies the six feature-specific scoring flows behind one
// table-driven pipeline: derive the personal indicator, resolve the cycle,
// generate the chart and score the result with the analysis type's profile.
//
// An Engine reads exactly one rule snapshot per call and keeps no other
// state, so it is safe for concurrent use.
package analysis

import (
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// Target years accepted by the analyses.
const (
	MinYear = 1
	MaxYear = 9999
)

// Engine runs analyses against the current rule snapshot of a store.
type Engine struct {
	store *rules.Store
}

// New returns an engine reading from store.
func New(store *rules.Store) *Engine {
	return &Engine{store: store}
}

// NewDefault returns an engine over the built-in rule base.
func NewDefault() *Engine {
	return New(rules.MustDefault())
}

// Rules returns the snapshot the next call would use.
func (e *Engine) Rules() *rules.Snapshot {
	return e.store.Current()
}

// Cycle resolves the epoch and centers of a year and optional month.
func (e *Engine) Cycle(year, month int) (cycle.Resolution, error) {
	if err := checkYear(year); err != nil {
		return cycle.Resolution{}, err
	}
	return cycle.Resolve(e.store.Current().Rules.Epochs, year, month)
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fault.Invalid("year", year, "must be within %d-%d", MinYear, MaxYear)
	}
	return nil
}

// score runs the composite scorer with the profile of t.
func score(rs *rules.RuleSet, t rules.AnalysisType, subs ...scoring.SubScore) (*scoring.Result, error) {
	p := rs.Profile(t)
	return scoring.Score(subs, p.Weights, p.Bands, p.MaxRecommendations)
}

// personal derives the indicator of a profile and its attribute record.
func personal(rs *rules.RuleSet, p indicator.Profile) (indicator.Indicator, rules.AttributeRecord, error) {
	ind, err := indicator.DeriveForProfile(p)
	if err != nil {
		return 0, rules.AttributeRecord{}, err
	}
	return ind, rs.Attribute(int(ind)), nil
}
