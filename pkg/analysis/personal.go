package analysis

import (
	"sort"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

// PersonalReport describes the personal indicator of a profile.
type PersonalReport struct {
	Profile      indicator.Profile     `json:"profile"`
	SolarYear    int                   `json:"solar_year"`
	Indicator    indicator.Indicator   `json:"indicator"`
	Group        indicator.Group       `json:"group"`
	Record       rules.AttributeRecord `json:"record"`
	Favorable    []DirectionQuality    `json:"favorable"`
	Unfavorable  []DirectionQuality    `json:"unfavorable"`
	RulesVersion int64                 `json:"rules_version"`
}

// DirectionQuality is the Eight-Mansions quality of one direction.
type DirectionQuality struct {
	Position compass.Position `json:"position"`
	Mansion  rules.Mansion    `json:"mansion"`
	Score    int              `json:"score"`
}

// Personal derives the indicator of p with its favorable and unfavorable
// directions.
func (e *Engine) Personal(p indicator.Profile) (*PersonalReport, error) {
	snap := e.store.Current()
	rs := snap.Rules

	ind, rec, err := personal(rs, p)
	if err != nil {
		return nil, err
	}
	good, bad := directionLists(rs, ind)
	return &PersonalReport{
		Profile:      p,
		SolarYear:    p.SolarYear(),
		Indicator:    ind,
		Group:        ind.Group(),
		Record:       rec,
		Favorable:    good,
		Unfavorable:  bad,
		RulesVersion: snap.Version,
	}, nil
}

// directionLists splits the eight directions by mansion quality, best first.
func directionLists(rs *rules.RuleSet, ind indicator.Indicator) (good, bad []DirectionQuality) {
	for _, pos := range compass.Directions() {
		m := rs.MansionOf(int(ind), pos)
		q := DirectionQuality{Position: pos, Mansion: m, Score: rs.MansionScore(m)}
		if m.Favorable() {
			good = append(good, q)
		} else {
			bad = append(bad, q)
		}
	}
	byScore := func(list []DirectionQuality) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	}
	byScore(good)
	byScore(bad)
	return good, bad
}
