package analysis

import (
	"fmt"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/chart"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// CornerReport locates and scores the wealth or love corner of a year.
type CornerReport struct {
	Kind         rules.CornerKind    `json:"kind"`
	Year         int                 `json:"year"`
	Indicator    indicator.Indicator `json:"indicator"`
	TargetStar   int                 `json:"target_star"`
	Position     compass.Position    `json:"position"`
	Mansion      rules.Mansion       `json:"mansion,omitempty"` // empty when the star sits in the center
	Score        *scoring.Result     `json:"score"`
	RulesVersion int64               `json:"rules_version"`
}

var cornerAnalyses = map[rules.CornerKind]rules.AnalysisType{
	rules.Wealth: rules.WealthCorner,
	rules.Love:   rules.LoveCorner,
}

// ParseCornerKind parses "wealth" or "love".
func ParseCornerKind(s string) (rules.CornerKind, error) {
	k := rules.CornerKind(s)
	if _, ok := cornerAnalyses[k]; !ok {
		return "", fault.Invalid("corner", s, "expected wealth or love")
	}
	return k, nil
}

// Corner finds where the target star of kind lands in the annual chart and
// scores that position for p.
//
// personal is the direction quality of the position (a fixed center quality
// when the star sits in the center), universal the affinity of the person's
// element with the position's home star and temporal the affinity of the
// palace element with the target star.
func (e *Engine) Corner(p indicator.Profile, year int, kind rules.CornerKind) (*CornerReport, error) {
	analysis, ok := cornerAnalyses[kind]
	if !ok {
		return nil, fault.Invalid("corner", string(kind), "expected wealth or love")
	}
	if err := checkYear(year); err != nil {
		return nil, err
	}

	snap := e.store.Current()
	rs := snap.Rules
	ind, self, err := personal(rs, p)
	if err != nil {
		return nil, err
	}
	res, err := cycle.Resolve(rs.Epochs, year, 0)
	if err != nil {
		return nil, err
	}

	target, ok := rs.Corners[kind]
	if !ok {
		fault.Invariantf("no corner target for %q", string(kind))
	}
	star := target.Star
	if target.Reigning {
		star = res.Epoch.Ordinal
	}

	pos := chart.Generate(res.Center).Find(star)
	starRec := rs.Attribute(star)
	homeRec := rs.Attribute(rs.HomeStar(pos))
	palace := rs.Palace(pos)

	rep := &CornerReport{
		Kind:         kind,
		Year:         year,
		Indicator:    ind,
		TargetStar:   star,
		Position:     pos,
		RulesVersion: snap.Version,
	}

	personalScore := scoring.SubScore{Key: rules.KeyPersonal, Value: rs.CenterQuality, Basis: "center"}
	if pos.IsDirection() {
		rep.Mansion = rs.MansionOf(int(ind), pos)
		personalScore.Value = rs.MansionScore(rep.Mansion)
		personalScore.Basis = string(rep.Mansion)
	}

	rep.Score, err = score(rs, analysis,
		personalScore,
		scoring.SubScore{
			Key:     rules.KeyUniversal,
			Value:   rs.AffinityScore(self.Element, homeRec.Element),
			Basis:   fmt.Sprintf("%s/%s", self.Element, homeRec.Element),
			Sources: []rules.AttributeRecord{homeRec},
		},
		scoring.SubScore{
			Key:     rules.KeyTemporal,
			Value:   rs.AffinityScore(palace, starRec.Element),
			Basis:   fmt.Sprintf("%s/%s", palace, starRec.Element),
			Sources: []rules.AttributeRecord{starRec},
		},
	)
	if err != nil {
		return nil, err
	}
	return rep, nil
}
