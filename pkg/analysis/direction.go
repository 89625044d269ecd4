package analysis

import (
	"fmt"
	"sort"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/chart"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// DirectionReport scores one compass direction for a person in a year.
type DirectionReport struct {
	Year         int                 `json:"year"`
	Indicator    indicator.Indicator `json:"indicator"`
	Position     compass.Position    `json:"position"`
	Mansion      rules.Mansion       `json:"mansion"`
	HomeStar     int                 `json:"home_star"`
	AnnualStar   int                 `json:"annual_star"`
	Favorable    []DirectionQuality  `json:"favorable,omitempty"`
	Unfavorable  []DirectionQuality  `json:"unfavorable,omitempty"`
	Score        *scoring.Result     `json:"score"`
	RulesVersion int64               `json:"rules_version"`
}

// PersonalDirection scores direction pos for p in year.
//
// personal is the Eight-Mansions quality of pos for the indicator, universal
// the affinity of the person's element with the home star of pos, and
// temporal the nature of the annual star visiting pos.
func (e *Engine) PersonalDirection(p indicator.Profile, pos compass.Position, year int) (*DirectionReport, error) {
	snap := e.store.Current()
	rep, err := direction(snap.Rules, p, pos, year)
	if err != nil {
		return nil, err
	}
	rep.Favorable, rep.Unfavorable = directionLists(snap.Rules, rep.Indicator)
	rep.RulesVersion = snap.Version
	return rep, nil
}

// DirectionSummary is the personal direction score of all eight directions.
type DirectionSummary struct {
	Year         int                 `json:"year"`
	Indicator    indicator.Indicator `json:"indicator"`
	Group        indicator.Group     `json:"group"`
	Directions   []*DirectionReport  `json:"directions"`
	RulesVersion int64               `json:"rules_version"`
}

// DirectionSummary scores every direction, best first. Equal scores keep the
// canonical compass order.
func (e *Engine) DirectionSummary(p indicator.Profile, year int) (*DirectionSummary, error) {
	snap := e.store.Current()
	sum := &DirectionSummary{Year: year, RulesVersion: snap.Version}
	for _, pos := range compass.Directions() {
		rep, err := direction(snap.Rules, p, pos, year)
		if err != nil {
			return nil, err
		}
		rep.RulesVersion = snap.Version
		sum.Indicator = rep.Indicator
		sum.Directions = append(sum.Directions, rep)
	}
	sum.Group = sum.Indicator.Group()
	sort.SliceStable(sum.Directions, func(i, j int) bool {
		return sum.Directions[i].Score.Overall > sum.Directions[j].Score.Overall
	})
	return sum, nil
}

func direction(rs *rules.RuleSet, p indicator.Profile, pos compass.Position, year int) (*DirectionReport, error) {
	if !pos.IsDirection() {
		return nil, fault.Invalid("direction", pos, "must be one of the eight compass directions")
	}
	if err := checkYear(year); err != nil {
		return nil, err
	}
	ind, self, err := personal(rs, p)
	if err != nil {
		return nil, err
	}
	res, err := cycle.Resolve(rs.Epochs, year, 0)
	if err != nil {
		return nil, err
	}

	annual := chart.Generate(res.Center).At(pos)
	home := rs.HomeStar(pos)
	homeRec := rs.Attribute(home)
	annualRec := rs.Attribute(annual)
	mansion := rs.MansionOf(int(ind), pos)

	result, err := score(rs, rules.PersonalDirection,
		scoring.SubScore{Key: rules.KeyPersonal, Value: rs.MansionScore(mansion), Basis: string(mansion)},
		scoring.SubScore{
			Key:     rules.KeyUniversal,
			Value:   rs.AffinityScore(self.Element, homeRec.Element),
			Basis:   fmt.Sprintf("%s/%s", self.Element, homeRec.Element),
			Sources: []rules.AttributeRecord{homeRec},
		},
		scoring.SubScore{
			Key:     rules.KeyTemporal,
			Value:   rs.NatureScore(annualRec.Nature),
			Basis:   fmt.Sprintf("star %d", annual),
			Sources: []rules.AttributeRecord{annualRec},
		},
	)
	if err != nil {
		return nil, err
	}

	return &DirectionReport{
		Year:       year,
		Indicator:  ind,
		Position:   pos,
		Mansion:    mansion,
		HomeStar:   home,
		AnnualStar: annual,
		Score:      result,
	}, nil
}
