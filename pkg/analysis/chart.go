package analysis

import (
	"fmt"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/chart"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// ChartReport is a resolved annual or monthly chart with a score per position.
type ChartReport struct {
	Cycle           cycle.Resolution         `json:"cycle"`
	Center          int                      `json:"center"`
	Chart           chart.Chart              `json:"chart"`
	Positions       []PositionReport         `json:"positions"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	RulesVersion    int64                    `json:"rules_version"`
}

// PositionReport is one chart cell and its chart_position score.
type PositionReport struct {
	chart.Cell
	Score *scoring.Result `json:"score"`
}

// AnnualChart builds the chart of year.
func (e *Engine) AnnualChart(year int) (*ChartReport, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	snap := e.store.Current()
	res, err := cycle.Resolve(snap.Rules.Epochs, year, 0)
	if err != nil {
		return nil, err
	}
	return chartReport(snap, res, res.Center)
}

// MonthlyChart builds the chart of a month. month is required.
func (e *Engine) MonthlyChart(year, month int) (*ChartReport, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fault.Invalid("month", month, "must be within 1-12")
	}
	snap := e.store.Current()
	res, err := cycle.Resolve(snap.Rules.Epochs, year, month)
	if err != nil {
		return nil, err
	}
	return chartReport(snap, res, res.MonthCenter)
}

func chartReport(snap *rules.Snapshot, res cycle.Resolution, center int) (*ChartReport, error) {
	rs := snap.Rules
	c := chart.Generate(center)

	rep := &ChartReport{
		Cycle:        res,
		Center:       center,
		Chart:        c,
		RulesVersion: snap.Version,
	}
	results := make([]*scoring.Result, 0, len(c))
	for _, cell := range chart.Resolve(c, rs) {
		result, err := score(rs, rules.ChartPosition,
			scoring.SubScore{
				Key:   rules.KeyUniversal,
				Value: rs.AffinityScore(cell.Palace, cell.Record.Element),
				Basis: fmt.Sprintf("%s/%s", cell.Palace, cell.Record.Element),
			},
			scoring.SubScore{
				Key:     rules.KeyTemporal,
				Value:   rs.NatureScore(cell.Record.Nature),
				Basis:   fmt.Sprintf("star %d", cell.Star),
				Sources: []rules.AttributeRecord{cell.Record},
			},
		)
		if err != nil {
			return nil, err
		}
		rep.Positions = append(rep.Positions, PositionReport{Cell: cell, Score: result})
		results = append(results, result)
	}
	rep.Recommendations = scoring.Merge(rs.Profile(rules.ChartPosition).MaxRecommendations, results...)
	return rep, nil
}
