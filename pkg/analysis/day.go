package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// DateLayout is the ISO calendar date format used in reports and hashing.
const DateLayout = "2006-01-02"

// Variation is folded into this range.
const (
	variationFloor = 40
	variationSpan  = 61
)

// DayReport scores one calendar day, either on its own (day quality) or for a
// person (date compatibility).
type DayReport struct {
	Date         string                  `json:"date"`
	Analysis     rules.AnalysisType      `json:"analysis"`
	Event        indicator.EventCategory `json:"event,omitempty"`
	Indicator    indicator.Indicator     `json:"indicator,omitempty"`
	YearStar     int                     `json:"year_star"`
	MonthStar    int                     `json:"month_star"`
	DayStar      int                     `json:"day_star"`
	Score        *scoring.Result         `json:"score"`
	RulesVersion int64                   `json:"rules_version"`
}

// Variation derives the day-to-day variation sub-score from the ISO date
// alone, so the same date always yields the same value.
func Variation(date time.Time) int {
	return variationFloor + int(xxhash.Sum64String(date.Format(DateLayout))%variationSpan)
}

type dayStars struct {
	res       cycle.Resolution
	day       int
	dayRec    rules.AttributeRecord
	monthRec  rules.AttributeRecord
	dateLabel string
}

func resolveDay(rs *rules.RuleSet, date time.Time) (dayStars, error) {
	if err := checkYear(date.Year()); err != nil {
		return dayStars{}, err
	}
	res, err := cycle.Resolve(rs.Epochs, date.Year(), int(date.Month()))
	if err != nil {
		return dayStars{}, err
	}
	day, err := cycle.DayCenter(res, date.Day())
	if err != nil {
		return dayStars{}, err
	}
	return dayStars{
		res:       res,
		day:       day,
		dayRec:    rs.Attribute(day),
		monthRec:  rs.Attribute(res.MonthCenter),
		dateLabel: date.Format(DateLayout),
	}, nil
}

// normalizeEvent maps event aliases onto their canonical category. Empty
// stays empty.
func normalizeEvent(event indicator.EventCategory) (indicator.EventCategory, error) {
	if event == "" {
		return "", nil
	}
	return indicator.ParseEventCategory(string(event))
}

// DateCompatibility scores date for p and an event. An empty event falls back
// to the profile's event, then to "other".
//
// personal is the affinity of the person's element with the day star,
// universal the fit of the day star for the event and temporal the nature of
// the month star.
func (e *Engine) DateCompatibility(p indicator.Profile, date time.Time, event indicator.EventCategory) (*DayReport, error) {
	snap := e.store.Current()
	rep, err := dateCompatibility(snap.Rules, p, date, event)
	if err != nil {
		return nil, err
	}
	rep.RulesVersion = snap.Version
	return rep, nil
}

func dateCompatibility(rs *rules.RuleSet, p indicator.Profile, date time.Time, event indicator.EventCategory) (*DayReport, error) {
	if event == "" {
		event = p.Event
	}
	if event == "" {
		event = indicator.OtherEvent
	}
	event, err := normalizeEvent(event)
	if err != nil {
		return nil, err
	}
	ind, self, err := personal(rs, p)
	if err != nil {
		return nil, err
	}
	d, err := resolveDay(rs, date)
	if err != nil {
		return nil, err
	}

	result, err := score(rs, rules.DateCompatibility,
		scoring.SubScore{
			Key:     rules.KeyPersonal,
			Value:   rs.AffinityScore(self.Element, d.dayRec.Element),
			Basis:   fmt.Sprintf("%s/%s", self.Element, d.dayRec.Element),
			Sources: []rules.AttributeRecord{d.dayRec},
		},
		scoring.SubScore{
			Key:     rules.KeyUniversal,
			Value:   rs.EventFitScore(string(event), d.day),
			Basis:   fmt.Sprintf("%s/star %d", event, d.day),
			Sources: []rules.AttributeRecord{d.dayRec},
		},
		scoring.SubScore{
			Key:     rules.KeyTemporal,
			Value:   rs.NatureScore(d.monthRec.Nature),
			Basis:   fmt.Sprintf("star %d", d.res.MonthCenter),
			Sources: []rules.AttributeRecord{d.monthRec},
		},
	)
	if err != nil {
		return nil, err
	}

	return &DayReport{
		Date:      d.dateLabel,
		Analysis:  rules.DateCompatibility,
		Event:     event,
		Indicator: ind,
		YearStar:  d.res.Center,
		MonthStar: d.res.MonthCenter,
		DayStar:   d.day,
		Score:     result,
	}, nil
}

// DayQuality scores date on its own, optionally for an event.
//
// temporal is the nature of the day star. universal is the fit of the day
// star for the event, or the affinity of the month star with the day star
// when no event is given. variation comes from Variation.
func (e *Engine) DayQuality(date time.Time, event indicator.EventCategory) (*DayReport, error) {
	snap := e.store.Current()
	rep, err := dayQuality(snap.Rules, date, event)
	if err != nil {
		return nil, err
	}
	rep.RulesVersion = snap.Version
	return rep, nil
}

func dayQuality(rs *rules.RuleSet, date time.Time, event indicator.EventCategory) (*DayReport, error) {
	event, err := normalizeEvent(event)
	if err != nil {
		return nil, err
	}
	d, err := resolveDay(rs, date)
	if err != nil {
		return nil, err
	}

	universal := scoring.SubScore{
		Key:     rules.KeyUniversal,
		Value:   rs.AffinityScore(d.monthRec.Element, d.dayRec.Element),
		Basis:   fmt.Sprintf("%s/%s", d.monthRec.Element, d.dayRec.Element),
		Sources: []rules.AttributeRecord{d.monthRec},
	}
	if event != "" {
		universal.Value = rs.EventFitScore(string(event), d.day)
		universal.Basis = fmt.Sprintf("%s/star %d", event, d.day)
		universal.Sources = []rules.AttributeRecord{d.dayRec}
	}

	result, err := score(rs, rules.DayQuality,
		universal,
		scoring.SubScore{
			Key:     rules.KeyTemporal,
			Value:   rs.NatureScore(d.dayRec.Nature),
			Basis:   fmt.Sprintf("star %d", d.day),
			Sources: []rules.AttributeRecord{d.dayRec},
		},
		scoring.SubScore{Key: rules.KeyVariation, Value: Variation(date), Basis: d.dateLabel},
	)
	if err != nil {
		return nil, err
	}

	return &DayReport{
		Date:      d.dateLabel,
		Analysis:  rules.DayQuality,
		Event:     event,
		YearStar:  d.res.Center,
		MonthStar: d.res.MonthCenter,
		DayStar:   d.day,
		Score:     result,
	}, nil
}

// BestDays ranks every day of a month, best first; equal scores stay in date
// order. With a profile the days are scored by date compatibility, otherwise
// by day quality. At most limit days are returned.
func (e *Engine) BestDays(year, month int, event indicator.EventCategory, p *indicator.Profile, limit int) ([]*DayReport, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fault.Invalid("month", month, "must be within 1-12")
	}
	if limit < 1 {
		return nil, fault.Invalid("limit", limit, "must be positive")
	}

	snap := e.store.Current()
	days := indicator.DaysIn(year, month)
	reports := make([]*DayReport, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		var (
			rep *DayReport
			err error
		)
		if p != nil {
			rep, err = dateCompatibility(snap.Rules, *p, date, event)
		} else {
			rep, err = dayQuality(snap.Rules, date, event)
		}
		if err != nil {
			return nil, fmt.Errorf("scoring %s: %w", date.Format(DateLayout), err)
		}
		rep.RulesVersion = snap.Version
		reports = append(reports, rep)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Score.Overall > reports[j].Score.Overall
	})
	if len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// MonthRanking is the ranked days of one month.
type MonthRanking struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []*DayReport `json:"days"`
}
