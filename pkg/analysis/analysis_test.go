package analysis_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

func enhance(name, fragment string) scoring.Recommendation {
	return scoring.Recommendation{Template: rules.TemplateEnhance, Args: []string{name, fragment}}
}

func remedy(name, fragment string) scoring.Recommendation {
	return scoring.Recommendation{Template: rules.TemplateRemedy, Args: []string{name, fragment}}
}

// male1990 has indicator 2 (Black Two, earth, west group).
func male1990(t *testing.T) indicator.Profile {
	t.Helper()
	p, err := indicator.NewProfile(1990, 0, 0, indicator.Male, "")
	if err != nil {
		t.Fatalf("NewProfile() error: %v", err)
	}
	return p
}

func TestPersonal(t *testing.T) {
	e := analysis.NewDefault()
	rep, err := e.Personal(male1990(t))
	if err != nil {
		t.Fatalf("Personal() error: %v", err)
	}
	if rep.Indicator != 2 || rep.Group != indicator.West {
		t.Errorf("Personal() = indicator %d group %s, want 2 west", rep.Indicator, rep.Group)
	}
	if rep.Record.Name != "Black Two" {
		t.Errorf("Record.Name = %q", rep.Record.Name)
	}

	var good []compass.Position
	for _, q := range rep.Favorable {
		good = append(good, q.Position)
	}
	want := []compass.Position{compass.NorthEast, compass.West, compass.NorthWest, compass.SouthWest}
	if diff := cmp.Diff(want, good); diff != "" {
		t.Errorf("favorable directions mismatch (-want +got):\n%s", diff)
	}
	if len(rep.Unfavorable) != 4 {
		t.Errorf("expected 4 unfavorable directions, got %d", len(rep.Unfavorable))
	}
	if rep.RulesVersion != 1 {
		t.Errorf("RulesVersion = %d, want 1", rep.RulesVersion)
	}
}

func TestPersonalDirection(t *testing.T) {
	e := analysis.NewDefault()
	p := male1990(t)

	tests := []struct {
		pos     compass.Position
		mansion rules.Mansion
		overall int
		rating  string
		recs    []scoring.Recommendation
	}{
		{
			pos: compass.North, mansion: rules.JueMing, overall: 54, rating: "poor",
			recs: []scoring.Recommendation{
				enhance("White One", "water_feature"),
				enhance("White One", "metal_ornament"),
			},
		},
		{
			pos: compass.SouthWest, mansion: rules.FuWei, overall: 72, rating: "good",
			recs: []scoring.Recommendation{
				remedy("Black Two", "brass_gourd"),
				remedy("Black Two", "metal_wind_chime"),
				enhance("White Six", "metal_sculpture"),
			},
		},
		{
			pos: compass.NorthWest, mansion: rules.YanNian, overall: 78, rating: "good",
			recs: []scoring.Recommendation{
				enhance("White Six", "metal_sculpture"),
				enhance("White Eight", "citrine_crystal"),
				enhance("White Eight", "earthenware"),
			},
		},
		{
			pos: compass.West, mansion: rules.TianYi, overall: 61, rating: "fair",
			recs: []scoring.Recommendation{
				remedy("Red Seven", "still_water"),
				remedy("Red Seven", "blue_accents"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			rep, err := e.PersonalDirection(p, tt.pos, 2024)
			if err != nil {
				t.Fatalf("PersonalDirection() error: %v", err)
			}
			if rep.Mansion != tt.mansion {
				t.Errorf("Mansion = %s, want %s", rep.Mansion, tt.mansion)
			}
			if rep.Score.Overall != tt.overall || rep.Score.Rating != tt.rating {
				t.Errorf("score = %d %s, want %d %s", rep.Score.Overall, rep.Score.Rating, tt.overall, tt.rating)
			}
			if diff := cmp.Diff(tt.recs, rep.Score.Recommendations); diff != "" {
				t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
			}
			if len(rep.Favorable) != 4 {
				t.Errorf("expected favorable direction list, got %v", rep.Favorable)
			}
		})
	}
}

func TestPersonalDirectionRejectsCenter(t *testing.T) {
	e := analysis.NewDefault()
	_, err := e.PersonalDirection(male1990(t), compass.Center, 2024)
	if !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDirectionSummaryOrder(t *testing.T) {
	e := analysis.NewDefault()
	sum, err := e.DirectionSummary(male1990(t), 2024)
	if err != nil {
		t.Fatalf("DirectionSummary() error: %v", err)
	}
	var got []compass.Position
	for _, d := range sum.Directions {
		got = append(got, d.Position)
	}
	want := []compass.Position{
		compass.NorthWest, compass.SouthWest, compass.NorthEast, compass.West,
		compass.North, compass.SouthEast, compass.South, compass.East,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("direction order mismatch (-want +got):\n%s", diff)
	}
	if sum.Indicator != 2 || sum.Group != indicator.West {
		t.Errorf("summary indicator = %d %s", sum.Indicator, sum.Group)
	}
}

func TestAnnualChart(t *testing.T) {
	e := analysis.NewDefault()
	rep, err := e.AnnualChart(2024)
	if err != nil {
		t.Fatalf("AnnualChart() error: %v", err)
	}
	if rep.Center != 9 || rep.Cycle.Epoch.Ordinal != 9 {
		t.Errorf("center %d epoch %d, want 9 9", rep.Center, rep.Cycle.Epoch.Ordinal)
	}
	if len(rep.Positions) != compass.Count {
		t.Fatalf("expected %d positions, got %d", compass.Count, len(rep.Positions))
	}

	wantRatings := map[compass.Position]string{
		compass.Center:    "favorable",
		compass.North:     "favorable",
		compass.NorthEast: "unfavorable",
		compass.East:      "unfavorable",
		compass.SouthEast: "favorable",
		compass.South:     "unfavorable",
		compass.SouthWest: "mixed",
		compass.West:      "unfavorable",
		compass.NorthWest: "favorable",
	}
	for _, pr := range rep.Positions {
		if pr.Star != rep.Chart.At(pr.Position) {
			t.Errorf("%s: star %d does not match chart %d", pr.Position, pr.Star, rep.Chart.At(pr.Position))
		}
		if got := pr.Score.Rating; got != wantRatings[pr.Position] {
			t.Errorf("%s: rating %q, want %q", pr.Position, got, wantRatings[pr.Position])
		}
	}

	want := []scoring.Recommendation{
		enhance("Purple Nine", "red_lighting"),
		enhance("Purple Nine", "wood_plants"),
		enhance("White One", "water_feature"),
		enhance("White One", "metal_ornament"),
		remedy("Black Two", "brass_gourd"),
		remedy("Black Two", "metal_wind_chime"),
		remedy("Jade Three", "red_accents"),
		remedy("Jade Three", "still_light"),
	}
	if diff := cmp.Diff(want, rep.Recommendations); diff != "" {
		t.Errorf("chart recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestMonthlyChart(t *testing.T) {
	e := analysis.NewDefault()
	rep, err := e.MonthlyChart(2024, 3)
	if err != nil {
		t.Fatalf("MonthlyChart() error: %v", err)
	}
	if rep.Center != 2 || rep.Cycle.MonthCenter != 2 {
		t.Errorf("monthly center = %d, want 2", rep.Center)
	}
	if rep.Chart.At(compass.North) != 3 {
		t.Errorf("N = %d, want 3", rep.Chart.At(compass.North))
	}

	for _, month := range []int{0, 13} {
		if _, err := e.MonthlyChart(2024, month); !errors.Is(err, fault.ErrValidation) {
			t.Errorf("MonthlyChart(2024, %d): expected validation error, got %v", month, err)
		}
	}
}

func TestCorner(t *testing.T) {
	e := analysis.NewDefault()
	p := male1990(t)

	wealth, err := e.Corner(p, 2024, rules.Wealth)
	if err != nil {
		t.Fatalf("Corner(wealth) error: %v", err)
	}
	if wealth.TargetStar != 9 || wealth.Position != compass.Center {
		t.Errorf("wealth corner = star %d at %s, want 9 at center", wealth.TargetStar, wealth.Position)
	}
	if wealth.Mansion != "" {
		t.Errorf("center corner should have no mansion, got %s", wealth.Mansion)
	}
	if s, _ := wealth.Score.SubScore(rules.KeyPersonal); s.Value != rules.Default().CenterQuality {
		t.Errorf("personal = %d, want center quality", s.Value)
	}

	love, err := e.Corner(p, 2024, rules.Love)
	if err != nil {
		t.Fatalf("Corner(love) error: %v", err)
	}
	if love.TargetStar != 4 || love.Position != compass.SouthEast || love.Mansion != rules.WuGui {
		t.Errorf("love corner = star %d at %s (%s)", love.TargetStar, love.Position, love.Mansion)
	}
	if love.Score.Overall != 50 || love.Score.Rating != "poor" {
		t.Errorf("love score = %d %s, want 50 poor", love.Score.Overall, love.Score.Rating)
	}

	moved, err := e.Corner(p, 2025, rules.Wealth)
	if err != nil {
		t.Fatalf("Corner(wealth, 2025) error: %v", err)
	}
	if moved.Position != compass.NorthWest {
		t.Errorf("2025 wealth corner at %s, want NW", moved.Position)
	}

	if _, err := e.Corner(p, 2024, rules.CornerKind("health")); !errors.Is(err, fault.ErrValidation) {
		t.Errorf("expected validation error for unknown corner, got %v", err)
	}
}

func TestDateCompatibility(t *testing.T) {
	e := analysis.NewDefault()
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	rep, err := e.DateCompatibility(male1990(t), date, indicator.Wedding)
	if err != nil {
		t.Fatalf("DateCompatibility() error: %v", err)
	}
	if rep.YearStar != 9 || rep.MonthStar != 2 || rep.DayStar != 7 {
		t.Errorf("stars = %d/%d/%d, want 9/2/7", rep.YearStar, rep.MonthStar, rep.DayStar)
	}
	if rep.Date != "2024-03-15" || rep.Analysis != rules.DateCompatibility {
		t.Errorf("report header = %s %s", rep.Date, rep.Analysis)
	}
	if rep.Score.Overall != 37 || rep.Score.Rating != "poor" {
		t.Errorf("score = %d %s, want 37 poor", rep.Score.Overall, rep.Score.Rating)
	}
	want := []scoring.Recommendation{
		remedy("Red Seven", "still_water"),
		remedy("Red Seven", "blue_accents"),
		remedy("Black Two", "brass_gourd"),
		remedy("Black Two", "metal_wind_chime"),
	}
	if diff := cmp.Diff(want, rep.Score.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}

	fallback, err := e.DateCompatibility(male1990(t), date, "")
	if err != nil {
		t.Fatalf("DateCompatibility() error: %v", err)
	}
	if fallback.Event != indicator.OtherEvent || fallback.Score.Overall != 39 {
		t.Errorf("fallback event %q score %d, want other 39", fallback.Event, fallback.Score.Overall)
	}

	alias, err := e.DateCompatibility(male1990(t), date, "business_opening")
	if err != nil {
		t.Fatalf("DateCompatibility(alias) error: %v", err)
	}
	if alias.Event != indicator.BusinessOpening {
		t.Errorf("alias event = %q", alias.Event)
	}

	if _, err := e.DateCompatibility(male1990(t), date, "funeral"); !errors.Is(err, fault.ErrValidation) {
		t.Errorf("expected validation error for unknown event, got %v", err)
	}
}

func TestDayQuality(t *testing.T) {
	e := analysis.NewDefault()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	bands := rules.Default().Profile(rules.DayQuality).Bands
	ratings := make(map[string]bool)
	for _, b := range bands {
		ratings[b.Rating] = true
	}

	for d := start; d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		rep, err := e.DayQuality(d, "")
		if err != nil {
			t.Fatalf("DayQuality(%s) error: %v", d.Format(analysis.DateLayout), err)
		}
		if rep.Score.Overall < 0 || rep.Score.Overall > 100 {
			t.Fatalf("%s: overall %d out of range", rep.Date, rep.Score.Overall)
		}
		if !ratings[rep.Score.Rating] {
			t.Fatalf("%s: unknown rating %q", rep.Date, rep.Score.Rating)
		}
		v, ok := rep.Score.SubScore(rules.KeyVariation)
		if !ok || v.Value < 40 || v.Value > 100 {
			t.Fatalf("%s: variation %+v", rep.Date, v)
		}
	}
}

func TestDayQualityEventCitesDayStar(t *testing.T) {
	e := analysis.NewDefault()
	rs := rules.Default()
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	rep, err := e.DayQuality(date, indicator.Medical)
	if err != nil {
		t.Fatalf("DayQuality() error: %v", err)
	}
	u, ok := rep.Score.SubScore(rules.KeyUniversal)
	if !ok || len(u.Sources) != 1 || u.Sources[0].Index != rep.DayStar {
		t.Fatalf("universal sources = %+v, want day star %d", u.Sources, rep.DayStar)
	}
	day := rs.Attribute(rep.DayStar)
	if len(rep.Score.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	for _, r := range rep.Score.Recommendations {
		if r.Args[0] != day.Name {
			t.Errorf("recommendation %s cites %q, want day star %q", r, r.Args[0], day.Name)
		}
	}
}

func TestDayQualityIsDeterministic(t *testing.T) {
	e := analysis.NewDefault()
	date := time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC)
	first, err := e.DayQuality(date, indicator.Travel)
	if err != nil {
		t.Fatalf("DayQuality() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := e.DayQuality(date, indicator.Travel)
		if err != nil {
			t.Fatalf("DayQuality() error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
	// Time of day and zone do not change the calendar date.
	evening := time.Date(2025, time.October, 10, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	if analysis.Variation(evening) != analysis.Variation(date) {
		t.Error("variation depends on more than the calendar date")
	}
}

func TestBestDays(t *testing.T) {
	e := analysis.NewDefault()
	p := male1990(t)

	for _, prof := range []*indicator.Profile{nil, &p} {
		days, err := e.BestDays(2024, 2, indicator.Wedding, prof, 10)
		if err != nil {
			t.Fatalf("BestDays() error: %v", err)
		}
		if len(days) != 10 {
			t.Fatalf("expected 10 days, got %d", len(days))
		}
		for i := 1; i < len(days); i++ {
			prev, cur := days[i-1], days[i]
			if prev.Score.Overall < cur.Score.Overall {
				t.Errorf("days not sorted by score: %s %d before %s %d", prev.Date, prev.Score.Overall, cur.Date, cur.Score.Overall)
			}
			if prev.Score.Overall == cur.Score.Overall && prev.Date > cur.Date {
				t.Errorf("tie not in date order: %s before %s", prev.Date, cur.Date)
			}
		}
		wantAnalysis := rules.DayQuality
		if prof != nil {
			wantAnalysis = rules.DateCompatibility
		}
		if days[0].Analysis != wantAnalysis {
			t.Errorf("analysis = %s, want %s", days[0].Analysis, wantAnalysis)
		}
	}

	all, err := e.BestDays(2024, 2, "", nil, 100)
	if err != nil {
		t.Fatalf("BestDays() error: %v", err)
	}
	if len(all) != 29 {
		t.Errorf("leap February: expected 29 days, got %d", len(all))
	}

	if _, err := e.BestDays(2024, 2, "", nil, 0); !errors.Is(err, fault.ErrValidation) {
		t.Errorf("expected validation error for zero limit, got %v", err)
	}
}

func TestYearValidation(t *testing.T) {
	e := analysis.NewDefault()
	if _, err := e.AnnualChart(0); !errors.Is(err, fault.ErrValidation) {
		t.Errorf("AnnualChart(0): expected validation error, got %v", err)
	}
	if _, err := e.Cycle(10000, 0); !errors.Is(err, fault.ErrValidation) {
		t.Errorf("Cycle(10000): expected validation error, got %v", err)
	}
	// Years past the table fall back to the last epoch.
	res, err := e.Cycle(2100, 0)
	if err != nil {
		t.Fatalf("Cycle(2100) error: %v", err)
	}
	if !res.Fallback || res.Epoch.Ordinal != 9 {
		t.Errorf("Cycle(2100) = %+v, want fallback to epoch 9", res)
	}
}

func TestConcurrentReplace(t *testing.T) {
	store := rules.MustDefault()
	e := analysis.New(store)
	p := male1990(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rep, err := e.PersonalDirection(p, compass.North, 2024)
				if err != nil {
					t.Errorf("PersonalDirection() error: %v", err)
					return
				}
				if rep.Score.Overall != 54 {
					t.Errorf("overall = %d, want 54", rep.Score.Overall)
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		if _, err := store.Replace(rules.Default()); err != nil {
			t.Fatalf("Replace() error: %v", err)
		}
	}
	wg.Wait()

	if v := e.Rules().Version; v != 6 {
		t.Errorf("rules version = %d, want 6", v)
	}
}
