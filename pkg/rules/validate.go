package rules

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

// weightTolerance bounds the drift allowed when weights are summed.
const weightTolerance = 0.001

// ValidIndicators is the closed set a personal indicator may take.
var ValidIndicators = []int{1, 2, 3, 4, 6, 7, 8, 9}

// Validate checks every structural invariant of the rule base and reports all
// problems found.
func (rs *RuleSet) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(rs.Attributes) != 9 {
		add("attributes: expected 9 records, got %d", len(rs.Attributes))
	}
	for i, rec := range rs.Attributes {
		if rec.Index != i+1 {
			add("attributes[%d]: index %d, want %d", i, rec.Index, i+1)
		}
		if rec.Name == "" {
			add("attributes[%d]: empty name", i)
		}
		if !rec.Element.Valid() {
			add("attributes[%d]: unknown element %q", i, rec.Element)
		}
		if !rec.Nature.Valid() {
			add("attributes[%d]: unknown nature %q", i, rec.Nature)
		}
	}

	if err := validateEpochs(rs.Epochs); err != nil {
		errs = append(errs, err)
	}

	for _, t := range AnalysisTypes() {
		p, ok := rs.Profiles[t]
		if !ok {
			add("profiles: missing %s", t)
			continue
		}
		if err := ValidateWeights(p.Weights); err != nil {
			add("profiles.%s: %w", t, err)
		}
		if err := ValidateBands(p.Bands); err != nil {
			add("profiles.%s: %w", t, err)
		}
		if p.MaxRecommendations <= 0 {
			add("profiles.%s: max_recommendations must be positive", t)
		}
	}

	for _, ind := range ValidIndicators {
		row, ok := rs.Mansions[ind]
		if !ok {
			add("mansions: missing indicator %d", ind)
			continue
		}
		for _, p := range compass.Directions() {
			m, ok := row[p]
			if !ok {
				add("mansions.%d: missing %s", ind, p)
				continue
			}
			if _, ok := rs.MansionScores[m]; !ok {
				add("mansion_scores: missing %s", m)
			}
		}
	}

	for _, p := range compass.All() {
		if s, ok := rs.HomeStars[p]; !ok || s < 1 || s > 9 {
			add("home_stars: %s must map to a star 1-9", p)
		}
		if e, ok := rs.Palaces[p]; !ok || !e.Valid() {
			add("palaces: %s must map to an element", p)
		}
	}

	for _, n := range []Nature{Auspicious, Neutral, Inauspicious} {
		if s, ok := rs.NatureScores[n]; !ok || !inScoreRange(s) {
			add("nature_scores: %s must be 0-100", n)
		}
	}
	for name, s := range map[string]int{
		"same": rs.Affinity.Same, "supported": rs.Affinity.Supported, "draining": rs.Affinity.Draining,
		"dominant": rs.Affinity.Dominant, "opposed": rs.Affinity.Opposed,
		"event_fit.favored": rs.EventFit.Favored, "event_fit.avoided": rs.EventFit.Avoided,
		"center_quality": rs.CenterQuality,
	} {
		if !inScoreRange(s) {
			add("%s: score %d outside 0-100", name, s)
		}
	}

	for _, ec := range indicator.EventCategories() {
		if _, ok := rs.Events[string(ec)]; !ok {
			add("events: missing profile for %q", ec)
		}
	}
	for name, ev := range rs.Events {
		for _, s := range slices.Concat(ev.Favored, ev.Avoided) {
			if s < 1 || s > 9 {
				add("events.%s: star %d outside 1-9", name, s)
			}
		}
	}

	for _, kind := range []CornerKind{Wealth, Love} {
		c, ok := rs.Corners[kind]
		if !ok {
			add("corners: missing %s", kind)
			continue
		}
		if !c.Reigning && (c.Star < 1 || c.Star > 9) {
			add("corners.%s: star %d outside 1-9", kind, c.Star)
		}
	}

	if base, ok := rs.Templates[DefaultLanguage]; !ok {
		add("templates: missing default language %q", DefaultLanguage)
	} else {
		for _, key := range []string{TemplateEnhance, TemplateRemedy} {
			if base[key] == "" {
				add("templates.%s: missing %q", DefaultLanguage, key)
			}
		}
	}

	return errors.Join(errs...)
}

func validateEpochs(epochs []Epoch) error {
	if len(epochs) == 0 {
		return errors.New("epochs: table is empty")
	}
	for i, ep := range epochs {
		if ep.Ordinal < 1 || ep.Ordinal > 9 {
			return fmt.Errorf("epochs[%d]: ordinal %d outside 1-9", i, ep.Ordinal)
		}
		if ep.End < ep.Start {
			return fmt.Errorf("epochs[%d]: end %d before start %d", i, ep.End, ep.Start)
		}
		if !ep.Element.Valid() {
			return fmt.Errorf("epochs[%d]: unknown element %q", i, ep.Element)
		}
		if i > 0 && ep.Start != epochs[i-1].End+1 {
			return fmt.Errorf("epochs[%d]: starts %d, previous ends %d (ranges must be contiguous)", i, ep.Start, epochs[i-1].End)
		}
	}
	return nil
}

// ValidateWeights checks that weights are non-negative, keyed uniquely and sum to 1.0.
func ValidateWeights(weights []Weight) error {
	if len(weights) == 0 {
		return errors.New("weights: table is empty")
	}
	seen := make(map[string]bool, len(weights))
	sum := 0.0
	for _, w := range weights {
		if w.Key == "" {
			return errors.New("weights: empty key")
		}
		if seen[w.Key] {
			return fmt.Errorf("weights: duplicate key %q", w.Key)
		}
		seen[w.Key] = true
		if w.Weight < 0 {
			return fmt.Errorf("weights: negative weight %f for %q", w.Weight, w.Key)
		}
		sum += w.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", sum)
	}
	return nil
}

// ValidateBands checks that bands are ordered by descending Min, start at 0
// and stay within 0-100, so every integer score falls in exactly one band.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return errors.New("bands: table is empty")
	}
	for i, b := range bands {
		if b.Rating == "" {
			return fmt.Errorf("bands[%d]: empty rating", i)
		}
		if !inScoreRange(b.Min) {
			return fmt.Errorf("bands[%d]: min %d outside 0-100", i, b.Min)
		}
		if i > 0 && b.Min >= bands[i-1].Min {
			return fmt.Errorf("bands[%d]: min %d not below previous min %d", i, b.Min, bands[i-1].Min)
		}
	}
	if last := bands[len(bands)-1]; last.Min != 0 {
		return fmt.Errorf("bands: lowest band starts at %d, scores below it are uncovered", last.Min)
	}
	return nil
}

func inScoreRange(s int) bool {
	return s >= 0 && s <= 100
}
