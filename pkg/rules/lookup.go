package rules

import (
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
)

// Generates returns the element that e produces in the generating cycle.
func (e Element) Generates() Element {
	switch e {
	case Water:
		return Wood
	case Wood:
		return Fire
	case Fire:
		return Earth
	case Earth:
		return Metal
	case Metal:
		return Water
	}
	fault.Invariantf("unknown element %q", string(e))
	return ""
}

// Controls returns the element that e overcomes in the controlling cycle.
func (e Element) Controls() Element {
	switch e {
	case Water:
		return Fire
	case Fire:
		return Metal
	case Metal:
		return Wood
	case Wood:
		return Earth
	case Earth:
		return Water
	}
	fault.Invariantf("unknown element %q", string(e))
	return ""
}

// Attribute returns the record for a star index. A miss means the transforms
// produced an index outside 1-9 or the table is broken, so it panics.
func (rs *RuleSet) Attribute(index int) AttributeRecord {
	if index < 1 || index > len(rs.Attributes) {
		fault.Invariantf("attribute index %d outside 1-%d", index, len(rs.Attributes))
	}
	rec := rs.Attributes[index-1]
	if rec.Index != index {
		fault.Invariantf("attribute table out of order: slot %d holds index %d", index, rec.Index)
	}
	return rec
}

// Profile returns the weight and band tables for an analysis type.
func (rs *RuleSet) Profile(t AnalysisType) AnalysisProfile {
	p, ok := rs.Profiles[t]
	if !ok {
		fault.Invariantf("no profile for analysis type %q", string(t))
	}
	return p
}

// AffinityScore scores how well other sits with self.
func (rs *RuleSet) AffinityScore(self, other Element) int {
	switch {
	case self == other:
		return rs.Affinity.Same
	case other.Generates() == self:
		return rs.Affinity.Supported
	case self.Generates() == other:
		return rs.Affinity.Draining
	case self.Controls() == other:
		return rs.Affinity.Dominant
	case other.Controls() == self:
		return rs.Affinity.Opposed
	}
	fault.Invariantf("no relation between %q and %q", string(self), string(other))
	return 0
}

// NatureScore returns the score of a record's polarity.
func (rs *RuleSet) NatureScore(n Nature) int {
	s, ok := rs.NatureScores[n]
	if !ok {
		fault.Invariantf("no score for nature %q", string(n))
	}
	return s
}

// MansionOf returns the personal quality of a compass direction for an indicator.
func (rs *RuleSet) MansionOf(indicator int, p compass.Position) Mansion {
	m, ok := rs.Mansions[indicator][p]
	if !ok {
		fault.Invariantf("no mansion for indicator %d at %s", indicator, p)
	}
	return m
}

// MansionScore scores a personal direction quality.
func (rs *RuleSet) MansionScore(m Mansion) int {
	s, ok := rs.MansionScores[m]
	if !ok {
		fault.Invariantf("no score for mansion %q", string(m))
	}
	return s
}

// HomeStar returns the fixed star of a position.
func (rs *RuleSet) HomeStar(p compass.Position) int {
	s, ok := rs.HomeStars[p]
	if !ok {
		fault.Invariantf("no home star for %s", p)
	}
	return s
}

// Palace returns the fixed element of a position.
func (rs *RuleSet) Palace(p compass.Position) Element {
	e, ok := rs.Palaces[p]
	if !ok {
		fault.Invariantf("no palace element for %s", p)
	}
	return e
}

// EventFitScore scores a day star for an event. Stars neither favored nor
// avoided fall back to the nature score of the star.
func (rs *RuleSet) EventFitScore(event string, star int) int {
	ep, ok := rs.Events[event]
	if !ok {
		fault.Invariantf("no event profile for %q", event)
	}
	for _, s := range ep.Favored {
		if s == star {
			return rs.EventFit.Favored
		}
	}
	for _, s := range ep.Avoided {
		if s == star {
			return rs.EventFit.Avoided
		}
	}
	return rs.NatureScore(rs.Attribute(star).Nature)
}
