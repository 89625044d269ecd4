// Package chart distributes a center index over the nine positions and
// attaches attribute records to the result.
package chart

import (
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

// offsets holds one fixed offset per position, indexed by canonical order.
// The array length is the position count, so adding a position without an
// offset does not compile.
var offsets = [compass.Count]int{
	compass.Center:    0,
	compass.North:     1,
	compass.NorthEast: 2,
	compass.East:      3,
	compass.SouthEast: 4,
	compass.South:     5,
	compass.SouthWest: 6,
	compass.West:      7,
	compass.NorthWest: 8,
}

// Offset returns the fixed offset of a position.
func Offset(p compass.Position) int {
	if !p.Valid() {
		fault.Invariantf("offset requested for invalid position %d", int(p))
	}
	return offsets[p]
}

// Chart maps every position to a star index 1-9. It is a value type and is
// never mutated after Generate returns it.
type Chart [compass.Count]int

// Generate builds the chart for a center index.
func Generate(center int) Chart {
	if center < 1 || center > 9 {
		fault.Invariantf("center index %d outside 1-9", center)
	}
	var c Chart
	for _, p := range compass.All() {
		c[p] = cycle.Norm(center + offsets[p])
	}
	return c
}

// Center returns the star at the center position.
func (c Chart) Center() int {
	return c[compass.Center]
}

// At returns the star at a position.
func (c Chart) At(p compass.Position) int {
	if !p.Valid() {
		fault.Invariantf("chart lookup for invalid position %d", int(p))
	}
	return c[p]
}

// Find returns the position carrying star. Each star appears exactly once in
// a generated chart.
func (c Chart) Find(star int) compass.Position {
	for _, p := range compass.All() {
		if c[p] == star {
			return p
		}
	}
	fault.Invariantf("star %d not present in chart %v", star, [compass.Count]int(c))
	return compass.Center
}

// Cell is one resolved chart position.
type Cell struct {
	Position compass.Position      `json:"position"`
	Star     int                   `json:"star"`
	Palace   rules.Element         `json:"palace"`
	Record   rules.AttributeRecord `json:"record"`
}

// Resolve attaches the attribute record and palace element of every position.
// A star without a record panics.
func Resolve(c Chart, rs *rules.RuleSet) []Cell {
	cells := make([]Cell, 0, compass.Count)
	for _, p := range compass.All() {
		cells = append(cells, Cell{
			Position: p,
			Star:     c[p],
			Palace:   rs.Palace(p),
			Record:   rs.Attribute(c[p]),
		})
	}
	return cells
}
