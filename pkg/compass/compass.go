// Package compass enumerates the nine chart positions in canonical order.
package compass

import (
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
)

// Position is one of the nine chart positions. The zero value is Center.
type Position int

// Canonical enumeration order. Chart offsets and every per-position table are
// indexed by this order.
const (
	Center Position = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Count is the number of positions including the center.
const Count = 9

var codes = [Count]string{"center", "N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var names = [Count]string{
	"Center", "North", "North-East", "East", "South-East",
	"South", "South-West", "West", "North-West",
}

// All returns every position in canonical order.
func All() []Position {
	return []Position{Center, North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// Directions returns the eight compass directions (all positions but the center).
func Directions() []Position {
	return All()[1:]
}

// Valid reports whether p is one of the nine enumerated positions.
func (p Position) Valid() bool {
	return p >= Center && p <= NorthWest
}

// IsDirection reports whether p is a compass direction rather than the center.
func (p Position) IsDirection() bool {
	return p.Valid() && p != Center
}

// String returns the short code ("center", "N", "NE", ...).
func (p Position) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return codes[p]
}

// Name returns the long display name.
func (p Position) Name() string {
	if !p.Valid() {
		return "Invalid"
	}
	return names[p]
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fault.Invalid("position", int(p), "not an enumerated position")
	}
	return []byte(codes[p]), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var aliases = map[string]Position{
	"c": Center, "center": Center, "centre": Center, "middle": Center,
	"n": North, "north": North,
	"ne": NorthEast, "northeast": NorthEast, "north-east": NorthEast, "north_east": NorthEast,
	"e": East, "east": East,
	"se": SouthEast, "southeast": SouthEast, "south-east": SouthEast, "south_east": SouthEast,
	"s": South, "south": South,
	"sw": SouthWest, "southwest": SouthWest, "south-west": SouthWest, "south_west": SouthWest,
	"w": West, "west": West,
	"nw": NorthWest, "northwest": NorthWest, "north-west": NorthWest, "north_west": NorthWest,
}

// Parse accepts short codes and long names in any case.
func Parse(s string) (Position, error) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fault.Invalid("position", s, "expected one of center, N, NE, E, SE, S, SW, W, NW")
	}
	return p, nil
}
