// Package indicator derives the personal indicator from a birth year and
// category.
package indicator

import (
	"slices"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
)

// Birth years for which the digit-root formulas are known to hold.
const (
	MinBirthYear = 1900
	MaxBirthYear = 2100
)

// An indicator of 5 has no direction table of its own, so a transform that
// lands on 5 is replaced by the category's substitute: 2 for the male
// formula, 8 for the female and unspecified formulas.
const (
	MaleSubstitute        = 2
	FemaleSubstitute      = 8
	UnspecifiedSubstitute = 8
)

const forbidden = 5

// Indicator is a personal number in {1,2,3,4,6,7,8,9}.
type Indicator int

// Group is the direction family an indicator belongs to.
type Group string

const (
	East Group = "east"
	West Group = "west"
)

// Group returns east for 1, 3, 4 and 9 and west for 2, 6, 7 and 8.
func (i Indicator) Group() Group {
	switch i {
	case 1, 3, 4, 9:
		return East
	case 2, 6, 7, 8:
		return West
	}
	fault.Invariantf("indicator %d has no group", int(i))
	return ""
}

// Valid reports whether i is in the closed indicator set.
func (i Indicator) Valid() bool {
	return slices.Contains(valid, int(i))
}

var valid = []int{1, 2, 3, 4, 6, 7, 8, 9}

// Derive reduces the last two digits of birthYear to a digit root, applies
// the category transform and normalizes the result into the indicator set.
func Derive(birthYear int, category Category) (Indicator, error) {
	if birthYear < MinBirthYear || birthYear > MaxBirthYear {
		return 0, fault.Invalid("birth year", birthYear, "must be within %d-%d", MinBirthYear, MaxBirthYear)
	}

	root := DigitRoot(birthYear % 100)

	var raw, substitute int
	switch category {
	case Male:
		raw, substitute = 11-root, MaleSubstitute
	case Female:
		raw, substitute = root+4, FemaleSubstitute
	case Unspecified:
		raw, substitute = root+5, UnspecifiedSubstitute
	default:
		return 0, fault.Invalid("category", string(category), "expected male, female or unspecified")
	}

	for raw > 9 {
		raw -= 9
	}
	if raw == forbidden {
		raw = substitute
	}

	ind := Indicator(raw)
	if !ind.Valid() {
		fault.Invariantf("indicator transform produced %d for year %d (%s)", raw, birthYear, category)
	}
	return ind, nil
}

// DigitRoot repeatedly sums the decimal digits of n until one digit remains.
// n must be non-negative.
func DigitRoot(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}
