// Package cycle resolves the active epoch of a year and the center index of a
// year, month or day.
package cycle

import (
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

// Resolution is the outcome of resolving a year and optional month.
// MonthCenter is 0 when no month was given.
type Resolution struct {
	Year        int         `json:"year"`
	Month       int         `json:"month,omitempty"`
	Epoch       rules.Epoch `json:"epoch"`
	Fallback    bool        `json:"fallback,omitempty"` // year outside the table, last epoch used
	Center      int         `json:"center"`
	MonthCenter int         `json:"month_center,omitempty"`
}

// Norm folds n into the 1-indexed modulo-9 space: a remainder of 0 becomes 9
// and negative inputs wrap around.
func Norm(n int) int {
	r := n % 9
	if r <= 0 {
		r += 9
	}
	return r
}

// Resolve finds the epoch containing year and computes the annual center,
// plus the monthly center when month is non-zero. A year outside the table
// uses the last epoch; the table is expected to be extended over time rather
// than treated as exhaustive.
func Resolve(epochs []rules.Epoch, year, month int) (Resolution, error) {
	if len(epochs) == 0 {
		fault.Invariantf("epoch table is empty")
	}
	if month < 0 || month > 12 {
		return Resolution{}, fault.Invalid("month", month, "must be within 1-12")
	}

	res := Resolution{Year: year, Month: month}
	found := false
	for _, ep := range epochs {
		if ep.Contains(year) {
			res.Epoch = ep
			found = true
			break
		}
	}
	if !found {
		res.Epoch = epochs[len(epochs)-1]
		res.Fallback = true
	}

	res.Center = Norm(res.Epoch.Ordinal + (year - res.Epoch.Start))
	if month != 0 {
		res.MonthCenter = Norm(res.Center + month - 1)
	}
	return res, nil
}

// DayCenter folds a day of the month into the monthly center. The resolution
// must carry a month.
func DayCenter(res Resolution, day int) (int, error) {
	if res.Month == 0 {
		return 0, fault.Invalid("month", 0, "a day center requires a resolved month")
	}
	if day < 1 || day > 31 {
		return 0, fault.Invalid("day", day, "must be within 1-31")
	}
	return Norm(res.MonthCenter + day - 1), nil
}
