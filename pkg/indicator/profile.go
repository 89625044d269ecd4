package indicator

import (
	"time"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
)

// The solar year turns at the start of spring, fixed here at 4 February.
const (
	solarNewYearMonth = 2
	solarNewYearDay   = 4
)

// Profile is the personal input of an analysis. Build it with NewProfile;
// the zero values of the optional fields mean "unknown".
type Profile struct {
	BirthYear  int           `json:"birth_year"`
	BirthMonth int           `json:"birth_month,omitempty"`
	BirthDay   int           `json:"birth_day,omitempty"`
	Category   Category      `json:"category"`
	Event      EventCategory `json:"event,omitempty"`
}

// NewProfile validates the birth data and returns an immutable profile.
// month and day may be 0 when unknown; a day requires a month.
func NewProfile(year, month, day int, category Category, event EventCategory) (Profile, error) {
	if year < MinBirthYear || year > MaxBirthYear {
		return Profile{}, fault.Invalid("birth year", year, "must be within %d-%d", MinBirthYear, MaxBirthYear)
	}
	if month < 0 || month > 12 {
		return Profile{}, fault.Invalid("birth month", month, "must be within 1-12")
	}
	if day != 0 {
		if month == 0 {
			return Profile{}, fault.Invalid("birth day", day, "requires a birth month")
		}
		if day < 1 || day > DaysIn(year, month) {
			return Profile{}, fault.Invalid("birth day", day, "must be within 1-%d", DaysIn(year, month))
		}
	}
	if category == "" {
		return Profile{}, fault.Invalid("category", "", "expected male, female or unspecified")
	}
	cat, err := ParseCategory(string(category))
	if err != nil {
		return Profile{}, err
	}
	if event != "" {
		if event, err = ParseEventCategory(string(event)); err != nil {
			return Profile{}, err
		}
	}
	return Profile{BirthYear: year, BirthMonth: month, BirthDay: day, Category: cat, Event: event}, nil
}

// SolarYear returns the year used by the formulas: births before the solar new
// year belong to the previous year. Without a birth month the calendar year is
// used unchanged.
func (p Profile) SolarYear() int {
	if p.BirthMonth == 0 {
		return p.BirthYear
	}
	if p.BirthMonth < solarNewYearMonth {
		return p.BirthYear - 1
	}
	if p.BirthMonth == solarNewYearMonth && p.BirthDay != 0 && p.BirthDay < solarNewYearDay {
		return p.BirthYear - 1
	}
	return p.BirthYear
}

// DeriveForProfile derives the indicator from the profile's solar year. The
// profile's birth year was range-checked on construction; the solar-year shift
// may step one year below MinBirthYear, which the digit root still handles.
func DeriveForProfile(p Profile) (Indicator, error) {
	year := p.SolarYear()
	if year == MinBirthYear-1 {
		year += 100
	}
	return Derive(year, p.Category)
}

// DaysIn returns the number of days in a calendar month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
