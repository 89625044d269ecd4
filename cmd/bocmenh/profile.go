package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

// profileFlags are the birth-data flags of the personal commands.
type profileFlags struct {
	year     int
	month    int
	day      int
	category string
}

func (p *profileFlags) register(f *pflag.FlagSet) {
	f.IntVar(&p.year, "birth-year", 0, "Birth year")
	f.IntVar(&p.month, "birth-month", 0, "Birth month (optional)")
	f.IntVar(&p.day, "birth-day", 0, "Birth day (optional, requires --birth-month)")
	f.StringVar(&p.category, "category", string(indicator.Unspecified), "Category: male, female or unspecified")
}

// given reports whether any birth data was supplied.
func (p *profileFlags) given() bool {
	return p.year != 0
}

func (p *profileFlags) profile() (indicator.Profile, error) {
	if p.year == 0 {
		return indicator.Profile{}, fmt.Errorf("--birth-year is required")
	}
	cat, err := indicator.ParseCategory(p.category)
	if err != nil {
		return indicator.Profile{}, err
	}
	return indicator.NewProfile(p.year, p.month, p.day, cat, "")
}

// optionalProfile returns nil when no birth data was given.
func (p *profileFlags) optionalProfile() (*indicator.Profile, error) {
	if !p.given() {
		return nil, nil
	}
	prof, err := p.profile()
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func parseEvent(s string) (indicator.EventCategory, error) {
	if s == "" {
		return "", nil
	}
	return indicator.ParseEventCategory(s)
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}

func parseMonth(s string) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month %q: expected 1-12", s)
	}
	return m, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(analysis.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

func currentYear() int {
	return time.Now().Year()
}
