package indicator_test

import (
	"errors"
	"testing"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
)

func TestNewProfileValidation(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		category         indicator.Category
		event            indicator.EventCategory
		wantErr          bool
	}{
		{"year only", 1990, 0, 0, indicator.Male, "", false},
		{"full date", 1990, 2, 28, indicator.Female, indicator.Wedding, false},
		{"leap day", 2000, 2, 29, indicator.Male, "", false},
		{"not a leap day", 1900, 2, 29, indicator.Male, "", true},
		{"year too early", 1899, 0, 0, indicator.Male, "", true},
		{"bad month", 1990, 13, 0, indicator.Male, "", true},
		{"day without month", 1990, 0, 12, indicator.Male, "", true},
		{"empty category", 1990, 0, 0, "", "", true},
		{"bad event", 1990, 0, 0, indicator.Male, "party", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := indicator.NewProfile(tt.year, tt.month, tt.day, tt.category, tt.event)
			if tt.wantErr {
				if !errors.Is(err, fault.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewProfileNormalizesAliases(t *testing.T) {
	p, err := indicator.NewProfile(1990, 0, 0, "m", "business_opening")
	if err != nil {
		t.Fatalf("NewProfile() error: %v", err)
	}
	if p.Category != indicator.Male {
		t.Errorf("Category = %q, want %q", p.Category, indicator.Male)
	}
	if p.Event != indicator.BusinessOpening {
		t.Errorf("Event = %q, want %q", p.Event, indicator.BusinessOpening)
	}

	ind, err := indicator.DeriveForProfile(p)
	if err != nil {
		t.Fatalf("DeriveForProfile() error: %v", err)
	}
	if ind != 2 {
		t.Errorf("indicator = %d, want 2", ind)
	}
}

func TestSolarYearBoundary(t *testing.T) {
	tests := []struct {
		month, day int
		want       int
	}{
		{0, 0, 1990},
		{1, 15, 1989},
		{2, 0, 1990},
		{2, 3, 1989},
		{2, 4, 1990},
		{12, 31, 1990},
	}
	for _, tt := range tests {
		p, err := indicator.NewProfile(1990, tt.month, tt.day, indicator.Male, "")
		if err != nil {
			t.Fatalf("NewProfile: %v", err)
		}
		if got := p.SolarYear(); got != tt.want {
			t.Errorf("SolarYear(1990-%02d-%02d) = %d, want %d", tt.month, tt.day, got, tt.want)
		}
	}
}

func TestDeriveForProfile(t *testing.T) {
	p, _ := indicator.NewProfile(1990, 1, 15, indicator.Male, "")
	got, err := indicator.DeriveForProfile(p)
	if err != nil {
		t.Fatal(err)
	}
	// Solar year 1989: root(89)=8, 11-8=3.
	if got != 3 {
		t.Errorf("DeriveForProfile = %d, want 3", got)
	}

	// 1900-01 falls in solar year 1899, outside the formula range; it
	// shares its last two digits with 1999.
	early, _ := indicator.NewProfile(1900, 1, 10, indicator.Male, "")
	got, err = indicator.DeriveForProfile(early)
	if err != nil {
		t.Fatalf("DeriveForProfile(1900-01-10): %v", err)
	}
	if want, _ := indicator.Derive(1999, indicator.Male); got != want {
		t.Errorf("DeriveForProfile(1900-01-10) = %d, want %d", got, want)
	}
}

func TestParseEventCategory(t *testing.T) {
	for _, in := range []string{"business_opening", "Business Opening", "business-opening"} {
		got, err := indicator.ParseEventCategory(in)
		if err != nil || got != indicator.BusinessOpening {
			t.Errorf("ParseEventCategory(%q) = %q, %v", in, got, err)
		}
	}
	if len(indicator.EventCategories()) != 12 {
		t.Errorf("expected 12 event categories, got %d", len(indicator.EventCategories()))
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := indicator.ParseCategory("F"); err != nil || c != indicator.Female {
		t.Errorf("ParseCategory(F) = %q, %v", c, err)
	}
	if _, err := indicator.ParseCategory("x"); err == nil {
		t.Error("expected error for unknown category")
	}
}
