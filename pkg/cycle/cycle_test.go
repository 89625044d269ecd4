package cycle_test

import (
	"errors"
	"testing"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

func TestNorm(t *testing.T) {
	tests := map[int]int{0: 9, 9: 9, 18: 9, 1: 1, 10: 1, 17: 8, -1: 8, -9: 9, -10: 8}
	for in, want := range tests {
		if got := cycle.Norm(in); got != want {
			t.Errorf("Norm(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestResolve2024(t *testing.T) {
	res, err := cycle.Resolve(rules.Default().Epochs, 2024, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Epoch.Ordinal != 9 || res.Epoch.Start != 2024 || res.Epoch.End != 2043 {
		t.Errorf("epoch = %+v, want ordinal 9 covering 2024-2043", res.Epoch)
	}
	// (9 + 0) mod 9 = 0 -> 9
	if res.Center != 9 {
		t.Errorf("center = %d, want 9", res.Center)
	}
	if res.MonthCenter != 0 || res.Fallback {
		t.Errorf("unexpected month center %d / fallback %v", res.MonthCenter, res.Fallback)
	}
}

func TestResolveWithinEpoch(t *testing.T) {
	epochs := rules.Default().Epochs
	tests := []struct {
		year, ordinal, center int
	}{
		{2004, 8, 8},
		{2010, 8, 5}, // 8+6=14 -> 5
		{2023, 8, 9}, // 8+19=27 -> 9
		{2025, 9, 1}, // 9+1=10 -> 1
		{1864, 1, 1},
		{1990, 7, 4}, // 7+6=13 -> 4
	}
	for _, tt := range tests {
		res, err := cycle.Resolve(epochs, tt.year, 0)
		if err != nil {
			t.Fatal(err)
		}
		if res.Epoch.Ordinal != tt.ordinal || res.Center != tt.center {
			t.Errorf("Resolve(%d) = ordinal %d center %d, want %d/%d",
				tt.year, res.Epoch.Ordinal, res.Center, tt.ordinal, tt.center)
		}
	}
}

func TestResolveMonth(t *testing.T) {
	res, err := cycle.Resolve(rules.Default().Epochs, 2024, 3)
	if err != nil {
		t.Fatal(err)
	}
	// annual 9, month 3: 9+2=11 -> 2
	if res.MonthCenter != 2 {
		t.Errorf("month center = %d, want 2", res.MonthCenter)
	}

	for _, m := range []int{-1, 13} {
		if _, err := cycle.Resolve(rules.Default().Epochs, 2024, m); !errors.Is(err, fault.ErrValidation) {
			t.Errorf("month %d: expected validation error, got %v", m, err)
		}
	}
}

func TestResolveFallsBackToLastEpoch(t *testing.T) {
	epochs := rules.Default().Epochs
	for _, year := range []int{2044, 2100, 1700} {
		res, err := cycle.Resolve(epochs, year, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Fallback || res.Epoch.Ordinal != 9 {
			t.Errorf("Resolve(%d) = %+v, want fallback to epoch 9", year, res)
		}
	}
}

func TestCycleCoverage(t *testing.T) {
	epochs := rules.Default().Epochs
	first, last := epochs[0].Start, epochs[len(epochs)-1].End+50
	for year := first; year <= last; year++ {
		for month := 0; month <= 12; month++ {
			res, err := cycle.Resolve(epochs, year, month)
			if err != nil {
				t.Fatalf("Resolve(%d, %d): %v", year, month, err)
			}
			if res.Center < 1 || res.Center > 9 {
				t.Fatalf("Resolve(%d) center %d outside 1-9", year, res.Center)
			}
			if month != 0 && (res.MonthCenter < 1 || res.MonthCenter > 9) {
				t.Fatalf("Resolve(%d, %d) month center %d outside 1-9", year, month, res.MonthCenter)
			}
		}
	}
}

func TestDayCenter(t *testing.T) {
	res, _ := cycle.Resolve(rules.Default().Epochs, 2024, 3)
	got, err := cycle.DayCenter(res, 10)
	if err != nil {
		t.Fatal(err)
	}
	// month center 2, day 10: 2+9=11 -> 2
	if got != 2 {
		t.Errorf("DayCenter = %d, want 2", got)
	}

	annual, _ := cycle.Resolve(rules.Default().Epochs, 2024, 0)
	if _, err := cycle.DayCenter(annual, 1); err == nil {
		t.Error("expected error for day center without a month")
	}
	if _, err := cycle.DayCenter(res, 32); err == nil {
		t.Error("expected error for day 32")
	}
}

func TestResolveEmptyTablePanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(*fault.InvariantError); !ok {
			t.Error("expected *InvariantError panic")
		}
	}()
	_, _ = cycle.Resolve(nil, 2024, 0)
}
