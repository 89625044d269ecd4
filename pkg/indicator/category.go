package indicator

import (
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
)

// Category selects the transform applied to the digit root. It is a closed
// enum rather than a boolean because the formulas branch three ways.
type Category string

const (
	Male        Category = "male"
	Female      Category = "female"
	Unspecified Category = "unspecified"
)

// Categories returns every category.
func Categories() []Category {
	return []Category{Male, Female, Unspecified}
}

// ParseCategory accepts the category names and a few common aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "man":
		return Male, nil
	case "female", "f", "woman":
		return Female, nil
	case "unspecified", "u", "other", "":
		return Unspecified, nil
	}
	return "", fault.Invalid("category", s, "expected male, female or unspecified")
}

// EventCategory tags the kind of occasion a date is being chosen for.
type EventCategory string

const (
	Wedding         EventCategory = "wedding"
	BusinessOpening EventCategory = "business-opening"
	Relocation      EventCategory = "relocation"
	Travel          EventCategory = "travel"
	Investment      EventCategory = "investment"
	Medical         EventCategory = "medical"
	Study           EventCategory = "study"
	Gathering       EventCategory = "gathering"
	Grooming        EventCategory = "grooming"
	Purchase        EventCategory = "purchase"
	Ritual          EventCategory = "ritual"
	OtherEvent      EventCategory = "other"
)

// EventCategories returns every event category.
func EventCategories() []EventCategory {
	return []EventCategory{
		Wedding, BusinessOpening, Relocation, Travel, Investment, Medical,
		Study, Gathering, Grooming, Purchase, Ritual, OtherEvent,
	}
}

// ParseEventCategory accepts the category names with '-', '_' or ' ' separators.
func ParseEventCategory(s string) (EventCategory, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, ec := range EventCategories() {
		if string(ec) == norm {
			return ec, nil
		}
	}
	return "", fault.Invalid("event category", s, "unknown event category")
}
