// Package scoring implements the composite scorer: it blends named sub-scores
// with a fixed weight table, maps the blend to a rating band and assembles a
// ranked list of recommendations.
package scoring

import (
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

// SubScore is one normalized input to the composite score.
type SubScore struct {
	Key     string                  `json:"key"`   // machine key: "personal", "universal", ...
	Value   int                     `json:"value"` // 0-100
	Weight  float64                 `json:"weight"`
	Basis   string                  `json:"basis,omitempty"` // what the value was read from: "sheng_qi", "star 8", ...
	Sources []rules.AttributeRecord `json:"-"`               // records whose fragments feed recommendations
}

// Result is the complete output of scoring. A fresh value is built per call.
type Result struct {
	SubScores       []SubScore       `json:"sub_scores"`
	Overall         int              `json:"overall"`
	Rating          string           `json:"rating"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is a template key plus its interpolation values. The locale
// layer turns it into a user-facing sentence.
type Recommendation struct {
	Template string   `json:"template"`
	Args     []string `json:"args"`
}

// String returns the canonical form used for deduplication.
func (r Recommendation) String() string {
	return r.Template + "(" + strings.Join(r.Args, ", ") + ")"
}

// SubScore returns the sub-score with the given key.
func (r *Result) SubScore(key string) (SubScore, bool) {
	for _, s := range r.SubScores {
		if s.Key == key {
			return s, true
		}
	}
	return SubScore{}, false
}
