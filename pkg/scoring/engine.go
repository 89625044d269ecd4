package scoring

import (
	"math"
	"sort"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
)

// Score blends subs with weights, rates the result against bands and builds
// at most limit recommendations.
//
// Every sub-score needs exactly one weight and every weight one sub-score.
// Weights count to four decimal places; the overall score is rounded half up
// and clamped to 0-100 even if the weights do not sum to 1.0. A score that no band covers is a broken band table and
// panics.
func Score(subs []SubScore, weights []rules.Weight, bands []rules.Band, limit int) (*Result, error) {
	if limit < 0 {
		return nil, fault.Invalid("recommendation limit", limit, "must not be negative")
	}

	byKey := make(map[string]SubScore, len(subs))
	for _, s := range subs {
		if _, dup := byKey[s.Key]; dup {
			return nil, fault.Invalid("sub-score", s.Key, "duplicate key")
		}
		if s.Value < 0 || s.Value > 100 {
			return nil, fault.Invalid("sub-score "+s.Key, s.Value, "must be within 0-100")
		}
		byKey[s.Key] = s
	}
	if len(weights) != len(byKey) {
		return nil, fault.Invalid("sub-scores", len(byKey), "expected %d keyed sub-scores, one per weight", len(weights))
	}

	result := &Result{SubScores: make([]SubScore, 0, len(weights))}
	var total int64 // basis points of weight times value
	for _, w := range weights {
		s, ok := byKey[w.Key]
		if !ok {
			return nil, fault.Invalid("sub-scores", w.Key, "missing sub-score for weighted key")
		}
		s.Weight = w.Weight
		total += basisPoints(w.Weight) * int64(s.Value)
		result.SubScores = append(result.SubScores, s)
	}

	result.Overall = clamp(roundBasisPoints(total))
	result.Rating = RatingFor(bands, result.Overall)
	result.Recommendations = recommend(result.SubScores, limit)

	return result, nil
}

// RatingFor returns the rating of the first band whose minimum the score
// reaches. Bands are ordered by descending minimum.
func RatingFor(bands []rules.Band, score int) string {
	for _, b := range bands {
		if score >= b.Min {
			return b.Rating
		}
	}
	fault.Invariantf("score %d not covered by band table %v", score, bands)
	return ""
}

// basisPointScale fixes weights to four decimal places so the weighted sum
// is exact and ties round the same way on every platform.
const basisPointScale = 10000

func basisPoints(w float64) int64 {
	return int64(math.Round(w * basisPointScale))
}

// roundBasisPoints rounds total/basisPointScale to the nearest integer, ties
// upward.
func roundBasisPoints(total int64) int {
	n := total + basisPointScale/2
	q := n / basisPointScale
	if n%basisPointScale < 0 {
		q--
	}
	return int(q)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

type candidate struct {
	rec       Recommendation
	relevance float64
}

// recommend emits one fragment per enhancement or remedy of every source of
// every weighted sub-score, in evaluation order. Candidates are ranked by the
// weight of their sub-score; equal weights keep evaluation order.
func recommend(subs []SubScore, limit int) []Recommendation {
	var candidates []candidate
	for _, s := range subs {
		if s.Weight <= 0 {
			continue
		}
		for _, src := range s.Sources {
			template := rules.TemplateEnhance
			if src.Nature == rules.Inauspicious {
				template = rules.TemplateRemedy
			}
			for _, fragment := range src.Fragments() {
				candidates = append(candidates, candidate{
					rec:       Recommendation{Template: template, Args: []string{src.Name, fragment}},
					relevance: s.Weight,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relevance > candidates[j].relevance
	})

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, c.rec)
	}
	return Dedup(limit, recs)
}

// Dedup drops repeated recommendations by exact canonical string, keeping the
// first occurrence, and caps the list at limit.
func Dedup(limit int, recs []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(recs))
	out := make([]Recommendation, 0, min(limit, len(recs)))
	for _, r := range recs {
		if len(out) >= limit {
			break
		}
		key := r.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Merge concatenates the recommendations of several results in order,
// deduplicated and capped at limit.
func Merge(limit int, results ...*Result) []Recommendation {
	var all []Recommendation
	for _, r := range results {
		if r == nil {
			continue
		}
		all = append(all, r.Recommendations...)
	}
	return Dedup(limit, all)
}
