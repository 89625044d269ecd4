package surface

import (
	"encoding/json"
	"io"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// JSONRenderer marshals reports to indented JSON. With a catalog, the
// rendered recommendation sentences are added under "messages".
type JSONRenderer struct {
	Catalog *locale.Catalog
}

type withMessages struct {
	Report   any      `json:"report"`
	Messages []string `json:"messages"`
}

func (r *JSONRenderer) Render(w io.Writer, report any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if r.Catalog == nil {
		return enc.Encode(report)
	}
	recs, ok := recommendations(report)
	if !ok {
		return enc.Encode(report)
	}
	return enc.Encode(withMessages{Report: report, Messages: r.Catalog.RenderAll(recs)})
}

// recommendations returns the top-level recommendation list of a report.
func recommendations(report any) ([]scoring.Recommendation, bool) {
	switch v := report.(type) {
	case *analysis.DirectionReport:
		return v.Score.Recommendations, true
	case *analysis.CornerReport:
		return v.Score.Recommendations, true
	case *analysis.DayReport:
		return v.Score.Recommendations, true
	case *analysis.ChartReport:
		return v.Recommendations, true
	}
	return nil, false
}
