package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// MarkdownRenderer produces a Markdown summary of a scored report, suitable
// for pasting into notes or chat.
type MarkdownRenderer struct {
	Catalog *locale.Catalog
}

func (r *MarkdownRenderer) Render(w io.Writer, report any) error {
	var sb strings.Builder

	switch v := report.(type) {
	case *analysis.DirectionReport:
		r.scored(&sb, fmt.Sprintf("%s in %d", v.Position.Name(), v.Year), v.Score)
	case *analysis.CornerReport:
		r.scored(&sb, fmt.Sprintf("%s corner %d: %s", v.Kind, v.Year, v.Position.Name()), v.Score)
	case *analysis.DayReport:
		r.scored(&sb, v.Date, v.Score)
	case *analysis.ChartReport:
		r.chart(&sb, v)
	case []*analysis.DayReport:
		days(&sb, v)
	case []analysis.MonthRanking:
		for _, m := range v {
			sb.WriteString(fmt.Sprintf("## %04d-%02d\n\n", m.Year, m.Month))
			days(&sb, m.Days)
			sb.WriteString("\n")
		}
	case *analysis.DirectionSummary:
		sb.WriteString(fmt.Sprintf("## Directions for indicator %d in %d\n\n", v.Indicator, v.Year))
		sb.WriteString("| Direction | Quality | Score | Rating |\n|-----------|---------|-------|--------|\n")
		for _, d := range v.Directions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
				d.Position.Name(), d.Mansion, d.Score.Overall, ratingLabel(d.Score.Rating)))
		}
	case *analysis.PersonalReport:
		sb.WriteString(fmt.Sprintf("## Indicator %d: %s (%s group)\n\n", v.Indicator, v.Record.Name, v.Group))
		sb.WriteString("| Direction | Quality |\n|-----------|---------|\n")
		for _, q := range append(append([]analysis.DirectionQuality{}, v.Favorable...), v.Unfavorable...) {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", q.Position.Name(), q.Mansion))
		}
	case cycle.Resolution:
		sb.WriteString(fmt.Sprintf("## Year %d: period %d (%d-%d)\n\n", v.Year, v.Epoch.Ordinal, v.Epoch.Start, v.Epoch.End))
		sb.WriteString(fmt.Sprintf("- Annual center: %d\n", v.Center))
		if v.Month != 0 {
			sb.WriteString(fmt.Sprintf("- Month %d center: %d\n", v.Month, v.MonthCenter))
		}
	default:
		return fmt.Errorf("markdown renderer: unsupported report type %T", report)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) scored(sb *strings.Builder, title string, s *scoring.Result) {
	sb.WriteString(fmt.Sprintf("## %s: %s (%d/100)\n\n", title, ratingLabel(s.Rating), s.Overall))

	sb.WriteString("| Factor | Score | Weight |\n|--------|-------|--------|\n")
	for _, sub := range s.SubScores {
		sb.WriteString(fmt.Sprintf("| %s | %d | %.2f |\n", sub.Key, sub.Value, sub.Weight))
	}
	sb.WriteString("\n")

	r.recommendations(sb, s.Recommendations)
}

func (r *MarkdownRenderer) chart(sb *strings.Builder, v *analysis.ChartReport) {
	sb.WriteString(fmt.Sprintf("## Chart %d: center %d\n\n", v.Cycle.Year, v.Center))
	sb.WriteString("| Position | Star | Score | Rating |\n|----------|------|-------|--------|\n")
	for _, p := range v.Positions {
		sb.WriteString(fmt.Sprintf("| %s | %d %s | %d | %s |\n",
			p.Position.Name(), p.Star, p.Record.Name, p.Score.Overall, ratingLabel(p.Score.Rating)))
	}
	sb.WriteString("\n")
	r.recommendations(sb, v.Recommendations)
}

func (r *MarkdownRenderer) recommendations(sb *strings.Builder, recs []scoring.Recommendation) {
	if len(recs) == 0 {
		return
	}
	sb.WriteString("### Recommendations\n\n")
	for _, line := range render(r.Catalog, recs) {
		sb.WriteString(fmt.Sprintf("- %s\n", line))
	}
}

func days(sb *strings.Builder, v []*analysis.DayReport) {
	sb.WriteString("| # | Date | Score | Rating |\n|---|------|-------|--------|\n")
	for i, d := range v {
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n", i+1, d.Date, d.Score.Overall, ratingLabel(d.Score.Rating)))
	}
}

func ratingLabel(rating string) string {
	return strings.ReplaceAll(rating, "_", " ")
}
