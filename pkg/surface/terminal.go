package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/cycle"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// TerminalRenderer renders reports as colored terminal output.
type TerminalRenderer struct {
	Catalog *locale.Catalog
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func ratingColor(rating string) string {
	if noColor() {
		return ""
	}
	switch rating {
	case "excellent", "very_good", "favorable", "very_auspicious", "auspicious":
		return colorGreen
	case "good", "fair", "mixed", "average":
		return colorYellow
	case "poor", "unfavorable", "inauspicious", "very_inauspicious":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report any) error {
	switch v := report.(type) {
	case *analysis.PersonalReport:
		r.personal(w, v)
	case *analysis.DirectionReport:
		r.direction(w, v)
	case *analysis.DirectionSummary:
		r.summary(w, v)
	case *analysis.ChartReport:
		r.chart(w, v)
	case *analysis.CornerReport:
		r.corner(w, v)
	case *analysis.DayReport:
		r.day(w, v)
	case []*analysis.DayReport:
		r.days(w, v)
	case []analysis.MonthRanking:
		for _, m := range v {
			fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%04d-%02d", m.Year, m.Month)))
			r.days(w, m.Days)
			fmt.Fprintln(w)
		}
	case cycle.Resolution:
		r.resolution(w, v)
	default:
		return fmt.Errorf("terminal renderer: unsupported report type %T", report)
	}
	return nil
}

func (r *TerminalRenderer) header(w io.Writer, title string, s *scoring.Result) {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("%s: %s (%d/100)",
		title, colored(s.Rating, ratingColor(s.Rating)), s.Overall)))
}

func (r *TerminalRenderer) breakdown(w io.Writer, s *scoring.Result) {
	fmt.Fprintln(w, "Breakdown:")
	for _, sub := range s.SubScores {
		fmt.Fprintf(w, "  %-10s %3d  x%.2f", sub.Key, sub.Value, sub.Weight)
		if sub.Basis != "" {
			fmt.Fprintf(w, "  %s", dim(sub.Basis))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) recommendations(w io.Writer, recs []scoring.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations.")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "Recommendations:")
	for _, line := range render(r.Catalog, recs) {
		for i, l := range wrapText(line, 70) {
			if i == 0 {
				fmt.Fprintf(w, "  • %s\n", l)
			} else {
				fmt.Fprintf(w, "    %s\n", l)
			}
		}
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) personal(w io.Writer, v *analysis.PersonalReport) {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Indicator %d (%s), %s group", v.Indicator, v.Record.Name, v.Group)))
	fmt.Fprintf(w, "Birth year %d (solar year %d), %s\n", v.Profile.BirthYear, v.SolarYear, v.Profile.Category)
	fmt.Fprintf(w, "Element %s, %s\n\n", v.Record.Element, v.Record.Nature)
	r.qualities(w, v.Favorable, v.Unfavorable)
}

func (r *TerminalRenderer) qualities(w io.Writer, good, bad []analysis.DirectionQuality) {
	fmt.Fprintln(w, "Favorable directions:")
	for _, q := range good {
		fmt.Fprintf(w, "  %s %-10s %s\n", colored("●", colorGreen), q.Position.Name(), dim(string(q.Mansion)))
	}
	fmt.Fprintln(w, "Unfavorable directions:")
	for _, q := range bad {
		fmt.Fprintf(w, "  %s %-10s %s\n", colored("●", colorRed), q.Position.Name(), dim(string(q.Mansion)))
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) direction(w io.Writer, v *analysis.DirectionReport) {
	r.header(w, fmt.Sprintf("%s in %d", v.Position.Name(), v.Year), v.Score)
	fmt.Fprintf(w, "Indicator %d, %s; home star %d, annual star %d\n\n",
		v.Indicator, v.Mansion, v.HomeStar, v.AnnualStar)
	r.breakdown(w, v.Score)
	r.recommendations(w, v.Score.Recommendations)
	if len(v.Favorable) > 0 {
		r.qualities(w, v.Favorable, v.Unfavorable)
	}
}

func (r *TerminalRenderer) summary(w io.Writer, v *analysis.DirectionSummary) {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Directions for indicator %d (%s group) in %d", v.Indicator, v.Group, v.Year)))
	for _, d := range v.Directions {
		fmt.Fprintf(w, "  %-10s %3d  %-10s %s\n",
			d.Position.Name(), d.Score.Overall,
			colored(d.Score.Rating, ratingColor(d.Score.Rating)), dim(string(d.Mansion)))
	}
	fmt.Fprintln(w)
}

// gridOrder lays the chart out with north at the top.
var gridOrder = [3][3]compass.Position{
	{compass.NorthWest, compass.North, compass.NorthEast},
	{compass.West, compass.Center, compass.East},
	{compass.SouthWest, compass.South, compass.SouthEast},
}

func (r *TerminalRenderer) chart(w io.Writer, v *analysis.ChartReport) {
	title := fmt.Sprintf("Chart %d", v.Cycle.Year)
	if v.Cycle.Month != 0 {
		title = fmt.Sprintf("Chart %04d-%02d", v.Cycle.Year, v.Cycle.Month)
	}
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("%s: center %d, period %d", title, v.Center, v.Cycle.Epoch.Ordinal)))
	if v.Cycle.Fallback {
		fmt.Fprintf(w, "%s\n\n", dim("year outside the period table, last period used"))
	}

	byPos := make(map[compass.Position]analysis.PositionReport, len(v.Positions))
	for _, p := range v.Positions {
		byPos[p.Position] = p
	}
	for _, row := range gridOrder {
		var cells []string
		for _, pos := range row {
			p := byPos[pos]
			cells = append(cells, colored(fmt.Sprintf("%-6s %d", pos, p.Star), ratingColor(p.Score.Rating)))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, "   "))
	}
	fmt.Fprintln(w)

	for _, p := range v.Positions {
		fmt.Fprintf(w, "  %-10s %d %-12s %3d  %s\n",
			p.Position.Name(), p.Star, p.Record.Name, p.Score.Overall,
			colored(p.Score.Rating, ratingColor(p.Score.Rating)))
	}
	fmt.Fprintln(w)
	r.recommendations(w, v.Recommendations)
}

func (r *TerminalRenderer) corner(w io.Writer, v *analysis.CornerReport) {
	r.header(w, fmt.Sprintf("%s corner %d", strings.ToUpper(string(v.Kind[:1]))+string(v.Kind[1:]), v.Year), v.Score)
	where := v.Position.Name()
	if v.Mansion != "" {
		where += ", " + string(v.Mansion)
	}
	fmt.Fprintf(w, "Star %d sits in the %s\n\n", v.TargetStar, where)
	r.breakdown(w, v.Score)
	r.recommendations(w, v.Score.Recommendations)
}

func (r *TerminalRenderer) day(w io.Writer, v *analysis.DayReport) {
	r.header(w, v.Date, v.Score)
	fmt.Fprintf(w, "Stars: year %d, month %d, day %d", v.YearStar, v.MonthStar, v.DayStar)
	if v.Event != "" {
		fmt.Fprintf(w, "; event %s", v.Event)
	}
	fmt.Fprint(w, "\n\n")
	r.breakdown(w, v.Score)
	r.recommendations(w, v.Score.Recommendations)
}

func (r *TerminalRenderer) days(w io.Writer, days []*analysis.DayReport) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No days.")
		return
	}
	for i, d := range days {
		fmt.Fprintf(w, "  %2d. %s  %3d  %-18s %s\n",
			i+1, d.Date, d.Score.Overall,
			colored(d.Score.Rating, ratingColor(d.Score.Rating)),
			dim(fmt.Sprintf("day star %d", d.DayStar)))
	}
}

func (r *TerminalRenderer) resolution(w io.Writer, v cycle.Resolution) {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Year %d: period %d (%d-%d, %s)",
		v.Year, v.Epoch.Ordinal, v.Epoch.Start, v.Epoch.End, v.Epoch.Element)))
	if v.Fallback {
		fmt.Fprintf(w, "%s\n", dim("year outside the period table, last period used"))
	}
	fmt.Fprintf(w, "Annual center: %d\n", v.Center)
	if v.Month != 0 {
		fmt.Fprintf(w, "Month %d center: %d\n", v.Month, v.MonthCenter)
	}
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
