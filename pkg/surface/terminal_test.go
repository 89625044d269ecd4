package surface_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/indicator"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/surface"
)

func sampleDirection(t *testing.T) *analysis.DirectionReport {
	t.Helper()
	p, err := indicator.NewProfile(1990, 0, 0, indicator.Male, "")
	if err != nil {
		t.Fatalf("NewProfile() error: %v", err)
	}
	rep, err := analysis.NewDefault().PersonalDirection(p, compass.North, 2024)
	if err != nil {
		t.Fatalf("PersonalDirection() error: %v", err)
	}
	return rep
}

func catalog(t *testing.T) *locale.Catalog {
	t.Helper()
	c, err := locale.New(rules.Default(), "en")
	if err != nil {
		t.Fatalf("locale.New() error: %v", err)
	}
	return c
}

func TestTerminalRenderer_Direction(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{Catalog: catalog(t)}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleDirection(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"North in 2024: poor (54/100)",
		"Breakdown:",
		"personal",
		"jue_ming",
		"Recommendations:",
		"Activate White One with a small water feature.",
		"Favorable directions:",
		"North-East",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestTerminalRenderer_CanonicalWithoutCatalog(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleDirection(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "recommend.enhance(White One, water_feature)") {
		t.Errorf("expected canonical recommendation, got:\n%s", buf.String())
	}
}

func TestTerminalRenderer_Chart(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	rep, err := analysis.NewDefault().AnnualChart(2024)
	if err != nil {
		t.Fatalf("AnnualChart() error: %v", err)
	}
	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, rep); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Chart 2024: center 9, period 9") {
		t.Errorf("missing chart header:\n%s", output)
	}
	if !strings.Contains(output, "center 9") || !strings.Contains(output, "Purple Nine") {
		t.Errorf("missing center cell:\n%s", output)
	}
}

func TestTerminalRenderer_Days(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	days, err := analysis.NewDefault().BestDays(2024, 5, indicator.Travel, nil, 3)
	if err != nil {
		t.Fatalf("BestDays() error: %v", err)
	}
	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, days); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got := strings.Count(buf.String(), "2024-05-"); got != 3 {
		t.Errorf("expected 3 day lines, got %d:\n%s", got, buf.String())
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleDirection(t)); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestTerminalRenderer_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, 42); err == nil {
		t.Error("expected error for unsupported report type")
	}
}

func TestJSONRenderer(t *testing.T) {
	rep := sampleDirection(t)

	var plain bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&plain, rep); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	var decoded analysis.DirectionReport
	if err := json.Unmarshal(plain.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a direction report: %v", err)
	}
	if decoded.Score.Overall != 54 || decoded.Position != compass.North {
		t.Errorf("decoded = %d at %s", decoded.Score.Overall, decoded.Position)
	}

	var withMsgs bytes.Buffer
	if err := (&surface.JSONRenderer{Catalog: catalog(t)}).Render(&withMsgs, rep); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	var wrapped struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(withMsgs.Bytes(), &wrapped); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(wrapped.Messages) != 2 || wrapped.Messages[0] != "Activate White One with a small water feature." {
		t.Errorf("messages = %v", wrapped.Messages)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	rep, err := analysis.NewDefault().DayQuality(date, indicator.Wedding)
	if err != nil {
		t.Fatalf("DayQuality() error: %v", err)
	}
	var buf bytes.Buffer
	if err := (&surface.MarkdownRenderer{Catalog: catalog(t)}).Render(&buf, rep); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()
	if !strings.HasPrefix(output, "## 2024-03-15:") {
		t.Errorf("unexpected heading:\n%s", output)
	}
	if !strings.Contains(output, "| variation |") {
		t.Errorf("missing variation row:\n%s", output)
	}
	if !strings.Contains(output, "### Recommendations") {
		t.Errorf("missing recommendations:\n%s", output)
	}
}

func TestNew(t *testing.T) {
	for _, f := range []string{"", surface.FormatText, surface.FormatJSON, surface.FormatMarkdown} {
		if _, err := surface.New(f, nil); err != nil {
			t.Errorf("New(%q) error: %v", f, err)
		}
	}
	if _, err := surface.New("xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
