// Package surface renders analysis reports for output targets: terminal,
// Markdown and JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// Renderer produces formatted output from an analysis report.
type Renderer interface {
	// Render writes the formatted report to the writer. Reports are the
	// values returned by the analysis package.
	Render(w io.Writer, report any) error
}

// Output formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// New returns the renderer for format. cat renders recommendations for the
// text and Markdown formats; nil prints their canonical form.
func New(format string, cat *locale.Catalog) (Renderer, error) {
	switch format {
	case FormatText, "":
		return &TerminalRenderer{Catalog: cat}, nil
	case FormatJSON:
		return &JSONRenderer{Catalog: cat}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{Catalog: cat}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected text, json or markdown)", format)
}

func render(cat *locale.Catalog, recs []scoring.Recommendation) []string {
	if cat == nil {
		out := make([]string, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.String())
		}
		return out
	}
	return cat.RenderAll(recs)
}
