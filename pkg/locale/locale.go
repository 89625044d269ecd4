// Package locale turns recommendation template keys into sentences using the
// templates carried by the rule set.
package locale

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/fault"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/scoring"
)

// FragmentPrefix prefixes the catalog key of a recommendation fragment.
const FragmentPrefix = "fragment."

// Catalog renders recommendations in one language. Keys missing from that
// language fall back to English.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
	known   map[string]bool
}

// New builds a catalog from the templates of rs for the supported language
// closest to lang. Keys the language lacks are taken from English.
func New(rs *rules.RuleSet, lang string) (*Catalog, error) {
	want, err := language.Parse(lang)
	if err != nil {
		return nil, fault.Invalid("language", lang, "not a BCP 47 tag")
	}

	supported := []language.Tag{language.English}
	names := []string{rules.DefaultLanguage}
	others := make([]string, 0, len(rs.Templates))
	for l := range rs.Templates {
		if l != rules.DefaultLanguage {
			others = append(others, l)
		}
	}
	sort.Strings(others)
	for _, l := range others {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("template language %q: %w", l, err)
		}
		supported = append(supported, tag)
		names = append(names, l)
	}

	tag, name := language.English, rules.DefaultLanguage
	if _, idx, conf := language.NewMatcher(supported).Match(want); conf != language.No {
		tag, name = supported[idx], names[idx]
	}

	entries := make(map[string]string, len(rs.Templates[rules.DefaultLanguage]))
	for k, v := range rs.Templates[rules.DefaultLanguage] {
		entries[k] = v
	}
	for k, v := range rs.Templates[name] {
		entries[k] = v
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]bool, len(entries))
	for k, v := range entries {
		if err := b.SetString(tag, k, v); err != nil {
			return nil, fmt.Errorf("template %s/%s: %w", name, k, err)
		}
		known[k] = true
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
		known:   known,
	}, nil
}

// Language returns the language the catalog renders in.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Render returns the sentence for r. Arguments with a fragment entry are
// replaced by it. A template without an entry renders as its canonical form.
func (c *Catalog) Render(r scoring.Recommendation) string {
	if !c.known[r.Template] {
		return r.String()
	}
	args := make([]any, len(r.Args))
	for i, a := range r.Args {
		args[i] = c.Fragment(a)
	}
	return c.printer.Sprintf(r.Template, args...)
}

// RenderAll renders recs in order.
func (c *Catalog) RenderAll(recs []scoring.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.Render(r))
	}
	return out
}

// Fragment returns the text of a fragment key, or the key itself.
func (c *Catalog) Fragment(key string) string {
	if !c.known[FragmentPrefix+key] {
		return key
	}
	return c.printer.Sprintf(FragmentPrefix + key)
}
