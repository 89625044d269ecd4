package rules

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML rule file and overlays it on the built-in defaults.
// Sections absent from the file keep their default values. The result is
// validated before it is returned.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data on the built-in defaults and validates the result.
func Parse(data []byte) (*RuleSet, error) {
	rs := Default()
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}
	return rs, nil
}

// Dump writes the rule set as YAML.
func Dump(w io.Writer, rs *RuleSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return enc.Close()
}
