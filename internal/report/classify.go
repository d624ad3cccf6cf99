package report

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one entry of the ordered classification table. A rule matches
// when the lower-cased label contains every marker in All, at least one
// marker in Any (if Any is non-empty), and no marker in None.
type Rule struct {
	Label Status   `yaml:"label"`
	All   []string `yaml:"all,omitempty"`
	Any   []string `yaml:"any,omitempty"`
	None  []string `yaml:"none,omitempty"`
}

func (r Rule) matches(lower string) bool {
	for _, m := range r.All {
		if !strings.Contains(lower, m) {
			return false
		}
	}
	if len(r.Any) > 0 {
		hit := false
		for _, m := range r.Any {
			if strings.Contains(lower, m) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, m := range r.None {
		if strings.Contains(lower, m) {
			return false
		}
	}
	return true
}

// defaultRules encodes the known marker vocabulary of the registry.
// Order matters: the label sets overlap ("Pendiente OP" contains an
// order marker), so the first matching rule wins. Misspellings seen in
// real data ("fendiente") are listed as additional markers.
func defaultRules() []Rule {
	return []Rule{
		{Label: StatusClosed, All: []string{"op"}, Any: []string{"emit", "gener"}, None: []string{"pend"}},
		{Label: StatusPending, Any: []string{"pend", "pte", "fend"}},
		{Label: StatusInPipeline, Any: []string{"pipe"}},
	}
}

// Classifier maps free-text status labels to the closed taxonomy.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier with the built-in rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewClassifierFromRules builds a classifier from an explicit rule table.
func NewClassifierFromRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// LoadClassifier reads a rule table from a YAML file. An empty path
// returns the built-in rules.
func LoadClassifier(path string) (*Classifier, error) {
	if path == "" {
		return NewClassifier(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	for i, r := range doc.Rules {
		switch r.Label {
		case StatusClosed, StatusPending, StatusInPipeline, StatusUnclassified:
		default:
			return nil, fmt.Errorf("rules file %s: rule %d has unknown label %q", path, i, r.Label)
		}
	}

	return &Classifier{rules: doc.Rules}, nil
}

// Classify resolves a raw status label. Unrecognized text falls to
// StatusUnclassified; this function never fails on unexpected input.
func (c *Classifier) Classify(raw string) Status {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range c.rules {
		if r.matches(lower) {
			return r.Label
		}
	}
	return StatusUnclassified
}
