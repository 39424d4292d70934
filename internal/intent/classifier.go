// Package intent maps free-text questions to a category and pulls grade values
// out of them. Everything here is plain substring and pattern matching.
package intent

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the classified purpose of a question.
type Category string

const (
	CategoryGrade          Category = "grade-eligibility"
	CategoryUniversity     Category = "university"
	CategoryMajor          Category = "major"
	CategoryAdmission      Category = "admission-rate"
	CategoryEmployment     Category = "employment"
	CategoryRecommendation Category = "recommendation"
)

var knownCategories = map[Category]bool{
	CategoryGrade:          true,
	CategoryUniversity:     true,
	CategoryMajor:          true,
	CategoryAdmission:      true,
	CategoryEmployment:     true,
	CategoryRecommendation: true,
}

//go:embed rules.yaml
var embeddedRules []byte

// Rule pairs a category with its keyword set.
type Rule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Matches reports whether any keyword occurs in text.
func (r Rule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Classifier evaluates its rules in order; the first matching rule wins.
type Classifier struct {
	rules []Rule
}

// ParseRules decodes an ordered YAML rule list.
func ParseRules(raw []byte) ([]Rule, error) {
	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("decode intent rules: %w", err)
	}
	if len(rules) == 0 {
		return nil, errors.New("intent rules are empty")
	}
	for i, r := range rules {
		if !knownCategories[r.Category] {
			return nil, fmt.Errorf("intent rule %d: unknown category %q", i, r.Category)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("intent rule %d (%s): no keywords", i, r.Category)
		}
	}
	return rules, nil
}

// NewClassifier builds a classifier from an explicit ordered rule list.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

var defaultClassifier = mustDefault()

func mustDefault() *Classifier {
	rules, err := ParseRules(embeddedRules)
	if err != nil {
		panic(err)
	}
	return NewClassifier(rules)
}

// Default returns the classifier built from the embedded rule set.
func Default() *Classifier { return defaultClassifier }

// Rules returns the rule list in priority order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the first category whose keywords occur in text.
// ok is false when nothing matches.
func (c *Classifier) Classify(text string) (cat Category, ok bool) {
	for _, r := range c.rules {
		if r.Matches(text) {
			return r.Category, true
		}
	}
	return "", false
}

// Classify uses the default classifier.
func Classify(text string) (Category, bool) {
	return defaultClassifier.Classify(text)
}
