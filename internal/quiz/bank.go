// Package quiz runs the ten-question personality quiz and scores it.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var embeddedBank []byte

// Option is one answer choice and the personality type it votes for.
type Option struct {
	Key  string `yaml:"key" json:"key"`
	Text string `yaml:"text" json:"text"`
	Type string `yaml:"type" json:"-"`
}

type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Option returns the option with the given key.
func (q Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Profile is the static description of one personality type.
type Profile struct {
	Type        string   `yaml:"type" json:"type"`
	Description string   `yaml:"description" json:"description"`
	Majors      []string `yaml:"majors" json:"majors"`
	Careers     []string `yaml:"careers" json:"careers"`
}

// Bank is an immutable question list plus the type profiles in canonical order.
type Bank struct {
	Profiles  []Profile  `yaml:"profiles"`
	Questions []Question `yaml:"questions"`
}

// ParseBank decodes and validates a YAML question bank. Question ids must
// increase and every option must vote for a known profile.
func ParseBank(raw []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode quiz bank: %w", err)
	}
	if len(b.Profiles) == 0 || len(b.Questions) == 0 {
		return nil, errors.New("quiz bank needs profiles and questions")
	}
	known := make(map[string]bool, len(b.Profiles))
	for _, p := range b.Profiles {
		if known[p.Type] {
			return nil, fmt.Errorf("duplicate profile %q", p.Type)
		}
		known[p.Type] = true
	}
	prev := 0
	for _, q := range b.Questions {
		if q.ID <= prev {
			return nil, fmt.Errorf("question id %d is not increasing", q.ID)
		}
		prev = q.ID
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", q.ID)
		}
		seen := map[string]bool{}
		for _, o := range q.Options {
			if seen[o.Key] {
				return nil, fmt.Errorf("question %d: duplicate option %q", q.ID, o.Key)
			}
			seen[o.Key] = true
			if !known[o.Type] {
				return nil, fmt.Errorf("question %d option %s: unknown type %q", q.ID, o.Key, o.Type)
			}
		}
	}
	return &b, nil
}

var defaultBank = mustDefaultBank()

func mustDefaultBank() *Bank {
	b, err := ParseBank(embeddedBank)
	if err != nil {
		panic(err)
	}
	return b
}

// DefaultBank returns the embedded ten-question bank.
func DefaultBank() *Bank { return defaultBank }

func (b *Bank) Len() int { return len(b.Questions) }

// Profile looks up a personality type.
func (b *Bank) Profile(typ string) (Profile, bool) {
	for _, p := range b.Profiles {
		if p.Type == typ {
			return p, true
		}
	}
	return Profile{}, false
}

func (b *Bank) question(id int) (Question, bool) {
	for _, q := range b.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
