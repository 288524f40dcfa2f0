package fillers

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPatterns covers common interjections and low-information words.
var DefaultPatterns = []string{
	`u+h+`,
	`u+m+`,
	`e+r+m*`,
	`a+h+`,
	`h+m+`,
	`mhm`,
	`like`,
	`so`,
	`basically`,
	`actually`,
	`literally`,
}

// Vocabulary is an ordered set of whole-word match rules. It is immutable
// after construction and safe to share between jobs.
type Vocabulary struct {
	patterns []string
	rules    []*regexp.Regexp
}

type vocabularyFile struct {
	Patterns []string `yaml:"patterns"`
}

// NewVocabulary compiles patterns into anchored, case-insensitive rules.
// Blank and duplicate patterns are dropped; the first occurrence wins.
func NewVocabulary(patterns []string) (*Vocabulary, error) {
	v := &Vocabulary{}
	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		re, err := regexp.Compile(`^(?i:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("filler pattern %q: %w", p, err)
		}
		v.patterns = append(v.patterns, p)
		v.rules = append(v.rules, re)
	}
	return v, nil
}

func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultPatterns)
	if err != nil {
		panic(err)
	}
	return v
}

// LoadVocabulary reads a YAML file of the form `patterns: [...]`.
func LoadVocabulary(path string) (*Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filler vocabulary: %w", err)
	}
	var f vocabularyFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse filler vocabulary %s: %w", path, err)
	}
	if len(f.Patterns) == 0 {
		return nil, fmt.Errorf("filler vocabulary %s: no patterns", path)
	}
	return NewVocabulary(f.Patterns)
}

func (v *Vocabulary) Patterns() []string {
	return append([]string(nil), v.patterns...)
}

func (v *Vocabulary) Len() int { return len(v.rules) }

// IsFiller reports whether an already normalized word fully matches one of
// the rules. Empty words never match.
func (v *Vocabulary) IsFiller(word string) bool {
	if v == nil || word == "" {
		return false
	}
	for _, re := range v.rules {
		if re.MatchString(word) {
			return true
		}
	}
	return false
}
