// Package translator turns free-text English into shell commands by walking
// an ordered table of regular expressions. There is no language model: the
// first pattern that matches anywhere in the lower-cased input wins.
package translator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/nlterm/internal/domain"
)

// MatchResult is the winning category and its named captures.
type MatchResult struct {
	Category Category
	Pattern  string
	Groups   map[string]string
}

// Group returns the named capture, or "" when the pattern has no such group.
func (m MatchResult) Group(name string) string {
	return m.Groups[name]
}

type rule struct {
	category Category
	re       *regexp.Regexp
	render   Renderer
}

// Translator evaluates a compiled pattern table. It holds no mutable state
// and is safe for concurrent use.
type Translator struct {
	rules      []rule
	categories []Category
}

// New compiles table, preserving its order.
func New(table []Intent) (*Translator, error) {
	t := &Translator{}
	for _, intent := range table {
		if intent.Render == nil {
			return nil, fmt.Errorf("intent %s has no renderer", intent.Category)
		}
		if len(intent.Patterns) == 0 {
			return nil, fmt.Errorf("intent %s has no patterns", intent.Category)
		}
		for _, pattern := range intent.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("intent %s: compile %q: %w", intent.Category, pattern, err)
			}
			t.rules = append(t.rules, rule{category: intent.Category, re: re, render: intent.Render})
		}
		t.categories = append(t.categories, intent.Category)
	}
	return t, nil
}

// NewDefault compiles DefaultTable and panics if it is malformed.
func NewDefault() *Translator {
	t, err := New(DefaultTable())
	if err != nil {
		panic(err)
	}
	return t
}

// Categories returns the category evaluation order.
func (t *Translator) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// PatternCount returns the number of compiled patterns.
func (t *Translator) PatternCount() int {
	return len(t.rules)
}

// Match finds the first rule matching text.
func (t *Translator) Match(text string) (MatchResult, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return MatchResult{}, false
	}
	for _, r := range t.rules {
		sub := r.re.FindStringSubmatch(normalized)
		if sub == nil {
			continue
		}
		groups := make(map[string]string)
		for i, name := range r.re.SubexpNames() {
			if name != "" {
				groups[name] = sub[i]
			}
		}
		return MatchResult{Category: r.category, Pattern: r.re.String(), Groups: groups}, true
	}
	return MatchResult{}, false
}

// Render produces the command for a match.
func (t *Translator) Render(m MatchResult) string {
	for _, r := range t.rules {
		if r.category == m.Category {
			return r.render(m)
		}
	}
	return ""
}

// Translate returns the shell command for text, or false when nothing matches.
func (t *Translator) Translate(text string) (string, bool) {
	m, ok := t.Match(text)
	if !ok {
		return "", false
	}
	return t.Render(m), true
}

// template fills {name} placeholders from the match groups.
func template(format string) Renderer {
	return func(m MatchResult) string {
		pairs := make([]string, 0, len(m.Groups)*2)
		for name, value := range m.Groups {
			pairs = append(pairs, "{"+name+"}", value)
		}
		return strings.NewReplacer(pairs...).Replace(format)
	}
}

// chain renders several templates joined by the chain delimiter.
func chain(formats ...string) Renderer {
	steps := make([]Renderer, len(formats))
	for i, f := range formats {
		steps[i] = template(f)
	}
	return func(m MatchResult) string {
		out := make([]string, len(steps))
		for i, step := range steps {
			out[i] = step(m)
		}
		return strings.Join(out, domain.ChainDelimiter)
	}
}
