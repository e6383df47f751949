// Package icon maps window attributes to a glyph through an ordered rule list.
//
// A rule is written key=pattern, where key names a window attribute
// ("class" or "name") and pattern is a shell glob whose wildcards also span
// "/", so titles holding paths still match. A rule without "=" is
// matched against the class. The rule "*" matches every window and must be
// last.
package icon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Attrs are the window attributes a rule can match
type Attrs map[string]string

// Rule is one parsed match expression and its glyph
type Rule struct {
	Key     string
	Pattern string
	Icon    string

	matcher glob.Glob
}

// Resolver evaluates rules in order, first match wins
type Resolver struct {
	rules []Rule
}

// Spec is an unparsed rule
type Spec struct {
	Match string
	Icon  string
}

// ErrNoFallback is returned when the last rule is not the * wildcard
var ErrNoFallback = errors.New("icon rules must end with the * fallback")

// NewResolver parses specs into a Resolver
func NewResolver(specs []Spec) (*Resolver, error) {
	if len(specs) == 0 || specs[len(specs)-1].Match != "*" {
		return nil, ErrNoFallback
	}

	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		rule, err := parseRule(spec)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return &Resolver{rules: rules}, nil
}

func parseRule(spec Spec) (Rule, error) {
	key, pattern, ok := strings.Cut(spec.Match, "=")
	if !ok {
		key, pattern = "class", spec.Match
	}
	if key == "" || pattern == "" {
		return Rule{}, fmt.Errorf("invalid match %q", spec.Match)
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return Rule{Key: key, Pattern: pattern, Icon: spec.Icon, matcher: matcher}, nil
}

// Resolve returns the glyph of the first rule matching attrs
func (r *Resolver) Resolve(attrs Attrs) string {
	for _, rule := range r.rules {
		if rule.Pattern == "*" {
			return rule.Icon
		}
		value, ok := attrs[rule.Key]
		if !ok {
			continue
		}
		if rule.matcher.Match(value) {
			return rule.Icon
		}
	}
	// unreachable with a validated rule list
	return ""
}
