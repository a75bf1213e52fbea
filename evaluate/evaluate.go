// Package evaluate interprets a GSP expression directly against an in-memory
// record of string values.
//
// This backend has no failure mode: a leaf whose field is missing from the
// rule table or from the record evaluates to false, and interpretation always
// returns a boolean.
package evaluate

import (
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"

	gsp "github.com/Hakukano/FLP-Go-GSP"
)

// Rule is the set of comparison functions applied to one field, one per
// comparison kind. Callers customize behavior by starting from DefaultRule
// and replacing individual functions; every function must be non-nil for the
// leaves that reach it.
type Rule struct {
	Equal     func(value, target string) bool
	EqualFold func(value, target string) bool
	Greater   func(value, target string) bool
	Less      func(value, target string) bool
	Wildcard  func(value, target string) bool
	Regex     func(value, target string) bool
	In        func(value string, targets []string) bool
	Null      func(value string) bool
}

// Rules maps field names to their comparison functions.
type Rules map[string]Rule

// Record maps field names to their current values. One record is evaluated
// per Interpret call and is never mutated.
type Record map[string]string

// DefaultRule returns the standard comparison behaviors: byte equality,
// Unicode case-fold equality, lexicographic ordering, `*`/`?` wildcard and
// regexp matching (a malformed pattern matches nothing), candidate-list
// containment, and a null test against "none"/"null" in any case. In the
// wildcard rule only `*` and `?` are metacharacters; brackets and braces
// match themselves.
func DefaultRule() Rule {
	return Rule{
		Equal: func(value, target string) bool {
			return value == target
		},
		EqualFold: func(value, target string) bool {
			fold := cases.Fold()
			return fold.String(value) == fold.String(target)
		},
		Greater: func(value, target string) bool {
			return value > target
		},
		Less: func(value, target string) bool {
			return value < target
		},
		Wildcard: func(value, target string) bool {
			g, err := glob.Compile(escapeWildcard(target))
			if err != nil {
				return false
			}
			return g.Match(value)
		},
		Regex: func(value, target string) bool {
			re, err := regexp.Compile(target)
			if err != nil {
				return false
			}
			return re.MatchString(value)
		},
		In: func(value string, targets []string) bool {
			return slices.Contains(targets, value)
		},
		Null: func(value string) bool {
			return strings.EqualFold(value, "none") || strings.EqualFold(value, "null")
		},
	}
}

// escapeWildcard quotes every glob metacharacter except `*` and `?`, which
// are the only two wildcards the pattern language defines. Character classes
// and brace alternates must match themselves literally.
func escapeWildcard(target string) string {
	return strings.NewReplacer(
		`\`, `\\`,
		"[", `\[`,
		"]", `\]`,
		"{", `\{`,
		"}", `\}`,
	).Replace(target)
}

// DefaultRules builds a rule table holding DefaultRule for every given field.
func DefaultRules(fields ...string) Rules {
	rules := make(Rules, len(fields))
	for _, field := range fields {
		rules[field] = DefaultRule()
	}
	return rules
}

// Interpret evaluates expr against record using the per-field rules.
// Conjunction, disjunction, and negation recurse; a leaf looks up its
// field's rule entry and current value and applies the function selected by
// its comparison kind. Either lookup missing makes the leaf false.
func Interpret(expr gsp.Expr, rules Rules, record Record) bool {
	switch n := expr.(type) {
	case gsp.And:
		return Interpret(n.Left, rules, record) && Interpret(n.Right, rules, record)
	case gsp.Or:
		return Interpret(n.Left, rules, record) || Interpret(n.Right, rules, record)
	case gsp.Not:
		return !Interpret(n.Expr, rules, record)
	case gsp.Equal:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Equal(value, n.Target)
	case gsp.EqualFold:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.EqualFold(value, n.Target)
	case gsp.Greater:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Greater(value, n.Target)
	case gsp.Less:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Less(value, n.Target)
	case gsp.Wildcard:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Wildcard(value, n.Target)
	case gsp.Regex:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Regex(value, n.Target)
	case gsp.In:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.In(value, n.Targets)
	case gsp.Null:
		rule, value, ok := resolve(n.Field, rules, record)
		return ok && rule.Null(value)
	}
	return false
}

// resolve looks up a leaf's rule entry and current value.
func resolve(field string, rules Rules, record Record) (Rule, string, bool) {
	rule, ok := rules[field]
	if !ok {
		return Rule{}, "", false
	}
	value, ok := record[field]
	if !ok {
		return Rule{}, "", false
	}
	return rule, value, true
}
