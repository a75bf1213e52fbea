// Package gsp implements GSP (General Search Parser), a small boolean
// filter-query language over named fields.
//
// A query string is parsed into a canonical expression tree which two
// backends interpret with identical boolean semantics:
//
//   - evaluate: direct boolean evaluation against an in-memory record of
//     string values, with pluggable per-field comparison rules.
//   - sqlite: compilation into a parameterized SQLite WHERE fragment with
//     an ordered list of typed bind values.
//
// Every comparison and every composite is explicitly parenthesized; there is
// no operator precedence. For example:
//
//	(("name" ~ "alice") & (!("age" > "30")))
//
// The library never executes anything: the evaluate backend returns a bool,
// the sqlite backend returns text and binds for the caller to run.
package gsp

import (
	"github.com/Hakukano/FLP-Go-GSP/internal/parser"
)

// SyntaxError is the error type returned by Parse for malformed queries.
// It carries the byte offset of the failure and what was expected there.
type SyntaxError = parser.SyntaxError

// Expr is a node of the canonical expression tree.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the interpreter backends.
//
// Composite nodes (And, Or, Not) own their operands exclusively; leaves
// (the eight comparison kinds) carry a field name and, except for Null, an
// operand. Trees are built once by Parse and are read-only afterwards, so
// the same Expr may be interpreted concurrently.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// And is the conjunction of two subexpressions.
type And struct{ Left, Right Expr }

// Or is the disjunction of two subexpressions.
type Or struct{ Left, Right Expr }

// Not is the negation of a single subexpression.
type Not struct{ Expr Expr }

// Equal tests a field for exact equality with a literal (`=`).
type Equal struct{ Field, Target string }

// EqualFold tests a field for case-insensitive equality with a literal (`~`).
type EqualFold struct{ Field, Target string }

// Greater tests whether a field orders after a literal (`>`).
type Greater struct{ Field, Target string }

// Less tests whether a field orders before a literal (`<`).
type Less struct{ Field, Target string }

// Wildcard tests a field against a shell-style pattern (`*`) where `*`
// matches any run of characters and `?` matches a single character.
type Wildcard struct{ Field, Target string }

// Regex tests a field against a regular expression (`$`).
type Regex struct{ Field, Target string }

// In tests a field for membership in an ordered candidate list (`?`).
type In struct {
	Field   string
	Targets []string
}

// Null tests whether a field is null/none (`-`). It takes no operand.
type Null struct{ Field string }

func (And) exprNode()       {}
func (Or) exprNode()        {}
func (Not) exprNode()       {}
func (Equal) exprNode()     {}
func (EqualFold) exprNode() {}
func (Greater) exprNode()   {}
func (Less) exprNode()      {}
func (Wildcard) exprNode()  {}
func (Regex) exprNode()     {}
func (In) exprNode()        {}
func (Null) exprNode()      {}

// Parse parses a query string into its canonical expression tree. Identical
// input always yields a structurally identical tree. On failure it returns a
// *SyntaxError and no partial tree.
func Parse(query string) (Expr, error) {
	rel, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return lowerRelation(rel), nil
}

// lowerRelation flattens the raw parse tree into the canonical form. The
// conversion is total: every raw tree has exactly one canonical tree.
func lowerRelation(rel parser.Relation) Expr {
	switch n := rel.(type) {
	case parser.Group:
		return lowerComparison(n.Comparison)
	case parser.And:
		return And{Left: lowerRelation(n.Left), Right: lowerRelation(n.Right)}
	case parser.Or:
		return Or{Left: lowerRelation(n.Left), Right: lowerRelation(n.Right)}
	case parser.Not:
		return Not{Expr: lowerRelation(n.Target)}
	default:
		panic("gsp: unhandled relation node") // Relation is sealed
	}
}

func lowerComparison(c parser.Comparison) Expr {
	switch c.Op {
	case parser.OpEqual:
		return Equal{Field: c.Field, Target: c.Target}
	case parser.OpEqualFold:
		return EqualFold{Field: c.Field, Target: c.Target}
	case parser.OpGreater:
		return Greater{Field: c.Field, Target: c.Target}
	case parser.OpLess:
		return Less{Field: c.Field, Target: c.Target}
	case parser.OpWildcard:
		return Wildcard{Field: c.Field, Target: c.Target}
	case parser.OpRegex:
		return Regex{Field: c.Field, Target: c.Target}
	case parser.OpAny:
		return In{Field: c.Field, Targets: c.Targets}
	case parser.OpNull:
		return Null{Field: c.Field}
	default:
		panic("gsp: unhandled comparison operator")
	}
}
