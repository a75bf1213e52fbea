package sqlite

import (
	"fmt"
	"strings"

	gsp "github.com/Hakukano/FLP-Go-GSP"
)

// Renames maps logical field names to physical column names. Fields absent
// from the table pass through unchanged.
type Renames map[string]string

// Types maps field names to the shape used to parse their literal operands.
// Referencing a field absent from this table is a compilation error.
type Types map[string]Type

// Interpret compiles expr into a SQLite WHERE fragment with positional `?`
// placeholders and the bind values in placeholder order, left to right.
// The first unknown-field or literal-parse error aborts the compilation;
// no partial fragment is returned.
func Interpret(expr gsp.Expr, renames Renames, types Types) (string, []Value, error) {
	switch n := expr.(type) {
	case gsp.And:
		return compileBinary(n.Left, n.Right, "AND", renames, types)
	case gsp.Or:
		return compileBinary(n.Left, n.Right, "OR", renames, types)
	case gsp.Not:
		inner, binds, err := Interpret(n.Expr, renames, types)
		if err != nil {
			return "", nil, err
		}
		return "(NOT " + inner + ")", binds, nil
	case gsp.Equal:
		return compileCompare(n.Field, "=", n.Target, renames, types)
	case gsp.EqualFold:
		// LIKE without wildcards: SQLite's LIKE is case-insensitive for
		// ASCII, which is exactly the `~` semantics. The operand is used
		// as-is; no metacharacter translation happens here.
		return compileCompare(n.Field, "LIKE", n.Target, renames, types)
	case gsp.Greater:
		return compileCompare(n.Field, ">", n.Target, renames, types)
	case gsp.Less:
		return compileCompare(n.Field, "<", n.Target, renames, types)
	case gsp.Wildcard:
		// The glob operand is translated before type-parsing. This is the
		// only place `*` and `?` are mapped, so a literal `%` or `_` in the
		// operand passes through and translation cannot happen twice.
		return compileCompare(n.Field, "LIKE", translateWildcard(n.Target), renames, types)
	case gsp.Regex:
		// SQLite has no REGEXP operator unless the host registers one, so a
		// regex comparison degrades to plain equality on the pattern text.
		return compileCompare(n.Field, "=", n.Target, renames, types)
	case gsp.In:
		return compileIn(n, renames, types)
	case gsp.Null:
		// No bind is produced, but the field must still be declared.
		if _, ok := types[n.Field]; !ok {
			return "", nil, &UnknownFieldError{Field: n.Field}
		}
		return column(n.Field, renames) + " IS NULL", nil, nil
	default:
		return "", nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func compileBinary(left, right gsp.Expr, op string, renames Renames, types Types) (string, []Value, error) {
	leftSQL, leftBinds, err := Interpret(left, renames, types)
	if err != nil {
		return "", nil, err
	}
	rightSQL, rightBinds, err := Interpret(right, renames, types)
	if err != nil {
		return "", nil, err
	}
	return "(" + leftSQL + " " + op + " " + rightSQL + ")", append(leftBinds, rightBinds...), nil
}

func compileCompare(field, op, literal string, renames Renames, types Types) (string, []Value, error) {
	bind, err := parseLiteral(field, literal, types)
	if err != nil {
		return "", nil, err
	}
	return column(field, renames) + " " + op + " ?", []Value{bind}, nil
}

func compileIn(n gsp.In, renames Renames, types Types) (string, []Value, error) {
	// An empty candidate list contains nothing: emit a constant-false
	// fragment with no binds. The tables are not consulted.
	if len(n.Targets) == 0 {
		return "FALSE", nil, nil
	}

	binds := make([]Value, 0, len(n.Targets))
	marks := make([]string, len(n.Targets))
	for i, target := range n.Targets {
		bind, err := parseLiteral(n.Field, target, types)
		if err != nil {
			return "", nil, err
		}
		binds = append(binds, bind)
		marks[i] = "?"
	}
	return column(n.Field, renames) + " IN (" + strings.Join(marks, ", ") + ")", binds, nil
}

// parseLiteral resolves the field's declared shape and parses the literal
// against it.
func parseLiteral(field, literal string, types Types) (Value, error) {
	t, ok := types[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	v, err := t.Parse(literal)
	if err != nil {
		return nil, &ParseError{Field: field, Literal: literal, Type: t, Err: err}
	}
	return v, nil
}

// column resolves the physical column name for a field.
func column(field string, renames Renames) string {
	if col, ok := renames[field]; ok {
		return col
	}
	return field
}

// translateWildcard maps the glob metacharacters onto their LIKE
// equivalents: `*` to `%` and `?` to `_`.
func translateWildcard(target string) string {
	return strings.NewReplacer("*", "%", "?", "_").Replace(target)
}
