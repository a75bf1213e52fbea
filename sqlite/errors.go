package sqlite

import "fmt"

// UnknownFieldError reports a leaf referencing a field that is absent from
// the type table. It aborts the whole compilation.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q: not declared in the type table", e.Field)
}

// ParseError reports a literal operand that cannot be parsed into its
// field's declared shape. It aborts the whole compilation.
type ParseError struct {
	Field   string // field whose declared shape rejected the literal
	Literal string // the offending operand, after any wildcard translation
	Type    Type   // the declared shape
	Err     error  // underlying strconv or time error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q as %s: %v", e.Field, e.Literal, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
