// Package sqlite compiles a GSP expression into a parameterized SQLite
// WHERE fragment with an ordered list of typed bind values.
//
// The caller supplies two tables: Types declares how each field's literal
// operands are parsed (the field's shape), and Renames maps logical field
// names onto physical column names. Every placeholder in the fragment is a
// positional `?`; the returned bind values line up with the placeholders in
// order and never appear interpolated in the fragment text.
//
// This package only produces text and binds. Executing the fragment against
// a database, with BindArgs for the positional parameters, is the caller's
// concern.
package sqlite
