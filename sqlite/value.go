package sqlite

import (
	"fmt"
	"strconv"
	"time"
)

// Type is the declared shape of a field. It carries no value; it only
// states how a literal operand for that field must be parsed.
type Type int

const (
	TypeBigInt Type = iota
	TypeBlob
	TypeBoolean
	TypeDateTime
	TypeInteger
	TypeReal
	TypeText
)

func (t Type) String() string {
	switch t {
	case TypeBigInt:
		return "bigint"
	case TypeBlob:
		return "blob"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeText:
		return "text"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is a typed bind value produced by parsing a literal operand against
// a field's declared shape.
//
// This is a sealed interface - only the seven shapes below implement it,
// which keeps the type switches in Interpret and BindArgs exhaustive.
type Value interface {
	valueNode() // Marker method - seals interface to this package
}

// BigInt is a 64-bit integer bind value.
type BigInt int64

// Blob is a raw-bytes bind value.
type Blob []byte

// Boolean is a boolean bind value.
type Boolean bool

// DateTime is a UTC timestamp bind value.
type DateTime time.Time

// Integer is a 32-bit integer bind value.
type Integer int32

// Real is a floating-point bind value.
type Real float64

// Text is a string bind value.
type Text string

func (BigInt) valueNode()   {}
func (Blob) valueNode()     {}
func (Boolean) valueNode()  {}
func (DateTime) valueNode() {}
func (Integer) valueNode()  {}
func (Real) valueNode()     {}
func (Text) valueNode()     {}

// Parse parses a literal operand into a Value of this shape. Blob and Text
// accept any input verbatim; the remaining shapes return the underlying
// strconv or time error when the literal is malformed. Timestamps use the
// RFC 3339 layout and are normalized to UTC.
func (t Type) Parse(literal string) (Value, error) {
	switch t {
	case TypeBigInt:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, err
		}
		return BigInt(n), nil
	case TypeBlob:
		return Blob(literal), nil
	case TypeBoolean:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, err
		}
		return Boolean(b), nil
	case TypeDateTime:
		ts, err := time.Parse(time.RFC3339, literal)
		if err != nil {
			return nil, err
		}
		return DateTime(ts.UTC()), nil
	case TypeInteger:
		n, err := strconv.ParseInt(literal, 10, 32)
		if err != nil {
			return nil, err
		}
		return Integer(n), nil
	case TypeReal:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, err
		}
		return Real(f), nil
	case TypeText:
		return Text(literal), nil
	default:
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
}

// BindArgs converts bind values into database/sql positional arguments, in
// order, so the caller can execute the compiled fragment directly.
func BindArgs(values []Value) []any {
	args := make([]any, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case BigInt:
			args[i] = int64(val)
		case Blob:
			args[i] = []byte(val)
		case Boolean:
			args[i] = bool(val)
		case DateTime:
			args[i] = time.Time(val)
		case Integer:
			args[i] = int64(val)
		case Real:
			args[i] = float64(val)
		case Text:
			args[i] = string(val)
		}
	}
	return args
}
