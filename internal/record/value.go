package record

import "strconv"

// ValueKind tags the payload stored in a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInt64
	KindFloat64
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt64:
		return "INT64"
	case KindFloat64:
		return "FLOAT64"
	case KindText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// Value is a single typed cell: NULL, a signed 64-bit integer, an IEEE-754
// double, or a UTF-8 string. The zero Value is NULL.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

func Null() Value           { return Value{kind: KindNull} }
func Int(v int64) Value     { return Value{kind: KindInt64, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat64, f: v} }
func Text(v string) Value   { return Value{kind: KindText, s: v} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// Int64 returns the integer payload. Only meaningful when Kind() == KindInt64.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload. Only meaningful when Kind() == KindFloat64.
func (v Value) Float64() float64 { return v.f }

// Text returns the string payload. Only meaningful when Kind() == KindText.
func (v Value) Text() string { return v.s }

// String renders the value for display: NULL, a decimal integer, a
// default-precision float, or the raw text.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	default:
		return "UNKNOWN"
	}
}

// Equal reports whether a and b hold the same kind and payload.
// NULL equals NULL.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindInt64:
		return a.i == b.i
	case KindFloat64:
		return a.f == b.f
	case KindText:
		return a.s == b.s
	default:
		return false
	}
}

// Less imposes a total order over values: NULL precedes every non-NULL value,
// values of different kinds order by kind tag (Int64 < Float64 < Text), and
// values of the same kind order naturally. The cross-kind order is arbitrary
// but stable; it exists so index comparators stay total. Float comparison uses
// IEEE semantics, so NaN never compares less than anything.
func Less(a, b Value) bool {
	if a.kind == KindNull {
		return b.kind != KindNull
	}
	if b.kind == KindNull {
		return false
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case KindInt64:
		return a.i < b.i
	case KindFloat64:
		return a.f < b.f
	case KindText:
		return a.s < b.s
	default:
		return false
	}
}
