// Package flow implements the interpreted animation format: a JSON
// abstract syntax tree of scoped variables, functions, and pixel
// operations evaluated one frame at a time.
package flow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies which variant of the Literal value lattice a value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Literal is a dynamically-typed Flow value: null, boolean, integer,
// float, or string. The zero value is Null.
type Literal struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func Null() Literal           { return Literal{kind: KindNull} }
func Bool(v bool) Literal     { return Literal{kind: KindBoolean, b: v} }
func Int(v int64) Literal     { return Literal{kind: KindInteger, i: v} }
func Float(v float64) Literal { return Literal{kind: KindFloat, f: v} }
func Str(v string) Literal    { return Literal{kind: KindString, s: v} }

func (l Literal) Kind() Kind  { return l.kind }
func (l Literal) IsNull() bool { return l.kind == KindNull }
func (l Literal) isNumeric() bool { return l.kind == KindInteger || l.kind == KindFloat }

// rawInt, rawFloat, rawBool, rawString return the underlying value
// without any coercion; callers must already know the Kind.
func (l Literal) rawInt() int64     { return l.i }
func (l Literal) rawFloat() float64 { return l.f }
func (l Literal) rawBool() bool     { return l.b }
func (l Literal) rawString() string { return l.s }

func (l Literal) asF64() float64 {
	if l.kind == KindInteger {
		return float64(l.i)
	}
	return l.f
}

func (l Literal) String() string {
	switch l.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		if l.b {
			return "true"
		}
		return "false"
	case KindInteger:
		return fmt.Sprintf("%d", l.i)
	case KindFloat:
		return fmt.Sprintf("%g", l.f)
	case KindString:
		return l.s
	}
	return ""
}

// MarshalJSON serializes the Literal as whichever untagged JSON value
// matches its Kind, so that Literal <-> JSON round-trips identically.
func (l Literal) MarshalJSON() ([]byte, error) {
	switch l.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBoolean:
		return json.Marshal(l.b)
	case KindInteger:
		return json.Marshal(l.i)
	case KindFloat:
		data, err := json.Marshal(l.f)
		if err != nil {
			return nil, err
		}
		// UnmarshalJSON reads a number without '.', 'e' or 'E' as an
		// integer, so an integral float keeps a fractional part.
		if !strings.ContainsAny(string(data), ".eE") {
			data = append(data, ".0"...)
		}
		return data, nil
	case KindString:
		return json.Marshal(l.s)
	default:
		return nil, fmt.Errorf("flow: literal has unknown kind %d", l.kind)
	}
}

func (l *Literal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*l = Null()
	case s == "true":
		*l = Bool(true)
	case s == "false":
		*l = Bool(false)
	case len(s) > 0 && s[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*l = Str(str)
	case strings.ContainsAny(s, ".eE"):
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*l = Float(f)
	default:
		var i int64
		if err := json.Unmarshal(data, &i); err == nil {
			*l = Int(i)
			return nil
		}
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*l = Float(f)
	}
	return nil
}

// Boolean coerces the literal to a boolean per the conversion table:
// null is falsy, numbers are compared against zero, strings are
// non-empty-is-true.
func (l Literal) Boolean() (bool, error) {
	switch l.kind {
	case KindNull:
		return false, nil
	case KindBoolean:
		return l.b, nil
	case KindInteger:
		return l.i != 0, nil
	case KindFloat:
		return l.f != 0.0, nil
	case KindString:
		return len(l.s) > 0, nil
	}
	return false, newConversionError(KindBoolean, l.kind)
}

// nullableInteger implements the "integer" column of the coercion
// table: null passes through as nil, booleans and strings error.
func (l Literal) nullableInteger() (*int64, error) {
	switch l.kind {
	case KindNull:
		return nil, nil
	case KindInteger:
		v := l.i
		return &v, nil
	case KindFloat:
		v := int64(l.f)
		return &v, nil
	default:
		return nil, newConversionError(KindInteger, l.kind)
	}
}

func (l Literal) nullableFloat() (*float64, error) {
	switch l.kind {
	case KindNull:
		return nil, nil
	case KindInteger:
		v := float64(l.i)
		return &v, nil
	case KindFloat:
		v := l.f
		return &v, nil
	default:
		return nil, newConversionError(KindFloat, l.kind)
	}
}

func (l Literal) nullableString() (*string, error) {
	switch l.kind {
	case KindNull:
		return nil, nil
	case KindString:
		v := l.s
		return &v, nil
	default:
		return nil, newConversionError(KindString, l.kind)
	}
}

// NonNullInteger additionally rejects Null, per the "non-null variants"
// rule in the coercion table.
func (l Literal) NonNullInteger() (int64, error) {
	p, err := l.nullableInteger()
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, newConversionError(KindInteger, KindNull)
	}
	return *p, nil
}

func (l Literal) NonNullFloat() (float64, error) {
	p, err := l.nullableFloat()
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, newConversionError(KindFloat, KindNull)
	}
	return *p, nil
}

func (l Literal) NonNullString() (string, error) {
	p, err := l.nullableString()
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", newConversionError(KindString, KindNull)
	}
	return *p, nil
}

// Equal reports whether two literals compare equal under the Equal
// comparator (see Compare).
func (l Literal) Equal(other Literal) (bool, error) {
	ord, err := l.Compare(other)
	if err != nil {
		return false, err
	}
	return ord == 0, nil
}

// Compare implements §4.4.3's comparison rules: matching numeric kinds
// (integer/float promote to float), matching strings (lexicographic),
// any pairing involving a boolean (the other side coerces to boolean),
// and null-vs-null. Any other pairing is a TypeError::Comparison.
func (l Literal) Compare(other Literal) (int, error) {
	switch {
	case l.isNumeric() && other.isNumeric():
		return cmpFloat(l.asF64(), other.asF64()), nil
	case l.kind == KindString && other.kind == KindString:
		return strings.Compare(l.s, other.s), nil
	case l.kind == KindBoolean || other.kind == KindBoolean:
		lb, _ := l.Boolean()
		rb, _ := other.Boolean()
		return cmpBool(lb, rb), nil
	case l.kind == KindNull && other.kind == KindNull:
		return 0, nil
	default:
		return 0, newComparisonError(l.kind, other.kind)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}
