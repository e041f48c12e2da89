// Package table provides the read-only in-memory table consumed by tree and
// forest induction: named columns, rows of mixed categorical and numeric
// values.
package table

import (
	"strconv"
	"strings"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Kind tells whether a Value is a categorical symbol or a number.
type Kind uint8

const (
	// Categorical values are opaque symbols compared for equality.
	Categorical Kind = iota
	// Numeric values are real numbers and may be thresholded.
	Numeric
)

// Value is a single table cell. It is comparable, so it can be used as a map
// key when counting outcomes. The zero Value is the empty categorical symbol.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Str returns a categorical value.
func Str(s string) Value {
	return Value{kind: Categorical, str: s}
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{kind: Numeric, num: f}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether v holds a number.
func (v Value) IsNumeric() bool { return v.kind == Numeric }

// Float returns the numeric value; categorical values return 0, false.
func (v Value) Float() (float64, bool) {
	if v.kind != Numeric {
		return 0, false
	}
	return v.num, true
}

// String renders numbers without a trailing ".0" for integral values, so 17
// prints as "17" like the source data.
func (v Value) String() string {
	if v.kind == Numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Compare orders values: numbers before symbols, numbers by magnitude,
// symbols lexicographically. It returns -1, 0 or +1.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind == Numeric {
			return -1
		}
		return 1
	}
	if a.kind == Numeric {
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.str, b.str)
}

// Row is one record; its length matches the table's column count.
type Row []Value

// ParseRow builds a Row from Go literals: strings become categorical values,
// integer and floating point kinds become numeric values, and an existing
// Value is kept as is.
func ParseRow(values ...any) (Row, error) {
	row := make(Row, len(values))
	for i, raw := range values {
		v, err := toValue(raw)
		if err != nil {
			return nil, scierrors.Wrapf(err, "value %d", i)
		}
		row[i] = v
	}
	return row, nil
}

// MustRow is ParseRow that panics on unsupported types. Intended for tests
// and literals.
func MustRow(values ...any) Row {
	row, err := ParseRow(values...)
	if err != nil {
		panic(err)
	}
	return row
}

func toValue(raw any) (Value, error) {
	switch x := raw.(type) {
	case Value:
		return x, nil
	case string:
		return Str(x), nil
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case int:
		return Num(float64(x)), nil
	case int8:
		return Num(float64(x)), nil
	case int16:
		return Num(float64(x)), nil
	case int32:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case uint:
		return Num(float64(x)), nil
	case uint8:
		return Num(float64(x)), nil
	case uint16:
		return Num(float64(x)), nil
	case uint32:
		return Num(float64(x)), nil
	case uint64:
		return Num(float64(x)), nil
	default:
		return Value{}, scierrors.Newf("unsupported type %T", raw)
	}
}
