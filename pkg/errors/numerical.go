package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// NumericalInstabilityError は数値セルに NaN や Inf が含まれる場合のエラーです。
// NaN は自分自身と等しくならないため、分割候補や投票の集計キーとして使えません。
type NumericalInstabilityError struct {
	Operation string
	Row       int
	Column    string
	Value     float64
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("scitree: numerical instability detected in %s at row %d, column '%s': %v",
		e.Operation, e.Row, e.Column, e.Value)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, row int, column string, value float64) error {
	return errors.WithStack(&NumericalInstabilityError{
		Operation: operation,
		Row:       row,
		Column:    column,
		Value:     value,
	})
}

// CheckScalar checks a single cell value for NaN or Inf.
func CheckScalar(operation string, value float64, row int, column string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, row, column, value)
	}
	return nil
}
