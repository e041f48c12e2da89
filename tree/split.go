package tree

import (
	"math"

	"github.com/YuminosukeSato/scitree/core/table"
)

// Comparison is the test an internal node applies to a row's attribute value.
type Comparison uint8

const (
	// Equals matches when the row value equals the split value.
	Equals Comparison = iota
	// GreaterThan matches when both values are numeric and the row value is
	// strictly greater than the split value.
	GreaterThan
)

// Match applies the comparison to a row value and a split value.
func (c Comparison) Match(rowValue, splitValue table.Value) bool {
	switch c {
	case Equals:
		return rowValue == splitValue
	case GreaterThan:
		a, ok := rowValue.Float()
		if !ok {
			return false
		}
		b, ok := splitValue.Float()
		if !ok {
			return false
		}
		return a > b
	default:
		return false
	}
}

// String returns "=" or ">".
func (c Comparison) String() string {
	if c == GreaterThan {
		return ">"
	}
	return "="
}

// Split references one attribute test: column, comparison and value.
type Split struct {
	Column int
	Kind   Comparison
	Value  table.Value
}

// Matches reports whether row satisfies the split. The row must be long
// enough to hold Column.
func (s Split) Matches(row table.Row) bool {
	return s.Kind.Match(row[s.Column], s.Value)
}

// Sentinel scores returned by Evaluator.Score for rejected splits.
const (
	// ScoreUnvalidated marks a split that leaves one validation partition empty.
	ScoreUnvalidated = -2.0
	// ScoreTooSmall marks a split with a training partition below the minimum
	// subset size.
	ScoreTooSmall = -1.0
)

// balanceEpsilon is subtracted from the balance term so that a perfectly
// balanced impure split never ties a pure one.
const balanceEpsilon = 0.001

// Evaluator scores candidate splits of a row subset.
type Evaluator struct {
	tbl           table.Table
	outcome       int
	minSubsetSize int
}

// NewEvaluator returns an evaluator for the given outcome column. Splits
// leaving fewer than minSubsetSize rows on either side score ScoreTooSmall.
func NewEvaluator(tbl table.Table, outcome, minSubsetSize int) *Evaluator {
	return &Evaluator{tbl: tbl, outcome: outcome, minSubsetSize: minSubsetSize}
}

// Partition splits rows into those matching s and those that do not,
// preserving order.
func (e *Evaluator) Partition(s Split, rows []int) (match, nonMatch []int) {
	for _, r := range rows {
		if s.Kind.Match(e.tbl.At(r, s.Column), s.Value) {
			match = append(match, r)
		} else {
			nonMatch = append(nonMatch, r)
		}
	}
	return match, nonMatch
}

// Score rates s over rows. Higher is better; 1 means both sides are pure.
// When validation rows are given and the split leaves either validation side
// empty, the score is ScoreUnvalidated.
func (e *Evaluator) Score(s Split, rows, validation []int) float64 {
	if len(validation) > 0 {
		vm, vn := e.Partition(s, validation)
		if len(vm) == 0 || len(vn) == 0 {
			return ScoreUnvalidated
		}
	}

	match, nonMatch := e.Partition(s, rows)
	if len(match) < e.minSubsetSize || len(nonMatch) < e.minSubsetSize {
		return ScoreTooSmall
	}

	total := float64(len(rows))
	pureRows := 0
	if e.pure(match) {
		pureRows += len(match)
	}
	if e.pure(nonMatch) {
		pureRows += len(nonMatch)
	}
	percentPure := float64(pureRows) / total

	if pureRows == len(rows) {
		return percentPure
	}
	balance := 1 - math.Abs(float64(len(match)-len(nonMatch)))/total - balanceEpsilon
	return balance*(1-percentPure) + percentPure
}

// pure reports whether rows is non-empty and has a single outcome.
func (e *Evaluator) pure(rows []int) bool {
	if len(rows) == 0 {
		return false
	}
	first := e.tbl.At(rows[0], e.outcome)
	for _, r := range rows[1:] {
		if e.tbl.At(r, e.outcome) != first {
			return false
		}
	}
	return true
}
