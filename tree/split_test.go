package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scitree/core/table"
)

func TestComparison_Match(t *testing.T) {
	tests := []struct {
		name  string
		kind  Comparison
		row   table.Value
		split table.Value
		want  bool
	}{
		{"equal symbols", Equals, table.Str("female"), table.Str("female"), true},
		{"different symbols", Equals, table.Str("male"), table.Str("female"), false},
		{"equal numbers", Equals, table.Num(17), table.Num(17), true},
		{"number never equals symbol", Equals, table.Num(17), table.Str("17"), false},
		{"greater", GreaterThan, table.Num(18), table.Num(17), true},
		{"strictly greater", GreaterThan, table.Num(17), table.Num(17), false},
		{"less", GreaterThan, table.Num(3), table.Num(17), false},
		{"symbol row value", GreaterThan, table.Str("z"), table.Num(17), false},
		{"symbol threshold", GreaterThan, table.Num(18), table.Str("a"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Match(tt.row, tt.split))
		})
	}
	assert.Equal(t, "=", Equals.String())
	assert.Equal(t, ">", GreaterThan.String())
}

func TestEvaluator_Score(t *testing.T) {
	tbl := censusTable(t)
	all := table.AllRows(tbl)
	eval := NewEvaluator(tbl, 3, 0)

	female := Split{Column: 1, Kind: Equals, Value: table.Str("female")}
	// One pure side of 3 rows out of 6, perfectly balanced.
	assert.InDelta(t, 0.999*0.5+0.5, eval.Score(female, all, nil), 1e-12)

	// Theo (Texas) against William and Henry (Germany): both sides pure.
	byName := Split{Column: 0, Kind: Equals, Value: table.Str("Theo")}
	assert.InDelta(t, 1.0, eval.Score(byName, []int{0, 4, 5}, nil), 1e-12)

	// Everything on one impure side.
	single := Split{Column: 2, Kind: Equals, Value: table.Str("Single")}
	assert.InDelta(t, -0.001, eval.Score(single, []int{1, 4, 5}, nil), 1e-12)
}

func TestEvaluator_Score_Rejections(t *testing.T) {
	tbl := censusTable(t)
	all := table.AllRows(tbl)

	female := Split{Column: 1, Kind: Equals, Value: table.Str("female")}
	eval := NewEvaluator(tbl, 3, 0)
	// Validation rows 1 and 2 are both female: the non-match side is empty.
	assert.Equal(t, ScoreUnvalidated, eval.Score(female, all, []int{1, 2}))
	assert.Greater(t, eval.Score(female, all, []int{0, 1}), 0.0)

	byName := Split{Column: 0, Kind: Equals, Value: table.Str("Theo")}
	strict := NewEvaluator(tbl, 3, 2)
	assert.Equal(t, ScoreTooSmall, strict.Score(byName, all, nil))
	assert.Greater(t, strict.Score(female, all, nil), 0.0)
}

func TestEvaluator_Partition(t *testing.T) {
	tbl := censusTable(t)
	eval := NewEvaluator(tbl, 3, 0)

	match, nonMatch := eval.Partition(Split{Column: 1, Kind: Equals, Value: table.Str("male")}, table.AllRows(tbl))
	require.Equal(t, []int{0, 4, 5}, match)
	require.Equal(t, []int{1, 2, 3}, nonMatch)
}
