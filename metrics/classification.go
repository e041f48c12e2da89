// Package metrics は予測精度の評価指標とベンチマーク集計を提供します。
package metrics

import (
	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/core/parallel"
	"github.com/YuminosukeSato/scitree/core/table"
	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// Accuracy は正解率（0〜1）を計算する
func Accuracy(yTrue, yPred []table.Value) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Accuracy")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// Score は rows の各行を p で予測し、目的変数と一致した割合をパーセント（0〜100）で返す
func Score(p model.Predictor, tbl table.Table, outcome string, rows []int) (float64, error) {
	col, err := tbl.ColumnIndex(outcome)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Score")
	}

	yTrue := make([]table.Value, len(rows))
	for i, r := range rows {
		yTrue[i] = tbl.At(r, col)
	}
	yPred, err := Predictions(p, tbl, rows)
	if err != nil {
		return 0, err
	}
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 100 * acc, nil
}

// parallelThreshold を超える行数の予測は CPU コア数に分割して並列に行う
const parallelThreshold = 1000

// Predictions は rows の各行の予測値を返す。回帰の評価で Floats と組み合わせて使う。
// p は並行呼び出しに対して安全でなければならない
func Predictions(p model.Predictor, tbl table.Table, rows []int) ([]table.Value, error) {
	out := make([]table.Value, len(rows))
	errs := make([]error, len(rows))
	parallel.ParallelizeWithThreshold(len(rows), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i], errs[i] = p.Predict(tbl.Row(rows[i]))
		}
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", rows[i])
		}
	}
	return out, nil
}
