package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// DefaultBenchmarkRuns はベンチマークの既定の実行回数
const DefaultBenchmarkRuns = 100

// Benchmark は評価関数を繰り返し実行し、結果の平均と標準偏差を集計する
type Benchmark struct {
	// Runs は実行回数。0 以下なら DefaultBenchmarkRuns
	Runs int
	// Logger は途中経過の出力先。nil なら既定のロガー
	Logger log.Logger
}

// Summary はベンチマークの集計結果
type Summary struct {
	Results []float64
	Mean    float64
	// StdDev は標本標準偏差。結果が3件未満なら 0
	StdDev float64
}

// Run は fn を Runs 回実行する。1〜10回目と以降10回ごとに途中経過をログに出力する
func (b Benchmark) Run(fn func() (float64, error)) (Summary, error) {
	runs := b.Runs
	if runs <= 0 {
		runs = DefaultBenchmarkRuns
	}
	logger := b.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("benchmark")
	}

	var s Summary
	s.Results = make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		result, err := fn()
		if err != nil {
			return s, errors.Wrapf(err, "benchmark run %d", i+1)
		}
		s.Results = append(s.Results, result)
		s.Mean, s.StdDev = summarize(s.Results)

		if i < 10 || i%10 == 9 {
			logger.Info("Benchmark progress",
				log.OperationKey, log.OperationScore,
				log.IterationKey, i+1,
				log.AccuracyKey, s.Mean,
				log.StdDevKey, s.StdDev,
			)
		}
	}
	return s, nil
}

func summarize(results []float64) (mean, std float64) {
	if len(results) < 3 {
		return stat.Mean(results, nil), 0
	}
	return stat.MeanStdDev(results, nil)
}
