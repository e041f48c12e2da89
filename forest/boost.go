package forest

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scitree/core/parallel"
	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/core/table"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

// boost adjusts weights in place, rebuilding trees whose weight reaches zero,
// until a round mispredicts no training row or the round cap is hit.
//
// Each round first collects every tree's prediction for every row, one
// goroutine per tree. Weight updates are then applied row by row by this
// goroutine alone, so the result depends only on the seeds.
func (f *Forest) boost(trees []*tree.Tree, weights []float64) error {
	n := float64(len(f.rows))
	changed := true
	round := 0
	for changed && round < f.cfg.maxBoostRounds {
		round++
		changed = false
		mispredicted, rebuilt := 0, 0

		predictions, err := f.predictRows(trees)
		if err != nil {
			return err
		}

		column := make([]table.Value, len(trees))
		for k, r := range f.rows {
			for t := range trees {
				column[t] = predictions[t][k]
			}
			votes := Rank(column, weights)
			truth := f.tbl.At(r, f.outcome)
			top := votes[0]
			if top.Outcome == truth {
				continue
			}
			changed = true
			mispredicted++

			maxAdjustment := (top.Total - total(votes, truth)) / n
			if maxAdjustment == 0 {
				maxAdjustment = 0.5 / n
			}
			for t, p := range column {
				switch p {
				case truth:
					weights[t] = min(1, weights[t]+random.Uniform(f.rng, 0, maxAdjustment))
				case top.Outcome:
					weights[t] = max(0, weights[t]-random.Uniform(f.rng, 0, maxAdjustment))
					if weights[t] != 0 {
						continue
					}
					rebuiltTree, err := f.buildTree(random.Derive(f.rng))
					if err != nil {
						return scierrors.NewModelError("forest.boost", fmt.Sprintf("rebuilding tree %d", t), err)
					}
					trees[t] = rebuiltTree
					weights[t] = InitialWeight
					rebuilt++
					if err := f.predictRemaining(rebuiltTree, predictions[t], k+1); err != nil {
						return err
					}
				}
			}
		}

		if f.logger.Enabled(context.Background(), log.LevelDebug) {
			f.logger.Debug("Boosting round finished",
				log.OperationKey, log.OperationBoost,
				log.RoundKey, round,
				log.MispredictedKey, mispredicted,
				log.RebuiltKey, rebuilt,
				"weights.min", floats.Min(weights),
				"weights.max", floats.Max(weights),
				"weights.sum", floats.Sum(weights),
			)
		}
	}

	if changed {
		scierrors.Warn(scierrors.NewConvergenceWarning("forest.boost", round,
			"training rows are still mispredicted"))
	}
	return nil
}

// predictRows returns predictions[tree][k] for every tree and every forest
// row k.
func (f *Forest) predictRows(trees []*tree.Tree) ([][]table.Value, error) {
	predictions := make([][]table.Value, len(trees))
	err := parallel.Do(len(trees), f.cfg.workers, func(t int) error {
		return scierrors.SafeExecute("forest.predictRows", func() error {
			predictions[t] = make([]table.Value, len(f.rows))
			return f.predictRemaining(trees[t], predictions[t], 0)
		})
	})
	return predictions, err
}

// predictRemaining fills dst[k] for forest rows k >= from.
func (f *Forest) predictRemaining(t *tree.Tree, dst []table.Value, from int) error {
	for k := from; k < len(f.rows); k++ {
		p, err := t.Predict(f.tbl.Row(f.rows[k]))
		if err != nil {
			return err
		}
		dst[k] = p
	}
	return nil
}
