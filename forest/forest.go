// Package forest implements a random forest of decision trees with optional
// boosting by per-tree weights.
//
// Each tree is built from a uniform sample of ceil(sqrt(rows)) rows and
// ceil(sqrt(attributes)) attributes. Without boosting the forest predicts by
// majority vote. With boosting, trees that vote for the true outcome of a
// mispredicted training row gain weight, trees that vote for the wrong winner
// lose weight, and a tree whose weight reaches zero is rebuilt.
//
// Example:
//
//	f, err := forest.New(tbl, "Born",
//	    forest.WithBoost(true),
//	    forest.WithRandomState(7),
//	)
//	if err != nil {
//	    return err
//	}
//	born, err := f.Predict(row)
package forest

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/core/parallel"
	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/core/table"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

const modelName = "Forest"

// Forest is an ensemble of decision trees. Prediction is safe for concurrent
// use; Populate must not run concurrently with itself.
type Forest struct {
	tbl        table.Table
	cfg        *config
	outcome    int
	rows       []int
	attributes []int
	continuous []string
	numRows    int
	numAttrs   int

	rng    random.Rand
	logger log.Logger
	state  *model.StateManager

	mu      sync.RWMutex
	trees   []*tree.Tree
	weights []float64
}

var _ model.Ensemble = (*Forest)(nil)

// New resolves the configuration against tbl and populates the forest.
func New(tbl table.Table, outcome string, opts ...Option) (*Forest, error) {
	const op = "forest.New"

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.numTrees < 1 {
		return nil, scierrors.NewValidationError("num_trees", "must be at least 1", cfg.numTrees)
	}
	if cfg.maxBoostRounds < 1 {
		return nil, scierrors.NewValidationError("max_boost_rounds", "must be at least 1", cfg.maxBoostRounds)
	}
	for name, p := range map[string]float64{
		"minimum_subset_size_percent": cfg.minSubsetPercent,
		"validation_percent":          cfg.validationPercent,
	} {
		if math.IsNaN(p) || p < 0 || p > 100 {
			return nil, scierrors.NewValidationError(name, "must be in [0, 100]", p)
		}
	}

	outcomeIdx, err := tbl.ColumnIndex(outcome)
	if err != nil {
		return nil, scierrors.Wrap(err, "outcome")
	}

	ignored := make(map[int]bool, len(cfg.ignored))
	for _, name := range cfg.ignored {
		c, err := tbl.ColumnIndex(name)
		if err != nil {
			return nil, scierrors.Wrap(err, "ignored columns")
		}
		ignored[c] = true
	}
	var attributes []int
	for c := range tbl.Columns() {
		if c != outcomeIdx && !ignored[c] {
			attributes = append(attributes, c)
		}
	}
	if len(attributes) == 0 {
		return nil, scierrors.Wrap(scierrors.ErrNoAttributes, op)
	}

	rows := cfg.rows
	if rows == nil {
		rows = table.AllRows(tbl)
	}
	if len(rows) == 0 {
		return nil, scierrors.Wrap(scierrors.ErrEmptyData, op)
	}
	for _, r := range rows {
		if r < 0 || r >= tbl.Len() {
			return nil, scierrors.NewConfigurationError(op, "rows",
				fmt.Sprintf("row %d out of range [0, %d)", r, tbl.Len()))
		}
	}

	continuous, err := resolveContinuous(tbl, outcomeIdx, ignored, rows, attributes, cfg)
	if err != nil {
		return nil, err
	}

	rng := cfg.rng
	if rng == nil {
		rng = random.New(cfg.seed)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("forest")
	}
	if cfg.rng == nil {
		logger.Debug("Forest seeded", log.RandomSeedKey, cfg.seed)
	}

	f := &Forest{
		tbl:        tbl,
		cfg:        cfg,
		outcome:    outcomeIdx,
		rows:       rows,
		attributes: attributes,
		continuous: continuous,
		numRows:    int(math.Ceil(math.Sqrt(float64(len(rows))))),
		numAttrs:   int(math.Ceil(math.Sqrt(float64(len(attributes))))),
		rng:        rng,
		logger:     logger.With(log.ModelNameKey, modelName),
		state:      model.NewStateManager(),
	}
	if err := f.Populate(); err != nil {
		return nil, err
	}
	return f, nil
}

// resolveContinuous returns the continuous column names shared by every
// tree. Explicit names lose ignored columns and the outcome; otherwise
// continuity is detected over all of the forest's rows.
func resolveContinuous(tbl table.Table, outcome int, ignored map[int]bool, rows, attributes []int, cfg *config) ([]string, error) {
	names := tbl.Columns()
	if !cfg.continuousSet {
		detected := tree.DetectContinuous(tbl, rows, attributes)
		continuous := make([]string, len(detected))
		for i, c := range detected {
			continuous[i] = names[c]
		}
		return continuous, nil
	}

	seen := make(map[string]bool, len(cfg.continuous))
	continuous := make([]string, 0, len(cfg.continuous))
	for _, name := range cfg.continuous {
		c, err := tbl.ColumnIndex(name)
		if err != nil {
			return nil, scierrors.Wrap(err, "continuous columns")
		}
		if seen[name] {
			return nil, scierrors.NewConfigurationError("forest.New", name,
				"continuous column named more than once")
		}
		seen[name] = true
		if c == outcome || ignored[c] {
			continue
		}
		continuous = append(continuous, name)
	}
	return continuous, nil
}

// Populate rebuilds every tree from a fresh sample and resets the weights,
// then boosts when enabled. On error the previous trees are kept.
func (f *Forest) Populate() (err error) {
	defer scierrors.Recover(&err, "forest.Populate")
	start := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Seeds are drawn in tree order before any goroutine starts.
	seeds := make([]uint64, f.cfg.numTrees)
	for i := range seeds {
		seeds[i] = f.rng.Uint64()
	}

	trees := make([]*tree.Tree, f.cfg.numTrees)
	// Recover above only covers this goroutine; each worker recovers its own.
	err = parallel.Do(len(trees), f.cfg.workers, func(i int) error {
		return scierrors.SafeExecute("forest.buildTree", func() error {
			t, err := f.buildTree(random.New(seeds[i]))
			if err != nil {
				return scierrors.NewModelError("forest.Populate", fmt.Sprintf("building tree %d", i), err)
			}
			trees[i] = t
			return nil
		})
	})
	if err != nil {
		f.logger.Error("Forest population failed", err, log.OperationKey, log.OperationPopulate)
		return err
	}

	weights := make([]float64, len(trees))
	for i := range weights {
		weights[i] = InitialWeight
	}

	if f.cfg.boost {
		if err := f.boost(trees, weights); err != nil {
			f.logger.Error("Forest boosting failed", err, log.OperationKey, log.OperationBoost)
			return err
		}
	}

	f.trees = trees
	f.weights = weights
	f.state.SetDimensions(len(f.attributes), len(f.rows))
	f.state.SetFitted()

	f.logger.Info("Forest populated",
		log.OperationKey, log.OperationPopulate,
		log.TreesKey, len(trees),
		log.SamplesKey, len(f.rows),
		log.FeaturesKey, len(f.attributes),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// buildTree builds one member from a sample of rows and attributes drawn
// from r. The tree's own generator is also derived from r.
func (f *Forest) buildTree(r *random.Locked) (*tree.Tree, error) {
	rows := random.Sample(r, f.rows, f.numRows)
	attributes := random.Sample(r, f.attributes, f.numAttrs)
	return tree.Build(f.tbl, f.tbl.Columns()[f.outcome],
		tree.WithRows(rows),
		tree.WithAttributes(attributes),
		tree.WithContinuousColumns(f.continuous...),
		tree.WithMinimumSubsetSizePercent(f.cfg.minSubsetPercent),
		tree.WithValidationPercent(f.cfg.validationPercent),
		tree.WithRand(r),
		tree.WithLogger(f.logger),
	)
}

// Predict returns the top-ranked outcome for row.
func (f *Forest) Predict(row table.Row) (table.Value, error) {
	votes, err := f.Votes(row)
	if err != nil {
		return table.Value{}, err
	}
	return votes[0].Outcome, nil
}

// Votes returns every predicted outcome with its total, ranked by descending
// total. Totals are tree weights when boosting and plain counts otherwise.
func (f *Forest) Votes(row table.Row) ([]Vote, error) {
	if err := f.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	predictions, err := predictAll(f.trees, row, f.cfg.workers)
	if err != nil {
		return nil, err
	}
	if f.cfg.boost {
		return Rank(predictions, f.weights), nil
	}
	return Rank(predictions, nil), nil
}

// predictAll asks every tree for its prediction, fanning out over chunks of
// trees.
func predictAll(trees []*tree.Tree, row table.Row, workers int) ([]table.Value, error) {
	predictions := make([]table.Value, len(trees))
	errs := make([]error, len(trees))
	parallel.ParallelizeN(len(trees), workers, func(start, end int) {
		for i := start; i < end; i++ {
			predictions[i], errs[i] = trees[i].Predict(row)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return predictions, nil
}

// Trees returns the member trees in order.
func (f *Forest) Trees() []*tree.Tree {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*tree.Tree(nil), f.trees...)
}

// Weights returns a copy of the tree weights, parallel to Trees.
func (f *Forest) Weights() []float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]float64(nil), f.weights...)
}

// NumRows returns the number of rows sampled per tree.
func (f *Forest) NumRows() int { return f.numRows }

// NumAttributes returns the number of attributes sampled per tree.
func (f *Forest) NumAttributes() int { return f.numAttrs }

// Outcome returns the name of the predicted column.
func (f *Forest) Outcome() string { return f.tbl.Columns()[f.outcome] }

// ContinuousColumns returns the continuous column names shared by the trees.
func (f *Forest) ContinuousColumns() []string {
	return append([]string(nil), f.continuous...)
}

// Attributes returns the column indexes trees sample attributes from.
func (f *Forest) Attributes() []int {
	return append([]int(nil), f.attributes...)
}
