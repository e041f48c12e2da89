// Package tree induces decision trees over tables of mixed categorical and
// continuous attributes.
//
// Splits are chosen greedily by a purity and balance heuristic. Continuous
// attributes are discretized center-out into a handful of GreaterThan
// thresholds. Optional validation hold-outs and minimum subset sizes prune
// the tree; a node that cannot be split usefully becomes a distribution leaf
// that predicts by drawing from the outcome frequencies it saw.
//
// Example:
//
//	t, err := tree.Build(tbl, "Born",
//	    tree.WithValidationPercent(6),
//	    tree.WithRand(random.New(1)),
//	)
//	if err != nil {
//	    return err
//	}
//	born, err := t.Predict(table.MustRow("Elizabeth", "female", "Married", 19))
package tree

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/core/table"
	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// Build induces a tree predicting the outcome column of tbl. Configuration
// problems are returned before any node is built and no partial tree is ever
// returned.
func Build(tbl table.Table, outcome string, opts ...Option) (t *Tree, err error) {
	defer scierrors.Recover(&err, "tree.Build")

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	b, err := newBuilder(tbl, outcome, cfg)
	if err != nil {
		return nil, err
	}
	return b.build(), nil
}

// DetectContinuous returns the attributes whose values over rows are all
// numeric, in attribute order.
func DetectContinuous(tbl table.Table, rows, attributes []int) []int {
	if len(rows) == 0 {
		return nil
	}
	var continuous []int
	for _, col := range attributes {
		if allNumeric(tbl, rows, col) {
			continuous = append(continuous, col)
		}
	}
	return continuous
}

func allNumeric(tbl table.Table, rows []int, col int) bool {
	for _, r := range rows {
		if !tbl.At(r, col).IsNumeric() {
			return false
		}
	}
	return true
}

type builder struct {
	tbl        table.Table
	outcome    int
	rows       []int
	attributes []int
	continuous map[int]bool

	minSubsetSize   int
	validationCount int

	rng    random.Rand
	logger log.Logger
}

// work is a pending node: its id and the training and validation rows that
// reach it.
type work struct {
	id         int
	rows       []int
	validation []int
}

// candidate is a scored split.
type candidate struct {
	split Split
	score float64
}

func newBuilder(tbl table.Table, outcome string, cfg *config) (*builder, error) {
	const op = "tree.Build"

	outcomeIdx, err := tbl.ColumnIndex(outcome)
	if err != nil {
		return nil, scierrors.Wrap(err, "outcome")
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

	if err := checkPercent("minimum_subset_size_percent", cfg.minSubsetPercent); err != nil {
		return nil, err
	}
	if err := checkPercent("validation_percent", cfg.validationPercent); err != nil {
		return nil, err
	}

	attributes, err := resolveAttributes(tbl, outcomeIdx, cfg)
	if err != nil {
		return nil, err
	}

	continuous, err := resolveContinuous(tbl, outcomeIdx, rows, attributes, cfg)
	if err != nil {
		return nil, err
	}

	n := float64(len(rows))
	validationCount := int(math.Round(cfg.validationPercent / 100 * n))
	if validationCount >= len(rows) {
		validationCount = len(rows) - 1
	}

	rng := cfg.rng
	if rng == nil {
		rng = random.New(DefaultRandomState)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.GetLoggerWithName("tree")
	}

	return &builder{
		tbl:             tbl,
		outcome:         outcomeIdx,
		rows:            rows,
		attributes:      attributes,
		continuous:      continuous,
		minSubsetSize:   int(math.Floor(cfg.minSubsetPercent / 100 * n)),
		validationCount: validationCount,
		rng:             rng,
		logger:          logger,
	}, nil
}

func checkPercent(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return scierrors.NewValidationError(name, "must be in [0, 100]", p)
	}
	return nil
}

func resolveAttributes(tbl table.Table, outcome int, cfg *config) ([]int, error) {
	width := len(tbl.Columns())
	if !cfg.attributesSet {
		attrs := make([]int, 0, width-1)
		for c := 0; c < width; c++ {
			if c != outcome {
				attrs = append(attrs, c)
			}
		}
		if len(attrs) == 0 {
			return nil, scierrors.Wrap(scierrors.ErrNoAttributes, "tree.Build")
		}
		return attrs, nil
	}

	seen := make(map[int]bool, len(cfg.attributes))
	attrs := make([]int, 0, len(cfg.attributes))
	for _, c := range cfg.attributes {
		if c < 0 || c >= width {
			return nil, scierrors.NewConfigurationError("tree.Build", "attributes",
				fmt.Sprintf("column %d out of range [0, %d)", c, width))
		}
		if c == outcome || seen[c] {
			continue
		}
		seen[c] = true
		attrs = append(attrs, c)
	}
	if len(attrs) == 0 {
		return nil, scierrors.Wrap(scierrors.ErrNoAttributes, "tree.Build")
	}
	return attrs, nil
}

func resolveContinuous(tbl table.Table, outcome int, rows, attributes []int, cfg *config) (map[int]bool, error) {
	continuous := make(map[int]bool)
	if !cfg.continuousSet {
		for _, c := range DetectContinuous(tbl, rows, attributes) {
			continuous[c] = true
		}
		return continuous, nil
	}

	for _, name := range cfg.continuous {
		c, err := tbl.ColumnIndex(name)
		if err != nil {
			return nil, scierrors.Wrap(err, "continuous columns")
		}
		if continuous[c] {
			return nil, scierrors.NewConfigurationError("tree.Build", name,
				"continuous column named more than once")
		}
		continuous[c] = true
	}
	delete(continuous, outcome)

	for c := range continuous {
		for _, r := range rows {
			if !tbl.At(r, c).IsNumeric() {
				return nil, scierrors.NewConfigurationError("tree.Build", tbl.Columns()[c],
					fmt.Sprintf("continuous column holds non-numeric value %q at row %d", tbl.At(r, c).String(), r))
			}
		}
	}
	return continuous, nil
}

func (b *builder) build() *Tree {
	training, validation := b.holdOut()
	eval := NewEvaluator(b.tbl, b.outcome, b.minSubsetSize)

	nodes := []Node{nil}
	lastID := 0
	queue := []work{{id: 0, rows: training, validation: validation}}
	for len(queue) > 0 {
		w := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if eval.pure(w.rows) {
			nodes[w.id] = PureLeaf{Outcome: b.tbl.At(w.rows[0], b.outcome)}
			continue
		}

		best, ok := b.bestSplit(eval, w.rows, w.validation)
		if !ok || best.score <= 0 {
			nodes[w.id] = newDistributionLeaf(b.tbl, b.outcome, w.rows)
			continue
		}

		match, nonMatch := eval.Partition(best.split, w.rows)
		vMatch, vNonMatch := eval.Partition(best.split, w.validation)
		matchID, nonMatchID := lastID+1, lastID+2
		lastID += 2
		nodes = append(nodes, nil, nil)
		queue = append(queue,
			work{id: matchID, rows: match, validation: vMatch},
			work{id: nonMatchID, rows: nonMatch, validation: vNonMatch},
		)
		nodes[w.id] = Internal{
			Split:         best.split,
			Match:         matchID,
			NonMatch:      nonMatchID,
			MatchCount:    len(match),
			NonMatchCount: len(nonMatch),
		}
	}

	t := &Tree{
		nodes:   nodes,
		columns: append([]string(nil), b.tbl.Columns()...),
		outcome: b.outcome,
		rng:     random.Derive(b.rng),
	}
	b.logger.Debug("Tree built",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.OutcomeKey, t.columns[b.outcome],
		log.SamplesKey, len(training),
		log.ValidationSamplesKey, len(validation),
		log.FeaturesKey, len(b.attributes),
		log.NodesKey, len(nodes),
		log.LeavesKey, t.Leaves(),
		log.DistributionLeavesKey, t.DistributionLeaves(),
	)
	return t
}

// holdOut samples the validation rows and returns the remaining training
// rows in their original order.
func (b *builder) holdOut() (training, validation []int) {
	if b.validationCount <= 0 {
		return b.rows, nil
	}
	validation = random.Sample(b.rng, b.rows, b.validationCount)
	held := make(map[int]bool, len(validation))
	for _, r := range validation {
		held[r] = true
	}
	training = make([]int, 0, len(b.rows)-len(validation))
	for _, r := range b.rows {
		if !held[r] {
			training = append(training, r)
		}
	}
	return training, validation
}

// bestSplit scores every candidate split of rows and returns the highest
// ranked one.
func (b *builder) bestSplit(eval *Evaluator, rows, validation []int) (candidate, bool) {
	splits := b.candidates(rows)
	if len(splits) == 0 {
		return candidate{}, false
	}
	scored := make([]candidate, len(splits))
	for i, s := range splits {
		scored[i] = candidate{split: s, score: eval.Score(s, rows, validation)}
	}
	sort.Slice(scored, func(i, j int) bool {
		return less(scored[i], scored[j])
	})
	return scored[0], true
}

// less orders candidates by descending score, then column, value and
// comparison kind, so the choice never depends on enumeration order.
func less(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.split.Column != b.split.Column {
		return a.split.Column < b.split.Column
	}
	if c := table.Compare(a.split.Value, b.split.Value); c != 0 {
		return c < 0
	}
	return a.split.Kind < b.split.Kind
}

// candidates enumerates one Equals split per distinct value of each
// categorical attribute and the discretized GreaterThan splits of each
// continuous attribute.
func (b *builder) candidates(rows []int) []Split {
	var splits []Split
	for _, col := range b.attributes {
		if b.continuous[col] {
			splits = append(splits, b.thresholds(col, rows)...)
			continue
		}
		seen := make(map[table.Value]bool)
		for _, r := range rows {
			v := b.tbl.At(r, col)
			if seen[v] {
				continue
			}
			seen[v] = true
			splits = append(splits, Split{Column: col, Kind: Equals, Value: v})
		}
	}
	return splits
}

func (b *builder) thresholds(col int, rows []int) []Split {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		f, _ := b.tbl.At(r, col).Float()
		values = append(values, f)
	}
	sort.Float64s(values)

	indexes := Discretize(values)
	splits := make([]Split, len(indexes))
	for i, idx := range indexes {
		splits[i] = Split{Column: col, Kind: GreaterThan, Value: table.Num(values[idx])}
	}
	return splits
}
