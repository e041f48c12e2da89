package forest

import (
	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// Defaults.
const (
	DefaultNumTrees       = 200
	DefaultMaxBoostRounds = 10
	DefaultRandomState    = 42
	// InitialWeight is every tree's weight after population or rebuild.
	InitialWeight = 0.5
)

// Option configures a Forest.
type Option func(*config)

type config struct {
	continuous        []string
	continuousSet     bool
	rows              []int
	ignored           []string
	boost             bool
	numTrees          int
	minSubsetPercent  float64
	validationPercent float64
	seed              uint64
	rng               random.Rand
	workers           int
	maxBoostRounds    int
	logger            log.Logger
}

func defaultConfig() *config {
	return &config{
		numTrees:       DefaultNumTrees,
		seed:           DefaultRandomState,
		maxBoostRounds: DefaultMaxBoostRounds,
	}
}

// WithContinuousColumns names the continuous columns for every tree. Without
// it, continuity is detected once over the forest's rows.
func WithContinuousColumns(names ...string) Option {
	return func(c *config) {
		c.continuous = names
		c.continuousSet = true
	}
}

// WithRows restricts the forest to the given table rows.
func WithRows(rows []int) Option {
	return func(c *config) {
		c.rows = rows
	}
}

// WithIgnoredColumns excludes columns from the attribute pool.
func WithIgnoredColumns(names ...string) Option {
	return func(c *config) {
		c.ignored = names
	}
}

// WithBoost enables per-tree reweighting after population.
func WithBoost(boost bool) Option {
	return func(c *config) {
		c.boost = boost
	}
}

// WithNumTrees sets the number of trees.
func WithNumTrees(n int) Option {
	return func(c *config) {
		c.numTrees = n
	}
}

// WithMinimumSubsetSizePercent is passed to every tree build.
func WithMinimumSubsetSizePercent(p float64) Option {
	return func(c *config) {
		c.minSubsetPercent = p
	}
}

// WithValidationPercent is passed to every tree build.
func WithValidationPercent(p float64) Option {
	return func(c *config) {
		c.validationPercent = p
	}
}

// WithRandomState seeds the forest's generator.
func WithRandomState(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithRand sets the forest's generator, overriding WithRandomState.
func WithRand(r random.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithWorkers bounds the goroutines used to build and query trees.
// Values <= 0 mean one per CPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithMaxBoostRounds caps the boosting rounds.
func WithMaxBoostRounds(n int) Option {
	return func(c *config) {
		c.maxBoostRounds = n
	}
}

// WithLogger sets the logger for the forest and its trees.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
