package tree

import (
	"github.com/YuminosukeSato/scitree/core/random"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// DefaultRandomState seeds the generator when no WithRand option is given.
const DefaultRandomState = 42

// Option configures Build.
type Option func(*config)

type config struct {
	rows              []int
	attributes        []int
	attributesSet     bool
	continuous        []string
	continuousSet     bool
	minSubsetPercent  float64
	validationPercent float64
	rng               random.Rand
	logger            log.Logger
}

func defaultConfig() *config {
	return &config{}
}

// WithRows restricts training to the given table rows.
func WithRows(rows []int) Option {
	return func(c *config) {
		c.rows = rows
	}
}

// WithAttributes restricts the attributes (column indexes) considered for
// splits. The outcome column is dropped if present.
func WithAttributes(columns []int) Option {
	return func(c *config) {
		c.attributes = columns
		c.attributesSet = true
	}
}

// WithContinuousColumns names the columns split by numeric thresholds. Without
// this option a column is continuous when every value under it is numeric.
func WithContinuousColumns(names ...string) Option {
	return func(c *config) {
		c.continuous = names
		c.continuousSet = true
	}
}

// WithMinimumSubsetSizePercent rejects splits leaving fewer than this
// percentage of the rows on either side.
func WithMinimumSubsetSizePercent(p float64) Option {
	return func(c *config) {
		c.minSubsetPercent = p
	}
}

// WithValidationPercent holds out this percentage of the rows to validate
// splits.
func WithValidationPercent(p float64) Option {
	return func(c *config) {
		c.validationPercent = p
	}
}

// WithRand sets the generator used for the validation sample. The tree's
// prediction generator is derived from it.
func WithRand(r random.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
