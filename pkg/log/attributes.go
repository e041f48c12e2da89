// Package log defines standard attribute keys for tree and forest operations.
//
// These keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so logs from different components can be filtered the
// same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model ("Tree", "Forest").
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "populate", "boost"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	ComponentKey = "component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey indicates the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of attributes considered.
	FeaturesKey = "data.features"

	// ValidationSamplesKey indicates the number of held-out validation rows.
	ValidationSamplesKey = "data.validation_samples"

	// OutcomeKey names the outcome column.
	OutcomeKey = "data.outcome"
)

// Tree and forest structure.
const (
	// NodesKey records the number of nodes in an induced tree.
	NodesKey = "tree.nodes"

	// LeavesKey records the number of leaves in an induced tree.
	LeavesKey = "tree.leaves"

	// DistributionLeavesKey records how many leaves hold an outcome distribution.
	DistributionLeavesKey = "tree.distribution_leaves"

	// TreesKey records the number of trees in a forest.
	TreesKey = "forest.trees"

	// RoundKey records the current boosting round.
	RoundKey = "boost.round"

	// MispredictedKey records rows mispredicted in a boosting round.
	MispredictedKey = "boost.mispredicted"

	// RebuiltKey records trees rebuilt after their weight reached zero.
	RebuiltKey = "boost.rebuilt"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy in percent for evaluation runs.
	AccuracyKey = "metrics.accuracy"

	// StdDevKey records a sample standard deviation.
	StdDevKey = "metrics.stddev"

	// IterationKey records the current iteration of a repeated process.
	IterationKey = "training.iteration"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationPopulate = "populate"
	OperationBoost    = "boost"
	OperationScore    = "score"

	PhaseTraining = "training"
)
