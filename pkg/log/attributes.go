// Standard attribute keys for training and evaluation logs.
//
// Keys are hierarchical ("data.samples", "training.epoch") so that log
// pipelines can filter on prefixes.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance across its log records.
	EstimatorIDKey = "estimator.id"

	// RunIDKey identifies one train/evaluate run of the CLI.
	RunIDKey = "run.id"

	// OperationKey specifies the operation: "fit", "predict", "evaluate", ...
	OperationKey = "ml.operation"

	// ComponentKey identifies the package doing the work: "linear", "synthetic", ...
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase: "training", "testing", ...
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey   = "data.samples"
	FeaturesKey  = "data.features"
	PositivesKey = "data.positives"
	// ArchetypeKey names the synthetic class a sample was drawn from.
	ArchetypeKey = "data.archetype"
)

// Performance and training progress.
const (
	DurationMsKey = "perf.duration_ms"
	LossKey       = "metrics.loss"
	AccuracyKey   = "metrics.accuracy"
	AUCKey        = "metrics.auc"
	ErrorRateKey  = "metrics.error_rate"
	EpochKey      = "training.epoch"
	EpochsKey     = "training.epochs"
	WeightsKey    = "model.weights"
)

// Prediction context.
const (
	PredsKey = "preds.count"

	// ThresholdKey records the decision threshold used for classification.
	ThresholdKey = "preds.threshold"

	TruePositiveRateKey  = "preds.true_positive_rate"
	FalsePositiveRateKey = "preds.false_positive_rate"
)

// Error context.
const (
	ErrorKey      = "error"
	ErrorCodeKey  = "error.code"
	StacktraceKey = "error.stacktrace"
	// ErrorDetailKey holds the structured fields of typed errors.
	ErrorDetailKey = "error.detail"
)

// Hyperparameters and configuration.
const (
	LearningRateKey  = "hyperparams.learning_rate"
	InitialWeightKey = "hyperparams.initial_weight"
	RandomSeedKey    = "config.random_seed"
)

// Standard values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationGenerate = "generate"

	PhaseTraining = "training"
	PhaseTesting  = "testing"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
