package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "Ftrl".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed ("fit", "predict", ...).
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// HashedFeaturesKey is the number of active bins per row after hashing.
	HashedFeaturesKey = "data.hashed_features"

	// ClassifiersKey is the number of one-vs-rest classifiers.
	ClassifiersKey = "model.classifiers"
)

// Performance and training progress.
const (
	DurationMsKey = "perf.duration_ms"
	LossKey       = "metrics.loss"
	EpochKey      = "training.epoch"
	ThreadsKey    = "training.threads"
)

// Hyperparameters.
const (
	HyperParamsKey = "model.hyperparams"
	NBinsKey       = "hyperparams.nbins"
	PrecisionKey   = "hyperparams.precision"
)

// Error context.
const (
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationReset   = "reset"
	OperationRestore = "restore"
)
