// Standard attribute keys shared by the pipeline, the HTTP server and the CLI.
//
// Keys follow a dotted hierarchy ("model.name", "data.samples") so that log
// lines from training runs and from the prediction API can be filtered the
// same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// ModelPathKey is the artifact location on disk.
	ModelPathKey = "model.path"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "load", "save"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component emitted the record.
	// Examples: "pipeline", "api", "predict"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// FeatureNamesKey lists the ordered feature names.
	FeatureNamesKey = "data.feature_names"

	// DroppedRowsKey counts rows removed because a value could not be parsed.
	DroppedRowsKey = "data.dropped_rows"

	// TrainSamplesKey and TestSamplesKey describe a train/test split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// DataPathKey is the dataset location on disk.
	DataPathKey = "data.path"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MAEKey records mean absolute error.
	MAEKey = "metrics.mae"

	// RMSEKey records root mean squared error.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination for regression.
	// Range typically [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"
)

// Prediction Context
const (
	// PredictionKey is the final (clamped, rounded) predicted score.
	PredictionKey = "preds.value"

	// RawPredictionKey is the model output before clamping.
	RawPredictionKey = "preds.raw"

	// ClampedKey is true when the raw prediction was outside [0, 100].
	ClampedKey = "preds.clamped"
)

// HTTP Context
const (
	RequestIDKey  = "http.request_id"
	MethodKey     = "http.method"
	PathKey       = "http.path"
	StatusKey     = "http.status"
	RemoteAddrKey = "http.remote_addr"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorKindKey is the error classification ("validation", "not_found", ...).
	ErrorKindKey = "error.kind"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// TestSizeKey records the held-out fraction.
	TestSizeKey = "config.test_size"

	// ConfigPathKey is the configuration file that was loaded.
	ConfigPathKey = "config.path"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"
	OperationSave    = "save"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
