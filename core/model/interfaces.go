package model

// Classifier is an Estimator over a fixed, ordered label set.
type Classifier interface {
	Estimator

	// Labels returns the label set, one entry per output column.
	Labels() []string
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParamsMap sets hyperparameters by name.
	SetParamsMap(params map[string]interface{}) error
}

// StateExporter is implemented by models whose full state can be captured
// and restored. S is the model's state record type.
type StateExporter[S any] interface {
	ExportState() S
	RestoreState(state S) error
}
