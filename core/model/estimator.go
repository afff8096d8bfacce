package model

import "github.com/YuminosukeSato/hashftrl/core/frame"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit trains the model on X with target column y.
	Fit(X, y *frame.Frame) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict returns one probability column per classifier.
	Predict(X *frame.Frame) (*frame.Frame, error)
}

// Estimator is a trainable, resettable model.
type Estimator interface {
	Fitter
	Predictor

	IsTrained() bool
	Reset()
}
