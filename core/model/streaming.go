package model

import (
	"context"

	"github.com/YuminosukeSato/hashftrl/core/frame"
)

// Batch represents a data batch for streaming learning
type Batch struct {
	X *frame.Frame
	Y *frame.Frame
}

// StreamingEstimator provides channel-based streaming learning interface
type StreamingEstimator interface {
	Estimator

	// FitStream trains on each batch in arrival order until the context is
	// canceled or the channel is closed.
	FitStream(ctx context.Context, batches <-chan *Batch) error

	// PredictStream predicts each input frame. The output channel is closed
	// when the input channel is closed or the context is canceled.
	PredictStream(ctx context.Context, inputs <-chan *frame.Frame) <-chan StreamResult
}

// StreamResult is one PredictStream output: either predictions or the error
// that prevented them.
type StreamResult struct {
	Predictions *frame.Frame
	Err         error
}
