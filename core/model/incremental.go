package model

import "github.com/YuminosukeSato/hashftrl/core/frame"

// IncrementalEstimator はオンライン学習（逐次学習）可能なモデルのインターフェース
// scikit-learnのpartial_fit APIと互換性を持つ
type IncrementalEstimator interface {
	Estimator

	// PartialFit はミニバッチでモデルを逐次的に学習させる
	// Each call is a single pass over the batch, whatever the configured
	// number of epochs.
	PartialFit(X, y *frame.Frame) error

	// NIterations は実行された学習イテレーション数を返す
	NIterations() int
}

// OnlineMetrics はオンライン学習中のメトリクスを追跡するインターフェース
type OnlineMetrics interface {
	// GetLoss は現在の損失値を返す
	GetLoss() float64

	// GetLossHistory は損失値の履歴を返す
	GetLossHistory() []float64

	// GetConverged は収束したかどうかを返す
	GetConverged() bool
}
