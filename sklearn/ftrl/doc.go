// Package ftrl implements FTRL-Proximal logistic regression over hashed
// features.
//
// Every column value is hashed with xxhash into one of nbins bins, so the
// model never needs a feature dictionary and its size is fixed up front.
// With interactions enabled every pair of columns contributes one extra
// hashed feature. A model with a single label is binomial; with two or more
// labels it trains one-vs-rest classifiers, one per label, whose
// probabilities are independent.
//
// Training is an online process: each Fit continues from the current
// weights. Rows are split among workers that update shared accumulators
// under per-bin locks, so models trained with several threads depend on
// scheduling; use WithNThreads(1) for a reproducible run.
//
// Basic usage:
//
//	m, err := ftrl.New(ftrl.WithAlpha(0.1), ftrl.WithNBins(1<<20))
//	if err != nil {
//	    return err
//	}
//	if err := m.Fit(X, y); err != nil {
//	    return err
//	}
//	probs, err := m.Predict(Xtest)
//
// PartialFit trains a single epoch on a batch, and GetLossHistory reports
// the progressive log-loss of every epoch since the last reset.
//
// The state of a model can be captured with ExportState, restored with
// RestoreState, and written to disk with SaveFile.
package ftrl

import "github.com/YuminosukeSato/hashftrl/core/model"

var (
	_ model.Classifier            = (*Model)(nil)
	_ model.IncrementalEstimator  = (*Model)(nil)
	_ model.OnlineMetrics         = (*Model)(nil)
	_ model.ParameterGetter       = (*Model)(nil)
	_ model.ParameterSetter       = (*Model)(nil)
	_ model.StateExporter[*State] = (*Model)(nil)
)
