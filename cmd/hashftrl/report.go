package main

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/metrics"
	"github.com/YuminosukeSato/hashftrl/sklearn/ftrl"
)

// scores are the one-vs-rest metrics of a single output column.
type scores struct {
	Label    string
	AUC      float64
	LogLoss  float64
	Accuracy float64
	Error    float64
	Brier    float64
}

// evaluate predicts X and scores every output column against y. For a
// binomial model y is the 0/1 target; otherwise each label is scored
// against the rows whose target text equals it.
func evaluate(m *ftrl.Model, X, y *frame.Frame) ([]scores, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}
	target := y.Col(0)

	out := make([]scores, pred.NCols())
	for k := range out {
		var truth *mat.VecDense
		if m.RegType() == ftrl.RegTypeBinomial {
			truth = metrics.ColumnVec(target)
		} else {
			truth = oneVsRest(target, pred.Col(k).Name())
		}
		prob := metrics.ColumnVec(pred.Col(k))

		s := scores{Label: pred.Col(k).Name()}
		if s.AUC, err = metrics.AUC(truth, prob); err != nil {
			return nil, err
		}
		if s.LogLoss, err = metrics.BinaryLogLoss(truth, prob); err != nil {
			return nil, err
		}
		labels := metrics.Threshold(prob, 0.5)
		if s.Accuracy, err = metrics.Accuracy(truth, labels); err != nil {
			return nil, err
		}
		if s.Error, err = metrics.ClassificationError(truth, labels); err != nil {
			return nil, err
		}
		if s.Brier, err = metrics.BrierScore(truth, prob); err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func oneVsRest(target frame.Column, label string) *mat.VecDense {
	v := mat.NewVecDense(target.Len(), nil)
	for i := 0; i < target.Len(); i++ {
		if target.Text(i) == label {
			v.SetVec(i, 1)
		}
	}
	return v
}

func report(w io.Writer, m *ftrl.Model, X, y *frame.Frame) error {
	all, err := evaluate(m, X, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-16s %8s %10s %9s %8s %8s\n", "label", "auc", "logloss", "accuracy", "error", "brier")
	for _, s := range all {
		fmt.Fprintf(w, "%-16s %8.4f %10.5f %9.4f %8.4f %8.5f\n", s.Label, s.AUC, s.LogLoss, s.Accuracy, s.Error, s.Brier)
	}
	return nil
}
