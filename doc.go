// Package hashftrl provides FTRL-Proximal logistic regression with the
// hashing trick for Go, designed for backend services that learn online
// from categorical, click-log style data.
//
// Rows of mixed bool, int, float and string columns are hashed into a fixed
// number of bins, optionally together with every pairwise interaction, and
// each bin carries the FTRL-Proximal z and n accumulators. Models are
// binomial (a single classifier) or multinomial (one-vs-rest, one classifier
// per label), trained on all CPU cores and stored in float32 or float64.
//
// # Installation
//
//	go get github.com/YuminosukeSato/hashftrl
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/hashftrl/core/frame"
//	    "github.com/YuminosukeSato/hashftrl/sklearn/ftrl"
//	)
//
//	func main() {
//	    X := frame.MustNew(
//	        frame.NewStringColumn("slot", []string{"top", "side", "top", "feed"}),
//	        frame.NewIntColumn("hour", []int64{9, 13, 21, 9}),
//	    )
//	    y := frame.MustNew(frame.NewBoolColumn("clicked", []bool{true, false, true, false}))
//
//	    model, err := ftrl.New(ftrl.WithAlpha(0.1), ftrl.WithNBins(1<<20))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    proba, err := model.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(proba.Col(0).Float64(0))
//	}
//
// # Packages
//
//   - sklearn/ftrl: the FTRL-Proximal model, its hyperparameters, state
//     export and persistence
//   - sklearn/drift: concept drift detection for streamed training
//   - core/frame: typed columnar frames used for inputs, outputs and state
//   - core/model: estimator interfaces, training state and model files
//   - core/parallel: row-range parallel helpers
//   - metrics: AUC, log-loss, accuracy and Brier score
//   - pkg/errors, pkg/log, pkg/compress: errors, logging and model file
//     compression
//   - cmd/hashftrl: command line trainer for CSV files
//
// # Persistence
//
// A model is exported as a State (hyperparameters, labels, weights, feature
// importances and regression type) and written with an optional zstd, s2
// or lz4 codec:
//
//	if err := model.SaveFile("ctr.hftl", compress.Zstd); err != nil {
//	    log.Fatal(err)
//	}
//	restored, err := ftrl.Open("ctr.hftl")
//
// # License
//
// hashftrl is released under the MIT License.
package hashftrl
