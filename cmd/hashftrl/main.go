// Command hashftrl trains and applies hashed FTRL-Proximal models on CSV
// files.
//
//	hashftrl train --data train.csv --target clicked --model ctr.hftl
//	hashftrl evaluate --data test.csv --target clicked --model ctr.hftl
//	hashftrl predict --data test.csv --model ctr.hftl --output preds.csv
//	hashftrl importance --model ctr.hftl --normalize --plot fi.png
package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/YuminosukeSato/hashftrl/pkg/log"
)

type trainCmd struct {
	Data   string `arg:"-d,--data,required" help:"CSV file with a header row"`
	Target string `arg:"-t,--target,required" help:"name of the target column"`
	Model  string `arg:"-m,--model,required" help:"where to write the trained model"`
	Resume bool   `arg:"--resume" help:"continue training the model already stored at --model"`

	Alpha           float64  `arg:"--alpha" default:"0.005" help:"learning rate"`
	Beta            float64  `arg:"--beta" default:"1" help:"learning-rate smoothing"`
	Lambda1         float64  `arg:"--lambda1" default:"0" help:"L1 regularization"`
	Lambda2         float64  `arg:"--lambda2" default:"1" help:"L2 regularization"`
	NBins           uint64   `arg:"--nbins" default:"1000000" help:"hash bins per classifier"`
	NEpochs         int      `arg:"--nepochs" default:"1" help:"passes over the data"`
	Interactions    bool     `arg:"--interactions" help:"add pairwise feature interactions"`
	DoublePrecision bool     `arg:"--double" help:"store weights as float64"`
	Labels          []string `arg:"--labels,separate" help:"class labels for multinomial training (repeat the flag)"`
	Threads         int      `arg:"-j,--threads" help:"worker threads, 0 uses every core"`
	Codec           string   `arg:"--codec" default:"zstd" help:"model compression: none, zstd, s2 or lz4"`
	NoProgress      bool     `arg:"--no-progress" help:"hide the epoch progress bar"`
}

type evaluateCmd struct {
	Data   string `arg:"-d,--data,required" help:"CSV file with a header row"`
	Target string `arg:"-t,--target,required" help:"name of the target column"`
	Model  string `arg:"-m,--model,required" help:"trained model file"`
}

type predictCmd struct {
	Data   string `arg:"-d,--data,required" help:"CSV file with the training columns"`
	Model  string `arg:"-m,--model,required" help:"trained model file"`
	Output string `arg:"-o,--output" help:"where to write the probabilities, stdout when empty"`
	Drop   string `arg:"--drop" help:"column to remove before predicting, usually the target"`
}

type importanceCmd struct {
	Model     string `arg:"-m,--model,required" help:"trained model file"`
	Normalize bool   `arg:"--normalize" help:"scale importances so the largest is 1"`
	Plot      string `arg:"--plot" help:"write a bar chart to this PNG file"`
}

type args struct {
	Train      *trainCmd      `arg:"subcommand:train" help:"train a model on a CSV file"`
	Evaluate   *evaluateCmd   `arg:"subcommand:evaluate" help:"score a model against labelled data"`
	Predict    *predictCmd    `arg:"subcommand:predict" help:"write class probabilities for a CSV file"`
	Importance *importanceCmd `arg:"subcommand:importance" help:"print per-column feature importances"`

	Verbose   bool   `arg:"-v,--verbose" help:"debug logging, same as --log-level debug"`
	LogLevel  string `arg:"--log-level" default:"info" help:"debug, info, warn or error"`
	LogFormat string `arg:"--log-format" default:"console" help:"console or json"`
}

func (args) Version() string {
	return "hashftrl 0.1.0"
}

func (args) Description() string {
	return `Hashed FTRL-Proximal logistic regression for CSV data.`
}

func main() {
	var a args
	p := arg.MustParse(&a)

	if a.Verbose {
		a.LogLevel = "debug"
	}
	if err := log.Setup(os.Stderr, a.LogLevel, a.LogFormat); err != nil {
		p.Fail(err.Error())
	}

	var err error
	switch {
	case a.Train != nil:
		err = runTrain(a.Train)
	case a.Evaluate != nil:
		err = runEvaluate(a.Evaluate, os.Stdout)
	case a.Predict != nil:
		err = runPredict(a.Predict)
	case a.Importance != nil:
		err = runImportance(a.Importance, os.Stdout)
	default:
		p.Fail("missing subcommand")
	}
	if err != nil {
		log.GetLogger().Error("hashftrl failed", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
