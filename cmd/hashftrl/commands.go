package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/compress"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
	"github.com/YuminosukeSato/hashftrl/pkg/log"
	"github.com/YuminosukeSato/hashftrl/sklearn/ftrl"
)

// progress drives a terminal bar from the epoch callback.
type progress struct {
	bar *pb.ProgressBar
}

func (p *progress) start(nepochs int, w io.Writer) {
	p.bar = pb.New(nepochs).SetWriter(w).Start()
}

func (p *progress) epoch(info ftrl.EpochInfo) error {
	log.GetLogger().Debug("epoch finished",
		"epoch", info.Epoch,
		"rows", info.Rows,
		"logloss", info.LogLoss,
	)
	if p.bar != nil {
		p.bar.Set("prefix", fmt.Sprintf("logloss %.5f ", info.LogLoss))
		p.bar.Increment()
	}
	return nil
}

func (p *progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

func (c *trainCmd) params() ftrl.Params {
	return ftrl.Params{
		Alpha:           c.Alpha,
		Beta:            c.Beta,
		Lambda1:         c.Lambda1,
		Lambda2:         c.Lambda2,
		NBins:           c.NBins,
		NEpochs:         c.NEpochs,
		Interactions:    c.Interactions,
		DoublePrecision: c.DoublePrecision,
	}
}

func runTrain(c *trainCmd) error {
	logger := log.GetLogger()
	codec, err := compress.ParseID(c.Codec)
	if err != nil {
		return err
	}
	data, err := readCSVFile(c.Data)
	if err != nil {
		return err
	}
	X, y, err := splitTarget(data, c.Target)
	if err != nil {
		return err
	}

	prog := &progress{}
	opts := []ftrl.Option{ftrl.WithNThreads(c.Threads), ftrl.WithEpochCallback(prog.epoch)}
	var m *ftrl.Model
	if c.Resume {
		m, err = ftrl.Open(c.Model, opts...)
	} else {
		opts = append(opts, ftrl.WithParams(c.params()))
		if len(c.Labels) > 0 {
			opts = append(opts, ftrl.WithLabels(c.Labels...))
		}
		m, err = ftrl.New(opts...)
	}
	if err != nil {
		return err
	}

	logger.Info("training",
		log.SamplesKey, X.NRows(),
		log.FeaturesKey, X.NCols(),
		"nbins", m.NBins(),
		"nepochs", m.NEpochs(),
		"resume", c.Resume,
	)
	if !c.NoProgress && m.NEpochs() > 0 {
		prog.start(m.NEpochs(), os.Stderr)
	}
	err = m.Fit(X, y)
	prog.finish()
	if err != nil {
		return err
	}
	logger.Info("training finished",
		log.LossKey, m.GetLoss(),
		"epochs", m.NIterations(),
		"converged", m.GetConverged(),
	)

	if err := m.SaveFile(c.Model, codec); err != nil {
		return err
	}
	logger.Info("model saved", "path", c.Model, "codec", codec.String())
	return report(os.Stdout, m, X, y)
}

func runEvaluate(c *evaluateCmd, w io.Writer) error {
	m, err := ftrl.Open(c.Model)
	if err != nil {
		return err
	}
	data, err := readCSVFile(c.Data)
	if err != nil {
		return err
	}
	X, y, err := splitTarget(data, c.Target)
	if err != nil {
		return err
	}
	return report(w, m, X, y)
}

func runPredict(c *predictCmd) error {
	m, err := ftrl.Open(c.Model)
	if err != nil {
		return err
	}
	X, err := readCSVFile(c.Data)
	if err != nil {
		return err
	}
	if c.Drop != "" {
		if X, err = X.Drop(c.Drop); err != nil {
			return err
		}
	}

	pred, err := m.Predict(X)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return errors.Wrapf(err, "create %s", c.Output)
		}
		defer f.Close()
		out = f
	}
	if err := writeCSV(out, pred); err != nil {
		return errors.Wrap(err, "write predictions")
	}
	log.GetLogger().Info("predictions written", log.SamplesKey, pred.NRows())
	return nil
}

func runImportance(c *importanceCmd, w io.Writer) error {
	m, err := ftrl.Open(c.Model)
	if err != nil {
		return err
	}
	fi := m.FeatureImportances(c.Normalize)
	if fi == nil {
		return errors.NewNotTrainedError("Ftrl", "importance")
	}
	if err := printImportances(w, fi); err != nil {
		return err
	}
	if c.Plot != "" {
		if err := plotImportances(fi, c.Plot); err != nil {
			return err
		}
		log.GetLogger().Info("importance chart written", "path", c.Plot)
	}
	return nil
}

func printImportances(w io.Writer, fi *frame.Frame) error {
	names, values := fi.Col(0), fi.Col(1)
	for i := 0; i < fi.NRows(); i++ {
		if _, err := fmt.Fprintf(w, "%-24s %.6g\n", names.Text(i), values.Float64(i)); err != nil {
			return err
		}
	}
	return nil
}
