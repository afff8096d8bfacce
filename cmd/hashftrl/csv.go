package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// readCSVFile loads a CSV file with a header row into a frame.
func readCSVFile(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	X, err := readCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return X, nil
}

// readCSV infers one type per column: int, then float, then bool, and
// string when nothing else fits. A column with an empty cell is a string
// column.
func readCSV(r io.Reader) (*frame.Frame, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "csv has no header")
	}

	header, rows := records[0], records[1:]
	cols := make([]frame.Column, len(header))
	cells := make([]string, len(rows))
	for j, name := range header {
		for i, rec := range rows {
			cells[i] = rec[j]
		}
		cols[j] = inferColumn(name, cells)
	}
	return frame.New(cols...)
}

func inferColumn(name string, cells []string) frame.Column {
	if ints, ok := parseAll(cells, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }); ok {
		return frame.NewIntColumn(name, ints)
	}
	if fs, ok := parseAll(cells, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }); ok {
		return frame.NewFloat64Column(name, fs)
	}
	if bs, ok := parseAll(cells, strconv.ParseBool); ok {
		return frame.NewBoolColumn(name, bs)
	}
	return frame.NewStringColumn(name, append([]string(nil), cells...))
}

func parseAll[T any](cells []string, parse func(string) (T, error)) ([]T, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]T, len(cells))
	for i, s := range cells {
		if s == "" {
			return nil, false
		}
		v, err := parse(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// splitTarget separates the target column from the features.
func splitTarget(data *frame.Frame, target string) (X, y *frame.Frame, err error) {
	col, ok := data.ColByName(target)
	if !ok {
		return nil, nil, errors.NewConfigurationError("target", "column not found", target)
	}
	X, err = data.Drop(target)
	if err != nil {
		return nil, nil, err
	}
	y, err = frame.New(col)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// writeCSV writes every column of f with a header row.
func writeCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return err
	}
	rec := make([]string, f.NCols())
	for i := 0; i < f.NRows(); i++ {
		for j := range rec {
			rec[j] = f.Col(j).Text(i)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
