package ftrl

import (
	"fmt"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// RegType is the classification mode of a trained model.
type RegType int32

const (
	// RegTypeNone marks a model that has not been trained.
	RegTypeNone RegType = iota
	// RegTypeBinomial is a single logistic classifier.
	RegTypeBinomial
	// RegTypeMultinomial is one-vs-rest with one classifier per label.
	RegTypeMultinomial
)

func (r RegType) String() string {
	switch r {
	case RegTypeNone:
		return "none"
	case RegTypeBinomial:
		return "binomial"
	case RegTypeMultinomial:
		return "multinomial"
	}
	return fmt.Sprintf("RegType(%d)", int32(r))
}

func (r RegType) valid() bool {
	return r >= RegTypeNone && r <= RegTypeMultinomial
}

// defaultLabel names the single output column of a binomial model.
const defaultLabel = "target"

// normalizeLabels validates labels and returns an owned copy.
func normalizeLabels(labels []string) ([]string, error) {
	switch len(labels) {
	case 0:
		return []string{defaultLabel}, nil
	case 1:
		return nil, errors.NewConfigurationError("labels", "should have at least two elements for multinomial regression", labels)
	}

	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return nil, errors.NewConfigurationError("labels", "label cannot be empty", labels)
		}
		if _, dup := seen[l]; dup {
			return nil, errors.NewConfigurationError("labels", fmt.Sprintf("label '%s' is duplicated", l), labels)
		}
		seen[l] = struct{}{}
	}
	return append([]string(nil), labels...), nil
}

// regTypeFor derives the classification mode implied by a label set.
func regTypeFor(labels []string) RegType {
	if len(labels) > 1 {
		return RegTypeMultinomial
	}
	return RegTypeBinomial
}

// noClass marks a row that is negative for every classifier.
const noClass int32 = -1

// encodeTargets maps every row of y to the index of the classifier it is
// positive for, or noClass. A binomial positive row maps to classifier 0.
func encodeTargets(y frame.Column, rt RegType, labels []string) ([]int32, error) {
	out := make([]int32, y.Len())

	if rt == RegTypeBinomial {
		switch y.Type() {
		case frame.Bool, frame.Int:
		default:
			return nil, errors.NewTypeMismatchError("Fit", y.Name(), "bool", y.Type().String())
		}
		for i := range out {
			bits, _ := y.Bits(i)
			switch bits {
			case 0:
				out[i] = noClass
			case 1:
				out[i] = 0
			default:
				return nil, errors.NewTypeMismatchError("Fit", y.Name(), "bool",
					fmt.Sprintf("%s with value %s at row %d", y.Type(), y.Text(i), i))
			}
		}
		return out, nil
	}

	if y.Type().IsFloat() {
		return nil, errors.NewTypeMismatchError("Fit", y.Name(), "bool, int or string", y.Type().String())
	}
	index := make(map[string]int32, len(labels))
	for k, l := range labels {
		index[l] = int32(k)
	}
	for i := range out {
		if k, ok := index[y.Text(i)]; ok {
			out[i] = k
		} else {
			out[i] = noClass
		}
	}
	return out, nil
}
