package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("alpha", "must be positive", 0.0)

	want := "hashftrl: invalid configuration for 'alpha': must be positive (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected stack trace to contain test file name")
	}

	if !IsConfiguration(err) {
		t.Error("IsConfiguration() should be true")
	}
	if IsShape(err) || IsState(err) || IsTypeMismatch(err) {
		t.Error("a ConfigurationError must not match other kinds")
	}
}

func TestNewShapeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rows",
			err:  NewShapeError("Fit", 10, 0, 0),
			want: "hashftrl: Fit: shape mismatch on axis 0 (rows). Expected 10, got 0",
		},
		{
			name: "columns with detail",
			err:  NewShapeErrorf("Predict", 3, 2, 1, "same number of features as training"),
			want: "hashftrl: Predict: shape mismatch on axis 1 (columns). Expected 3, got 2: same number of features as training",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.want)
			}
			var shapeErr *ShapeError
			if !As(tt.err, &shapeErr) {
				t.Error("Error should be castable to *ShapeError")
			}
		})
	}
}

func TestNewStateError(t *testing.T) {
	err := NewNotTrainedError("Ftrl", "Predict")

	if !IsState(err) {
		t.Fatal("IsState() should be true")
	}
	if !strings.Contains(err.Error(), "not trained") {
		t.Errorf("unexpected message: %v", err)
	}

	wrapped := Wrap(err, "serving")
	if !IsState(wrapped) {
		t.Error("IsState() should see through Wrap")
	}
}

func TestNewTypeMismatchError(t *testing.T) {
	err := NewTypeMismatchError("SetWeights", "z_target", "float64", "float32")

	want := "hashftrl: SetWeights: column 'z_target' should have type float64, got float32"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !IsTypeMismatch(err) {
		t.Error("IsTypeMismatch() should be true")
	}
}

func TestGetSafeStack(t *testing.T) {
	err := NewStateError("Ftrl", "SetNBins", "trained")
	if stack := GetSafeStack(err); stack == "" {
		t.Error("expected a stack trace in the safe details")
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewHashCollisionWarning(10, 4))
	Warn(NewNoEpochsWarning("Fit"))

	if len(got) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "nbins=4") {
		t.Errorf("unexpected warning text: %v", got[0])
	}
}
