// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
//
// Every error raised by the FTRL engine belongs to one of four kinds:
// ConfigurationError, ShapeError, StateError and TypeMismatchError. Training
// that diverges reports a NumericalInstabilityError. All of them carry a stack
// trace from cockroachdb/errors and can be marshalled into zerolog events.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("hashftrl-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler.
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink wins over the plain handler when set.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// HashCollisionWarning is raised when a row produces more hashed features
// than there are bins, so collisions inside a single row are unavoidable.
type HashCollisionWarning struct {
	Features int
	NBins    uint64
}

func (w *HashCollisionWarning) Error() string {
	return fmt.Sprintf("%d hashed features per row exceed nbins=%d; collisions within a row are guaranteed. Consider increasing nbins.", w.Features, w.NBins)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *HashCollisionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("features", w.Features).
		Uint64("nbins", w.NBins).
		Str("type", "HashCollisionWarning")
}

// NewHashCollisionWarning creates a HashCollisionWarning.
func NewHashCollisionWarning(features int, nbins uint64) *HashCollisionWarning {
	return &HashCollisionWarning{Features: features, NBins: nbins}
}

// NoEpochsWarning is raised when Fit runs with nepochs == 0: weights are
// allocated but never updated.
type NoEpochsWarning struct {
	Op string
}

func (w *NoEpochsWarning) Error() string {
	return fmt.Sprintf("%s: nepochs is 0, the model is allocated but no training step was performed", w.Op)
}

// NewNoEpochsWarning creates a NoEpochsWarning.
func NewNoEpochsWarning(op string) *NoEpochsWarning {
	return &NoEpochsWarning{Op: op}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ConfigurationError reports an invalid or contradictory hyperparameter or
// label configuration.
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("hashftrl: invalid configuration for '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ConfigurationError{ParamName: param, Reason: reason, Value: value})
}

// ShapeError reports a row or column count mismatch.
type ShapeError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
	Detail   string
}

func (e *ShapeError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	msg := fmt.Sprintf("hashftrl: %s: shape mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "ShapeError")
}

// NewShapeError creates a ShapeError with a stack trace.
func NewShapeError(op string, expected, got, axis int) error {
	return errors.WithStack(&ShapeError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// NewShapeErrorf creates a ShapeError with an explanatory detail.
func NewShapeErrorf(op string, expected, got, axis int, format string, args ...interface{}) error {
	return errors.WithStack(&ShapeError{
		Op: op, Expected: expected, Got: got, Axis: axis,
		Detail: fmt.Sprintf(format, args...),
	})
}

// StateError reports an operation that is not allowed in the model's
// current lifecycle state, e.g. predicting with an untrained model.
type StateError struct {
	ModelName string
	Op        string
	Reason    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("hashftrl: %s: %s: %s", e.ModelName, e.Op, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StateError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Op).
		Str("reason", e.Reason).
		Str("type", "StateError")
}

// NewStateError creates a StateError with a stack trace.
func NewStateError(modelName, op, reason string) error {
	return errors.WithStack(&StateError{ModelName: modelName, Op: op, Reason: reason})
}

// NewNotTrainedError is the StateError returned when a method needs a
// trained model.
func NewNotTrainedError(modelName, op string) error {
	return NewStateError(modelName, op, "this model is not trained yet. Call Fit() or set the model first")
}

// TypeMismatchError reports a column whose type differs from what the model
// precision or the operation requires.
type TypeMismatchError struct {
	Op       string
	Column   string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("hashftrl: %s: column '%s' should have type %s, got %s", e.Op, e.Column, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *TypeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("expected", e.Expected).
		Str("got", e.Got).
		Str("type", "TypeMismatchError")
}

// NewTypeMismatchError creates a TypeMismatchError with a stack trace.
func NewTypeMismatchError(op, column, expected, got string) error {
	return errors.WithStack(&TypeMismatchError{Op: op, Column: column, Expected: expected, Got: got})
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// Training reports it when an epoch loss turns NaN or infinite.
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "progressive_logloss"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("hashftrl: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("iteration", e.Iteration).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace.
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values, Iteration: iteration})
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsShape reports whether err is (or wraps) a ShapeError.
func IsShape(err error) bool {
	var target *ShapeError
	return errors.As(err, &target)
}

// IsState reports whether err is (or wraps) a StateError.
func IsState(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// IsTypeMismatch reports whether err is (or wraps) a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var target *TypeMismatchError
	return errors.As(err, &target)
}

// IsNumerical reports whether err is (or wraps) a NumericalInstabilityError.
func IsNumerical(err error) bool {
	var target *NumericalInstabilityError
	return errors.As(err, &target)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// GetSafeStack returns the first safe detail of err, which for errors built
// with WithStack is the formatted stack trace.
func GetSafeStack(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrUnknownCodec is returned when a persisted model names a codec this
	// build does not know.
	ErrUnknownCodec = New("unknown codec")
)
