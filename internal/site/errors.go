package site

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by Build wraps exactly one of them.
var (
	ErrDataLoad        = errors.New("data load failed")
	ErrTemplate        = errors.New("template failed")
	ErrChartGeneration = errors.New("chart generation failed")
	ErrAssetCopy       = errors.New("asset copy failed") // non-fatal, reported in Result.Warnings
	ErrWrite           = errors.New("write failed")
)

// StageError records which stage failed, the kind of failure and the file
// involved, if any.
type StageError struct {
	Stage Stage
	Kind  error
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the error kind of e.
func (e *StageError) Is(target error) bool {
	return target == e.Kind
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, kind error, path string, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Path: path, Err: err}
}
