package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Dispatch errors
	ErrUnknownStatistic = errors.New("unknown statistic")
	ErrUnknownReduction = errors.New("unknown reduction method")
	ErrUnknownVariable  = errors.New("variable not found in dataset")

	// Configuration errors
	ErrMissingThreshold    = errors.New("threshold must be set for frequency analysis")
	ErrBadPercentileSpec   = errors.New("malformed percentile specification")
	ErrBadBinSpec          = errors.New("malformed bin specification")
	ErrEvenFilterWindow    = errors.New("filter window must be odd")
	ErrMissingCutoff       = errors.New("2nd cutoff must be set for bandpass filtering")
	ErrUnimplementedFilter = errors.New("filter not implemented")
	ErrBadResampleToken    = errors.New("malformed resample resolution token")

	// Execution errors
	ErrTimeChunked      = errors.New("time axis cannot be chunked for this statistic")
	ErrMissingTimeAxis  = errors.New("dataset has no time axis")
	ErrShapeMismatch    = errors.New("kernel output shape does not match declaration")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewUnknownStatisticError(stat string) error {
	return fmt.Errorf("%w: %q", ErrUnknownStatistic, stat)
}

func NewUnknownReductionError(method string) error {
	return fmt.Errorf("%w: %q", ErrUnknownReduction, method)
}

func NewPercentileSpecError(spec string) error {
	return fmt.Errorf("%w: %q; percentile(s) in stat method must be given with "+
		"a white space, e.g. 'percentile 95' or 'percentile 95,99'",
		ErrBadPercentileSpec, spec)
}

func NewMissingThresholdError(stat, variable string) error {
	return fmt.Errorf("%w: statistic %q, variable %q", ErrMissingThreshold, stat, variable)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingThreshold) ||
		errors.Is(err, ErrBadPercentileSpec) ||
		errors.Is(err, ErrBadBinSpec) ||
		errors.Is(err, ErrEvenFilterWindow) ||
		errors.Is(err, ErrMissingCutoff) ||
		errors.Is(err, ErrBadResampleToken)
}

func IsDispatchError(err error) bool {
	return errors.Is(err, ErrUnknownStatistic) ||
		errors.Is(err, ErrUnknownReduction) ||
		errors.Is(err, ErrUnknownVariable)
}

func IsExecutionError(err error) bool {
	return errors.Is(err, ErrTimeChunked) ||
		errors.Is(err, ErrMissingTimeAxis) ||
		errors.Is(err, ErrShapeMismatch)
}
