// Package dxterrors defines the error kinds shared across the block-kernel,
// header, and file-format packages of dxt-lossless-transform-go.
package dxterrors

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is. Wrap with fmt.Errorf("...: %w", Err...)
// whenever additional context (sizes, offsets) should travel with the error.
var (
	// ErrCorruptedEmbeddedData is returned by header.Unpack when the version
	// field is non-zero or an enum-encoded field falls outside its closed set.
	ErrCorruptedEmbeddedData = errors.New("dxt-lossless-transform: corrupted embedded header")

	// ErrUnknownFileFormat is returned when a container handler cannot
	// classify the supplied bytes or extension.
	ErrUnknownFileFormat = errors.New("dxt-lossless-transform: unknown file format")

	// ErrUnsupportedFormat is returned by the fileformat builders and by
	// Bundle.DispatchUntransform for a format tag that has no kernel here
	// (anything other than BC1, BC2 and BC3).
	ErrUnsupportedFormat = errors.New("dxt-lossless-transform: unsupported format")

	// ErrNoBuilderForFormat is returned by Bundle.DispatchTransform when the
	// caller never registered a builder for the detected format.
	ErrNoBuilderForFormat = errors.New("dxt-lossless-transform: no builder registered for format")
)

// InvalidLengthError reports an input whose length is not a multiple of the
// codec's block size.
type InvalidLengthError struct {
	Actual      int
	BlockSize   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("dxt-lossless-transform: invalid length %d (not a multiple of block size %d)", e.Actual, e.BlockSize)
}

// NewInvalidLength constructs an InvalidLengthError.
func NewInvalidLength(actual, blockSize int) error {
	return &InvalidLengthError{Actual: actual, BlockSize: blockSize}
}

// OutputBufferTooSmallError reports a destination buffer shorter than the
// source it must receive.
type OutputBufferTooSmallError struct {
	Needed int
	Actual int
}

func (e *OutputBufferTooSmallError) Error() string {
	return fmt.Sprintf("dxt-lossless-transform: output buffer too small: needed %d, got %d", e.Needed, e.Actual)
}

// NewOutputBufferTooSmall constructs an OutputBufferTooSmallError.
func NewOutputBufferTooSmall(needed, actual int) error {
	return &OutputBufferTooSmallError{Needed: needed, Actual: actual}
}

// SizeEstimationError wraps an error returned by a caller-supplied Estimator.
type SizeEstimationError struct {
	Inner error
}

func (e *SizeEstimationError) Error() string {
	return fmt.Sprintf("dxt-lossless-transform: size estimation failed: %v", e.Inner)
}

func (e *SizeEstimationError) Unwrap() error { return e.Inner }

// NewSizeEstimationError wraps an estimator-native error.
func NewSizeEstimationError(inner error) error {
	return &SizeEstimationError{Inner: inner}
}

// InvalidDataAlignmentError reports a block region whose length is not a
// multiple of the required divisor, surfaced by dispatch rather than the
// raw kernels.
type InvalidDataAlignmentError struct {
	Size            int
	RequiredDivisor int
}

func (e *InvalidDataAlignmentError) Error() string {
	return fmt.Sprintf("dxt-lossless-transform: data size %d is not aligned to %d", e.Size, e.RequiredDivisor)
}

// NewInvalidDataAlignment constructs an InvalidDataAlignmentError.
func NewInvalidDataAlignment(size, requiredDivisor int) error {
	return &InvalidDataAlignmentError{Size: size, RequiredDivisor: requiredDivisor}
}
