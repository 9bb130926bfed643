package gray

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes codec errors.
type ErrorCode string

const (
	// ErrCodeInvalidWidth indicates a codec was constructed with a width
	// outside 1..bit size of the backing type.
	ErrCodeInvalidWidth ErrorCode = "INVALID_WIDTH"

	// ErrCodeOutOfRange indicates an input value has bits set above the
	// codec width.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// CodecError is returned when a codec cannot be built or a value does not
// fit the codec width. Range errors are raised before any transform runs;
// inputs are never masked.
type CodecError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Width is the requested or bound codec width.
	Width int

	// Value is the rejected input (range errors only).
	Value uint64
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigurationError returns true if err is an invalid-width error.
// Uses errors.As to handle wrapped errors.
func IsConfigurationError(err error) bool {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeInvalidWidth
	}
	return false
}

// IsRangeError returns true if err reports an input wider than the codec.
// Uses errors.As to handle wrapped errors.
func IsRangeError(err error) bool {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeOutOfRange
	}
	return false
}

// NewWidthError creates a CodecError for a width that T cannot hold.
func NewWidthError(width, maxWidth int) *CodecError {
	return &CodecError{
		Code:    ErrCodeInvalidWidth,
		Message: fmt.Sprintf("width %d outside [1, %d]", width, maxWidth),
		Width:   width,
	}
}

// NewRangeError creates a CodecError for a value above 2^width-1.
func NewRangeError(value uint64, width int) *CodecError {
	return &CodecError{
		Code:    ErrCodeOutOfRange,
		Message: fmt.Sprintf("value %d does not fit in %d bits", value, width),
		Width:   width,
		Value:   value,
	}
}
