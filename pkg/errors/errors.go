package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound indicates the geocoder returned no match for a place
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidCoordinate indicates a malformed or out-of-range coordinate pair
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNoDatetimeFound indicates an utterance contained no date/time concept
	ErrNoDatetimeFound = errors.New("no datetime found in utterance")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")
)

// Wrap wraps an error with a message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is checks if an error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// IsLocationNotFound checks if an error means the place is unknown rather
// than the lookup having failed
func IsLocationNotFound(err error) bool {
	return errors.Is(err, ErrLocationNotFound)
}

// IsNoDatetimeFound checks if an error is a missing-datetime error
func IsNoDatetimeFound(err error) bool {
	return errors.Is(err, ErrNoDatetimeFound)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInvalidInput checks if an error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
