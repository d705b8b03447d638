package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWindow    = errors.New("window must be a positive integer")
	ErrInsufficientData = errors.New("not enough data")
)

// ConfigurationError reports an unusable indicator window.
type ConfigurationError struct {
	Window int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid window %d: %v", e.Window, ErrInvalidWindow)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidWindow }

// InsufficientDataError reports a series too short to compute over.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%v: series has %d rows", ErrInsufficientData, e.Rows)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

func checkWindow(window int) error {
	if window <= 0 {
		return &ConfigurationError{Window: window}
	}
	return nil
}
