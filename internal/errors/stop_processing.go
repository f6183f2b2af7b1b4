package errors

import (
	"errors"
	"fmt"
)

// Interactive steps that can stop a command.
const (
	StepCoverPicker = "cover picker"
	StepSearchForm  = "search form"
)

// StopProcessingError is returned when the user quits an interactive step.
// The command ends without saving and without reporting a failure.
type StopProcessingError struct {
	Step   string
	Reason string
}

func (e *StopProcessingError) Error() string {
	if e.Step == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

// NewStopProcessingError creates a StopProcessingError for step.
func NewStopProcessingError(step, reason string) *StopProcessingError {
	return &StopProcessingError{Step: step, Reason: reason}
}

// IsStopProcessingError reports whether err is a StopProcessingError (even when wrapped).
func IsStopProcessingError(err error) bool {
	var stopErr *StopProcessingError
	return errors.As(err, &stopErr)
}
