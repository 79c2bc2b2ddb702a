package pipeline

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrUnknownAirport    = errors.New("unknown airport")
	ErrPredictionFailed  = errors.New("prediction failed")
)

// InvalidTimeFormatError reports a departure or arrival time that is not
// HH:MM or HH:MM:SS
type InvalidTimeFormatError struct {
	Field string // "departure_time" or "arrival_time"
	Value string
	Err   error
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InvalidTimeFormatError) Is(target error) bool { return target == ErrInvalidTimeFormat }

func (e *InvalidTimeFormatError) Unwrap() error { return e.Err }

// UnknownAirportError reports a code missing from the coordinate table
type UnknownAirportError struct {
	Role string // "origin" or "destination"
	Code string
	Err  error
}

func (e *UnknownAirportError) Error() string {
	return fmt.Sprintf("unknown %s airport %q", e.Role, e.Code)
}

func (e *UnknownAirportError) Is(target error) bool { return target == ErrUnknownAirport }

func (e *UnknownAirportError) Unwrap() error { return e.Err }

// PredictionFailedError wraps any failure during feature assembly or model
// inference, including a recovered panic
type PredictionFailedError struct {
	Message string
	Err     error
}

func (e *PredictionFailedError) Error() string {
	return "prediction failed: " + e.Message
}

func (e *PredictionFailedError) Is(target error) bool { return target == ErrPredictionFailed }

func (e *PredictionFailedError) Unwrap() error { return e.Err }
