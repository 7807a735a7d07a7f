package bio

import (
	"errors"
	"fmt"
)

type ValidationKind string

const (
	KindMissingInput ValidationKind = "missing-input"
	KindMalformed    ValidationKind = "malformed"
	KindMissingField ValidationKind = "missing-field"
)

const NoInputMessage = "No input data provided"

// ErrNoInput is returned when the request body is empty or holds an empty JSON value.
var ErrNoInput = &ValidationError{Kind: KindMissingInput}

// ValidationError reports a request the service could not turn into a prompt.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingInput:
		return NoInputMessage
	case KindMissingField:
		return fmt.Sprintf("missing required field '%s'", e.Field)
	default:
		if e.Err != nil {
			return "invalid request body: " + e.Err.Error()
		}
		return "invalid request body"
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches any ValidationError of the same kind, so errors.Is(err, ErrNoInput) works.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// GenerationError reports a failure in the generation backend, tokenizer or narrator.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsGeneration(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}
