package apperrors

import "fmt"

// ValidationError rejects malformed caller input before any side effect
// happens. Its message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// StoreError wraps a record-store read/write failure. A missing record during
// lookup is NOT a StoreError; repositories report that as a nil result.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStore(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// ModelError wraps a failed or unusable generative model call. It always
// aborts the turn before anything is persisted.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func NewModel(err error) *ModelError {
	return &ModelError{Err: err}
}
