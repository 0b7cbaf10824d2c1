package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrExamHasResults   = errors.New("exam has results and cannot be deleted")

	// Attempt workflow errors, surfaced as 4xx at the HTTP boundary.
	ErrNotAssigned      = errors.New("exam not found or not assigned to you")
	ErrExamInactive     = errors.New("this exam is not active")
	ErrAlreadyCompleted = errors.New("you have already taken this exam")
	ErrResultNotFound   = errors.New("result not found")

	ErrPipelineNotFound = errors.New("pipeline not found")
)

// ValidationError marks malformed input: missing fields, out-of-range
// option letters, negative timeTaken and the like.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
