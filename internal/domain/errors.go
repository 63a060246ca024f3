package domain

import "errors"

// Pre-flight and run-level sentinel errors.
var (
	ErrSourceNotDirectory  = errors.New("source is not a directory")
	ErrDisallowedDirectory = errors.New("source contains a disallowed directory")
	ErrAlreadyUnfolded     = errors.New("source is already an unfolded directory")
	ErrRunInProgress       = errors.New("another run is using the output directory")
	ErrRunHasErrors        = errors.New("run finished with errors")
)

// RunError is the terminal error of a run that never started or could not
// recover. Message is suitable for showing to the user as-is.
type RunError struct {
	Message string
	Err     error
}

func (e *RunError) Error() string {
	return e.Message
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(err error, message string) *RunError {
	return &RunError{Message: message, Err: err}
}
