package contact

import "fmt"

// FieldError is a validation failure for a single field.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// SubmissionError is the only failure the submission flow surfaces: a
// human-readable message from the remote call plus the underlying cause.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func submissionErrorf(cause error, format string, args ...any) *SubmissionError {
	return &SubmissionError{Message: fmt.Sprintf(format, args...), Err: cause}
}
