package contact

import "errors"

var (
	// ErrInvalidName indicates a missing or blank name field.
	ErrInvalidName = errors.New("contact: name is required")
	// ErrMissingEmail indicates a missing or blank email field.
	ErrMissingEmail = errors.New("contact: email is required")
	// ErrMissingMessage indicates a missing or blank message field.
	ErrMissingMessage = errors.New("contact: message is required")
	// ErrSubmissionNotFound indicates no submission exists for the id.
	ErrSubmissionNotFound = errors.New("contact: submission not found")
)
