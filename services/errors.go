package services

import "errors"

// Error taxonomy for the review and ranking services.
//
// Validation and duplicate errors are caller-correctable and rejected before
// any write. Dependency errors are retryable and only surface on the write
// path; display-path reads degrade to the fallback cache instead.
var (
	ErrInvalidScore          = errors.New("score must be an integer between 1 and 5")
	ErrInvalidComment        = errors.New("comment must be at least 10 characters")
	ErrDuplicateSubmission   = errors.New("a rating for this session already exists")
	ErrDependencyUnavailable = errors.New("persistence dependency unavailable")
)

// IsValidationError reports whether err should map to a 400 at the boundary.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidScore) || errors.Is(err, ErrInvalidComment)
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDependencyUnavailable)
}
