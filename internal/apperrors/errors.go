package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an operation violates referential integrity,
// e.g. deleting a location that is still referenced by users or activities.
var ErrConflict = errors.New("resource is in use")

// ErrInvalidState indicates that a lifecycle precondition was violated,
// e.g. finalizing an activity that is not in progress.
var ErrInvalidState = errors.New("invalid lifecycle state")

// ErrTimeout indicates that a remote database call exceeded its deadline.
var ErrTimeout = errors.New("operation timed out")

// ErrConnection indicates that the database is unreachable or not initialized.
var ErrConnection = errors.New("database connection error")

// ErrForbidden indicates that the caller's role does not permit the operation.
var ErrForbidden = errors.New("operation not permitted")
