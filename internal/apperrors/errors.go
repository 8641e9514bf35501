package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates a status change that the invoice state
// machine does not allow, e.g. canceling a non-pro-forma invoice.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUpstream indicates that an external dependency (warehouse stock system,
// payment gateway) failed or rejected the request. The enclosing operation
// must roll back rather than proceed without the upstream side effect.
var ErrUpstream = errors.New("upstream dependency failed")
