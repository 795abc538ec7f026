package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation is not valid for the entity's current state.
var ErrInvalidState = errors.New("operation not valid in current state")

// ErrExpired indicates that a time-boxed resource was used past its expiration.
var ErrExpired = errors.New("resource expired")
