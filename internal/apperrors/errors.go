package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateCode indicates that an account code is already taken within the organization.
var ErrDuplicateCode = errors.New("account code already exists")

// ErrInvalidParent indicates that a parent account reference is missing or would create a cycle.
var ErrInvalidParent = errors.New("invalid parent account")

// ErrAccountTypeLocked indicates that an account's type cannot change because posted lines reference it.
var ErrAccountTypeLocked = errors.New("account type is locked by posted journal lines")

// ErrImmutableEntry indicates an attempted mutation of a journal entry that is no longer a draft.
var ErrImmutableEntry = errors.New("journal entry is not a draft and cannot be modified")

// ErrAlreadyPosted indicates a duplicate post attempt on an already posted entry.
var ErrAlreadyPosted = errors.New("journal entry is already posted")

// ErrDataIntegrity indicates that an aggregation invariant (trial balance closure,
// balance sheet identity) does not hold. This is a posting bug, not a user error.
var ErrDataIntegrity = errors.New("ledger data integrity violation")

// ErrForbidden indicates the user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a message and wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
