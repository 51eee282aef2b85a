package graph

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/notegraph/notegraph/internal/errs"
)

// Machine-readable error codes surfaced in GraphQL error extensions.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeBadUserInput       = "BAD_USER_INPUT"
	CodeInternal           = "INTERNAL"
)

// apiError is a client-facing error with a stable code. It implements
// gqlerrors.ExtendedError so the code travels in the response extensions.
type apiError struct {
	msg  string
	code string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

var (
	errUnauthorized       = &apiError{msg: "unauthorized", code: CodeUnauthorized}
	errInvalidCredentials = &apiError{msg: "invalid credentials", code: CodeInvalidCredentials}
	errEmailTaken         = &apiError{msg: "email already registered", code: CodeConflict}
	errRateLimited        = &apiError{msg: "too many attempts, try again later", code: CodeRateLimited}
	errInternal           = &apiError{msg: "internal error", code: CodeInternal}
)

// wrapErr maps domain sentinels onto client-facing errors. Anything
// unanticipated collapses to a generic internal error so no internals leak.
func wrapErr(err error) error {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrNotFound):
		return errUnauthorized
	case errors.Is(err, errs.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, errs.ErrAlreadyExists):
		return errEmailTaken
	case errors.Is(err, errs.ErrRateLimited):
		return errRateLimited
	case errors.As(err, &verr):
		return &apiError{msg: err.Error(), code: CodeBadUserInput}
	default:
		return errInternal
	}
}
