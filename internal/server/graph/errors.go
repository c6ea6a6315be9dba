package graph

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// Code classifies an operation failure for clients.
type Code string

const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeValidation         Code = "VALIDATION"
	CodeInternal           Code = "INTERNAL"
)

// OperationError is the only error shape that leaves the dispatcher.
type OperationError struct {
	Code    Code
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

// Extensions is picked up by the GraphQL executor and rendered next to the
// message.
func (e *OperationError) Extensions() map[string]any {
	return map[string]any{"code": string(e.Code)}
}

func validationf(format string, args ...any) error {
	return &OperationError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// classify maps sentinel errors onto their public form. Unknown errors
// report false and must be treated as internal.
func classify(err error) (*OperationError, bool) {
	var opErr *OperationError
	switch {
	case errors.As(err, &opErr):
		return opErr, true
	case errors.Is(err, common.ErrorUnauthorized):
		return &OperationError{Code: CodeUnauthorized, Message: "unauthorized"}, true
	case errors.Is(err, common.ErrorNotFound):
		return &OperationError{Code: CodeNotFound, Message: "book not found"}, true
	case errors.Is(err, common.ErrorAlreadyExists):
		return &OperationError{Code: CodeConflict, Message: "user already exists"}, true
	case errors.Is(err, common.ErrorInvalidCredentials):
		return &OperationError{Code: CodeInvalidCredentials, Message: "invalid credentials"}, true
	}
	return &OperationError{Code: CodeInternal, Message: "internal server error"}, false
}
