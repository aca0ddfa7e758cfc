// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package graphapi

import (
	"errors"

	"github.com/samber/oops"

	"github.com/shopgraph/shopgraph/internal/auth"
	"github.com/shopgraph/shopgraph/internal/catalog"
)

// Wire error codes, aligned with Apollo conventions.
const (
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeForbidden           = "FORBIDDEN"
	CodeBadUserInput        = "BAD_USER_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
)

// Error is a GraphQL-friendly error carrying a wire code. The cause is
// kept for logs only and never serialized to the client.
type Error struct {
	Message string
	Code    string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.cause }

// Extensions satisfies gqlerrors.ExtendedError so the code reaches the
// response's extensions object.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// CodeOf extracts the wire code, if present.
func CodeOf(err error) (string, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code, true
	}
	return "", false
}

func newError(code, message string, cause error) *Error {
	return &Error{Message: message, Code: code, cause: cause}
}

func Unauthenticated(cause error) error {
	return newError(CodeUnauthenticated, "authentication required for this action", cause)
}

func Forbidden(cause error) error {
	return newError(CodeForbidden, "forbidden", cause)
}

func NotFound(cause error) error {
	return newError(CodeNotFound, "not found", cause)
}

func BadUserInput(message string, cause error) error {
	if message == "" {
		message = "bad request"
	}
	return newError(CodeBadUserInput, message, cause)
}

func Conflict(message string, cause error) error {
	if message == "" {
		message = "conflict"
	}
	return newError(CodeConflict, message, cause)
}

func Internal(cause error) error {
	return newError(CodeInternalServerError, "internal server error", cause)
}

// validationCodes are oops codes raised by domain constructors. They
// describe bad caller input, not server faults.
var validationCodes = map[string]struct{}{
	"USER_INVALID_EMAIL":       {},
	"USER_PASSWORD_TOO_SHORT":  {},
	"USER_PASSWORD_TOO_LONG":   {},
	"USER_INVALID_ROLE":        {},
	"CATALOG_INVALID_NAME":     {},
	"PRODUCT_INVALID_PRICE":    {},
	"PRODUCT_INVALID_STOCK":    {},
	"PRODUCT_INVALID_CATEGORY": {},
	"ORDER_EMPTY":              {},
	"ORDER_INVALID_QUANTITY":   {},
	"ORDER_INVALID_PRICE":      {},
	"ORDER_INSUFFICIENT_STOCK": {},
	"GRAPHAPI_INVALID_ID":      {},
}

// translate maps a domain error onto a wire error. Anything it does
// not recognize becomes an opaque internal error so repository and
// driver details never leak into responses.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newError(CodeUnauthenticated, "invalid email or password", err)
	case errors.Is(err, auth.ErrEmailTaken):
		return Conflict("email already registered", err)
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return NotFound(err)
	case errors.Is(err, catalog.ErrForbidden):
		return Forbidden(err)
	case errors.Is(err, catalog.ErrCategoryInUse):
		return Conflict("category still has products", err)
	}

	var oopsErr oops.OopsError
	if errors.As(err, &oopsErr) {
		code := oopsErr.Code()
		if code == "AUTH_ACCOUNT_LOCKED" {
			// Same message as a bad password so a caller probing
			// accounts cannot tell a lockout from a miss.
			return newError(CodeUnauthenticated, "invalid email or password", err)
		}
		if codeStr, ok := code.(string); ok {
			if _, ok := validationCodes[codeStr]; ok {
				return BadUserInput(err.Error(), err)
			}
		}
	}
	return Internal(err)
}
