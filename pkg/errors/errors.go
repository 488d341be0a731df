// Package errors defines the application-level error codes returned to
// API clients and the translation from domain errors. Expected
// business-rule failures always surface as a structured AppError, never
// as a bare fault; only genuine store failures map to the internal
// category.
package errors

import (
	"errors"
	"net/http"
	"strings"

	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/domain/member"
	"biblio/domain/shared"
)

// ErrorCode is a stable, machine-readable failure reason.
type ErrorCode string

const (
	// Generic codes.
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeStoreError     ErrorCode = "STORE_ERROR"

	// Member codes.
	CodeMemberNotFound   ErrorCode = "MEMBER_NOT_FOUND"
	CodeNationalIDExists ErrorCode = "NATIONAL_ID_EXISTS"
	CodeEmailExists      ErrorCode = "EMAIL_EXISTS"

	// Book codes.
	CodeBookNotFound        ErrorCode = "BOOK_NOT_FOUND"
	CodeBookUnavailable     ErrorCode = "BOOK_UNAVAILABLE"
	CodeBookNotLoaned       ErrorCode = "BOOK_NOT_LOANED"
	CodeBookLoaned          ErrorCode = "BOOK_LOANED"
	CodeCatalogNumberExists ErrorCode = "CATALOG_NUMBER_EXISTS"

	// Loan codes.
	CodeMissingIdentifiers ErrorCode = "MISSING_IDENTIFIERS"
	CodeNoMatchingLoan     ErrorCode = "NO_MATCHING_LOAN"
	CodeLoanNotFound       ErrorCode = "LOAN_NOT_FOUND"

	// Report codes.
	CodeInvalidReportKind ErrorCode = "INVALID_REPORT_KIND"
	CodeNoReportData      ErrorCode = "NO_REPORT_DATA"
)

// AppError is the structured failure the API layer renders.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to an HTTP status. Transport mapping
// lives here so the domain layer stays free of HTTP concepts.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeMissingIdentifiers, CodeInvalidReportKind:
		return http.StatusBadRequest
	case CodeNotFound, CodeMemberNotFound, CodeBookNotFound, CodeLoanNotFound,
		CodeNoMatchingLoan, CodeNoReportData:
		return http.StatusNotFound
	case CodeConflict, CodeNationalIDExists, CodeEmailExists, CodeCatalogNumberExists:
		return http.StatusConflict
	case CodeBookUnavailable, CodeBookNotLoaned, CodeBookLoaned:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError keeping the underlying cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// FromDomainError translates a domain error into an AppError by
// inspecting its sentinel chain. Unknown errors become the internal
// category so their details never reach a client.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, loan.ErrMissingIdentifiers):
		return Wrap(err, CodeMissingIdentifiers, err.Error())
	case errors.Is(err, loan.ErrNoMatchingLoan):
		return Wrap(err, CodeNoMatchingLoan, err.Error())
	case errors.Is(err, loan.ErrAlreadyClosed):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, book.ErrUnavailable):
		return Wrap(err, CodeBookUnavailable, err.Error())
	case errors.Is(err, book.ErrNotLoaned):
		return Wrap(err, CodeBookNotLoaned, err.Error())
	case errors.Is(err, book.ErrRemoveLoaned):
		return Wrap(err, CodeBookLoaned, err.Error())
	case errors.Is(err, book.ErrCatalogNumberExists):
		return Wrap(err, CodeCatalogNumberExists, err.Error())
	case errors.Is(err, member.ErrNationalIDExists):
		return Wrap(err, CodeNationalIDExists, err.Error())
	case errors.Is(err, member.ErrEmailExists):
		return Wrap(err, CodeEmailExists, err.Error())
	case errors.Is(err, member.ErrConcurrentModification),
		errors.Is(err, book.ErrConcurrentModification):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return fromNotFound(err)
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, member.ErrInvalidName),
		errors.Is(err, member.ErrInvalidPhone),
		errors.Is(err, member.ErrInvalidNationalID),
		errors.Is(err, member.ErrInvalidEmail),
		errors.Is(err, book.ErrInvalidCatalogNumber),
		errors.Is(err, loan.ErrInvalidPeriod):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrInvalidState):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrNoData):
		return Wrap(err, CodeNoReportData, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal error")
	}
}

// fromNotFound narrows a generic not-found to the entity-specific code
// using the DomainError entity tag when present.
func fromNotFound(err error) *AppError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Entity {
		case "member":
			return Wrap(err, CodeMemberNotFound, err.Error())
		case "book":
			return Wrap(err, CodeBookNotFound, err.Error())
		case "loan":
			return Wrap(err, CodeLoanNotFound, err.Error())
		}
	}
	// Subdomain error types carry the entity in their message instead.
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "member"):
		return Wrap(err, CodeMemberNotFound, msg)
	case strings.HasPrefix(msg, "book"):
		return Wrap(err, CodeBookNotFound, msg)
	case strings.HasPrefix(msg, "loan"):
		return Wrap(err, CodeLoanNotFound, msg)
	}
	return Wrap(err, CodeNotFound, msg)
}

// Is reports whether err carries the given application error code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
