// Package apperr defines the business-rule error carried from the services
// to the API layer, where it becomes an {"error": ...} payload.
package apperr

import "errors"

// Error codes.
const (
	CodeValidation    = "VALIDATION"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeConflict      = "CONFLICT"
	CodeStorageAbsent = "STORAGE_ABSENT"
)

// Error is a business-rule violation. Message is shown to callers verbatim.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// New returns an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Validation(message string) *Error    { return New(CodeValidation, message) }
func NotFound(message string) *Error      { return New(CodeNotFound, message) }
func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }
func Conflict(message string) *Error      { return New(CodeConflict, message) }
func StorageAbsent(message string) *Error { return New(CodeStorageAbsent, message) }

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err carries an *Error with the given code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
