// Package errors defines the error codes shared by the sync engine and its
// collaborators. Every failure that crosses a package boundary carries one of
// these codes so callers can decide how to surface it.
package errors

import "errors"

// Code identifies the class of a failure.
type Code string

const (
	CodeUnknown Code = "unknown"

	// CodeConfiguration marks missing or invalid settings. It blocks every
	// remote call until fixed.
	CodeConfiguration Code = "configuration_error"

	// CodeNetwork marks a failed remote call. Only the operation that issued
	// the call is aborted.
	CodeNetwork Code = "network_error"

	// CodeFileSystem marks a failed vault read or write. These are logged and
	// the single write is skipped.
	CodeFileSystem Code = "filesystem_error"
)

// Error is a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// Configuration reports missing or invalid settings.
func Configuration(msg string) Error {
	return Error{Code: CodeConfiguration, Message: msg}
}

// Network wraps err as a network failure.
func Network(msg string, err error) Error {
	return Error{Code: CodeNetwork, Message: msg, Err: err}
}

// FileSystem wraps err as a vault failure.
func FileSystem(msg string, err error) Error {
	return Error{Code: CodeFileSystem, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
