// Package fault carries the expected-failure taxonomy shared by the
// services: conditions the caller can recover from, as opposed to defects.
// Controllers switch on CodeOf to pick a status; anything without a code is
// treated as an internal error.
package fault

import "errors"

type Code string

const (
	CodeInvalid       Code = "INVALID"
	CodeNotFound      Code = "NOT_FOUND"
	CodeUnavailable   Code = "UNAVAILABLE"
	CodeLimitExceeded Code = "LIMIT_EXCEEDED"
)

type codedError struct {
	code Code
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() Code    { return e.code }

func Invalid(msg string) error       { return codedError{code: CodeInvalid, msg: msg} }
func NotFound(msg string) error      { return codedError{code: CodeNotFound, msg: msg} }
func Unavailable(msg string) error   { return codedError{code: CodeUnavailable, msg: msg} }
func LimitExceeded(msg string) error { return codedError{code: CodeLimitExceeded, msg: msg} }

// CodeOf extracts the code, or "" for uncoded (defect) errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
