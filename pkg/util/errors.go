package util

import (
	"errors"
	"fmt"
)

// Error. error with a client safe message and a code that the api maps to a http status
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.orig)
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

// Message. error message without the wrapped cause
func (e *Error) Message() string {
	return e.msg
}

// WrapErrorf. orig may be nil
func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// error codes
var (
	ErrInternalServerError = errors.New("internal server error")
	ErrNotFound            = errors.New("requested item not found")
	ErrConflict            = errors.New("item already exists")
	ErrBadParamInput       = errors.New("invalid parameter")
	ErrUnprocessable       = errors.New("request can not be processed")
)

var MessageInternalServerError string = "internal server error"

// ErrorCode. code of the first *Error in the chain, ErrInternalServerError for any other error
func ErrorCode(err error) error {
	var ierr *Error
	if errors.As(err, &ierr) && ierr.Code() != nil {
		return ierr.Code()
	}
	return ErrInternalServerError
}
