package serrors

import (
	"errors"
	"fmt"
)

// Kind discriminates error families the way the HTTP boundary needs to treat
// them: validation and parsing surface as request errors, storage and service
// as internal errors.
type Kind string

const (
	KindValidation Kind = "validation"
	KindParsing    Kind = "parsing"
	KindStorage    Kind = "storage"
	KindService    Kind = "service"
)

// Base is a coded error value carrying a kind discriminant, a stable code and
// a human-readable message.
type Base struct {
	kind    Kind
	code    string
	message string
	cause   error
}

func NewError(kind Kind, code, message string) *Base {
	return &Base{kind: kind, code: code, message: message}
}

func WrapError(cause error, kind Kind, code, message string) *Base {
	return &Base{kind: kind, code: code, message: message, cause: cause}
}

func NewValidation(code, message string) *Base {
	return NewError(KindValidation, code, message)
}

func NewParsing(code, message string) *Base {
	return NewError(KindParsing, code, message)
}

func WrapStorage(cause error, code, message string) *Base {
	return WrapError(cause, KindStorage, code, message)
}

func WrapService(cause error, code, message string) *Base {
	return WrapError(cause, KindService, code, message)
}

func (e *Base) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

func (e *Base) Unwrap() error    { return e.cause }
func (e *Base) Kind() Kind       { return e.kind }
func (e *Base) Code() string     { return e.code }
func (e *Base) Message() string  { return e.message }

// IsKind reports whether err or anything in its chain is a *Base of the given
// kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if base, ok := err.(*Base); ok && base.kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// MessageOf returns the outermost coded message, falling back to err.Error()
// for plain errors.
func MessageOf(err error) string {
	var base *Base
	if errors.As(err, &base) {
		return base.message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
