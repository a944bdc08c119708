package errors

import (
	"errors"
	"fmt"
)

// ErrRecordInvalid marks a record whose signature or payload failed
// verification. It never reaches API callers: the store drops such records
// silently and treats them as absent.
var ErrRecordInvalid = errors.New("record invalid")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: 404}
}

func PermissionDenied(format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: 403}
}

// PreconditionFailed covers workflow calls against a non-pending request and
// approvals whose referenced board/thread no longer resolves.
func PreconditionFailed(format string, args ...any) error {
	return &ErrorWithStatusCode{Message: fmt.Sprintf(format, args...), StatusCode: 409}
}

// StatusCode returns the code carried by err, or 500 for plain errors.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 500
}
