package scheduling

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the scheduling engine.
const (
	CodeInvalidInput    = "invalidInput"
	CodeSlotUnavailable = "slotUnavailable"
	CodeLockUnavailable = "lockUnavailable"
)

// Error is a typed engine failure carrying one of the codes above.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidInput(msg string) error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

func NewSlotUnavailable(msg string) error {
	return &Error{Code: CodeSlotUnavailable, Message: msg}
}

func NewLockUnavailable(msg string) error {
	return &Error{Code: CodeLockUnavailable, Message: msg}
}

// CodeOf extracts the engine error code, or "" for untyped errors
// (persistence faults surface verbatim and carry no code).
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
