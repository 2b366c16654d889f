package engine

import (
	"errors"
	"fmt"
)

// ErrIllegalAction matches every rejection from Perform.
var ErrIllegalAction = errors.New("illegal action")

// IllegalActionError carries the human-readable reason an action was
// rejected. It is the only error kind the engine returns from Perform.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string { return e.Reason }

func (e *IllegalActionError) Is(target error) bool { return target == ErrIllegalAction }

// Illegal builds an IllegalActionError from a format string.
func Illegal(format string, args ...any) error {
	return &IllegalActionError{Reason: fmt.Sprintf(format, args...)}
}
