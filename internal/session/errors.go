package session

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNumber   = errors.New("session: invalid number")
	ErrNotInteractive  = errors.New("session: visualization is not interactive")
	ErrIndexOutOfRange = errors.New("session: index out of range")
	ErrUnknownParam    = errors.New("session: unknown parameter")
	ErrDerivedData     = errors.New("session: data is derived from parameters")
	ErrLastItem        = errors.New("session: cannot remove the last item")
)

// EditError reports a rejected edit. The visualization keeps its previous
// values.
type EditError struct {
	Op    string
	Field string
	Value string
	Err   error
}

func (e *EditError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Field, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }
