// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is the single error family the engine returns. Every
// rejected action wraps it with a contextual message; callers report the
// message to the acting connection only and leave the session untouched.
// Anything else escaping the engine is a programmer error.
var ErrInvalidAction = errors.New("invalid action")

// invalidActionf builds a contextual member of the ErrInvalidAction family.
func invalidActionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}
