package dispatch

import (
	"errors"
	"fmt"

	"github.com/papercomputeco/dify/pkg/event"
)

// ErrHandlerPanic is wrapped by a HandlerError when a handler panicked.
var ErrHandlerPanic = errors.New("handler panicked")

// HandlerError reports that the handler for an event failed. It is passed to
// OnException; the stream carries on with the next frame.
type HandlerError struct {
	Kind event.Kind
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handling %s event: %v", e.Kind, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
