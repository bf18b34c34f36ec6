package event

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPayload is wrapped by a DecodeError when a data frame carried
	// nothing but whitespace.
	ErrEmptyPayload = errors.New("empty event payload")

	// ErrMissingKind is wrapped by a DecodeError when a payload carries no
	// "event" or "kind" discriminant.
	ErrMissingKind = errors.New("event payload has no kind")

	// ErrUnknownKind is wrapped by a DecodeError when the discriminant names
	// a kind this package does not model.
	ErrUnknownKind = errors.New("unknown event kind")
)

// DecodeError is a recoverable, per-frame decode failure.
type DecodeError struct {
	// Raw is the payload text exactly as it was handed to the decoder.
	Raw string

	// Tag is the discriminant read from the payload, if any.
	Tag string

	Err error
}

func (e *DecodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("decoding %q event: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("decoding event: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
