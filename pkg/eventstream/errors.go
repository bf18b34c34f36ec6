package eventstream

import "errors"

// ErrNilStreamEvent indicates a nil stream event record was provided to a publisher.
var ErrNilStreamEvent = errors.New("nil stream event")
