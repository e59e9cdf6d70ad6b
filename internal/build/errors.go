package build

import "errors"

// ErrAdapterPanic marks an adapter that panicked instead of returning.
var ErrAdapterPanic = errors.New("adapter panicked")

// ErrNilAdapter marks a name registered with a nil function.
var ErrNilAdapter = errors.New("adapter function is nil")
