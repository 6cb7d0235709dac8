package force

import "errors"

var (
	// ErrNotInitialized is returned by operations that need Initialize (or Start) first
	ErrNotInitialized = errors.New("force: simulation not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize call
	ErrAlreadyInitialized = errors.New("force: simulation already initialized")
	// ErrInvalidConfig wraps rejected layout parameters
	ErrInvalidConfig = errors.New("force: invalid configuration")
)
