package status

import "errors"

var (
	// ErrNoValue is returned by Unwrap when a Result holds neither a value
	// nor an error event.
	ErrNoValue = errors.New("result holds no value")
)
