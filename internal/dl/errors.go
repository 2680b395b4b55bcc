package dl

import "errors"

var (
	// ErrUnsupported indicates the platform has no usable dynamic loader.
	ErrUnsupported = errors.New("dl: dynamic loader unavailable on this platform")
)
