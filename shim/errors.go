package shim

import "errors"

var (
	// ErrPlatformMissing indicates the platform allocator library was not
	// found loaded in the process. A running process links it transitively,
	// so this only happens with a misconfigured library name.
	ErrPlatformMissing = errors.New("shim: platform allocator library not loaded")

	// ErrAltMissing indicates the alternative allocator library could not
	// be loaded. Running without it would silently fall through to no
	// interposition at all.
	ErrAltMissing = errors.New("shim: alternative allocator library unavailable")
)
