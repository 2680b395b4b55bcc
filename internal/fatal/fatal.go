// Package fatal is the error channel for unrecoverable configuration
// errors: write a diagnostic to the diagnostic stream, then abort the
// process.
//
// Nothing routed through this package is a transient condition. A missing
// platform library, an unloadable alternative allocator, or a call through
// an unresolved allocator symbol are program-correctness violations, and
// returning an unexpected failure value from an allocation entry point
// would corrupt callers that rely on the standard allocator contract.
// Terminating loudly is strictly safer than guessing.
package fatal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu    sync.Mutex
	sink  io.Writer = os.Stderr
	abort           = processAbort
)

// Fatalf writes a one-line diagnostic to the diagnostic stream and aborts.
// It never returns under the default abort hook.
func Fatalf(format string, args ...any) {
	mu.Lock()
	fmt.Fprintf(sink, format+"\n", args...)
	fn := abort
	mu.Unlock()
	fn()
}

// Swap replaces the diagnostic stream and the abort hook, returning a
// function that restores the previous pair. A nil argument leaves the
// corresponding hook unchanged. Tests install a panicking abort hook so
// they can observe Fatalf without dying.
func Swap(w io.Writer, fn func()) (restore func()) {
	mu.Lock()
	prevW, prevFn := sink, abort
	if w != nil {
		sink = w
	}
	if fn != nil {
		abort = fn
	}
	mu.Unlock()
	return func() {
		mu.Lock()
		sink, abort = prevW, prevFn
		mu.Unlock()
	}
}
