//go:build linux || darwin

package fatal

import (
	"os"

	"golang.org/x/sys/unix"
)

// processAbort mirrors abort(3): raise SIGABRT so supervisors see the same
// termination status a C interposer would produce. Exit is the fallback in
// case the signal is blocked or handled.
func processAbort() {
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	os.Exit(134)
}
