package shim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mlutra/shimkit/internal/dl"
	"github.com/mlutra/shimkit/internal/dl/dltest"
	"github.com/mlutra/shimkit/internal/fatal"
)

// Library names used by the fake-loader tests.
const (
	testPlatformLib = "libc.test.so"
	testAltLib      = "libalt.test.so"
)

func testConfig() Config {
	return Config{PlatformLib: testPlatformLib, AltLib: testAltLib}
}

// newTestEnv builds the baseline environment: platform library already
// loaded, alternative allocator loadable but not yet loaded.
func newTestEnv() (ld *dltest.Loader, platform, alt dl.Handle) {
	ld = dltest.New()
	platform = ld.AddLoaded(testPlatformLib)
	alt = ld.AddLoadable(testAltLib)
	return ld, platform, alt
}

// defineEverywhere gives s a definition in both libraries and points the
// search order at the platform's, the no-interposer baseline.
func defineEverywhere(ld *dltest.Loader, platform, alt dl.Handle, s Symbol, platformAddr, altAddr uintptr) {
	ld.SetSym(platform, s.String(), platformAddr)
	ld.SetSym(alt, s.String(), altAddr)
	ld.SetNext(s.String(), platformAddr)
}

var errAbort = errors.New("fatal abort")

// requireAborts runs fn and requires that it terminated through the fatal
// channel, returning the diagnostic it wrote.
func requireAborts(t *testing.T, fn func()) string {
	t.Helper()
	buf := new(bytes.Buffer)
	restore := fatal.Swap(buf, func() { panic(errAbort) })
	defer restore()

	aborted := false
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errAbort) {
				panic(r)
			}
			aborted = true
		}()
		fn()
	}()
	if !aborted {
		t.Fatal("expected fatal abort, got normal return")
	}
	return buf.String()
}

// swapActive publishes tbl process-wide for the duration of the test and
// restores the previous table afterwards.
func swapActive(t testing.TB, tbl *Table) {
	t.Helper()
	prev := active.Load()
	active.Store(tbl)
	t.Cleanup(func() { active.Store(prev) })
}
