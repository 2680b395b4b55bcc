//go:build !linux && !darwin

package dl

// No dlfcn on this platform. System still compiles so that callers can get
// a well-formed error instead of a build failure.
type unsupportedLoader struct{}

// System returns a loader whose every operation fails.
func System() Loader { return unsupportedLoader{} }

func (unsupportedLoader) Probe(string) (Handle, bool) { return 0, false }
func (unsupportedLoader) Open(string) (Handle, error) { return 0, ErrUnsupported }
func (unsupportedLoader) Sym(Handle, string) uintptr  { return 0 }
func (unsupportedLoader) Next(string) uintptr         { return 0 }

// Default library names are empty on platforms without a dynamic loader.
const (
	PlatformLib = ""
	AltLib      = ""
)
