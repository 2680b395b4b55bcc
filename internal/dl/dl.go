// Package dl exposes the process's dynamic loader as a narrow capability:
// probe for an already-loaded library, load a library, look a symbol up
// inside a specific library, and ask what the next library in the normal
// search order would provide for a symbol.
//
// The package deliberately does not wrap dlclose. The shim resolves symbols
// once at startup and keeps every handle for the life of the process;
// unloading a library whose addresses are live in the dispatch table would
// leave dangling function pointers.
package dl

// Handle identifies a loaded library. The zero Handle is never valid.
type Handle uintptr

// Loader is the dynamic-loader capability consumed by symbol resolution.
//
// Implementations must be usable before any resolution has completed, which
// means they may not depend on the dispatch table being populated.
type Loader interface {
	// Probe reports whether lib is already loaded in the process, without
	// triggering a new load. On success it returns the library's handle.
	Probe(lib string) (Handle, bool)

	// Open loads lib, or returns the existing handle if it is already
	// loaded.
	Open(lib string) (Handle, error)

	// Sym returns the address of name as defined by the library h, or 0
	// if h does not define it.
	Sym(h Handle, name string) uintptr

	// Next returns the address that the next library in the normal search
	// order would provide for name, excluding the calling module, or 0 if
	// nothing further down the search order defines it.
	Next(name string) uintptr
}
