// Package dltest provides a scriptable dl.Loader for tests.
//
// Tests describe a symbol-search environment (which libraries are loaded,
// which can be loaded, which addresses each defines, and what the "next in
// search order" view looks like) and then run resolution against it. Every
// loader operation is also recorded, so tests can assert on ordering, e.g.
// that temporary defaults were installed before any library was opened.
package dltest

import (
	"fmt"
	"sync"

	"github.com/mlutra/shimkit/internal/dl"
)

// Loader is a fake dl.Loader backed by maps. The zero value is not usable;
// call New.
type Loader struct {
	mu       sync.Mutex
	nextH    dl.Handle
	loaded   map[string]dl.Handle
	loadable map[string]dl.Handle
	syms     map[dl.Handle]map[string]uintptr
	next     map[string]uintptr
	calls    []string
}

// New returns an empty fake loader: nothing loaded, nothing loadable.
func New() *Loader {
	return &Loader{
		nextH:    1,
		loaded:   make(map[string]dl.Handle),
		loadable: make(map[string]dl.Handle),
		syms:     make(map[dl.Handle]map[string]uintptr),
		next:     make(map[string]uintptr),
	}
}

// AddLoaded registers lib as already present in the process, as a
// transitively linked library would be. Probe and Open both succeed.
func (l *Loader) AddLoaded(lib string) dl.Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := l.handle()
	l.loaded[lib] = h
	return h
}

// AddLoadable registers lib as absent but loadable: Probe misses, Open
// succeeds.
func (l *Loader) AddLoadable(lib string) dl.Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := l.handle()
	l.loadable[lib] = h
	return h
}

// SetSym defines name at addr inside the library h.
func (l *Loader) SetSym(h dl.Handle, name string, addr uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m := l.syms[h]
	if m == nil {
		m = make(map[string]uintptr)
		l.syms[h] = m
	}
	m[name] = addr
}

// SetNext defines what the search order yields for name once the shim is
// excluded.
func (l *Loader) SetNext(name string, addr uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next[name] = addr
}

// Calls returns the operations performed so far, in order, formatted as
// "probe <lib>", "open <lib>", "sym <lib#> <name>", "next <name>".
func (l *Loader) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

func (l *Loader) handle() dl.Handle {
	h := l.nextH
	l.nextH++
	return h
}

func (l *Loader) record(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// Probe implements dl.Loader.
func (l *Loader) Probe(lib string) (dl.Handle, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("probe %s", lib)
	h, ok := l.loaded[lib]
	return h, ok
}

// Open implements dl.Loader.
func (l *Loader) Open(lib string) (dl.Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("open %s", lib)
	if h, ok := l.loaded[lib]; ok {
		return h, nil
	}
	if h, ok := l.loadable[lib]; ok {
		l.loaded[lib] = h
		return h, nil
	}
	return 0, fmt.Errorf("dltest: cannot open %s", lib)
}

// Sym implements dl.Loader.
func (l *Loader) Sym(h dl.Handle, name string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("sym %d %s", h, name)
	return l.syms[h][name]
}

// Next implements dl.Loader.
func (l *Loader) Next(name string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("next %s", name)
	return l.next[name]
}
