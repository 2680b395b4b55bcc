package shim

import (
	"sync"

	"github.com/mlutra/shimkit/internal/dl"
	"github.com/mlutra/shimkit/internal/fatal"
)

var initOnce sync.Once

// Init resolves the full interposed set against the process's dynamic
// loader and publishes the dispatch table. It runs at most once; later
// calls are no-ops. A missing platform library or an unloadable
// alternative allocator terminates the process with a diagnostic.
//
// Init must complete before any forwarding entry point is called. When the
// shim is built into a preloaded library, the load-time constructor is the
// right caller; the shim_autoinit build tag wires that up.
func Init() {
	initOnce.Do(func() { initialize(dl.System(), DefaultConfig()) })
}

// initialize surfaces a bootstrap failure the only way the allocator
// contract allows: a diagnostic followed by process termination.
func initialize(ld dl.Loader, cfg Config) {
	if err := bootstrap(ld, cfg); err != nil {
		fatal.Fatalf("%v", err)
	}
}

// bootstrap runs the two-phase init and publishes the final table.
//
// The phase order is a hard invariant. Resolution may itself allocate, so
// the loader's "next" addresses are installed as a temporary table before
// any resolution logic runs; allocation triggered by resolution is then
// serviced by the default path instead of recursing into an empty table.
// The final table is published in a single store once every symbol has
// been decided.
func bootstrap(ld dl.Loader, cfg Config) error {
	tmp := new(Table)
	for _, s := range Symbols() {
		tmp.fn[s] = ld.Next(s.String())
	}
	active.Store(tmp)

	r, err := NewResolver(ld, cfg)
	if err != nil {
		return err
	}

	active.Store(NewTable(r.ResolveAll()))
	return nil
}
