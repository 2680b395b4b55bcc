package shim

import (
	"sync/atomic"

	"github.com/mlutra/shimkit/internal/fatal"
)

// Table is an immutable snapshot of resolved addresses, indexed by Symbol.
// A zero entry means the symbol never resolved; calling through it is a
// fatal configuration error, checked at call time rather than init time.
type Table struct {
	fn [symbolCount]uintptr
}

// NewTable builds a table from resolution outcomes. Symbols absent from
// res stay unresolved.
func NewTable(res []Resolution) *Table {
	t := new(Table)
	for _, r := range res {
		if r.Sym < symbolCount {
			t.fn[r.Sym] = r.Addr
		}
	}
	return t
}

// Addr returns the resolved address for s, or 0 if unresolved.
func (t *Table) Addr(s Symbol) uintptr { return t.fn[s] }

// Resolved reports whether s has a non-zero entry.
func (t *Table) Resolved(s Symbol) bool { return t.fn[s] != 0 }

// entry returns the address for s, terminating the process if the symbol
// never resolved. Returning a sentinel instead would hand callers a value
// the allocator contract says cannot happen.
func (t *Table) entry(s Symbol) uintptr {
	addr := t.fn[s]
	if addr == 0 {
		fatal.Fatalf("shim: %s() is not defined", s)
	}
	return addr
}

// active is the process-wide table. It is stored twice inside the
// single-threaded init window (temporary defaults, then final values) and
// is frozen afterwards; see bootstrap.
var active atomic.Pointer[Table]

// current returns the published table, terminating the process if Init
// never ran.
func current() *Table {
	t := active.Load()
	if t == nil {
		fatal.Fatalf("shim: dispatch table used before Init")
	}
	return t
}
