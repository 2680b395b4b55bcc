// Package shim implements the symbol-resolution and dispatch core of an
// allocator-interposition layer: it decides, per malloc-family symbol,
// which implementation should service calls in this process, freezes those
// decisions into a process-wide dispatch table, and exposes forwarding
// entry points that pass calls through the table unchanged.
//
// # Resolution
//
// For each symbol in the interposed set, three addresses are compared: the
// platform library's own definition, the alternative allocator's
// definition, and the address the dynamic loader's search order would
// yield if this shim did not exist ("next"). If next is one of the first
// two, nothing else has claimed the symbol and the alternative allocator
// wins. Any other next address belongs to a third-party interposer that
// was installed ahead of this shim; its claim is respected and the address
// passes through unchanged, so stacked interposers keep composing instead
// of fighting.
//
// A symbol the loader cannot find at all resolves to the zero sentinel.
// That is not an init-time error: some platforms legitimately omit parts
// of the set (legacy aliases such as cfree or malloc_good_size), and a
// process that never calls them should not be penalized. Calling an
// unresolved symbol is fatal at first use.
//
// # Dispatch table
//
// The table is an array of addresses indexed by Symbol. It is written in a
// single-threaded init window and published through an atomic pointer;
// after publication it is immutable, so forwarding entry points read it
// from any number of goroutines without synchronization.
//
// # Bootstrap ordering
//
// Resolution itself may allocate (loader bookkeeping, diagnostic
// formatting). Init therefore installs the loader's "next" addresses as a
// temporary table before any resolution logic runs, resolves the full set,
// and only then publishes the final table. This ordering is a hard
// invariant of the package; see bootstrap.
//
// # Error handling
//
// A missing platform library, an unloadable alternative allocator, and a
// call through an unresolved symbol are all unrecoverable configuration
// errors: the process terminates with a diagnostic rather than running
// with a mixed or partial allocator, which would be undefined behavior.
// Internal functions report these as wrapped sentinel errors; only the
// init boundary and the forwarding surface convert them into termination.
package shim
