package shim

import (
	"fmt"

	"github.com/mlutra/shimkit/internal/dl"
)

// Provenance records which implementation a symbol resolved to.
type Provenance uint8

const (
	// Unresolved means no implementation was found. Calling the symbol is
	// fatal, deferred to first use.
	Unresolved Provenance = iota

	// Alternative means the alternative allocator's implementation was
	// selected.
	Alternative

	// Interposer means a third-party interposer ahead of this shim had
	// already claimed the symbol; its address passes through unchanged.
	Interposer
)

func (p Provenance) String() string {
	switch p {
	case Unresolved:
		return "unresolved"
	case Alternative:
		return "alternative"
	case Interposer:
		return "interposer"
	}
	return fmt.Sprintf("provenance(%d)", uint8(p))
}

// Resolution is the outcome of resolving one symbol.
type Resolution struct {
	Sym  Symbol
	Addr uintptr // selected address, 0 when unresolved
	From Provenance

	// The three addresses the decision was made from.
	Platform uintptr // the platform library's own definition
	Alt      uintptr // the alternative allocator's definition
	Next     uintptr // what the search order yields without this shim
}

// Resolver decides, per symbol, which implementation should service calls
// in this process. It is built once during init and discarded after the
// dispatch table is populated; re-running resolution later is unsupported,
// since the table's own entries alter what "next" observes.
type Resolver struct {
	ld       dl.Loader
	platform dl.Handle
	alt      dl.Handle
}

// NewResolver verifies the environment and prepares resolution.
//
// The platform library must already be loaded; the process could not be
// running otherwise, so a probe miss means the configured name is wrong
// and resolution cannot proceed. The alternative allocator is loaded here
// if it is not already present.
func NewResolver(ld dl.Loader, cfg Config) (*Resolver, error) {
	platform, ok := ld.Probe(cfg.PlatformLib)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformMissing, cfg.PlatformLib)
	}
	alt, err := ld.Open(cfg.AltLib)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAltMissing, cfg.AltLib, err)
	}
	return &Resolver{ld: ld, platform: platform, alt: alt}, nil
}

// Resolve picks the implementation for s.
//
// If the "next in search order" address is the platform's own or the
// alternative allocator's, nothing else has claimed the symbol and the
// alternative wins. Any other next address belongs to an interposer that
// got there first and passes through unchanged.
func (r *Resolver) Resolve(s Symbol) Resolution {
	name := s.String()
	res := Resolution{
		Sym:      s,
		Platform: r.ld.Sym(r.platform, name),
		Alt:      r.ld.Sym(r.alt, name),
		Next:     r.ld.Next(name),
	}
	if res.Next == res.Platform || res.Next == res.Alt {
		res.Addr = res.Alt
		res.From = Alternative
	} else {
		res.Addr = res.Next
		res.From = Interposer
	}
	if res.Addr == 0 {
		res.From = Unresolved
	}
	return res
}

// ResolveAll resolves the full interposed set in table order.
func (r *Resolver) ResolveAll() []Resolution {
	out := make([]Resolution, 0, SymbolCount)
	for _, s := range Symbols() {
		out = append(out, r.Resolve(s))
	}
	return out
}
