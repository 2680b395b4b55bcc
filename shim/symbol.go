package shim

import "fmt"

// Symbol identifies one allocator-family entry point in the fixed
// interposed set. The set is everything the alternative allocator's own
// override header covers: the standard C allocation entry points, the
// string-duplication and path-resolution helpers that return allocated
// memory, and the POSIX, BSD, and legacy alignment variants.
type Symbol uint8

const (
	SymMalloc Symbol = iota
	SymCalloc
	SymRealloc
	SymFree
	SymStrdup
	SymStrndup
	SymRealpath
	SymReallocf
	SymMallocSize
	SymMallocUsableSize
	SymMallocGoodSize
	SymCfree
	SymValloc
	SymPvalloc
	SymReallocarray
	SymReallocarr
	SymMemalign
	SymAlignedAlloc
	SymPosixMemalign
	SymPosixMemalignOld

	symbolCount
)

// SymbolCount is the size of the interposed set.
const SymbolCount = int(symbolCount)

// symbolNames maps each Symbol to its exported C name.
var symbolNames = [symbolCount]string{
	SymMalloc:           "malloc",
	SymCalloc:           "calloc",
	SymRealloc:          "realloc",
	SymFree:             "free",
	SymStrdup:           "strdup",
	SymStrndup:          "strndup",
	SymRealpath:         "realpath",
	SymReallocf:         "reallocf",
	SymMallocSize:       "malloc_size",
	SymMallocUsableSize: "malloc_usable_size",
	SymMallocGoodSize:   "malloc_good_size",
	SymCfree:            "cfree",
	SymValloc:           "valloc",
	SymPvalloc:          "pvalloc",
	SymReallocarray:     "reallocarray",
	SymReallocarr:       "reallocarr",
	SymMemalign:         "memalign",
	SymAlignedAlloc:     "aligned_alloc",
	SymPosixMemalign:    "posix_memalign",
	SymPosixMemalignOld: "_posix_memalign",
}

// String returns the C symbol name.
func (s Symbol) String() string {
	if s >= symbolCount {
		return fmt.Sprintf("symbol(%d)", uint8(s))
	}
	return symbolNames[s]
}

// Symbols returns the interposed set in table order.
func Symbols() []Symbol {
	out := make([]Symbol, symbolCount)
	for i := range out {
		out[i] = Symbol(i)
	}
	return out
}
