package shim

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// The forwarding surface. One entry point per symbol, shaped like the C
// declaration it stands in for: sizes as uintptr, pointers as
// unsafe.Pointer, int-returning variants as int32. Each call is a table
// lookup plus an indirect call; arguments and results pass through
// untouched.
//
// The methods forward through an explicit table; the package-level
// functions of the same names forward through the process-wide table
// published by Init.

// call invokes the resolved implementation for s.
func (t *Table) call(s Symbol, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(t.entry(s), args...)
	return r1
}

// Malloc forwards malloc(3).
func (t *Table) Malloc(size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymMalloc, size))
}

// Calloc forwards calloc(3).
func (t *Table) Calloc(count, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymCalloc, count, size))
}

// Realloc forwards realloc(3). ptr may be nil.
func (t *Table) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymRealloc, uintptr(ptr), size))
}

// Free forwards free(3). ptr may be nil.
func (t *Table) Free(ptr unsafe.Pointer) {
	t.call(SymFree, uintptr(ptr))
}

// Strdup forwards strdup(3).
func (t *Table) Strdup(s unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymStrdup, uintptr(s)))
}

// Strndup forwards strndup(3).
func (t *Table) Strndup(s unsafe.Pointer, n uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymStrndup, uintptr(s), n))
}

// Realpath forwards realpath(3), which allocates when resolved is nil.
func (t *Table) Realpath(path, resolved unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymRealpath, uintptr(path), uintptr(resolved)))
}

// Reallocf forwards the BSD reallocf(3), which frees ptr on failure.
func (t *Table) Reallocf(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymReallocf, uintptr(ptr), size))
}

// MallocSize forwards malloc_size(3).
func (t *Table) MallocSize(ptr unsafe.Pointer) uintptr {
	return t.call(SymMallocSize, uintptr(ptr))
}

// MallocUsableSize forwards malloc_usable_size(3). ptr may be nil.
func (t *Table) MallocUsableSize(ptr unsafe.Pointer) uintptr {
	return t.call(SymMallocUsableSize, uintptr(ptr))
}

// MallocGoodSize forwards malloc_good_size(3).
func (t *Table) MallocGoodSize(size uintptr) uintptr {
	return t.call(SymMallocGoodSize, size)
}

// Cfree forwards the legacy cfree(3).
func (t *Table) Cfree(ptr unsafe.Pointer) {
	t.call(SymCfree, uintptr(ptr))
}

// Valloc forwards valloc(3).
//
// Deprecated: valloc is deprecated by the platform; use AlignedAlloc.
func (t *Table) Valloc(size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymValloc, size))
}

// Pvalloc forwards pvalloc(3).
//
// Deprecated: pvalloc is deprecated by the platform; use AlignedAlloc.
func (t *Table) Pvalloc(size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymPvalloc, size))
}

// Reallocarray forwards reallocarray(3), the overflow-checking array
// realloc. ptr may be nil.
func (t *Table) Reallocarray(ptr unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymReallocarray, uintptr(ptr), count, size))
}

// Reallocarr forwards the NetBSD reallocarr(3), the status-code-returning
// variant. ptr may be nil.
func (t *Table) Reallocarr(ptr unsafe.Pointer, count, size uintptr) int32 {
	return int32(t.call(SymReallocarr, uintptr(ptr), count, size))
}

// Memalign forwards memalign(3).
//
// Deprecated: memalign is deprecated by the platform; use AlignedAlloc.
func (t *Table) Memalign(alignment, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymMemalign, alignment, size))
}

// AlignedAlloc forwards aligned_alloc(3).
func (t *Table) AlignedAlloc(alignment, size uintptr) unsafe.Pointer {
	return unsafe.Pointer(t.call(SymAlignedAlloc, alignment, size))
}

// PosixMemalign forwards posix_memalign(3). The allocated block is written
// through memptr; the return value is the usual errno-style status.
func (t *Table) PosixMemalign(memptr *unsafe.Pointer, alignment, size uintptr) int32 {
	return int32(t.call(SymPosixMemalign, uintptr(unsafe.Pointer(memptr)), alignment, size))
}

// PosixMemalignOld forwards _posix_memalign, the older calling convention
// some platforms still export.
func (t *Table) PosixMemalignOld(memptr *unsafe.Pointer, alignment, size uintptr) int32 {
	return int32(t.call(SymPosixMemalignOld, uintptr(unsafe.Pointer(memptr)), alignment, size))
}

// Package-level forwarding entry points over the process-wide table.

// Malloc forwards malloc(3) through the process-wide table.
func Malloc(size uintptr) unsafe.Pointer { return current().Malloc(size) }

// Calloc forwards calloc(3) through the process-wide table.
func Calloc(count, size uintptr) unsafe.Pointer { return current().Calloc(count, size) }

// Realloc forwards realloc(3) through the process-wide table.
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer { return current().Realloc(ptr, size) }

// Free forwards free(3) through the process-wide table.
func Free(ptr unsafe.Pointer) { current().Free(ptr) }

// Strdup forwards strdup(3) through the process-wide table.
func Strdup(s unsafe.Pointer) unsafe.Pointer { return current().Strdup(s) }

// Strndup forwards strndup(3) through the process-wide table.
func Strndup(s unsafe.Pointer, n uintptr) unsafe.Pointer { return current().Strndup(s, n) }

// Realpath forwards realpath(3) through the process-wide table.
func Realpath(path, resolved unsafe.Pointer) unsafe.Pointer {
	return current().Realpath(path, resolved)
}

// Reallocf forwards reallocf(3) through the process-wide table.
func Reallocf(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return current().Reallocf(ptr, size)
}

// MallocSize forwards malloc_size(3) through the process-wide table.
func MallocSize(ptr unsafe.Pointer) uintptr { return current().MallocSize(ptr) }

// MallocUsableSize forwards malloc_usable_size(3) through the process-wide table.
func MallocUsableSize(ptr unsafe.Pointer) uintptr { return current().MallocUsableSize(ptr) }

// MallocGoodSize forwards malloc_good_size(3) through the process-wide table.
func MallocGoodSize(size uintptr) uintptr { return current().MallocGoodSize(size) }

// Cfree forwards cfree(3) through the process-wide table.
func Cfree(ptr unsafe.Pointer) { current().Cfree(ptr) }

// Valloc forwards valloc(3) through the process-wide table.
//
// Deprecated: valloc is deprecated by the platform; use AlignedAlloc.
func Valloc(size uintptr) unsafe.Pointer { return current().Valloc(size) }

// Pvalloc forwards pvalloc(3) through the process-wide table.
//
// Deprecated: pvalloc is deprecated by the platform; use AlignedAlloc.
func Pvalloc(size uintptr) unsafe.Pointer { return current().Pvalloc(size) }

// Reallocarray forwards reallocarray(3) through the process-wide table.
func Reallocarray(ptr unsafe.Pointer, count, size uintptr) unsafe.Pointer {
	return current().Reallocarray(ptr, count, size)
}

// Reallocarr forwards reallocarr(3) through the process-wide table.
func Reallocarr(ptr unsafe.Pointer, count, size uintptr) int32 {
	return current().Reallocarr(ptr, count, size)
}

// Memalign forwards memalign(3) through the process-wide table.
//
// Deprecated: memalign is deprecated by the platform; use AlignedAlloc.
func Memalign(alignment, size uintptr) unsafe.Pointer {
	return current().Memalign(alignment, size)
}

// AlignedAlloc forwards aligned_alloc(3) through the process-wide table.
func AlignedAlloc(alignment, size uintptr) unsafe.Pointer {
	return current().AlignedAlloc(alignment, size)
}

// PosixMemalign forwards posix_memalign(3) through the process-wide table.
func PosixMemalign(memptr *unsafe.Pointer, alignment, size uintptr) int32 {
	return current().PosixMemalign(memptr, alignment, size)
}

// PosixMemalignOld forwards _posix_memalign through the process-wide table.
func PosixMemalignOld(memptr *unsafe.Pointer, alignment, size uintptr) int32 {
	return current().PosixMemalignOld(memptr, alignment, size)
}
