package shim

import (
	"sync"
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/require"
)

// blockAlloc is a C-style test allocator: blocks come from the Go heap and
// are pinned in a live map, so their addresses stay valid until freed.
type blockAlloc struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
	allocs int
	frees  int
}

func (a *blockAlloc) alloc(size uintptr) uintptr {
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size)
	p := uintptr(unsafe.Pointer(&buf[0]))
	a.mu.Lock()
	a.blocks[p] = buf
	a.allocs++
	a.mu.Unlock()
	return p
}

func (a *blockAlloc) free(p uintptr) {
	a.mu.Lock()
	delete(a.blocks, p)
	a.frees++
	a.mu.Unlock()
}

func (a *blockAlloc) stats() (allocs, frees, live int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs, a.frees, len(a.blocks)
}

// testHeap backs the heap-style callbacks. resetTestHeap gives each test a
// clean view; the callbacks themselves are created once because callback
// slots are a process-wide resource.
var testHeap = &blockAlloc{blocks: make(map[uintptr][]byte)}

func resetTestHeap(t *testing.T) {
	t.Helper()
	testHeap.mu.Lock()
	testHeap.blocks = make(map[uintptr][]byte)
	testHeap.allocs = 0
	testHeap.frees = 0
	testHeap.mu.Unlock()
}

// Recorded arguments for pass-through checks.
var (
	gotCallocCount atomic.Uintptr
	gotCallocSize  atomic.Uintptr
	gotUsablePtr   atomic.Uintptr
)

// Counters for the fixed-address callbacks used by the concurrency test.
var (
	fixedBlock  [64]byte
	fixedAllocs atomic.Int64
	fixedFrees  atomic.Int64
)

var cb struct {
	once sync.Once

	malloc        uintptr
	free          uintptr
	calloc        uintptr
	usableSize    uintptr
	reallocarr    uintptr
	posixMemalign uintptr
	fixedMalloc   uintptr
	fixedFree     uintptr
}

func callbacks() {
	cb.once.Do(func() {
		cb.malloc = purego.NewCallback(func(size uintptr) uintptr {
			return testHeap.alloc(size)
		})
		cb.free = purego.NewCallback(func(p uintptr) uintptr {
			testHeap.free(p)
			return 0
		})
		cb.calloc = purego.NewCallback(func(count, size uintptr) uintptr {
			gotCallocCount.Store(count)
			gotCallocSize.Store(size)
			return testHeap.alloc(count * size)
		})
		cb.usableSize = purego.NewCallback(func(p uintptr) uintptr {
			gotUsablePtr.Store(p)
			return 4242
		})
		cb.reallocarr = purego.NewCallback(func(p, count, size uintptr) uintptr {
			return 22 // EINVAL, to prove status codes pass through
		})
		cb.posixMemalign = purego.NewCallback(func(memptr, alignment, size uintptr) uintptr {
			*(*uintptr)(unsafe.Pointer(memptr)) = testHeap.alloc(size)
			return 0
		})
		cb.fixedMalloc = purego.NewCallback(func(size uintptr) uintptr {
			fixedAllocs.Add(1)
			return uintptr(unsafe.Pointer(&fixedBlock[0]))
		})
		cb.fixedFree = purego.NewCallback(func(p uintptr) uintptr {
			fixedFrees.Add(1)
			return 0
		})
	})
}

// newHeapTable wires the heap-style callbacks into a table.
func newHeapTable(t *testing.T) *Table {
	t.Helper()
	callbacks()
	resetTestHeap(t)
	return NewTable([]Resolution{
		{Sym: SymMalloc, Addr: cb.malloc, From: Alternative},
		{Sym: SymFree, Addr: cb.free, From: Alternative},
		{Sym: SymCalloc, Addr: cb.calloc, From: Alternative},
		{Sym: SymMallocUsableSize, Addr: cb.usableSize, From: Alternative},
		{Sym: SymReallocarr, Addr: cb.reallocarr, From: Alternative},
		{Sym: SymPosixMemalign, Addr: cb.posixMemalign, From: Alternative},
	})
}

func TestForward_RoundTripTransparency(t *testing.T) {
	tbl := newHeapTable(t)

	const cycles = 10_000
	for i := 0; i < cycles; i++ {
		// Sizes sweep 1..1<<20, non-monotonically.
		size := uintptr(1 + (i*7919)%(1<<20))

		p := tbl.Malloc(size)
		require.NotNil(t, p)

		mem := unsafe.Slice((*byte)(p), size)
		pattern := byte(i)
		mem[0] = pattern
		mem[size/2] = pattern
		mem[size-1] = pattern
		require.Equal(t, pattern, mem[0])
		require.Equal(t, pattern, mem[size/2])
		require.Equal(t, pattern, mem[size-1])

		tbl.Free(p)
	}

	allocs, frees, live := testHeap.stats()
	require.Equal(t, cycles, allocs)
	require.Equal(t, cycles, frees)
	require.Zero(t, live)
}

func TestForward_ArgumentsPassThrough(t *testing.T) {
	tbl := newHeapTable(t)

	p := tbl.Calloc(3, 7)
	require.NotNil(t, p)
	require.Equal(t, uintptr(3), gotCallocCount.Load())
	require.Equal(t, uintptr(7), gotCallocSize.Load())

	require.Equal(t, uintptr(4242), tbl.MallocUsableSize(p))
	require.Equal(t, uintptr(p), gotUsablePtr.Load())

	tbl.Free(p)
}

func TestForward_StatusCodeReturn(t *testing.T) {
	tbl := newHeapTable(t)

	rc := tbl.Reallocarr(nil, 1<<20, 1<<20)
	require.Equal(t, int32(22), rc)
}

func TestForward_PosixMemalignOutPointer(t *testing.T) {
	tbl := newHeapTable(t)

	var p unsafe.Pointer
	rc := tbl.PosixMemalign(&p, 64, 128)
	require.Zero(t, rc)
	require.NotNil(t, p)

	tbl.Free(p)
	_, _, live := testHeap.stats()
	require.Zero(t, live)
}

func TestForward_UnresolvedSymbolLazyFatal(t *testing.T) {
	// Calling resolved symbols never trips over an unresolved neighbor;
	// the first call to the unresolved symbol itself is what aborts.
	tbl := newHeapTable(t)

	for i := 0; i < 100; i++ {
		p := tbl.Malloc(32)
		require.NotNil(t, p)
		tbl.Free(p)
	}

	diag := requireAborts(t, func() { tbl.Cfree(nil) })
	require.Contains(t, diag, "cfree() is not defined")

	// The table is still intact afterwards.
	p := tbl.Malloc(32)
	require.NotNil(t, p)
	tbl.Free(p)
}

func TestForward_PackageLevelEntryPoints(t *testing.T) {
	swapActive(t, newHeapTable(t))

	p := Malloc(64)
	require.NotNil(t, p)
	Free(p)

	var q unsafe.Pointer
	require.Zero(t, PosixMemalign(&q, 16, 32))
	require.NotNil(t, q)
	Free(q)

	allocs, frees, live := testHeap.stats()
	require.Equal(t, 2, allocs)
	require.Equal(t, 2, frees)
	require.Zero(t, live)
}

func TestForward_ConcurrentReaders(t *testing.T) {
	// The table is frozen before the goroutines start; every call is a
	// plain read plus an indirect call, so no synchronization is needed.
	callbacks()
	fixedAllocs.Store(0)
	fixedFrees.Store(0)

	tbl := NewTable([]Resolution{
		{Sym: SymMalloc, Addr: cb.fixedMalloc, From: Alternative},
		{Sym: SymFree, Addr: cb.fixedFree, From: Alternative},
	})
	swapActive(t, tbl)

	workers := 64
	ops := 100_000
	if testing.Short() {
		ops = 1_000
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				Free(Malloc(16))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers*ops), fixedAllocs.Load())
	require.Equal(t, int64(workers*ops), fixedFrees.Load())
}

func BenchmarkForward_Malloc(b *testing.B) {
	callbacks()
	tbl := NewTable([]Resolution{
		{Sym: SymMalloc, Addr: cb.fixedMalloc, From: Alternative},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Malloc(16)
	}
}

func BenchmarkForward_MallocFreePair(b *testing.B) {
	callbacks()
	tbl := NewTable([]Resolution{
		{Sym: SymMalloc, Addr: cb.fixedMalloc, From: Alternative},
		{Sym: SymFree, Addr: cb.fixedFree, From: Alternative},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Free(tbl.Malloc(16))
	}
}
