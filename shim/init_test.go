package shim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlutra/shimkit/internal/dl/dltest"
)

func TestBootstrap_PublishesFinalTable(t *testing.T) {
	ld, platform, alt := newTestEnv()
	for i, s := range Symbols() {
		base := uintptr(0x1000 * (i + 1))
		defineEverywhere(ld, platform, alt, s, base, base+1)
	}
	swapActive(t, nil)

	require.NoError(t, bootstrap(ld, testConfig()))

	tbl := active.Load()
	require.NotNil(t, tbl)
	for i, s := range Symbols() {
		require.Equal(t, uintptr(0x1000*(i+1))+1, tbl.Addr(s), "symbol %s", s)
	}
}

func TestBootstrap_DefaultsInstalledBeforeResolution(t *testing.T) {
	// The temporary table of "next" addresses must be in place before the
	// resolver touches the loader, so that allocation performed during
	// resolution is serviced instead of recursing into an empty table.
	ld, platform, alt := newTestEnv()
	defineEverywhere(ld, platform, alt, SymMalloc, 0x1000, 0x2000)
	swapActive(t, nil)

	require.NoError(t, bootstrap(ld, testConfig()))

	calls := ld.Calls()
	require.GreaterOrEqual(t, len(calls), SymbolCount+2)

	// First: one "next" lookup per symbol, in table order.
	for i, s := range Symbols() {
		require.Equal(t, "next "+s.String(), calls[i])
	}
	// Only then the environment checks.
	require.Equal(t, "probe "+testPlatformLib, calls[SymbolCount])
	require.Equal(t, "open "+testAltLib, calls[SymbolCount+1])
}

func TestBootstrap_TemporaryDefaultsAreNextAddresses(t *testing.T) {
	// A resolver failure after phase one must leave the temporary default
	// table published, never an empty one.
	ld := dltest.New()
	ld.SetNext("malloc", 0x1000)
	swapActive(t, nil)

	err := bootstrap(ld, Config{PlatformLib: testPlatformLib, AltLib: testAltLib})
	require.Error(t, err)

	tbl := active.Load()
	require.NotNil(t, tbl)
	require.Equal(t, uintptr(0x1000), tbl.Addr(SymMalloc))
}

func TestInitialize_PlatformMissingAborts(t *testing.T) {
	// Platform library not loaded: diagnostic names the library, process
	// aborts before any symbol resolution.
	ld := dltest.New()
	ld.AddLoadable(testAltLib)
	swapActive(t, nil)

	diag := requireAborts(t, func() { initialize(ld, testConfig()) })
	require.Contains(t, diag, testPlatformLib)

	for _, call := range ld.Calls() {
		require.False(t, strings.HasPrefix(call, "sym "), "unexpected %q", call)
	}
}

func TestInitialize_AlternativeMissingAborts(t *testing.T) {
	ld := dltest.New()
	ld.AddLoaded(testPlatformLib)
	swapActive(t, nil)

	diag := requireAborts(t, func() { initialize(ld, testConfig()) })
	require.Contains(t, diag, testAltLib)
}
