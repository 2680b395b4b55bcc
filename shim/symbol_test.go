package shim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbol_SetIsComplete(t *testing.T) {
	require.Equal(t, 20, SymbolCount)

	seen := make(map[string]Symbol, SymbolCount)
	for _, s := range Symbols() {
		name := s.String()
		require.NotEmpty(t, name, "symbol %d has no name", s)
		prev, dup := seen[name]
		require.False(t, dup, "symbols %d and %d share the name %q", prev, s, name)
		seen[name] = s
	}
}

func TestSymbol_TableOrder(t *testing.T) {
	syms := Symbols()
	require.Len(t, syms, SymbolCount)
	for i, s := range syms {
		require.Equal(t, Symbol(i), s)
	}
	require.Equal(t, "malloc", syms[0].String())
	require.Equal(t, "_posix_memalign", syms[len(syms)-1].String())
}

func TestSymbol_OutOfRangeString(t *testing.T) {
	require.Equal(t, "symbol(200)", Symbol(200).String())
}
