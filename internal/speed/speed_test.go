package speed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestRoundTrip(t *testing.T) {
	for _, e := range table {
		bps, ok := ValueOf(e.Sym)
		require.True(t, ok, "ValueOf(%#o)", e.Sym)
		require.Equal(t, e.BPS, bps)

		sym, ok := SymbolOf(e.BPS)
		require.True(t, ok, "SymbolOf(%d)", e.BPS)
		require.Equal(t, e.Sym, sym)
	}
}

func TestTableInvariants(t *testing.T) {
	syms := make(map[Symbol]bool)
	vals := make(map[uint32]bool)
	for _, e := range table {
		require.False(t, syms[e.Sym], "duplicate symbol %#o", e.Sym)
		require.False(t, vals[e.BPS], "duplicate value %d", e.BPS)
		syms[e.Sym] = true
		vals[e.BPS] = true
	}

	// B0 ("hang up") is a legitimate entry.
	bps, ok := ValueOf(unix.B0)
	require.True(t, ok)
	require.Equal(t, uint32(0), bps)
}

func TestNotFound(t *testing.T) {
	// 12345 bps is not a rate the driver interface defines.
	_, ok := SymbolOf(12345)
	require.False(t, ok)

	// A flag-word value that is not a speed code. Distinguishable from the
	// valid 0 bps entry through the boolean, not the returned value.
	_, ok = ValueOf(Symbol(unix.CRTSCTS))
	require.False(t, ok)

	sym, ok := SymbolOf(0)
	require.True(t, ok)
	require.Equal(t, Symbol(unix.B0), sym)
}
