// Package speed maps between the native Linux baud-rate symbols (Bxxx) and
// their bits-per-second values.
//
// The kernel encodes serial speeds as opaque symbolic constants rather than
// plain integers, so a requested numeric speed must be translated before it
// can be stored in a termios structure. The table covers every rate Linux
// defines, including B0 ("hang up"), which is why lookups report misses with
// a separate boolean instead of a sentinel value.
package speed

import "golang.org/x/sys/unix"

// Symbol is a native speed code as stored in termios (one of the unix.Bxxx
// constants).
type Symbol uint32

// Entry pairs a native speed symbol with its bits-per-second value.
type Entry struct {
	Sym Symbol
	BPS uint32
}

var table = []Entry{
	{unix.B0, 0},
	{unix.B50, 50},
	{unix.B75, 75},
	{unix.B110, 110},
	{unix.B134, 134},
	{unix.B150, 150},
	{unix.B200, 200},
	{unix.B300, 300},
	{unix.B600, 600},
	{unix.B1200, 1200},
	{unix.B1800, 1800},
	{unix.B2400, 2400},
	{unix.B4800, 4800},
	{unix.B9600, 9600},
	{unix.B19200, 19200},
	{unix.B38400, 38400},
	{unix.B57600, 57600},
	{unix.B115200, 115200},
	{unix.B230400, 230400},
	{unix.B460800, 460800},
	{unix.B500000, 500000},
	{unix.B576000, 576000},
	{unix.B921600, 921600},
	{unix.B1000000, 1000000},
	{unix.B1152000, 1152000},
	{unix.B1500000, 1500000},
	{unix.B2000000, 2000000},
	{unix.B2500000, 2500000},
	{unix.B3000000, 3000000},
	{unix.B3500000, 3500000},
	{unix.B4000000, 4000000},
}

// ValueOf returns the bits-per-second value for a native speed symbol.
// The boolean is false if the symbol is not a known speed code.
func ValueOf(sym Symbol) (uint32, bool) {
	for _, e := range table {
		if e.Sym == sym {
			return e.BPS, true
		}
	}
	return 0, false
}

// SymbolOf returns the native speed symbol for a bits-per-second value.
// The boolean is false if the rate is not supported by the driver interface.
func SymbolOf(bps uint32) (Symbol, bool) {
	for _, e := range table {
		if e.BPS == bps {
			return e.Sym, true
		}
	}
	return 0, false
}
