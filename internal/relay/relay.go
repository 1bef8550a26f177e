// Package relay moves bytes between two endpoints until end-of-stream.
package relay

import (
	"errors"
	"fmt"
	"io"
)

// ChunkSize is the fixed read size of the pump.
const ChunkSize = 1024

// Run copies bytes from src to dst in chunks of up to ChunkSize until src
// reports end-of-stream. It returns the total number of bytes written and
// the first error encountered.
//
// A short write is an error, not a condition to retry: for a serial test
// tool, silently rewriting the remainder would mask device misbehavior.
func Run(src io.Reader, dst io.Writer) (int64, error) {
	buf := make([]byte, ChunkSize)
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			total += int64(w)
			if werr != nil {
				return total, fmt.Errorf("write: %w", werr)
			}
			if w < n {
				return total, fmt.Errorf("short write: wrote %d of %d bytes", w, n)
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return total, nil
			}
			return total, fmt.Errorf("read: %w", rerr)
		}
	}
}
