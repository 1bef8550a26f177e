// Package device opens a character device and puts it into a deterministic
// raw transmission mode.
//
// Open applies the configuration steps in a fixed order: raw mode first,
// then hardware flow control if requested, then the line speed if requested,
// and finally a flush of both driver queues. The first failing step aborts
// the whole operation and the file descriptor is closed.
//
// Paths that are not terminal devices (regular files, pipes) are detected
// through the attribute query: the driver reports ENOTTY, configuration is
// skipped entirely, and the opened handle is returned as-is. This lets the
// relay be exercised against plain files without hardware attached.
//
// This package does **not** support Windows.
package device
