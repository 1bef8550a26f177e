package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args, swallowing cobra's output.
func execute(args ...string) error {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

// requireUsageError asserts err comes from argument validation, i.e. before
// any device was opened.
func requireUsageError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var runErr *runError
	require.False(t, errors.As(err, &runErr), "expected a usage error, got a run error: %v", err)
}

func TestFlowFlagsMutuallyExclusive(t *testing.T) {
	// The device path does not exist; a usage error proves validation fired
	// before the open.
	requireUsageError(t, execute("-f", "-n", "/nonexistent/device"))
}

func TestModeFlagsMutuallyExclusive(t *testing.T) {
	requireUsageError(t, execute("-r", "-w", "/nonexistent/device"))
}

func TestDevicePathRequired(t *testing.T) {
	requireUsageError(t, execute("-v"))
}

func TestExtraArgumentsRejected(t *testing.T) {
	requireUsageError(t, execute("/dev/null", "/dev/zero"))
}

func TestBadSpeedValue(t *testing.T) {
	requireUsageError(t, execute("-s", "fast", "/dev/null"))
}

func TestOpenFailureIsRunError(t *testing.T) {
	err := execute("/nonexistent/device")
	require.Error(t, err)
	var runErr *runError
	require.True(t, errors.As(err, &runErr))
	require.Contains(t, err.Error(), "/nonexistent/device")
}

func TestWriteModeToRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = stdin; r.Close() })

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, execute("-w", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(data))
}

func TestReadModeFromRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = stdout; r.Close() })

	require.NoError(t, execute("-r", path))
	require.NoError(t, w.Close())

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(buf[:n]))
}
