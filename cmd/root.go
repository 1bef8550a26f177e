// Package cmd holds the command line surface. It is the only place that
// decides process exit codes; everything below it reports plain errors.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/geertu/sercat/internal/device"
	"github.com/geertu/sercat/internal/logging"
	"github.com/geertu/sercat/internal/relay"
)

const (
	exitUsage   = 1
	exitFailure = 2
)

type options struct {
	hwFlow  bool
	noFlow  bool
	read    bool
	write   bool
	speed   uint32
	verbose bool
}

func (o *options) setFlags(flags *flag.FlagSet) {
	flags.BoolVarP(&o.hwFlow, "hwflow", "f", false, "Enable hardware flow control (RTS/CTS)")
	flags.BoolVarP(&o.noFlow, "noflow", "n", false, "Disable hardware flow control")
	flags.BoolVarP(&o.read, "read", "r", false, "Read mode (default)")
	flags.BoolVarP(&o.write, "write", "w", false, "Write mode")
	flags.Uint32VarP(&o.speed, "speed", "s", 0, "Serial speed in bits per second")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose mode")
}

func (o *options) flowControl() device.FlowControl {
	switch {
	case o.hwFlow:
		return device.FlowOn
	case o.noFlow:
		return device.FlowOff
	default:
		return device.FlowUnspecified
	}
}

// runError marks failures past argument validation, so Execute can separate
// the usage exit code from the I/O and configuration one.
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

// NewRootCmd returns the sercat command.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "sercat [options] <dev>",
		Short:         "Stream bytes between a serial device and the standard streams",
		Long: `sercat opens a serial device, configures it for raw transmission and
relays bytes between the device and stdin/stdout until end-of-stream.
Regular files are accepted as-is, which makes it handy for validating
serial hardware and cabling in either direction.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(opts, args[0]); err != nil {
				return &runError{err: err}
			}
			return nil
		},
	}
	opts.setFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("hwflow", "noflow")
	cmd.MarkFlagsMutuallyExclusive("read", "write")
	return cmd
}

// Execute runs the root command and translates its error into the process
// exit status: 0 on clean end-of-stream, 1 on usage errors, 2 on open,
// configuration and I/O failures.
func Execute() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var runErr *runError
	if errors.As(err, &runErr) {
		// Already logged by run.
		os.Exit(exitFailure)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	_ = rootCmd.Usage()
	os.Exit(exitUsage)
}

func run(opts *options, path string) error {
	log := logging.New(opts.verbose)
	defer log.Sync()

	cfg := device.Config{
		FlowControl: opts.flowControl(),
		Speed:       opts.speed,
		Logger:      log,
	}

	var (
		src  io.Reader
		dst  io.Writer
		port *device.Port
		err  error
	)
	if opts.write {
		port, err = device.Open(path, device.WriteOnly, cfg)
		src, dst = os.Stdin, port
	} else {
		port, err = device.Open(path, device.ReadOnly, cfg)
		src, dst = port, os.Stdout
	}
	if err != nil {
		log.Error("device setup failed", zap.Error(err))
		return err
	}

	n, err := relay.Run(src, dst)
	if err != nil {
		log.Error("relay failed", zap.Error(err), zap.Int64("bytes", n))
		port.Close()
		return err
	}
	log.Debug("end of stream", zap.Int64("bytes", n))

	// The device is ours to close; the inherited standard stream is not.
	if err := port.Close(); err != nil {
		log.Error("close failed", zap.Error(err))
		return err
	}
	return nil
}
