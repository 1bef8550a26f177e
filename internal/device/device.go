package device

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/geertu/sercat/internal/speed"
)

// Mode selects the direction a device is opened for. A device is never
// opened for both.
type Mode int

const (
	ReadOnly Mode = iota
	WriteOnly
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "for reading"
	case WriteOnly:
		return "for writing"
	default:
		return "unknown mode"
	}
}

func (m Mode) openFlag() int {
	if m == WriteOnly {
		return unix.O_WRONLY
	}
	return unix.O_RDONLY
}

// FlowControl is the requested hardware flow-control (RTS/CTS) setting.
type FlowControl int

const (
	// FlowUnspecified leaves the device's current setting untouched.
	FlowUnspecified FlowControl = iota
	FlowOn
	FlowOff
)

// Config holds the requested line configuration for one Open call.
type Config struct {
	FlowControl FlowControl
	// Speed is the requested rate in bits per second. Zero means leave the
	// device's current speed untouched.
	Speed uint32
	// Logger receives per-step progress at debug level. Nil disables logging.
	Logger *zap.Logger
}

// Port is an open endpoint, either a configured terminal device or a plain
// file that reported ENOTTY on the attribute query.
type Port struct {
	file *os.File
	tty  bool
}

func (p *Port) Read(b []byte) (int, error)  { return p.file.Read(b) }
func (p *Port) Write(b []byte) (int, error) { return p.file.Write(b) }
func (p *Port) Close() error                { return p.file.Close() }
func (p *Port) Name() string                { return p.file.Name() }

// IsTTY reports whether the endpoint is a terminal device that went through
// raw-mode configuration.
func (p *Port) IsTTY() bool { return p.tty }

// Open opens path in the given mode and applies cfg. Every configuration
// step must succeed; on failure the descriptor is closed and an error naming
// the failing operation is returned. Non-terminal paths skip configuration.
func Open(path string, mode Mode, cfg Config) (*Port, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	log.Debug("opening device", zap.String("path", path), zap.Stringer("mode", mode))
	fd, err := unix.Open(path, mode.openFlag()|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s %s: %w", path, mode, err)
	}
	file := os.NewFile(uintptr(fd), path)

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		if errors.Is(err, unix.ENOTTY) {
			log.Info("not a tty, skipping tty config", zap.String("path", path))
			return &Port{file: file}, nil
		}
		file.Close()
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}
	log.Debug("current terminal attributes",
		zap.String("iflag", fmt.Sprintf("0%o", termios.Iflag)),
		zap.String("oflag", fmt.Sprintf("0%o", termios.Oflag)),
		zap.String("cflag", fmt.Sprintf("0%o", termios.Cflag)),
		zap.String("lflag", fmt.Sprintf("0%o", termios.Lflag)))

	log.Debug("enabling terminal raw mode")
	makeRaw(termios)
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		file.Close()
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}

	switch cfg.FlowControl {
	case FlowOn:
		log.Debug("enabling hardware flow control")
		termios.Cflag |= unix.CRTSCTS
	case FlowOff:
		log.Debug("disabling hardware flow control")
		termios.Cflag &^= unix.CRTSCTS
	}
	if cfg.FlowControl != FlowUnspecified {
		if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
			file.Close()
			return nil, fmt.Errorf("set hardware flow control: %w", err)
		}
	}

	if cfg.Speed != 0 {
		sym, ok := speed.SymbolOf(cfg.Speed)
		if !ok {
			file.Close()
			return nil, fmt.Errorf("unsupported speed %d", cfg.Speed)
		}
		log.Debug("setting serial speed", zap.Uint32("bps", cfg.Speed))
		setSpeed(termios, sym)
		if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
			file.Close()
			return nil, fmt.Errorf("set speed attribute: %w", err)
		}
	} else if bps, ok := speed.ValueOf(speed.Symbol(termios.Cflag & unix.CBAUD)); ok {
		log.Debug("serial speed unchanged", zap.Uint32("bps", bps))
	} else {
		log.Debug("serial speed unchanged", zap.String("bps", "non-standard"))
	}

	log.Debug("flushing terminal")
	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		file.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}

	return &Port{file: file, tty: true}, nil
}

// makeRaw is the cfmakeraw(3) transformation: no input preprocessing, no
// output postprocessing, no line editing, echo or signals, 8-bit characters
// without parity, and byte-at-a-time reads.
func makeRaw(t *unix.Termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

// setSpeed stores sym as both the input and output speed.
func setSpeed(t *unix.Termios, sym speed.Symbol) {
	t.Cflag &^= unix.CBAUD
	t.Cflag |= uint32(sym)
	t.Ispeed = uint32(sym)
	t.Ospeed = uint32(sym)
}
