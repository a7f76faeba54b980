//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package term

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

// Open opens device (DefaultDevice when empty) and detects its color
// profile unless one is given.
func Open(device string, opts ...Option) (*TTY, error) {
	if device == "" {
		device = DefaultDevice
	}
	tty, err := tcell.NewDevTtyFromDev(device)
	if err != nil {
		return nil, fail("open "+device, err)
	}
	detected := []Option{WithProfile(detectProfile(device))}
	return New(tty, append(detected, opts...)...), nil
}

// detectProfile reads the color profile from the device itself, since
// stdout is usually a pipe when a menu runs.
func detectProfile(device string) termenv.Profile {
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return termenv.Ascii
	}
	defer f.Close()
	return termenv.NewOutput(f).EnvColorProfile()
}
