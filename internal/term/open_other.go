//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos)

package term

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("no tty device support on " + runtime.GOOS)

func Open(device string, opts ...Option) (*TTY, error) {
	return nil, fail("open "+device, errUnsupported)
}
