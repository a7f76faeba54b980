// Package term drives an inline menu on a character device. Raw mode and
// window size come from tcell's Tty; output goes through termenv.
package term

import (
	"bufio"
	"errors"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"github.com/baaaaaaaka/termenu/internal/tui"
)

const DefaultDevice = "/dev/tty"

var errNotRaw = errors.New("raw mode not enabled")

var _ tui.Terminal = (*TTY)(nil)

// TTY implements tui.Terminal on top of a tcell.Tty.
type TTY struct {
	tty tcell.Tty
	src *pump
	in  *bufio.Reader
	w   *bufio.Writer
	out *termenv.Output
	raw bool
}

type Option func(*options)

type options struct {
	profile termenv.Profile
}

// WithProfile fixes the color profile instead of detecting it.
func WithProfile(p termenv.Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// New wraps an already opened tty. Without WithProfile colors are
// limited to ANSI.
func New(tty tcell.Tty, opts ...Option) *TTY {
	o := options{profile: termenv.ANSI}
	for _, opt := range opts {
		opt(&o)
	}
	w := bufio.NewWriter(tty)
	src := newPump(tty)
	return &TTY{
		tty: tty,
		src: src,
		in:  bufio.NewReader(src),
		w:   w,
		out: termenv.NewOutput(w, termenv.WithProfile(o.profile)),
	}
}

func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	return &tui.TerminalError{Op: op, Err: err}
}

func (t *TTY) Profile() termenv.Profile { return t.out.Profile }

func (t *TTY) EnableRaw() error {
	if t.raw {
		return nil
	}
	if err := t.tty.Start(); err != nil {
		return fail("enable raw mode", err)
	}
	t.raw = true
	return nil
}

func (t *TTY) DisableRaw() error {
	if !t.raw {
		return nil
	}
	t.raw = false
	err := t.tty.Stop()
	// The device is reopened on the next Start; reads of the old one end here.
	t.src.stop()
	t.src = newPump(t.tty)
	t.in.Reset(t.src)
	return fail("disable raw mode", err)
}

func (t *TTY) ReadKey() (*tcell.EventKey, error) {
	if !t.raw {
		return nil, fail("read key", errNotRaw)
	}
	ev, err := decodeKey(t.in, t.moreInput)
	return ev, fail("read key", err)
}

func (t *TTY) moreInput() bool { return t.src.ready(escDelay) }

// CursorPosition asks the terminal for the cursor with a device status
// report and returns the 0-based reply.
func (t *TTY) CursorPosition() (row, col int, err error) {
	if !t.raw {
		return 0, 0, fail("cursor position", errNotRaw)
	}
	if _, err := t.w.WriteString(termenv.CSI + "6n"); err != nil {
		return 0, 0, fail("cursor position", err)
	}
	if err := t.w.Flush(); err != nil {
		return 0, 0, fail("cursor position", err)
	}
	row, col, err = readCursorReport(t.in)
	if err != nil {
		return 0, 0, fail("cursor position", err)
	}
	return row - 1, col - 1, nil
}

func (t *TTY) Size() (cols, rows int, err error) {
	ws, err := t.tty.WindowSize()
	if err != nil {
		return 0, 0, fail("size", err)
	}
	return ws.Width, ws.Height, nil
}

func (t *TTY) ScrollUp(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := t.w.WriteString(termenv.CSI + strconv.Itoa(n) + "S")
	return fail("scroll", err)
}

func (t *TTY) MoveTo(row, col int) error {
	t.out.MoveCursor(row+1, col+1)
	return nil
}

func (t *TTY) ClearDown() error {
	_, err := t.w.WriteString(termenv.CSI + "0J")
	return fail("clear", err)
}

func (t *TTY) WriteStyled(text string, style tui.Style) error {
	if style.IsZero() {
		_, err := t.w.WriteString(text)
		return fail("write", err)
	}
	_, err := t.w.WriteString(t.styled(text, style))
	return fail("write", err)
}

func (t *TTY) styled(text string, style tui.Style) string {
	s := t.out.String(text)
	if style.Fg != "" {
		s = s.Foreground(t.out.Color(style.Fg))
	}
	if style.Bg != "" {
		s = s.Background(t.out.Color(style.Bg))
	}
	if style.Bold {
		s = s.Bold()
	}
	if style.Faint {
		s = s.Faint()
	}
	if style.Italic {
		s = s.Italic()
	}
	if style.Underline {
		s = s.Underline()
	}
	if style.Reverse {
		s = s.Reverse()
	}
	return s.String()
}

func (t *TTY) ShowCursor() error {
	t.out.ShowCursor()
	return nil
}

func (t *TTY) HideCursor() error {
	t.out.HideCursor()
	return nil
}

func (t *TTY) Flush() error {
	return fail("flush", t.w.Flush())
}

// Close releases raw mode if still held and closes the device.
func (t *TTY) Close() error {
	var errs []error
	if err := t.DisableRaw(); err != nil {
		errs = append(errs, err)
	}
	t.src.stop()
	if err := t.tty.Close(); err != nil {
		errs = append(errs, fail("close", err))
	}
	return errors.Join(errs...)
}
