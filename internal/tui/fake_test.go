package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var errNoMoreKeys = errors.New("no more keys")

// fakeTerm records every call as a short string and replays queued keys.
type fakeTerm struct {
	keys []*tcell.EventKey

	row  int
	cols int
	rows int

	raw     bool
	cursor  bool
	calls   []string
	failOn  map[string]error
	written strings.Builder
}

func newFakeTerm(rows int, keys ...*tcell.EventKey) *fakeTerm {
	return &fakeTerm{keys: keys, cols: 80, rows: rows, cursor: true}
}

func (f *fakeTerm) fail(op string) error {
	if err, ok := f.failOn[op]; ok {
		return err
	}
	return nil
}

func (f *fakeTerm) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeTerm) EnableRaw() error {
	f.record("raw on")
	if err := f.fail("raw on"); err != nil {
		return err
	}
	f.raw = true
	return nil
}

func (f *fakeTerm) DisableRaw() error {
	f.record("raw off")
	f.raw = false
	return f.fail("raw off")
}

func (f *fakeTerm) ReadKey() (*tcell.EventKey, error) {
	if err := f.fail("read"); err != nil {
		return nil, err
	}
	if len(f.keys) == 0 {
		return nil, errNoMoreKeys
	}
	ev := f.keys[0]
	f.keys = f.keys[1:]
	return ev, nil
}

func (f *fakeTerm) CursorPosition() (int, int, error) {
	return f.row, 0, f.fail("position")
}

func (f *fakeTerm) Size() (int, int, error) {
	return f.cols, f.rows, f.fail("size")
}

func (f *fakeTerm) ScrollUp(n int) error {
	f.record("scroll %d", n)
	return f.fail("scroll")
}

func (f *fakeTerm) MoveTo(row, col int) error {
	f.record("move %d,%d", row, col)
	return f.fail("move")
}

func (f *fakeTerm) ClearDown() error {
	f.record("clear")
	return f.fail("clear")
}

func (f *fakeTerm) WriteStyled(text string, _ Style) error {
	f.record("write %q", text)
	f.written.WriteString(text)
	return f.fail("write")
}

func (f *fakeTerm) ShowCursor() error {
	f.cursor = true
	f.record("show")
	return f.fail("show")
}

func (f *fakeTerm) HideCursor() error {
	f.cursor = false
	f.record("hide")
	return f.fail("hide")
}

func (f *fakeTerm) Flush() error {
	return f.fail("flush")
}

func (f *fakeTerm) lastCall() string {
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typed(s string) []*tcell.EventKey {
	out := make([]*tcell.EventKey, 0, len(s))
	for _, r := range s {
		out = append(out, runeKey(r))
	}
	return out
}

func newTestMenu(aliases ...string) (*Menu[string], *fakeTerm) {
	ft := newFakeTerm(24)
	m := New[string](ft)
	for _, a := range aliases {
		m.Add(a, "value:"+a)
	}
	return m, ft
}

// prepare puts m in the state a session has right after start.
func prepare(m *Menu[string], termRows int) {
	m.resetState()
	m.cols = 80
	m.layout = computeLayout(0, termRows, m.items.Len(), m.maxHeight)
}
