package tui

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestResolveTable(t *testing.T) {
	cases := []struct {
		mode Mode
		ev   *tcell.EventKey
		want action
	}{
		{ModeBrowse, key(tcell.KeyUp), actionUp},
		{ModeBrowse, runeKey('k'), actionUp},
		{ModeBrowse, key(tcell.KeyDown), actionDown},
		{ModeBrowse, runeKey('j'), actionDown},
		{ModeBrowse, runeKey('/'), actionEnterQuery},
		{ModeBrowse, key(tcell.KeyEnter), actionSubmit},
		{ModeBrowse, key(tcell.KeyEscape), actionEscape},
		{ModeBrowse, key(tcell.KeyCtrlC), actionInterrupt},
		{ModeBrowse, runeKey('x'), actionNone},
		{ModeBrowse, key(tcell.KeyLeft), actionNone},
		{ModeBrowse, key(tcell.KeyCtrlN), actionNone},
		{ModeQuery, runeKey('k'), actionInsert},
		{ModeQuery, runeKey('/'), actionInsert},
		{ModeQuery, runeKey('é'), actionInsert},
		{ModeQuery, key(tcell.KeyCtrlP), actionUp},
		{ModeQuery, key(tcell.KeyCtrlN), actionDown},
		{ModeQuery, key(tcell.KeyLeft), actionLeft},
		{ModeQuery, key(tcell.KeyRight), actionRight},
		{ModeQuery, key(tcell.KeyBackspace2), actionBackspace},
		{ModeQuery, key(tcell.KeyEnter), actionSubmit},
		{ModeQuery, key(tcell.KeyEscape), actionEscape},
		{ModeQuery, key(tcell.KeyCtrlC), actionInterrupt},
		{ModeQuery, tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt), actionNone},
		{ModeBrowse, tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModAlt), actionNone},
	}
	for _, tc := range cases {
		if got := resolve(tc.mode, tc.ev); got != tc.want {
			t.Fatalf("%s %s: expected action %d, got %d", tc.mode, tc.ev.Name(), tc.want, got)
		}
	}
}

func manyAliases(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("entry %02d", i)
	}
	return out
}

func TestDownScrollsAtBottomRow(t *testing.T) {
	m, _ := newTestMenu(manyAliases(50)...)
	prepare(m, 10)
	if m.layout.maxRows != 10 {
		t.Fatalf("expected maxRows 10, got %d", m.layout.maxRows)
	}

	for i := 1; i <= 9; i++ {
		resp := m.dispatch(key(tcell.KeyDown))
		if !resp.redraw || resp.exit {
			t.Fatalf("down %d: unexpected response %+v", i, resp)
		}
		wantSel, wantScroll := min(i, 7), max(0, i-7)
		if m.selection != wantSel || m.scroll != wantScroll {
			t.Fatalf("down %d: expected selection=%d scroll=%d, got %d/%d", i, wantSel, wantScroll, m.selection, m.scroll)
		}
	}
}

func TestDownAtEndIsNoop(t *testing.T) {
	m, _ := newTestMenu("a", "b")
	prepare(m, 24)
	m.dispatch(key(tcell.KeyDown))
	resp := m.dispatch(key(tcell.KeyDown))
	if resp.redraw || resp.exit {
		t.Fatalf("expected noop at list end, got %+v", resp)
	}
	if m.selection != 1 {
		t.Fatalf("expected selection 1, got %d", m.selection)
	}
}

func TestUpScrollsBack(t *testing.T) {
	m, _ := newTestMenu(manyAliases(50)...)
	prepare(m, 10)
	m.selection, m.scroll = 0, 2

	if resp := m.dispatch(runeKey('k')); !resp.redraw || m.scroll != 1 {
		t.Fatalf("expected scroll 1 with redraw, got scroll=%d %+v", m.scroll, resp)
	}
	m.dispatch(key(tcell.KeyUp))
	if resp := m.dispatch(key(tcell.KeyUp)); resp.redraw {
		t.Fatalf("expected no redraw at top, got %+v", resp)
	}
	if m.selection != 0 || m.scroll != 0 {
		t.Fatalf("expected top, got selection=%d scroll=%d", m.selection, m.scroll)
	}
}

func TestSelectionStaysInRange(t *testing.T) {
	m, _ := newTestMenu(manyAliases(30)...)
	prepare(m, 8)
	seq := []*tcell.EventKey{
		runeKey('/'), runeKey('1'), key(tcell.KeyDown), key(tcell.KeyDown), key(tcell.KeyDown),
		runeKey('0'), key(tcell.KeyDown), key(tcell.KeyBackspace2), key(tcell.KeyCtrlN),
		key(tcell.KeyCtrlN), key(tcell.KeyCtrlP), key(tcell.KeyEscape),
	}
	for i := 0; i < 40; i++ {
		seq = append(seq, key(tcell.KeyDown))
	}
	for i, ev := range seq {
		m.dispatch(ev)
		if n := m.activeLen(); n > 0 {
			if pos := m.selection + m.scroll; pos < 0 || pos >= n {
				t.Fatalf("step %d: position %d outside [0,%d)", i, pos, n)
			}
		}
	}
}

func TestQueryModeEscReturnsToBrowse(t *testing.T) {
	m, _ := newTestMenu("apple", "banana", "grape")
	prepare(m, 24)

	m.dispatch(runeKey('/'))
	m.dispatch(runeKey('a'))
	m.dispatch(runeKey('p'))
	if m.mode != ModeQuery || len(m.matched) == 0 {
		t.Fatalf("expected query mode with matches, got %s %v", m.mode, m.matched)
	}

	resp := m.dispatch(key(tcell.KeyEscape))
	if resp.exit || !resp.redraw {
		t.Fatalf("expected redraw without exit, got %+v", resp)
	}
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %s", m.mode)
	}
	if m.matched != nil {
		t.Fatalf("expected matches cleared, got %v", m.matched)
	}
	if m.items.Get(0).Score != nil {
		t.Fatalf("expected scores cleared")
	}
	if m.query.String() != "" || m.query.caret != 0 {
		t.Fatalf("expected query cleared on esc, got %q caret=%d", m.query.String(), m.query.caret)
	}
	if got := render(m.compose()); got[2] != `write "select"` || got[3] != "move 1,0" {
		t.Fatalf("expected bare title after esc, got %v", got[:4])
	}

	m.dispatch(runeKey('/'))
	if m.query.String() != "" || m.query.caret != 0 {
		t.Fatalf("expected empty query, got %q caret=%d", m.query.String(), m.query.caret)
	}
}

func TestQueryEnterWithoutMatches(t *testing.T) {
	m, _ := newTestMenu("apple", "banana")
	prepare(m, 24)
	m.dispatch(runeKey('/'))

	if resp := m.dispatch(key(tcell.KeyEnter)); resp.exit {
		t.Fatalf("expected enter disabled with empty query")
	}
	m.dispatch(runeKey('z'))
	if resp := m.dispatch(key(tcell.KeyEnter)); resp.exit || m.selected {
		t.Fatalf("expected enter disabled without matches")
	}
}

func TestQueryEditingReranks(t *testing.T) {
	m, _ := newTestMenu("apple", "banana", "grape")
	prepare(m, 24)
	m.dispatch(runeKey('/'))
	m.dispatch(runeKey('n'))
	if len(m.matched) != 1 || m.matched[0] != 1 {
		t.Fatalf("expected only banana, got %v", m.matched)
	}
	m.dispatch(key(tcell.KeyDown))

	m.dispatch(key(tcell.KeyLeft))
	if m.query.caret != 0 {
		t.Fatalf("expected caret 0, got %d", m.query.caret)
	}
	if resp := m.dispatch(key(tcell.KeyBackspace2)); resp.redraw {
		t.Fatalf("expected backspace at caret 0 to be a noop")
	}
	m.dispatch(runeKey('a'))
	if m.query.String() != "an" {
		t.Fatalf("expected query an, got %q", m.query.String())
	}
	if m.selection != 0 || m.scroll != 0 {
		t.Fatalf("expected selection reset, got %d/%d", m.selection, m.scroll)
	}

	m.dispatch(key(tcell.KeyRight))
	m.dispatch(key(tcell.KeyBackspace2))
	if m.query.String() != "a" {
		t.Fatalf("expected query a, got %q", m.query.String())
	}
	if len(m.matched) != 3 {
		t.Fatalf("expected all items to match a, got %v", m.matched)
	}
}

func TestUnboundKeysAreNoops(t *testing.T) {
	m, _ := newTestMenu("a")
	prepare(m, 24)
	for _, ev := range []*tcell.EventKey{runeKey('x'), key(tcell.KeyTab), key(tcell.KeyF1)} {
		if resp := m.dispatch(ev); resp != noop {
			t.Fatalf("%s: expected noop, got %+v", ev.Name(), resp)
		}
	}
}
