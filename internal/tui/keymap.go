package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Mode is the state of the key dispatcher.
type Mode int

const (
	ModeBrowse Mode = iota // navigate the full item list
	ModeQuery              // navigate the fuzzy-filtered list
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeQuery:
		return "query"
	default:
		return "unknown"
	}
}

type action int

const (
	actionNone action = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionEnterQuery
	actionInsert
	actionBackspace
	actionSubmit
	actionEscape
	actionInterrupt
)

type binding struct {
	key    tcell.Key
	action action
}

// keyBindings is the transition table for special keys in each mode.
var keyBindings = map[Mode][]binding{
	ModeBrowse: {
		{tcell.KeyUp, actionUp},
		{tcell.KeyDown, actionDown},
		{tcell.KeyEnter, actionSubmit},
		{tcell.KeyEscape, actionEscape},
		{tcell.KeyCtrlC, actionInterrupt},
	},
	ModeQuery: {
		{tcell.KeyUp, actionUp},
		{tcell.KeyDown, actionDown},
		{tcell.KeyCtrlP, actionUp},
		{tcell.KeyCtrlN, actionDown},
		{tcell.KeyLeft, actionLeft},
		{tcell.KeyRight, actionRight},
		{tcell.KeyBackspace, actionBackspace},
		{tcell.KeyBackspace2, actionBackspace},
		{tcell.KeyEnter, actionSubmit},
		{tcell.KeyEscape, actionEscape},
		{tcell.KeyCtrlC, actionInterrupt},
	},
}

var keymap = buildKeymap(keyBindings)

func buildKeymap(bindings map[Mode][]binding) map[Mode]map[tcell.Key]action {
	out := make(map[Mode]map[tcell.Key]action, len(bindings))
	for mode, list := range bindings {
		m := make(map[tcell.Key]action, len(list))
		for _, b := range list {
			m[b.key] = b.action
		}
		out[mode] = m
	}
	return out
}

// runemap binds printable keys. In query mode every unbound printable
// rune is inserted into the query.
var runemap = map[Mode]map[rune]action{
	ModeBrowse: {
		'k': actionUp,
		'j': actionDown,
		'/': actionEnterQuery,
	},
	ModeQuery: {},
}

func resolve(mode Mode, ev *tcell.EventKey) action {
	if ev == nil {
		return actionNone
	}
	if ev.Modifiers()&(tcell.ModAlt|tcell.ModMeta) != 0 {
		return actionNone
	}
	if ev.Key() == tcell.KeyRune {
		if a, ok := runemap[mode][ev.Rune()]; ok {
			return a
		}
		if mode == ModeQuery && unicode.IsPrint(ev.Rune()) {
			return actionInsert
		}
		return actionNone
	}
	return keymap[mode][ev.Key()]
}

// response tells the event loop what a key did.
type response struct {
	exit   bool
	redraw bool
}

var (
	noop   = response{}
	redraw = response{redraw: true}
	exit   = response{exit: true}
)

func (m *Menu[T]) dispatch(ev *tcell.EventKey) response {
	switch resolve(m.mode, ev) {
	case actionUp:
		return m.keyUp()
	case actionDown:
		return m.keyDown()
	case actionEnterQuery:
		m.enterQueryMode()
		return redraw
	case actionInsert:
		m.query.insert(ev.Rune())
		m.rerank()
		return redraw
	case actionBackspace:
		if !m.query.backspace() {
			return noop
		}
		m.rerank()
		return redraw
	case actionLeft:
		return response{redraw: m.query.left()}
	case actionRight:
		return response{redraw: m.query.right()}
	case actionSubmit:
		if m.activeLen() == 0 {
			return noop
		}
		m.selected = true
		return exit
	case actionEscape:
		if m.mode == ModeBrowse {
			return exit
		}
		m.enterBrowseMode()
		return redraw
	case actionInterrupt:
		return exit
	}
	return noop
}

func (m *Menu[T]) keyUp() response {
	if m.selection == 0 {
		if m.scroll == 0 {
			return noop
		}
		m.scroll--
		return redraw
	}
	m.selection--
	return redraw
}

func (m *Menu[T]) keyDown() response {
	n := m.activeLen()
	if n == 0 || m.selection+m.scroll >= n-1 {
		return noop
	}
	if m.selection >= m.layout.bottomRow() {
		m.scroll++
		return redraw
	}
	m.selection++
	return redraw
}

func (m *Menu[T]) enterBrowseMode() {
	m.mode = ModeBrowse
	m.query.reset()
	m.matched = nil
	m.items.clearMatches()
	m.selection = 0
	m.scroll = 0
}

func (m *Menu[T]) enterQueryMode() {
	m.mode = ModeQuery
	m.query.reset()
	m.matched = nil
	m.selection = 0
	m.scroll = 0
}

func (m *Menu[T]) rerank() {
	if m.ranker == nil {
		m.ranker = defaultRanker()
	}
	m.matched = rankStore(m.ranker, &m.items, m.query.String())
	m.selection = 0
	m.scroll = 0
	m.log.Debug("ranked query", "query", m.query.String(), "matches", len(m.matched), "parallel", m.items.Len() > m.ranker.threshold)
}

// activeLen is the length of the list the selection moves over.
func (m *Menu[T]) activeLen() int {
	if m.mode == ModeQuery {
		return len(m.matched)
	}
	return m.items.Len()
}

// itemIndex maps a position in the active list to a store index.
func (m *Menu[T]) itemIndex(pos int) int {
	if m.mode == ModeQuery {
		return m.matched[pos]
	}
	return pos
}
