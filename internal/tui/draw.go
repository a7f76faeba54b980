package tui

import (
	"github.com/mattn/go-runewidth"
)

const (
	moreTag     = "---more---"
	endTag      = "---end---"
	chosenMark  = "> "
	itemPadding = "  "
	queryMark   = ": /"
)

type opKind int

const (
	opMove opKind = iota
	opClearDown
	opWrite
	opShowCursor
	opHideCursor
)

// instruction is one terminal write produced by compose.
type instruction struct {
	op    opKind
	row   int
	col   int
	text  string
	style Style
}

func moveTo(row, col int) instruction { return instruction{op: opMove, row: row, col: col} }

func write(text string, style Style) instruction {
	return instruction{op: opWrite, text: text, style: style}
}

// compose renders the current state as an ordered list of terminal
// writes. It does not touch the terminal.
func (m *Menu[T]) compose() []instruction {
	anchor := m.layout.anchor
	out := []instruction{
		moveTo(anchor, 0),
		{op: opClearDown},
	}
	out = append(out, m.composeTitle()...)

	n := m.activeLen()
	row := 1
	truncated := false
	for pos := m.scroll; pos < n; pos++ {
		if row > m.layout.maxRows-2 {
			truncated = true
			break
		}
		out = append(out, moveTo(anchor+row, 0))
		item := m.items.Get(m.itemIndex(pos))
		if pos-m.scroll == m.selection {
			out = append(out, write(clip(chosenMark+item.alias, m.cols), m.colors.Chosen))
		} else {
			out = append(out, m.composeEntry(item)...)
		}
		row++
	}

	switch {
	case truncated:
		out = append(out, moveTo(anchor+row, 0), write(moreTag, m.colors.MoreTag))
	case m.showEndTag:
		out = append(out, moveTo(anchor+row, 0), write(endTag, m.colors.MoreTag))
	}

	if m.mode == ModeQuery {
		out = append(out, moveTo(anchor, m.queryColumn()), instruction{op: opShowCursor})
	} else {
		out = append(out, instruction{op: opHideCursor})
	}
	return out
}

func (m *Menu[T]) composeTitle() []instruction {
	title := clip(m.title, m.cols)
	out := []instruction{write(title, m.colors.Title)}
	if m.mode == ModeQuery {
		rest := m.cols - runewidth.StringWidth(title)
		if m.cols <= 0 {
			rest = 0
		}
		out = append(out, write(clip(queryMark+m.query.String(), rest), m.colors.Query))
	}
	return out
}

// queryColumn is the column of the query caret on the title line.
func (m *Menu[T]) queryColumn() int {
	return approxWidth([]rune(m.title+queryMark)) + m.query.caretColumns()
}

// composeEntry writes an unselected entry, splitting the alias into runs
// of matched and unmatched characters.
func (m *Menu[T]) composeEntry(item *Item[T]) []instruction {
	base := m.colors.Items
	if m.mode != ModeQuery || len(item.MatchedPositions) == 0 {
		return []instruction{write(clip(itemPadding+item.alias, m.cols), base)}
	}

	hit := make(map[int]bool, len(item.MatchedPositions))
	for _, p := range item.MatchedPositions {
		hit[p] = true
	}

	out := []instruction{write(itemPadding, base)}
	width := runewidth.StringWidth(itemPadding)
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		style := base
		if runMatched {
			style = m.colors.Matched
		}
		out = append(out, write(string(run), style))
		run = run[:0]
	}
	for i, r := range []rune(item.alias) {
		w := runewidth.RuneWidth(r)
		if m.cols > 0 && width+w > m.cols {
			break
		}
		width += w
		if hit[i] != runMatched {
			flush()
			runMatched = hit[i]
		}
		run = append(run, r)
	}
	flush()
	return out
}

// clip cuts s so it fits in width columns. A non-positive width leaves s
// unchanged.
func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}

// apply sends instructions to the terminal in order.
func apply(t Terminal, instrs []instruction) error {
	for _, in := range instrs {
		var err error
		switch in.op {
		case opMove:
			err = wrapTerm("move cursor", t.MoveTo(in.row, in.col))
		case opClearDown:
			err = wrapTerm("clear", t.ClearDown())
		case opWrite:
			err = wrapTerm("write", t.WriteStyled(in.text, in.style))
		case opShowCursor:
			err = wrapTerm("show cursor", t.ShowCursor())
		case opHideCursor:
			err = wrapTerm("hide cursor", t.HideCursor())
		}
		if err != nil {
			return err
		}
	}
	return wrapTerm("flush", t.Flush())
}
