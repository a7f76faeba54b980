package tui

import "unicode/utf8"

// queryBuffer is the editable query line. Keeping the text as runes makes
// every caret position a character boundary.
type queryBuffer struct {
	text  []rune
	caret int
}

func (q *queryBuffer) String() string { return string(q.text) }

func (q *queryBuffer) Len() int { return len(q.text) }

func (q *queryBuffer) reset() {
	q.text = q.text[:0]
	q.caret = 0
}

func (q *queryBuffer) insert(r rune) {
	q.text = append(q.text, 0)
	copy(q.text[q.caret+1:], q.text[q.caret:])
	q.text[q.caret] = r
	q.caret++
}

// backspace removes the rune before the caret. It reports whether the
// text changed.
func (q *queryBuffer) backspace() bool {
	if q.caret == 0 {
		return false
	}
	q.text = append(q.text[:q.caret-1], q.text[q.caret:]...)
	q.caret--
	return true
}

func (q *queryBuffer) left() bool {
	if q.caret == 0 {
		return false
	}
	q.caret--
	return true
}

func (q *queryBuffer) right() bool {
	if q.caret >= len(q.text) {
		return false
	}
	q.caret++
	return true
}

// byteOffset is the caret position measured in bytes of String().
func (q *queryBuffer) byteOffset() int {
	n := 0
	for _, r := range q.text[:q.caret] {
		n += utf8.RuneLen(r)
	}
	return n
}

// caretColumns approximates the on-screen width of the text before the
// caret: one column for single-byte runes, two otherwise.
func (q *queryBuffer) caretColumns() int {
	return approxWidth(q.text[:q.caret])
}

func approxWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += min(2, max(1, utf8.RuneLen(r)))
	}
	return w
}
