package term

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	esc = 0x1b
	del = 0x7f

	// maxSequence bounds how many bytes an escape sequence may span.
	maxSequence = 32
)

var errBadReport = errors.New("malformed cursor position report")

var csiFinal = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'F': tcell.KeyEnd,
	'H': tcell.KeyHome,
	'Z': tcell.KeyBacktab,
	'P': tcell.KeyF1,
	'Q': tcell.KeyF2,
	'R': tcell.KeyF3,
	'S': tcell.KeyF4,
}

var csiTilde = map[int]tcell.Key{
	1:  tcell.KeyHome,
	2:  tcell.KeyInsert,
	3:  tcell.KeyDelete,
	4:  tcell.KeyEnd,
	5:  tcell.KeyPgUp,
	6:  tcell.KeyPgDn,
	7:  tcell.KeyHome,
	8:  tcell.KeyEnd,
	15: tcell.KeyF5,
	17: tcell.KeyF6,
	18: tcell.KeyF7,
	19: tcell.KeyF8,
	20: tcell.KeyF9,
	21: tcell.KeyF10,
	23: tcell.KeyF11,
	24: tcell.KeyF12,
}

// decodeKey reads one key press. An Esc with nothing behind it, neither
// buffered nor reported by more, is a bare Esc; otherwise it starts a CSI
// or SS3 sequence or marks the next key as Alt-modified. more may be nil.
func decodeKey(r *bufio.Reader, more func() bool) (*tcell.EventKey, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != esc {
		if err := r.UnreadByte(); err != nil {
			return nil, err
		}
		return decodePlain(r)
	}
	if r.Buffered() == 0 && (more == nil || !more()) {
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil
	}

	next, err := r.ReadByte()
	if err != nil {
		// The reader repeats the error on the next call.
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil
	}
	switch next {
	case '[':
		return decodeCSI(r)
	case 'O':
		final, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if k, ok := csiFinal[final]; ok {
			return tcell.NewEventKey(k, 0, tcell.ModNone), nil
		}
		return unknownKey(), nil
	case esc:
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModAlt), nil
	}

	if err := r.UnreadByte(); err != nil {
		return nil, err
	}
	ev, err := decodePlain(r)
	if err != nil {
		return nil, err
	}
	return tcell.NewEventKey(ev.Key(), ev.Rune(), ev.Modifiers()|tcell.ModAlt), nil
}

// decodePlain reads a key that does not start with Esc.
func decodePlain(r *bufio.Reader) (*tcell.EventKey, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case b == '\r' || b == '\n':
		return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), nil
	case b == '\t':
		return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), nil
	case b == del:
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), nil
	case b == 0x08:
		return tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), nil
	case b < 0x20:
		return tcell.NewEventKey(tcell.Key(b), 0, tcell.ModCtrl), nil
	}

	if err := r.UnreadByte(); err != nil {
		return nil, err
	}
	ch, _, err := r.ReadRune()
	if err != nil {
		return nil, err
	}
	return tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone), nil
}

// decodeCSI reads the rest of an ESC [ sequence.
func decodeCSI(r *bufio.Reader) (*tcell.EventKey, error) {
	params, final, err := readCSI(r)
	if err != nil {
		return nil, err
	}
	fields := strings.Split(params, ";")
	mod := tcell.ModNone
	if len(fields) > 1 {
		mod = xtermModifiers(fields[1])
	}

	if final == '~' {
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return unknownKey(), nil
		}
		if k, ok := csiTilde[n]; ok {
			return tcell.NewEventKey(k, 0, mod), nil
		}
		return unknownKey(), nil
	}
	if k, ok := csiFinal[final]; ok {
		return tcell.NewEventKey(k, 0, mod), nil
	}
	return unknownKey(), nil
}

// readCSI reads parameter bytes up to the final byte of a CSI sequence.
func readCSI(r *bufio.Reader) (params string, final byte, err error) {
	var sb strings.Builder
	for i := 0; i < maxSequence; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return "", 0, err
		}
		if b >= 0x40 && b <= 0x7e {
			return sb.String(), b, nil
		}
		sb.WriteByte(b)
	}
	return sb.String(), 0, nil
}

// xtermModifiers decodes the "1+bits" modifier parameter of xterm keys.
func xtermModifiers(field string) tcell.ModMask {
	n, err := strconv.Atoi(field)
	if err != nil || n < 2 {
		return tcell.ModNone
	}
	bits := n - 1
	mod := tcell.ModNone
	if bits&1 != 0 {
		mod |= tcell.ModShift
	}
	if bits&2 != 0 {
		mod |= tcell.ModAlt
	}
	if bits&4 != 0 {
		mod |= tcell.ModCtrl
	}
	if bits&8 != 0 {
		mod |= tcell.ModMeta
	}
	return mod
}

func unknownKey() *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyNUL, 0, tcell.ModNone)
}

// readCursorReport scans r for an ESC [ row ; col R reply, discarding
// anything else that arrives first.
func readCursorReport(r *bufio.Reader) (row, col int, err error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		if b != esc {
			continue
		}
		b, err = r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		if b != '[' {
			continue
		}
		params, final, err := readCSI(r)
		if err != nil {
			return 0, 0, err
		}
		if final != 'R' {
			continue
		}
		return parseCursorReport(params)
	}
}

func parseCursorReport(params string) (row, col int, err error) {
	rowText, colText, ok := strings.Cut(params, ";")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadReport, params)
	}
	row, err = strconv.Atoi(rowText)
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", errBadReport, params)
	}
	col, err = strconv.Atoi(colText)
	if err != nil || col < 1 {
		return 0, 0, fmt.Errorf("%w: %q", errBadReport, params)
	}
	return row, col, nil
}
