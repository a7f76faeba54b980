package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/ulikunitz/xz"
	xterm "golang.org/x/term"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// openInput returns the item source: the file at path, transparently
// decompressed when it ends in .xz, or stdin. Reading items from a
// terminal stdin is refused since the menu needs the terminal for keys.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" {
		if f, ok := stdin.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
			return nil, &usageError{msg: "stdin is a terminal; pipe items in or use --input"}
		}
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if !strings.HasSuffix(path, ".xz") {
		return f, nil
	}
	zr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open xz input %s: %w", path, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, f}, nil
}

// readItems splits r into lines. A trailing newline does not produce an
// empty item; CRLF endings are accepted.
func readItems(r io.Reader, escape bool) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var items []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if escape {
			line = escapeLine(line)
		}
		items = append(items, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

// escapeLine renders backslashes and non-printable characters as Go
// escapes so every item fits on one row.
func escapeLine(s string) string {
	if !strings.ContainsFunc(s, needsEscape) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case needsEscape(r):
			q := strconv.QuoteRune(r)
			sb.WriteString(q[1 : len(q)-1])
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func needsEscape(r rune) bool {
	return r == '\\' || !unicode.IsPrint(r)
}
