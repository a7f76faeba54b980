package tui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var ErrNoItems = errors.New("no items to select from")

// TerminalError wraps every failure reported by the terminal driver.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Terminal is the driver a menu draws on. Rows and columns are 0-based.
type Terminal interface {
	EnableRaw() error
	DisableRaw() error
	ReadKey() (*tcell.EventKey, error)
	CursorPosition() (row, col int, err error)
	Size() (cols, rows int, err error)
	ScrollUp(n int) error
	MoveTo(row, col int) error
	ClearDown() error
	WriteStyled(text string, style Style) error
	ShowCursor() error
	HideCursor() error
	Flush() error
}

// wrapTerm tags err with op unless it already carries a TerminalError.
func wrapTerm(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *TerminalError
	if errors.As(err, &te) {
		return err
	}
	return &TerminalError{Op: op, Err: err}
}
