package tui

import (
	"context"
	"fmt"
	"log/slog"
)

const defaultTitle = "select"

type settings struct {
	title       string
	maxHeight   float64
	showEndTag  bool
	printResult bool
	colors      ColorScheme
	log         *slog.Logger
}

// Option configures a Menu at construction.
type Option func(*settings)

func WithTitle(title string) Option { return func(s *settings) { s.title = title } }

// WithMaxHeight caps the list at a fraction of the terminal height.
// Values outside (0, 1] are ignored.
func WithMaxHeight(fraction float64) Option {
	return func(s *settings) {
		if fraction > 0 && fraction <= 1 {
			s.maxHeight = fraction
		}
	}
}

func WithEndTag(show bool) Option { return func(s *settings) { s.showEndTag = show } }

func WithPrintResult(enable bool) Option { return func(s *settings) { s.printResult = enable } }

func WithColorScheme(colors ColorScheme) Option { return func(s *settings) { s.colors = colors } }

func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// Menu is a single-selection session drawn inline below the cursor.
// A Menu is not safe for concurrent use.
type Menu[T any] struct {
	settings

	term   Terminal
	ranker *ranker
	items  Store[T]

	mode      Mode
	selection int
	scroll    int
	layout    layout
	cols      int
	query     queryBuffer
	matched   []int
	selected  bool
	consumed  bool
}

func New[T any](t Terminal, opts ...Option) *Menu[T] {
	m := &Menu[T]{
		term: t,
		settings: settings{
			title:       defaultTitle,
			showEndTag:  true,
			printResult: true,
			colors:      DefaultColorScheme(),
			log:         slog.New(slog.DiscardHandler),
		},
	}
	for _, opt := range opts {
		opt(&m.settings)
	}
	return m
}

func (m *Menu[T]) SetTitle(title string) *Menu[T] {
	m.title = title
	return m
}

// SetMaxHeight caps the list at fraction of the terminal rows. Values
// outside (0, 1] are ignored.
func (m *Menu[T]) SetMaxHeight(fraction float64) *Menu[T] {
	WithMaxHeight(fraction)(&m.settings)
	return m
}

func (m *Menu[T]) ShowEndTag(show bool) *Menu[T] {
	m.showEndTag = show
	return m
}

func (m *Menu[T]) SetColorScheme(colors ColorScheme) *Menu[T] {
	m.colors = colors
	return m
}

// EnablePrintResult controls whether the title and the chosen alias stay
// on screen after the menu closes.
func (m *Menu[T]) EnablePrintResult(enable bool) *Menu[T] {
	m.printResult = enable
	return m
}

func (m *Menu[T]) SetLogger(log *slog.Logger) *Menu[T] {
	WithLogger(log)(&m.settings)
	return m
}

func (m *Menu[T]) Mode() Mode { return m.mode }

func (m *Menu[T]) Len() int { return m.items.Len() }

func (m *Menu[T]) Add(alias string, value T) *Menu[T] {
	m.items.Append(NewItem(alias, value))
	return m
}

func (m *Menu[T]) AddList(items []Item[T]) *Menu[T] {
	m.items.AppendMany(items)
	return m
}

// Reset drops every item and all interaction state so the menu can be
// reused. Title, styles and flags are kept.
func (m *Menu[T]) Reset() {
	m.items.Clear()
	m.resetState()
	m.layout = layout{}
	m.consumed = false
}

func (m *Menu[T]) resetState() {
	m.mode = ModeBrowse
	m.selection = 0
	m.scroll = 0
	m.query.reset()
	m.matched = nil
	m.selected = false
	m.items.clearMatches()
}

// Select runs the menu and returns the chosen value. ok is false when the
// user cancelled. err is only set for terminal failures, an empty menu or
// a menu whose item was already taken.
func (m *Menu[T]) Select(ctx context.Context) (value T, ok bool, err error) {
	item, err := m.SelectItem(ctx)
	if err != nil || item == nil {
		return value, false, err
	}
	return item.Value, true, nil
}

// SelectItem runs the menu and returns the chosen item, or nil when the
// user cancelled.
func (m *Menu[T]) SelectItem(ctx context.Context) (*Item[T], error) {
	if m.items.Len() == 0 {
		return nil, ErrNoItems
	}
	if m.consumed {
		return nil, fmt.Errorf("select: %w", ErrAlreadyTaken)
	}

	if err := wrapTerm("enable raw mode", m.term.EnableRaw()); err != nil {
		return nil, err
	}
	result := ""
	drawn := false
	defer func() { m.restore(drawn, result) }()

	if err := m.start(); err != nil {
		return nil, err
	}
	drawn = true
	m.log.Debug("menu session started",
		"items", m.items.Len(),
		"anchor", m.layout.anchor,
		"maxRows", m.layout.maxRows,
		"scrollUp", m.layout.scrollUp,
	)

	if err := m.draw(); err != nil {
		return nil, err
	}
	if err := m.loop(ctx); err != nil {
		return nil, err
	}
	if !m.selected {
		m.log.Debug("menu session cancelled")
		return nil, nil
	}

	index := m.itemIndex(m.scroll + m.selection)
	item, err := m.items.Take(index)
	if err != nil {
		return nil, err
	}
	m.consumed = true
	result = item.alias
	m.log.Debug("menu session selected", "index", index, "mode", m.mode.String())
	return &item, nil
}

func (m *Menu[T]) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := m.term.ReadKey()
		if err != nil {
			return wrapTerm("read key", err)
		}
		resp := m.dispatch(ev)
		if resp.exit {
			return nil
		}
		if resp.redraw {
			if err := m.draw(); err != nil {
				return err
			}
		}
	}
}

// start anchors the menu at the cursor and scrolls the terminal so the
// whole menu fits below it.
func (m *Menu[T]) start() error {
	row, _, err := m.term.CursorPosition()
	if err != nil {
		return wrapTerm("cursor position", err)
	}
	cols, rows, err := m.term.Size()
	if err != nil {
		return wrapTerm("size", err)
	}
	m.resetState()
	m.cols = cols
	m.layout = computeLayout(row, rows, m.items.Len(), m.maxHeight)
	return m.scrollToFit()
}

func (m *Menu[T]) scrollToFit() error {
	if m.layout.scrollUp == 0 {
		return nil
	}
	return wrapTerm("scroll", m.term.ScrollUp(m.layout.scrollUp))
}

func (m *Menu[T]) draw() error {
	return apply(m.term, m.compose())
}

type cleanupStep struct {
	op  string
	run func() error
}

// restore clears the menu, leaves the result line if enabled and gives
// the terminal back. Failures are logged and dropped so they never hide
// the error that ended the session.
func (m *Menu[T]) restore(drawn bool, result string) {
	var steps []cleanupStep
	if drawn {
		steps = append(steps,
			cleanupStep{"move cursor", func() error { return m.term.MoveTo(m.layout.anchor, 0) }},
			cleanupStep{"clear", m.term.ClearDown},
		)
		if m.printResult {
			line := m.title
			if result != "" {
				line += " " + result
			}
			steps = append(steps, cleanupStep{"write result", func() error {
				return m.term.WriteStyled(clip(line, m.cols)+"\r\n", Style{})
			}})
		}
	}
	steps = append(steps,
		cleanupStep{"write", func() error { return m.term.WriteStyled("\r", Style{}) }},
		cleanupStep{"show cursor", m.term.ShowCursor},
		cleanupStep{"flush", m.term.Flush},
		cleanupStep{"disable raw mode", m.term.DisableRaw},
	)
	for _, step := range steps {
		if err := step.run(); err != nil {
			m.log.Debug("terminal cleanup failed", "op", step.op, "err", err)
		}
	}
}
