package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/termenu/internal/config"
	"github.com/baaaaaaaka/termenu/internal/tui"
)

// menuSettings is the result of layering flags over the config file.
type menuSettings struct {
	title       string
	maxHeight   float64
	showEndTag  bool
	printResult bool
	escape      bool
	colors      tui.ColorScheme
}

// cliColorScheme is the look of the command line menu when the config
// file does not set one.
func cliColorScheme() tui.ColorScheme {
	colors := tui.DefaultColorScheme()
	colors.Title = tui.Style{Bold: true, Underline: true}
	colors.Query = tui.Style{Italic: true}
	colors.MoreTag = tui.Style{Fg: "5"}
	return colors
}

func resolveSettings(cmd *cobra.Command, opts *rootOptions, cfg config.Config) (menuSettings, error) {
	s := menuSettings{
		title:       cfg.Title,
		maxHeight:   cfg.MaxHeight,
		showEndTag:  cfg.EndTag(),
		printResult: cfg.PrintResult,
		escape:      !cfg.DisableEscape,
		colors:      cliColorScheme(),
	}
	if cfg.ColorScheme != nil {
		s.colors = *cfg.ColorScheme
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		s.title = opts.name
	}
	if flags.Changed("max-height") {
		if opts.maxHeight <= 0 || opts.maxHeight > 1 {
			return menuSettings{}, &usageError{msg: "max height should be a percentage in range (0, 1]"}
		}
		s.maxHeight = opts.maxHeight
	}
	if flags.Changed("no-end-tag") {
		s.showEndTag = !opts.noEndTag
	}
	if flags.Changed("print-result") {
		s.printResult = opts.printResult
	}
	if flags.Changed("disable-escape") {
		s.escape = !opts.disableEscape
	}
	return s, nil
}

func runMenu(cmd *cobra.Command, opts *rootOptions) error {
	log, closeLog, err := newLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := config.NewStore(opts.configPath)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd, opts, cfg)
	if err != nil {
		return err
	}

	in, err := openInput(opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	items, err := readItems(in, settings.escape)
	_ = in.Close()
	if err != nil {
		return err
	}
	log.Debug("items loaded", "count", len(items), "input", opts.input)
	if len(items) == 0 {
		return errors.New("no items on input")
	}

	t, err := opts.openTerminal(opts.device)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil {
			log.Debug("close terminal", "err", cerr)
		}
	}()

	alias, ok, err := selectAlias(cmd, t, settings, items, log)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	if !ok {
		return errCancelled
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), alias)
	return err
}

func selectAlias(cmd *cobra.Command, t tui.Terminal, s menuSettings, items []string, log *slog.Logger) (string, bool, error) {
	menu := tui.New[int](t,
		tui.WithMaxHeight(s.maxHeight),
		tui.WithEndTag(s.showEndTag),
		tui.WithPrintResult(s.printResult),
		tui.WithColorScheme(s.colors),
		tui.WithLogger(log),
	)
	if s.title != "" {
		menu.SetTitle(s.title)
	}
	list := make([]tui.Item[int], len(items))
	for i, line := range items {
		list[i] = tui.NewItem(line, i)
	}
	menu.AddList(list)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	index, ok, err := menu.Select(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	return items[index], true, nil
}
