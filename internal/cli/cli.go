package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/termenu/internal/term"
	"github.com/baaaaaaaka/termenu/internal/tui"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 130
)

var errCancelled = errors.New("nothing selected")

// menuTerminal is the terminal a menu session runs on.
type menuTerminal interface {
	tui.Terminal
	io.Closer
}

type rootOptions struct {
	configPath    string
	logFile       string
	name          string
	maxHeight     float64
	disableEscape bool
	noEndTag      bool
	printResult   bool
	input         string
	device        string

	openTerminal func(device string) (menuTerminal, error)
}

func openTTY(device string) (menuTerminal, error) {
	t, err := term.Open(device)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func Execute() int {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errCancelled) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "termenu:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errCancelled):
		return exitCancelled
	default:
		return exitError
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{openTerminal: openTTY}

	cmd := &cobra.Command{
		Use:   "termenu [flags] < items",
		Short: "Pick one line from stdin with an inline fuzzy menu",
		Long: "termenu reads newline separated items from stdin (or --input), shows them in a\n" +
			"menu below the cursor and prints the chosen line to stdout.\n\n" +
			"Keys: Up/Down or k/j move, / starts a fuzzy query, Enter selects,\n" +
			"Esc leaves the query or cancels, Ctrl-C cancels.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       buildVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file (default: $"+envLogFile+")")

	f := cmd.Flags()
	f.StringVarP(&opts.name, "name", "n", "", "Title shown at the beginning of the menu")
	f.Float64VarP(&opts.maxHeight, "max-height", "m", 0, "Max menu height as a fraction of the terminal, in (0, 1]")
	f.BoolVarP(&opts.disableEscape, "disable-escape", "d", false, `Show control characters raw instead of as \n, \t, ...`)
	f.BoolVar(&opts.noEndTag, "no-end-tag", false, "Do not print the end-of-list marker")
	f.BoolVar(&opts.printResult, "print-result", false, "Leave the title and the chosen item on the terminal")
	f.StringVar(&opts.input, "input", "", "Read items from this file instead of stdin (.xz files are decompressed)")
	f.StringVar(&opts.device, "tty", term.DefaultDevice, "Terminal device to draw on")
	_ = f.MarkHidden("tty")

	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
