package config

import (
	"errors"
	"fmt"

	"github.com/baaaaaaaka/termenu/internal/tui"
)

const CurrentVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported config version")

// Config holds the defaults the command line starts from. Zero values
// mean "use the built-in default".
type Config struct {
	Version       int              `json:"version"`
	Title         string           `json:"title,omitempty"`
	MaxHeight     float64          `json:"maxHeight,omitempty"`
	ShowEndTag    *bool            `json:"showEndTag,omitempty"`
	PrintResult   bool             `json:"printResult,omitempty"`
	DisableEscape bool             `json:"disableEscape,omitempty"`
	ColorScheme   *tui.ColorScheme `json:"colorScheme,omitempty"`
}

func Default() Config {
	return Config{Version: CurrentVersion}
}

// Template is the document written by "config init": every field set, so
// it doubles as documentation.
func Template(colors tui.ColorScheme) Config {
	showEndTag := true
	return Config{
		Version:     CurrentVersion,
		Title:       "select",
		MaxHeight:   1,
		ShowEndTag:  &showEndTag,
		ColorScheme: &colors,
	}
}

func (c Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w %d (expected %d)", ErrUnsupportedVersion, c.Version, CurrentVersion)
	}
	if c.MaxHeight < 0 || c.MaxHeight > 1 {
		return fmt.Errorf("maxHeight %v out of range (0, 1]", c.MaxHeight)
	}
	return nil
}

func (c Config) EndTag() bool {
	return c.ShowEndTag == nil || *c.ShowEndTag
}
