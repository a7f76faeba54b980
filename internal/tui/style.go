package tui

// Style describes how a piece of text is printed. Colors are ANSI
// indices ("0".."255") or hex RGB ("#d7ff00"); empty means the terminal
// default.
type Style struct {
	Fg        string `json:"fg,omitempty"`
	Bg        string `json:"bg,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Faint     bool   `json:"faint,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Reverse   bool   `json:"reverse,omitempty"`
}

func (s Style) IsZero() bool { return s == Style{} }

// ColorScheme holds the styles of every part of the menu.
type ColorScheme struct {
	// Title is the menu title line.
	Title Style `json:"title"`
	// Query is the text typed in query mode.
	Query Style `json:"query"`
	// Items are the unselected entries.
	Items Style `json:"items"`
	// Matched highlights characters matching the query.
	Matched Style `json:"matched"`
	// Chosen is the selected line.
	Chosen Style `json:"chosen"`
	// MoreTag styles both the more and end indicators.
	MoreTag Style `json:"moreTag"`
}

func DefaultColorScheme() ColorScheme {
	yellow := Style{Fg: "3"}
	return ColorScheme{
		Matched: yellow,
		Chosen:  yellow,
	}
}
