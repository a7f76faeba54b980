package tui

import "math"

// layout places the menu relative to the terminal. maxRows counts the
// rows the menu may use starting at anchor: the title at relative row 0,
// entries from row 1 to maxRows-2 and the more/end indicator at maxRows-1.
type layout struct {
	anchor   int
	maxRows  int
	scrollUp int
}

// bottomRow is the last relative selection index before Down starts
// scrolling the list.
func (l layout) bottomRow() int { return l.maxRows - 3 }

// visibleRows is the number of entries that fit between the title and
// the indicator.
func (l layout) visibleRows() int { return l.maxRows - 2 }

// computeLayout decides how far the terminal must scroll so that the
// title, the visible entries and one indicator row fit below anchorRow.
// maxHeight caps the entries at that fraction of termRows when it lies
// in (0, 1).
func computeLayout(anchorRow, termRows, itemCount int, maxHeight float64) layout {
	termRows = max(termRows, 3)
	anchorRow = min(max(anchorRow, 0), termRows-1)

	capRows := termRows
	if maxHeight > 0 && maxHeight < 1 {
		capRows = int(math.Floor(float64(termRows) * maxHeight))
	}
	visible := min(itemCount, capRows)
	visible = min(max(visible, 1), termRows-2)

	maxRows := visible + 2
	scrollUp := max(0, maxRows-(termRows-anchorRow))
	return layout{
		anchor:   anchorRow - scrollUp,
		maxRows:  maxRows,
		scrollUp: scrollUp,
	}
}
