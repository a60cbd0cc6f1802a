// Package overlay draws one block of text over another without clearing
// what lies underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor is the corner or edge a foreground block is pinned to.
type Anchor int

const (
	Center Anchor = iota
	TopCenter
	TopRight
	BottomCenter
	BottomLeft
)

// Frame describes the viewport and the foreground's anchor within it.
type Frame struct {
	Width  int
	Height int
	Anchor Anchor
	// Margin keeps the foreground off the anchored edges. Ignored for Center.
	Margin int
}

// Place writes fg onto bg at the frame's anchor. Styling on both sides is
// preserved; cells of bg outside fg's box are left untouched.
func Place(f Frame, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < f.Height {
		bgLines = append(bgLines, strings.Repeat(" ", f.Width))
	}

	x, y := origin(f, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of under starting at column x with over.
func splice(under, over string, x int) string {
	left := ansi.Truncate(under, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(over)
	var right string
	if end < ansi.StringWidth(under) {
		right = ansi.TruncateLeft(under, end, "")
	}
	return left + over + right
}

func origin(f Frame, w, h int) (x, y int) {
	switch f.Anchor {
	case TopCenter:
		x, y = (f.Width-w)/2, f.Margin
	case TopRight:
		x, y = f.Width-w-f.Margin, f.Margin
	case BottomCenter:
		x, y = (f.Width-w)/2, f.Height-h-f.Margin
	case BottomLeft:
		x, y = f.Margin, f.Height-h-f.Margin
	default:
		x, y = (f.Width-w)/2, (f.Height-h)/2
	}
	return max(x, 0), max(y, 0)
}
