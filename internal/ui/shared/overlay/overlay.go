// Package overlay composites a rendered foreground block on top of a
// rendered background, preserving the background's ANSI styling on both
// sides of the foreground.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position selects where the foreground is placed.
type Position int

const (
	Center Position = iota
	Top
	BottomRight
	TopRight
)

// Config describes the canvas and placement.
type Config struct {
	Width    int // canvas width; 0 = widest background line
	Height   int // canvas height; 0 = background line count
	Position Position
	MarginX  int // distance from the edge for edge-anchored positions
	MarginY  int
}

// Place draws fg over bg and returns the combined view. The result always has
// exactly Height lines when Height is set.
func Place(cfg Config, fg, bg string) string {
	if fg == "" {
		return bg
	}

	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	width := cfg.Width
	if width <= 0 {
		for _, l := range bgLines {
			width = max(width, ansi.StringWidth(l))
		}
	}
	height := cfg.Height
	if height <= 0 {
		height = len(bgLines)
	}

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	bgLines = bgLines[:height]

	fgWidth := 0
	for _, l := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(l))
	}
	fgHeight := len(fgLines)

	x, y := origin(cfg, width, height, fgWidth, fgHeight)

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		bgLines[row] = splice(bgLines[row], line, x, fgWidth)
	}
	return strings.Join(bgLines, "\n")
}

func origin(cfg Config, width, height, fgWidth, fgHeight int) (int, int) {
	var x, y int
	switch cfg.Position {
	case Top:
		x = (width - fgWidth) / 2
		y = cfg.MarginY
	case BottomRight:
		x = width - fgWidth - cfg.MarginX
		y = height - fgHeight - cfg.MarginY
	case TopRight:
		x = width - fgWidth - cfg.MarginX
		y = cfg.MarginY
	default:
		x = (width - fgWidth) / 2
		y = (height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}

// splice replaces columns [x, x+w) of line with fg, padding fg to w and
// padding line with spaces when it is shorter than x.
func splice(line, fg string, x, w int) string {
	lineWidth := ansi.StringWidth(line)

	left := ansi.Truncate(line, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}

	if pad := w - ansi.StringWidth(fg); pad > 0 {
		fg += strings.Repeat(" ", pad)
	}

	var right string
	if lineWidth > x+w {
		right = ansi.TruncateLeft(line, x+w, "")
	}
	return left + fg + right
}
