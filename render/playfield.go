// File: render/playfield.go
package render

import (
	"strings"

	"github.com/lguibr/fruitfall/game"
)

// Glyphs drawn for each object kind.
const (
	RewardGlyph  = 'O'
	PenaltyGlyph = '*'
	emptyGlyph   = ' '
)

const (
	ansiReward  = "\033[38;2;80;200;80m"
	ansiPenalty = "\033[38;2;150;90;40m"
	ansiReset   = "\033[0m"
)

// Viewport maps world coordinates onto a character grid.
type Viewport struct {
	Cols, Rows    int
	Width, Height int  // world extent: x in [0,Width), y in [0,Height]
	Color         bool // wrap glyphs in ANSI colour codes
}

// DefaultViewport fits the whole playfield into an 80x24 terminal.
func DefaultViewport(width, height int) Viewport {
	return Viewport{Cols: 78, Rows: 20, Width: width, Height: height}
}

// Cell returns the grid position for world point (x, y) and whether it is visible.
func (v Viewport) Cell(x, y int) (col, row int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 || v.Width <= 0 || v.Height < 0 {
		return 0, 0, false
	}
	if x < 0 || x >= v.Width || y < 0 || y > v.Height {
		return 0, 0, false
	}
	col = x * v.Cols / v.Width
	row = y * v.Rows / (v.Height + 1)
	return col, row, true
}

// Point is the inverse of Cell: the world point at the centre of a grid cell.
func (v Viewport) Point(col, row int) (x, y int) {
	x = (2*col + 1) * v.Width / (2 * v.Cols)
	y = (2*row + 1) * (v.Height + 1) / (2 * v.Rows)
	return x, y
}

// Playfield draws objects inside a bordered box. Penalties win when two
// objects share a cell.
func Playfield(objects []game.Object, v Viewport) string {
	if v.Cols <= 0 || v.Rows <= 0 {
		return ""
	}
	grid := make([][]rune, v.Rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(emptyGlyph), v.Cols))
	}
	for _, o := range objects {
		col, row, ok := v.Cell(o.X, o.Y)
		if !ok {
			continue
		}
		if o.Kind == game.Penalty {
			grid[row][col] = PenaltyGlyph
		} else if grid[row][col] != PenaltyGlyph {
			grid[row][col] = RewardGlyph
		}
	}

	var b strings.Builder
	edge := "+" + strings.Repeat("-", v.Cols) + "+\n"
	b.WriteString(edge)
	for _, line := range grid {
		b.WriteByte('|')
		for _, c := range line {
			writeGlyph(&b, c, v.Color)
		}
		b.WriteString("|\n")
	}
	b.WriteString(edge)
	return b.String()
}

func writeGlyph(b *strings.Builder, c rune, color bool) {
	if !color || c == emptyGlyph {
		b.WriteRune(c)
		return
	}
	switch c {
	case RewardGlyph:
		b.WriteString(ansiReward)
	case PenaltyGlyph:
		b.WriteString(ansiPenalty)
	}
	b.WriteRune(c)
	b.WriteString(ansiReset)
}
