package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/aurafx/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

// 默认每个字符单元对应的像素块（字符约为 1:2）
const (
	DefaultCellWidth  = 4
	DefaultCellHeight = 8
)

// cellColor 单元格颜色（0..1，非预乘，背景为黑）
type cellColor struct {
	r, g, b float64
}

// TerminalSurface draws the overlay as cell background colors on a tcell
// screen. Each cell stands for a cellW×cellH block of pixels and is shaded by
// the sample at its center.
type TerminalSurface struct {
	screen       tcell.Screen
	cellW, cellH int
	cols, rows   int
	cells        []cellColor

	glowRadius float64
	glowColor  color.NRGBA
}

// NewTerminalSurface wraps an initialized screen.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH int) (*TerminalSurface, error) {
	if screen == nil {
		return nil, fmt.Errorf("terminal surface: no screen: %w", systems.ErrSurfaceUnavailable)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("terminal surface: cell %dx%d: %w", cellW, cellH, systems.ErrSurfaceUnavailable)
	}
	cols, rows := screen.Size()
	if err := checkSize("terminal", cols, rows); err != nil {
		return nil, err
	}
	return &TerminalSurface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		cols:   cols,
		rows:   rows,
		cells:  make([]cellColor, cols*rows),
	}, nil
}

// Size implements systems.Surface. The size is in pixels, not cells.
func (s *TerminalSurface) Size() (int, int) {
	return s.cols * s.cellW, s.rows * s.cellH
}

// FadeFill implements systems.Surface.
func (s *TerminalSurface) FadeFill(c color.NRGBA) {
	a := unitAlpha(c)
	src := toCellColor(c)
	for i := range s.cells {
		s.cells[i] = mixCell(s.cells[i], src, a)
	}
}

// SetGlow implements systems.Surface.
func (s *TerminalSurface) SetGlow(radius float64, c color.NRGBA) {
	s.glowRadius = radius
	s.glowColor = c
}

// FillRadialDisc implements systems.Surface.
func (s *TerminalSurface) FillRadialDisc(x, y, radius, gradRadius float64, inner, outer color.NRGBA) {
	if radius <= 0 {
		return
	}
	src := toCellColor(inner)
	innerA, outerA := unitAlpha(inner), unitAlpha(outer)

	reach := radius
	if s.glowRadius > 0 {
		reach += s.glowRadius
	}
	glowSrc := toCellColor(s.glowColor)
	glowA := unitAlpha(s.glowColor)

	c0 := max(int((x-reach)/float64(s.cellW)), 0)
	c1 := min(int((x+reach)/float64(s.cellW)), s.cols-1)
	r0 := max(int((y-reach)/float64(s.cellH)), 0)
	r1 := min(int((y+reach)/float64(s.cellH)), s.rows-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) * float64(s.cellW)
			cy := (float64(row) + 0.5) * float64(s.cellH)
			d := math.Hypot(cx-x, cy-y)
			i := row*s.cols + col
			if s.glowRadius > 0 {
				s.cells[i] = mixCell(s.cells[i], glowSrc, glowA*haloAlpha(d, radius, s.glowRadius))
			}
			s.cells[i] = mixCell(s.cells[i], src, discAlpha(d, radius, gradRadius, innerA, outerA))
		}
	}
}

// Resize implements game.Canvas. w and h are in pixels.
func (s *TerminalSurface) Resize(w, h int) error {
	cols, rows := w/s.cellW, h/s.cellH
	if err := checkSize("terminal", cols, rows); err != nil {
		return err
	}
	cells := make([]cellColor, cols*rows)
	for row := 0; row < min(rows, s.rows); row++ {
		copy(cells[row*cols:row*cols+min(cols, s.cols)], s.cells[row*s.cols:])
	}
	s.cols, s.rows, s.cells = cols, rows, cells
	return nil
}

// Cell returns the color of the cell at (col, row).
func (s *TerminalSurface) Cell(col, row int) color.RGBA {
	c := s.cells[row*s.cols+col]
	return color.RGBA{R: to8(c.r), G: to8(c.g), B: to8(c.b), A: 255}
}

// Show pushes the cell colors to the screen.
func (s *TerminalSurface) Show() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.Cell(col, row)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			s.screen.SetContent(col, row, ' ', nil, style)
		}
	}
	s.screen.Show()
}

func toCellColor(c color.NRGBA) cellColor {
	return cellColor{r: float64(c.R) / 255, g: float64(c.G) / 255, b: float64(c.B) / 255}
}

func mixCell(dst, src cellColor, a float64) cellColor {
	if a <= 0 {
		return dst
	}
	if a > 1 {
		a = 1
	}
	return cellColor{
		r: dst.r + (src.r-dst.r)*a,
		g: dst.g + (src.g-dst.g)*a,
		b: dst.b + (src.b-dst.b)*a,
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(v, 1)) * 255))
}
