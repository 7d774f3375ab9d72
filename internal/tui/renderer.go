// Package tui is the local terminal front end built on tcell: a screen
// renderer and a key-event input source.
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/neonraid/internal/draw"
	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/object"
)

// Renderer draws snapshots onto a tcell screen. tcell does the diffing, so
// every frame sets every cell of the render area.
type Renderer struct {
	screen tcell.Screen
	canvas *draw.Canvas
	scene  *draw.Scene

	width, height int // Last seen screen size
	offCol        int
	offRow        int
}

// NewRenderer creates a renderer for a playfield.
func NewRenderer(screen tcell.Screen, field object.Playfield, noGrid bool) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		canvas: draw.NewScaledCanvas(max(w, 1), max(h, 1), field.Width, field.Height),
		scene:  draw.NewScene(field, noGrid, "~ neon arcade shooter, local edition ~"),
	}
}

// Render draws one frame. Implements loop.Renderer.
func (r *Renderer) Render(s loop.Snapshot) error {
	r.handleResize()

	r.scene.Paint(r.canvas, s)

	cols, rows := r.canvas.TerminalWidth(), r.canvas.TerminalHeight()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			ch, fg, bg := r.canvas.Cell(col, row)
			r.screen.SetContent(col+r.offCol, row+r.offRow, ch, nil, style(fg, bg))
		}
	}

	for _, l := range r.scene.Labels(s, cols, rows) {
		st := style(l.Color, 0)
		for i, ch := range []rune(l.Text) {
			col := l.Col - 1 + i
			if col >= cols {
				break
			}
			r.screen.SetContent(col+r.offCol, l.Row-1+r.offRow, ch, nil, st)
		}
	}

	r.screen.Show()
	return nil
}

// handleResize re-fits the canvas when the screen size changed.
func (r *Renderer) handleResize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h

	renderWidth, renderHeight, offCol, offRow := draw.ClampTermSize(max(w, 1), max(h, 1))
	r.canvas.Resize(renderWidth, renderHeight)
	r.offCol, r.offRow = offCol, offRow
	r.screen.Clear()
}

// style maps canvas colors to a tcell style; unset pixels keep the terminal default.
func style(fg, bg draw.Pixel) tcell.Style {
	st := tcell.StyleDefault
	if fg.IsSet() {
		st = st.Foreground(color(fg))
	}
	if bg.IsSet() {
		st = st.Background(color(bg))
	}
	return st
}

func color(p draw.Pixel) tcell.Color {
	r, g, b := p.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var _ loop.Renderer = (*Renderer)(nil)
