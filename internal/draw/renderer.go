package draw

import (
	"fmt"
	"io"

	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/object"
)

// Max render resolution; larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Fallback size when the terminal cannot be queried.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// RendererOptions configures a TerminalRenderer.
type RendererOptions struct {
	TermSizeFunc TermSizeFunc // Defaults to DefaultTermSizeFunc
	NoGrid       bool         // Skip the background grid
	Subtitle     string       // Shown under the title
}

// TerminalRenderer draws snapshots to an ANSI terminal.
type TerminalRenderer struct {
	writer      io.Writer
	chunkWriter *ChunkWriter
	canvas      *Canvas
	scene       *Scene
	sizeFunc    TermSizeFunc

	termWidth  int
	termHeight int
	prevPhase  loop.Phase
	started    bool
}

// NewTerminalRenderer creates a renderer for a playfield of the given size.
func NewTerminalRenderer(w io.Writer, field object.Playfield, opts RendererOptions) *TerminalRenderer {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	return &TerminalRenderer{
		writer:      w,
		chunkWriter: NewChunkWriter(w, 0, 0),
		canvas:      NewScaledCanvas(fallbackWidth, fallbackHeight, field.Width, field.Height),
		scene:       NewScene(field, opts.NoGrid, opts.Subtitle),
		sizeFunc:    sizeFunc,
	}
}

// Begin prepares the terminal: hidden cursor, blank screen.
func (r *TerminalRenderer) Begin() {
	HideCursor(r.writer)
	ClearScreen(r.writer)
}

// End restores the terminal.
func (r *TerminalRenderer) End() {
	io.WriteString(r.writer, "\033[0m")
	ClearScreen(r.writer)
	ShowCursor(r.writer)
}

// Render draws one frame. Implements loop.Renderer.
func (r *TerminalRenderer) Render(s loop.Snapshot) error {
	cw := r.chunkWriter

	resized := r.updateScreen()
	if resized || !r.started || s.Phase != r.prevPhase {
		// Full clear so overlays from the previous screen don't linger.
		cw.WriteString(clearScreen)
		r.canvas.ForceRedraw()
		if err := r.canvas.RenderBorder(cw); err != nil {
			return err
		}
		r.prevPhase = s.Phase
		r.started = true
	}

	r.scene.Paint(r.canvas, s)
	if err := r.canvas.Render(cw); err != nil {
		return err
	}

	// Overlay text goes on top of the canvas.
	cw.SetOffset(r.canvas.OffsetCol(), r.canvas.OffsetRow())
	for _, l := range r.scene.Labels(s, r.canvas.TerminalWidth(), r.canvas.TerminalHeight()) {
		cw.WriteColoredAt(l.Col, l.Row, l.Color, l.Text)
	}

	if err := cw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// updateScreen follows terminal resizes, clamping to the max render resolution.
// Returns true if the render area changed.
func (r *TerminalRenderer) updateScreen() bool {
	termWidth, termHeight, err := r.sizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = fallbackWidth, fallbackHeight
	}
	if termWidth == r.termWidth && termHeight == r.termHeight {
		return false
	}
	r.termWidth, r.termHeight = termWidth, termHeight

	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	return true
}

// ClampTermSize limits the render area and centers it in the terminal.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

var _ loop.Renderer = (*TerminalRenderer)(nil)
