package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/object"
)

var testField = object.Playfield{Width: 800, Height: 600}

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func runningSnapshot() loop.Snapshot {
	return loop.Snapshot{
		Phase: loop.PhaseRunning,
		Score: 1200,
		Lives: 2,
		Field: testField,
		Player: object.Player{
			X: 375, Y: 500, W: 50, H: 60, Color: "#00ffff",
		},
		Projectiles: []object.Projectile{{X: 398, Y: 400, W: 4, H: 15, Color: "#00ffff"}},
		Adversaries: []object.Adversary{{X: 100, Y: 100, W: 40, H: 40, Color: "#ff3399"}},
		Particles:   []object.Particle{{X: 200, Y: 200, Size: 5, Life: 0.5, Color: "#ff66ff"}},
	}
}

func TestRendererScreens(t *testing.T) {
	tests := []struct {
		name  string
		snap  loop.Snapshot
		wants []string
	}{
		{"title", loop.Snapshot{Phase: loop.PhaseIdle, Lives: 3}, []string{"N E O N   R A I D", "Press SPACE or ENTER to start"}},
		{"hud", runningSnapshot(), []string{"Score: 1200", "Lives: 2"}},
		{"paused", func() loop.Snapshot { s := runningSnapshot(); s.Phase = loop.PhasePaused; return s }(), []string{"P A U S E D", "Score: 1200"}},
		{"game over", loop.Snapshot{Phase: loop.PhaseOver, Score: 500}, []string{"G A M E   O V E R", "Final score: 500"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewTerminalRenderer(&buf, testField, RendererOptions{TermSizeFunc: fixedSize(120, 40)})
			if err := r.Render(tt.snap); err != nil {
				t.Fatalf("Render() = %v", err)
			}
			out := buf.String()
			for _, want := range tt.wants {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
		})
	}
}

func TestRendererDrawsEntities(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, testField, RendererOptions{TermSizeFunc: fixedSize(80, 30), NoGrid: true})
	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}

	c := r.canvas
	// 10 playfield units per column and per sub-pixel row.
	if got := c.At(40, 52); got != RGB(0, 255, 255) {
		t.Fatalf("player body pixel = %x", got)
	}
	if !c.At(12, 11).IsSet() {
		t.Fatal("adversary not drawn")
	}
	if got := c.At(20, 20); !got.IsSet() || got == RGB(255, 102, 255) {
		t.Fatalf("particle pixel = %x, want faded color", got)
	}
	if c.At(60, 10).IsSet() {
		t.Fatal("empty space drawn without grid")
	}
}

func TestRendererClearsOnPhaseChange(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, testField, RendererOptions{TermSizeFunc: fixedSize(80, 30)})

	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), clearScreen) {
		t.Fatal("screen cleared without a phase change")
	}

	buf.Reset()
	s := runningSnapshot()
	s.Phase = loop.PhasePaused
	if err := r.Render(s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), clearScreen) {
		t.Fatal("screen not cleared on phase change")
	}
}

func TestRendererFollowsResize(t *testing.T) {
	w, h := 80, 30
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, testField, RendererOptions{
		TermSizeFunc: func() (int, int, error) { return w, h, nil },
	})
	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}

	w, h = 300, 100
	buf.Reset()
	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}
	if r.canvas.TerminalWidth() != MaxTermWidth || r.canvas.TerminalHeight() != MaxTermHeight {
		t.Fatalf("canvas = %dx%d, want clamped", r.canvas.TerminalWidth(), r.canvas.TerminalHeight())
	}
	if r.canvas.OffsetCol() != 70 || r.canvas.OffsetRow() != 20 {
		t.Fatalf("offset = %d,%d, want 70,20", r.canvas.OffsetCol(), r.canvas.OffsetRow())
	}
	if !strings.Contains(buf.String(), "┌") {
		t.Fatal("no border around centered canvas")
	}
}

func TestRendererSizeFallback(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf, testField, RendererOptions{
		TermSizeFunc: func() (int, int, error) { return 0, 0, errors.New("not a terminal") },
	})
	if err := r.Render(runningSnapshot()); err != nil {
		t.Fatal(err)
	}
	if r.canvas.TerminalWidth() != fallbackWidth || r.canvas.TerminalHeight() != fallbackHeight {
		t.Fatalf("canvas = %dx%d, want fallback", r.canvas.TerminalWidth(), r.canvas.TerminalHeight())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRendererReportsWriteErrors(t *testing.T) {
	r := NewTerminalRenderer(failingWriter{}, testField, RendererOptions{TermSizeFunc: fixedSize(80, 30)})
	if err := r.Render(runningSnapshot()); err == nil {
		t.Fatal("Render() = nil on a broken writer")
	}
}
