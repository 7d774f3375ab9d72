package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/neonraid/internal/input"
	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/object"
)

var testField = object.Playfield{Width: 800, Height: 600}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	screen.SetSize(w, h)
	return screen
}

// rowText returns the runes shown on one screen row.
func rowText(screen tcell.SimulationScreen, row int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for col := 0; col < width; col++ {
		c := cells[row*width+col]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestRendererDrawsHUDAndEntities(t *testing.T) {
	screen := newScreen(t, 80, 30)
	defer screen.Fini()

	r := NewRenderer(screen, testField, true)
	snap := loop.Snapshot{
		Phase:  loop.PhaseRunning,
		Score:  1200,
		Lives:  2,
		Field:  testField,
		Player: object.Player{X: 375, Y: 500, W: 50, H: 60, Color: "#00ffff"},
	}
	if err := r.Render(snap); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	top := rowText(screen, 0)
	if !strings.Contains(top, "Score: 1200") || !strings.Contains(top, "Lives: 2") {
		t.Fatalf("HUD row = %q", top)
	}

	// Craft spans sub-pixel rows 50..56, terminal rows 25..28.
	found := false
	for row := 25; row < 29 && !found; row++ {
		found = strings.ContainsAny(rowText(screen, row), "█▀▄")
	}
	if !found {
		t.Fatal("player craft not drawn")
	}
}

func TestRendererTitleScreen(t *testing.T) {
	screen := newScreen(t, 100, 40)
	defer screen.Fini()

	r := NewRenderer(screen, testField, false)
	if err := r.Render(loop.Snapshot{Phase: loop.PhaseIdle}); err != nil {
		t.Fatal(err)
	}

	var all strings.Builder
	for row := 0; row < 40; row++ {
		all.WriteString(rowText(screen, row))
	}
	if !strings.Contains(all.String(), "N E O N   R A I D") {
		t.Fatal("title not shown")
	}
}

func TestStyleColors(t *testing.T) {
	fg, bg, _ := style(0, 0).Decompose()
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Fatalf("empty style = %v/%v, want defaults", fg, bg)
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want input.Action
	}{
		{tcell.KeyLeft, 0, input.MoveLeft},
		{tcell.KeyRight, 0, input.MoveRight},
		{tcell.KeyUp, 0, input.MoveUp},
		{tcell.KeyDown, 0, input.MoveDown},
		{tcell.KeyEnter, 0, input.Start},
		{tcell.KeyEscape, 0, input.Pause},
		{tcell.KeyRune, ' ', input.Fire},
		{tcell.KeyRune, 'r', input.Restart},
		{tcell.KeyRune, 'q', input.Quit},
	}
	for _, tt := range tests {
		got, ok := keyAction(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone))
		if !ok || got != tt.want {
			t.Errorf("keyAction(%v, %q) = %v, %v; want %v", tt.key, tt.ch, got, ok, tt.want)
		}
	}
	if _, ok := keyAction(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("unbound key mapped to an action")
	}
}

func TestInputReportsInjectedKeys(t *testing.T) {
	screen := newScreen(t, 80, 24)
	defer screen.Fini()

	in := NewInput(screen)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in.Poll().Has(input.Fire) {
			in.Reset()
			if in.Poll().Has(input.Fire) {
				t.Fatal("fire still held after Reset")
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("injected key never reported")
}

func TestInputQuitsWhenScreenCloses(t *testing.T) {
	screen := newScreen(t, 80, 24)
	in := NewInput(screen)
	screen.Fini()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in.Poll().Has(input.Quit) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Quit not reported after Fini")
}

func TestForwardDropsEventsWhenFull(t *testing.T) {
	remaining := 500
	poll := func() tcell.Event {
		if remaining == 0 {
			return nil
		}
		remaining--
		return tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	}

	events := make(chan tcell.Event, 4)
	done := make(chan struct{})
	go func() {
		forward(poll, events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward blocked on a full channel")
	}

	n := 0
	for range events {
		n++
	}
	if n != 4 {
		t.Errorf("buffered %d events, want 4", n)
	}
}
