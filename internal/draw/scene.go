package draw

import (
	"fmt"

	"github.com/tomz197/neonraid/internal/loop"
	"github.com/tomz197/neonraid/internal/object"
)

// gridSpacing is the distance between background grid lines in playfield units.
const gridSpacing = 40

// Overlay colors.
var (
	HUDColor   = FromHex("#00ffff")
	TitleColor = FromHex("#ff00ff")
	HintColor  = FromHex("#8080a0")
)

// Label is a line of overlay text at a 1-based terminal position.
type Label struct {
	Col, Row int
	Text     string
	Color    Pixel
}

// Scene turns snapshots into canvas pixels and overlay text. Front ends
// share it so every terminal shows the same picture.
type Scene struct {
	field    object.Playfield
	palette  palette
	grid     Pixel
	noGrid   bool
	subtitle string
	labels   []Label
}

// NewScene creates a scene for a playfield.
func NewScene(field object.Playfield, noGrid bool, subtitle string) *Scene {
	if subtitle == "" {
		subtitle = "~ a neon arcade shooter ~"
	}
	return &Scene{
		field:    field,
		palette:  palette{},
		grid:     Fade("#00ffff", 0.15),
		noGrid:   noGrid,
		subtitle: subtitle,
	}
}

// Paint draws the grid and every entity onto the canvas.
func (sc *Scene) Paint(c *Canvas, s loop.Snapshot) {
	c.Clear()

	if !sc.noGrid {
		c.SetPen(sc.grid)
		for x := 0.0; x < sc.field.Width; x += gridSpacing {
			c.DrawLine(Point{X: x, Y: 0}, Point{X: x, Y: sc.field.Height})
		}
		for y := 0.0; y < sc.field.Height; y += gridSpacing {
			c.DrawLine(Point{X: 0, Y: y}, Point{X: sc.field.Width, Y: y})
		}
	}

	if s.Phase == loop.PhaseIdle {
		return
	}

	for i := range s.Adversaries {
		a := &s.Adversaries[i]
		c.SetPen(sc.palette.pixel(a.Color, 1))
		c.DrawPolygon(c.AdversaryShape(a.X, a.Y, a.W, a.H), true)
	}

	for i := range s.Projectiles {
		p := &s.Projectiles[i]
		c.SetPen(sc.palette.pixel(p.Color, 1))
		c.FillRect(p.X, p.Y, p.W, p.H)
	}

	// The craft is gone once the last life is lost.
	if s.Phase != loop.PhaseOver {
		p := &s.Player
		c.SetPen(sc.palette.pixel(p.Color, 1))
		c.DrawPolygon(c.ShipShape(p.X, p.Y, p.W, p.H), true)
	}

	for i := range s.Particles {
		p := &s.Particles[i]
		c.SetPen(sc.palette.pixel(p.Color, p.Life))
		c.FillRect(p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size)
	}
}

// Labels returns the overlay text for the snapshot's phase on a render area
// of the given size. The slice is reused by the next call.
func (sc *Scene) Labels(s loop.Snapshot, width, height int) []Label {
	sc.labels = sc.labels[:0]
	centerX := width / 2
	centerY := height / 2

	switch s.Phase {
	case loop.PhaseIdle:
		sc.startScreen(centerX, centerY)
	case loop.PhaseRunning:
		sc.playingHUD(s, width)
	case loop.PhasePaused:
		sc.playingHUD(s, width)
		sc.pausedScreen(centerX, centerY)
	case loop.PhaseOver:
		sc.gameOverScreen(s, centerX, centerY)
	}
	return sc.labels
}

// centered adds text centered on centerX.
func (sc *Scene) centered(centerX, row int, color Pixel, text string) {
	sc.labels = append(sc.labels, Label{Col: max(centerX-len(text)/2, 1), Row: row, Text: text, Color: color})
}

// startScreen is the title screen.
func (sc *Scene) startScreen(centerX, centerY int) {
	sc.centered(centerX, centerY-5, TitleColor, "N E O N   R A I D")
	sc.centered(centerX, centerY-3, HUDColor, sc.subtitle)
	sc.centered(centerX, centerY, HUDColor, "Press SPACE or ENTER to start")

	controls := []string{
		"Arrows / WASD  . . . Move",
		"SPACE  . . . . . . . Fire",
		"P  . . . . . . . .  Pause",
		"R  . . . . . . .  Restart",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controls {
		sc.centered(centerX, centerY+2+i, HintColor, line)
	}
}

// playingHUD shows score and lives.
func (sc *Scene) playingHUD(s loop.Snapshot, width int) {
	sc.labels = append(sc.labels, Label{Col: 2, Row: 1, Text: fmt.Sprintf("Score: %d", s.Score), Color: HUDColor})

	lives := fmt.Sprintf("Lives: %d", s.Lives)
	sc.labels = append(sc.labels, Label{Col: max(width-len(lives), 1), Row: 1, Text: lives, Color: HUDColor})
}

func (sc *Scene) pausedScreen(centerX, centerY int) {
	sc.centered(centerX, centerY-1, TitleColor, "P A U S E D")
	sc.centered(centerX, centerY+1, HintColor, "Press P to resume")
}

// gameOverScreen shows the final score and the restart prompt.
func (sc *Scene) gameOverScreen(s loop.Snapshot, centerX, centerY int) {
	sc.centered(centerX, centerY-2, TitleColor, "G A M E   O V E R")
	sc.centered(centerX, centerY, HUDColor, fmt.Sprintf("Final score: %d", s.Score))
	sc.centered(centerX, centerY+2, HintColor, "Press R or ENTER to play again, Q to quit")
}
