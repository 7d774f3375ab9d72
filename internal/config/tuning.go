package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay parameter. Coordinates and sizes are logical
// playfield units, speeds are units per second.
type Tuning struct {
	Playfield  PlayfieldConfig  `toml:"playfield" yaml:"playfield"`
	Player     PlayerConfig     `toml:"player" yaml:"player"`
	Projectile ProjectileConfig `toml:"projectile" yaml:"projectile"`
	Adversary  AdversaryConfig  `toml:"adversary" yaml:"adversary"`
	Spawner    SpawnerConfig    `toml:"spawner" yaml:"spawner"`
	Particle   ParticleConfig   `toml:"particle" yaml:"particle"`
	Scoring    ScoringConfig    `toml:"scoring" yaml:"scoring"`
	Loop       LoopConfig       `toml:"loop" yaml:"loop"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio"`
}

type PlayfieldConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

type PlayerConfig struct {
	Width        float64       `toml:"width" yaml:"width"`
	Height       float64       `toml:"height" yaml:"height"`
	Speed        float64       `toml:"speed" yaml:"speed"`
	FireCooldown time.Duration `toml:"fire_cooldown" yaml:"fire_cooldown"`
	InitialLives int           `toml:"initial_lives" yaml:"initial_lives"`
	BottomMargin float64       `toml:"bottom_margin" yaml:"bottom_margin"` // Gap between spawn point and bottom edge
	Color        string        `toml:"color" yaml:"color"`
}

type ProjectileConfig struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Speed  float64 `toml:"speed" yaml:"speed"`
	Color  string  `toml:"color" yaml:"color"`
}

type AdversaryConfig struct {
	Width    float64 `toml:"width" yaml:"width"`
	Height   float64 `toml:"height" yaml:"height"`
	MinSpeed float64 `toml:"min_speed" yaml:"min_speed"`
	MaxSpeed float64 `toml:"max_speed" yaml:"max_speed"`
	MinHue   float64 `toml:"min_hue" yaml:"min_hue"`
	MaxHue   float64 `toml:"max_hue" yaml:"max_hue"`
}

type SpawnerConfig struct {
	Interval     time.Duration `toml:"interval" yaml:"interval"`
	MaxPerUpdate int           `toml:"max_per_update" yaml:"max_per_update"`
	TopOffset    float64       `toml:"top_offset" yaml:"top_offset"` // Extra gap above the visible top edge
}

type ParticleConfig struct {
	Count          int           `toml:"count" yaml:"count"`
	MinSpeed       float64       `toml:"min_speed" yaml:"min_speed"`
	MaxSpeed       float64       `toml:"max_speed" yaml:"max_speed"`
	MinDecay       float64       `toml:"min_decay" yaml:"min_decay"`
	MaxDecay       float64       `toml:"max_decay" yaml:"max_decay"`
	MinSize        float64       `toml:"min_size" yaml:"min_size"`
	MaxSize        float64       `toml:"max_size" yaml:"max_size"`
	Drag           float64       `toml:"drag" yaml:"drag"` // Velocity multiplier applied every update
	ReferenceFrame time.Duration `toml:"reference_frame" yaml:"reference_frame"`
	MinHue         float64       `toml:"min_hue" yaml:"min_hue"`
	MaxHue         float64       `toml:"max_hue" yaml:"max_hue"`
}

type ScoringConfig struct {
	KillScore int `toml:"kill_score" yaml:"kill_score"`
}

type LoopConfig struct {
	FPS           int           `toml:"fps" yaml:"fps"`
	MaxFrameDelta time.Duration `toml:"max_frame_delta" yaml:"max_frame_delta"`
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled" yaml:"enabled"`
	Music        bool    `toml:"music" yaml:"music"`
	MasterVolume float64 `toml:"master_volume" yaml:"master_volume"`
	SampleRate   int     `toml:"sample_rate" yaml:"sample_rate"`
}

// Defaults returns the stock tuning.
func Defaults() Tuning {
	return Tuning{
		Playfield: PlayfieldConfig{Width: 800, Height: 600},
		Player: PlayerConfig{
			Width:        50,
			Height:       60,
			Speed:        300,
			FireCooldown: 250 * time.Millisecond,
			InitialLives: 3,
			BottomMargin: 40,
			Color:        "#00ffff",
		},
		Projectile: ProjectileConfig{Width: 4, Height: 15, Speed: 500, Color: "#00ffff"},
		Adversary: AdversaryConfig{
			Width:    40,
			Height:   40,
			MinSpeed: 100,
			MaxSpeed: 250,
			MinHue:   300,
			MaxHue:   360,
		},
		Spawner: SpawnerConfig{
			Interval:     time.Second,
			MaxPerUpdate: 1,
			TopOffset:    10,
		},
		Particle: ParticleConfig{
			Count:          20,
			MinSpeed:       30,
			MaxSpeed:       120,
			MinDecay:       0.01,
			MaxDecay:       0.06,
			MinSize:        2,
			MaxSize:        7,
			Drag:           0.98,
			ReferenceFrame: 16 * time.Millisecond,
			MinHue:         300,
			MaxHue:         360,
		},
		Scoring: ScoringConfig{KillScore: 100},
		Loop:    LoopConfig{FPS: 60, MaxFrameDelta: 100 * time.Millisecond},
		Audio:   AudioConfig{Enabled: true, Music: false, MasterVolume: 1.0, SampleRate: 44100},
	}
}

// Load reads a tuning file over the defaults. The format is chosen by
// extension: .toml, or .yaml/.yml.
func Load(path string) (Tuning, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse tuning %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse tuning %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("tuning %s: unsupported extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("tuning %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every parameter that would break simulation invariants.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	ordered := func(name string, lo, hi float64) {
		if lo > hi {
			errs = append(errs, fmt.Errorf("%s: min %v exceeds max %v", name, lo, hi))
		}
	}

	positive("playfield.width", t.Playfield.Width)
	positive("playfield.height", t.Playfield.Height)
	positive("player.width", t.Player.Width)
	positive("player.height", t.Player.Height)
	positive("player.speed", t.Player.Speed)
	positive("projectile.width", t.Projectile.Width)
	positive("projectile.height", t.Projectile.Height)
	positive("projectile.speed", t.Projectile.Speed)
	positive("adversary.width", t.Adversary.Width)
	positive("adversary.height", t.Adversary.Height)
	positive("adversary.min_speed", t.Adversary.MinSpeed)
	ordered("adversary speed", t.Adversary.MinSpeed, t.Adversary.MaxSpeed)
	ordered("adversary hue", t.Adversary.MinHue, t.Adversary.MaxHue)
	positive("particle.min_size", t.Particle.MinSize)
	ordered("particle speed", t.Particle.MinSpeed, t.Particle.MaxSpeed)
	ordered("particle decay", t.Particle.MinDecay, t.Particle.MaxDecay)
	ordered("particle size", t.Particle.MinSize, t.Particle.MaxSize)
	ordered("particle hue", t.Particle.MinHue, t.Particle.MaxHue)
	positive("particle.min_decay", t.Particle.MinDecay)

	if t.Player.Width > t.Playfield.Width || t.Adversary.Width > t.Playfield.Width {
		errs = append(errs, errors.New("entities must be narrower than the playfield"))
	}
	if t.Player.InitialLives < 1 {
		errs = append(errs, fmt.Errorf("player.initial_lives must be >= 1, got %d", t.Player.InitialLives))
	}
	if t.Player.FireCooldown < 0 {
		errs = append(errs, fmt.Errorf("player.fire_cooldown must not be negative, got %s", t.Player.FireCooldown))
	}
	if t.Spawner.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawner.interval must be > 0, got %s", t.Spawner.Interval))
	}
	if t.Spawner.MaxPerUpdate < 1 {
		errs = append(errs, fmt.Errorf("spawner.max_per_update must be >= 1, got %d", t.Spawner.MaxPerUpdate))
	}
	if t.Particle.Count < 0 {
		errs = append(errs, fmt.Errorf("particle.count must not be negative, got %d", t.Particle.Count))
	}
	if t.Particle.Drag < 0 || t.Particle.Drag > 1 {
		errs = append(errs, fmt.Errorf("particle.drag must be within [0, 1], got %v", t.Particle.Drag))
	}
	if t.Particle.ReferenceFrame <= 0 {
		errs = append(errs, fmt.Errorf("particle.reference_frame must be > 0, got %s", t.Particle.ReferenceFrame))
	}
	if t.Scoring.KillScore < 0 {
		errs = append(errs, fmt.Errorf("scoring.kill_score must not be negative, got %d", t.Scoring.KillScore))
	}
	if t.Loop.FPS < 1 {
		errs = append(errs, fmt.Errorf("loop.fps must be >= 1, got %d", t.Loop.FPS))
	}
	if t.Loop.MaxFrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("loop.max_frame_delta must be > 0, got %s", t.Loop.MaxFrameDelta))
	}
	if t.Audio.SampleRate < 1 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be >= 1, got %d", t.Audio.SampleRate))
	}

	return errors.Join(errs...)
}

// FrameTime is the target wall-clock time between frames.
func (l LoopConfig) FrameTime() time.Duration {
	if l.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(l.FPS)
}
