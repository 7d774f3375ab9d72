package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/neonraid/internal/config"
	"github.com/tomz197/neonraid/internal/effect"
)

// speakerLock guards the mixer while the speaker goroutine streams it.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Player mixes sound effects into a single speaker stream.
// Implements effect.Player; a Player without an audio device stays silent.
type Player struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	lock   sync.Locker
	logger *log.Logger

	enabled bool
	speaker bool // Owns the speaker and must close it
}

// New opens the speaker and starts the mixer. Audio failures are not fatal:
// they are logged and the returned player is silent.
func New(cfg config.AudioConfig, logger *log.Logger) *Player {
	p := &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		lock:   speakerLock{},
		logger: logger,
	}
	if !cfg.Enabled {
		return p
	}

	if err := p.initSpeaker(); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		}
		return p
	}
	p.speaker = true
	p.enabled = true

	speaker.Play(newVolume(p.mixer, cfg.MasterVolume))
	if cfg.Music {
		p.add(MelodyLoop(p.rate))
	}
	return p
}

// initSpeaker opens the output device, recovering from driver panics.
func (p *Player) initSpeaker() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init speaker: %v", r)
		}
	}()
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// Enabled reports whether sounds reach a device.
func (p *Player) Enabled() bool {
	return p.enabled
}

// Play queues a sound effect and returns immediately.
func (p *Player) Play(kind effect.Kind) {
	if !p.enabled {
		return
	}
	switch kind {
	case effect.Shoot:
		p.add(ShootTone.Streamer(p.rate))
	case effect.Explosion:
		p.add(ExplosionTone.Streamer(p.rate))
	}
}

func (p *Player) add(s beep.Streamer) {
	p.lock.Lock()
	p.mixer.Add(s)
	p.lock.Unlock()
}

// Close silences and releases the speaker.
func (p *Player) Close() {
	if !p.speaker {
		return
	}
	p.enabled = false
	speaker.Clear()
	speaker.Close()
	p.speaker = false
}

var _ effect.Player = (*Player)(nil)
