package effect

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type panickyPlayer struct{ calls int }

func (p *panickyPlayer) Play(Kind) {
	p.calls++
	panic("audio device gone")
}

func TestSafeSwallowsPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	inner := &panickyPlayer{}

	p := Safe(inner, logger)
	p.Play(Explosion)
	p.Play(Shoot)

	if inner.calls != 2 {
		t.Fatalf("inner player called %d times, want 2", inner.calls)
	}
	if !strings.Contains(buf.String(), "effect player failed") {
		t.Fatalf("expected warning in log, got %q", buf.String())
	}
}

func TestSafeNilIsNop(t *testing.T) {
	p := Safe(nil, nil)
	if _, ok := p.(Nop); !ok {
		t.Fatalf("Safe(nil) = %T, want Nop", p)
	}
	p.Play(Shoot)
}

func TestSafeDoesNotDoubleWrap(t *testing.T) {
	inner := Safe(&panickyPlayer{}, nil)
	if Safe(inner, nil) != inner {
		t.Fatal("expected already-safe player to be returned as is")
	}
}

func TestKindString(t *testing.T) {
	if Shoot.String() != "shoot" || Explosion.String() != "explosion" {
		t.Fatalf("unexpected names %q %q", Shoot, Explosion)
	}
}
