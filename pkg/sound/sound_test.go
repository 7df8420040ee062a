package sound

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type recordingPlayer struct {
	mu      sync.Mutex
	effects []Effect
	err     error
	panics  bool
}

func (p *recordingPlayer) Play(effect Effect) error {
	p.mu.Lock()
	p.effects = append(p.effects, effect)
	p.mu.Unlock()

	if p.panics {
		panic("boom")
	}

	return p.err
}

func (p *recordingPlayer) waitForEffects(t *testing.T, n int) []Effect {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		effects := append([]Effect{}, p.effects...)
		p.mu.Unlock()

		if len(effects) >= n {
			return effects
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d effects", n)
	return nil
}

func TestDispatch(t *testing.T) {
	p := &recordingPlayer{}
	Dispatch(p, EffectRaise)

	assert.Equal(t, []Effect{EffectRaise}, p.waitForEffects(t, 1))
}

func TestDispatch_swallowsErrors(t *testing.T) {
	p := &recordingPlayer{err: errors.New("no speakers")}
	Dispatch(p, EffectFold)
	p.waitForEffects(t, 1)
}

func TestDispatch_swallowsPanics(t *testing.T) {
	p := &recordingPlayer{panics: true}
	Dispatch(p, EffectCall)
	p.waitForEffects(t, 1)
}

func TestDispatch_nilPlayer(t *testing.T) {
	assert.NotPanics(t, func() {
		Dispatch(nil, EffectCheck)
	})
}

func TestLogPlayer(t *testing.T) {
	assert.NoError(t, NewLogPlayer(logrus.StandardLogger()).Play(EffectDeal))
	assert.NoError(t, NewLogPlayer(nil).Play(EffectDeal))
	assert.NoError(t, NopPlayer{}.Play(EffectWin))
}
