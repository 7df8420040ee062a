package sound

import (
	"github.com/sirupsen/logrus"
)

// Effect identifies a table sound effect
type Effect string

// effect constants
const (
	EffectCheck Effect = "check"
	EffectCall  Effect = "call"
	EffectRaise Effect = "raise"
	EffectFold  Effect = "fold"
	EffectDeal  Effect = "deal"
	EffectWin   Effect = "win"
)

// Player plays a sound effect for the table
type Player interface {
	Play(effect Effect) error
}

// Dispatch plays an effect without making the caller wait on it.
// A broken or missing player must never stall the game, so errors and
// panics are logged and swallowed.
func Dispatch(player Player, effect Effect) {
	if player == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("effect", effect).Warnf("sound player panicked: %v", r)
			}
		}()

		if err := player.Play(effect); err != nil {
			logrus.WithField("effect", effect).WithError(err).Warn("could not play sound")
		}
	}()
}

// LogPlayer logs effects instead of playing them
type LogPlayer struct {
	logger logrus.FieldLogger
}

// NewLogPlayer returns a LogPlayer
func NewLogPlayer(logger logrus.FieldLogger) *LogPlayer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LogPlayer{logger: logger}
}

// Play logs the effect
func (p *LogPlayer) Play(effect Effect) error {
	p.logger.WithField("effect", string(effect)).Debug("play sound")
	return nil
}

// NopPlayer discards all effects
type NopPlayer struct{}

// Play does nothing
func (NopPlayer) Play(Effect) error {
	return nil
}
