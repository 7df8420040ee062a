package holdem

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/bot"
)

// pendingBotAction is a bot turn armed to fire after the think delay.
// The key captures the exact spot the decision was scheduled for; if the
// table has moved on by the time it fires (new hand, new street, a fold
// cascade ended the hand), the action is stale and must be thrown away.
type pendingBotAction struct {
	handID      uuid.UUID
	playerID    int
	playerIndex int
	state       State
	fireAt      time.Time
}

// maybeScheduleBot arms a delayed action when the player on the clock is a
// bot. Any previously armed action is superseded.
func (g *Game) maybeScheduleBot() {
	if g.gameOver || !g.state.IsBettingRound() {
		g.pending = nil
		return
	}

	p := g.players[g.currentPlayerIndex]
	if !p.IsBot {
		g.pending = nil
		return
	}

	g.pending = &pendingBotAction{
		handID:      g.handID,
		playerID:    p.ID,
		playerIndex: g.currentPlayerIndex,
		state:       g.state,
		fireAt:      time.Now().Add(g.opts.BotDelay),
	}
}

// Interval returns how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return time.Millisecond * 100
}

// Tick fires a due bot action. Returns true if the table state changed.
//
// The pending action's preconditions are revalidated here, not just at
// scheduling time: the hand, street, seat, and player must all still match
// or the action is silently discarded.
func (g *Game) Tick() (bool, error) {
	pending := g.pending
	if pending == nil || time.Now().Before(pending.fireAt) {
		return false, nil
	}

	g.pending = nil

	if pending.handID != g.handID ||
		pending.state != g.state ||
		pending.playerIndex != g.currentPlayerIndex ||
		!g.state.IsBettingRound() ||
		g.players[g.currentPlayerIndex].ID != pending.playerID {
		g.log.WithFields(logrus.Fields{
			"handID":   pending.handID,
			"playerID": pending.playerID,
		}).Debug("discarding stale bot action")
		return false, nil
	}

	p := g.players[g.currentPlayerIndex]
	decision := g.bots.Action(p.Personality, p.view(), bot.Context{
		Pot:            g.pot,
		LastBetAmount:  g.lastBetAmount,
		CommunityCards: g.VisibleCommunityCards(),
	})

	amount := decision.Amount
	if (decision.Type == action.Bet || decision.Type == action.Raise) && amount == 0 {
		amount = g.lastBetAmount + g.opts.SmallBlind
	}

	if err := g.SubmitAction(p.ID, decision.Type, amount); err != nil {
		// the policy promises legal decisions; treat a rejection as a bug
		// and fold the bot so the hand can continue
		g.log.WithError(err).WithField("player", p.Name).Error("bot produced an illegal action")
		if foldErr := g.SubmitAction(p.ID, action.Fold, 0); foldErr != nil {
			return false, foldErr
		}
	}

	return true, nil
}
