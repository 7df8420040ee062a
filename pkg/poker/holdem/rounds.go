package holdem

import (
	"github.com/sirupsen/logrus"

	"pokerbots-server/pkg/poker/handrank"
	"pokerbots-server/pkg/sound"
)

// advanceTurn runs after every executed action: it marks the actor as having
// acted, closes the round if the round-complete predicate holds, and
// otherwise passes the clock to the next player who can act.
func (g *Game) advanceTurn(actor *Player) {
	if !g.state.IsBettingRound() {
		// a fold already ended the hand
		return
	}

	g.actedThisRound[actor.ID] = true

	if g.isRoundComplete() {
		g.advanceStreet()
		return
	}

	g.currentPlayerIndex = g.nextActiveIndex(g.currentPlayerIndex)
}

// isRoundComplete is true once at most one player can still act, or once
// every player who can act has acted this round and their bets are level
func (g *Game) isRoundComplete() bool {
	if g.activeCount() <= 1 {
		return true
	}

	for _, p := range g.players {
		if !p.canAct() {
			continue
		}

		if !g.actedThisRound[p.ID] {
			return false
		}

		if p.currentBet != g.lastBetAmount {
			return false
		}
	}

	return true
}

// advanceStreet moves to the next betting round, or to showdown after the
// river. Per-round betting state resets and the first player to act is the
// next active player after the dealer. When nobody is left to bet (everyone
// all-in) the remaining streets run out immediately.
func (g *Game) advanceStreet() {
	if g.state == StateRiver {
		g.showdown()
		return
	}

	g.state = g.state.next()
	for _, p := range g.players {
		p.currentBet = 0
	}

	g.lastBetAmount = 0
	g.highestBet = 0
	g.actedThisRound = make(map[int]bool)
	g.currentPlayerIndex = g.nextActiveIndex(g.dealerIndex)

	g.log.WithFields(logrus.Fields{
		"street":    g.state.String(),
		"community": g.VisibleCommunityCards().String(),
	}).Debug("betting round complete")

	if g.isRoundComplete() {
		g.advanceStreet()
	}
}

// showdown compares the remaining hands with the evaluator and pays the pot.
// Ties split the pot evenly; any odd chips go to the tied players closest to
// the dealer's left.
func (g *Game) showdown() {
	g.state = StateShowdown
	g.pending = nil

	type contender struct {
		player *Player
		ev     handrank.Evaluation
	}

	bestStrength := -1
	var winners []*contender
	for _, seat := range g.seatsFromDealersLeft() {
		p := g.players[seat]
		if !p.inGame {
			continue
		}

		c := &contender{
			player: p,
			ev:     handrank.Evaluate(p.hand, g.communityCards),
		}

		if s := c.ev.Strength(); s > bestStrength {
			bestStrength = s
			winners = []*contender{c}
		} else if s == bestStrength {
			winners = append(winners, c)
		}
	}

	if len(winners) == 0 {
		panic("showdown reached with no players in the hand")
	}

	share := g.pot / len(winners)
	remainder := g.pot % len(winners)
	g.pot = 0

	g.results = make([]*Result, 0, len(winners))
	for i, w := range winners {
		winnings := share
		if i < remainder {
			winnings++
		}

		w.player.chips += winnings
		g.results = append(g.results, &Result{
			PlayerID:    w.player.ID,
			Name:        w.player.Name,
			Winnings:    winnings,
			Description: w.ev.Description,
		})

		g.log.WithFields(logrus.Fields{
			"player": w.player.Name,
			"hand":   w.ev.Description,
			"won":    winnings,
		}).Info("showdown winner")
	}

	sound.Dispatch(g.sound, sound.EffectWin)
}

// finishFoldedHand awards the pot to the last player standing without a
// showdown and ends the hand
func (g *Game) finishFoldedHand() {
	g.state = StateShowdown
	g.pending = nil

	var winner *Player
	for _, p := range g.players {
		if p.inGame {
			winner = p
			break
		}
	}

	if winner == nil {
		panic("hand folded out with no players in it")
	}

	winnings := g.pot
	winner.chips += winnings
	g.pot = 0

	g.results = []*Result{{
		PlayerID: winner.ID,
		Name:     winner.Name,
		Winnings: winnings,
	}}

	g.log.WithFields(logrus.Fields{
		"player": winner.Name,
		"won":    winnings,
	}).Info("hand won uncontested")

	sound.Dispatch(g.sound, sound.EffectWin)
}

// seatsFromDealersLeft returns every seat index starting one past the dealer
func (g *Game) seatsFromDealersLeft() []int {
	n := len(g.players)
	seats := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		seats = append(seats, (g.dealerIndex+i)%n)
	}

	return seats
}

// Results returns the outcome of the last completed hand, or nil while a
// hand is still being played
func (g *Game) Results() []*Result {
	return g.results
}
