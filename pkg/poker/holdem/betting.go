package holdem

import (
	"fmt"

	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/sound"
)

// SubmitAction performs an action for the player.
// The action is rejected with an error, and no state is touched, unless it
// comes from the player currently on the clock and is legal in the current
// round. These handlers are the only place chips, pot, currentBet,
// lastBetAmount, and highestBet change during a betting round.
func (g *Game) SubmitAction(playerID int, act action.Action, amount int) error {
	if g.gameOver {
		return ErrGameOver
	}

	if !act.IsValid() {
		return fmt.Errorf("unknown action for identifier: %s", string(act))
	}

	if !g.state.IsBettingRound() {
		return ErrNoBettingRound
	}

	if g.playerByID(playerID) == nil {
		return fmt.Errorf("player %d is not seated at this table", playerID)
	}

	p := g.players[g.currentPlayerIndex]
	if p.ID != playerID {
		return ErrNotYourTurn
	}

	if !p.canAct() {
		// the turn pointer never lands on a folded or all-in player
		panic(fmt.Sprintf("player %d is on the clock but cannot act", p.ID))
	}

	var executed int
	switch act {
	case action.Check:
		if err := g.playerChecks(p); err != nil {
			return err
		}
	case action.Call:
		called, err := g.playerCalls(p)
		if err != nil {
			return err
		}
		executed = called
	case action.Bet, action.Raise:
		bet, err := g.playerBetsOrRaises(p, amount)
		if err != nil {
			return err
		}
		executed = bet
	case action.Fold:
		g.playerFolds(p)
	}

	g.lastAction = &lastAction{
		PlayerID: p.ID,
		Action:   act,
		Amount:   executed,
	}

	g.log.WithField("player", p.Name).Info(act.LogMessage(executed))

	g.advanceTurn(p)
	g.maybeScheduleBot()
	return nil
}

// playerChecks passes the action without betting. Only legal when there is
// no outstanding bet to match.
func (g *Game) playerChecks(p *Player) error {
	if p.currentBet < g.lastBetAmount {
		return fmt.Errorf("cannot check with ${%d} to call", g.lastBetAmount-p.currentBet)
	}

	sound.Dispatch(g.sound, sound.EffectCheck)
	return nil
}

// playerCalls matches the outstanding bet, going all-in when the stack is short
func (g *Game) playerCalls(p *Player) (int, error) {
	callAmount := g.lastBetAmount - p.currentBet
	if callAmount <= 0 {
		return 0, fmt.Errorf("cannot call without an outstanding bet")
	}

	if callAmount > p.chips {
		callAmount = p.chips
	}

	p.chips -= callAmount
	p.currentBet += callAmount
	g.pot += callAmount

	if p.chips == 0 {
		p.allIn = true
	}

	sound.Dispatch(g.sound, sound.EffectCall)
	return callAmount, nil
}

// playerBetsOrRaises moves the player's total bet for the round to amount,
// clamped to their whole stack. Every other active player owes another
// action, so the acted set collapses to just this player.
func (g *Game) playerBetsOrRaises(p *Player, amount int) (int, error) {
	if max := p.chips + p.currentBet; amount > max {
		amount = max
	}

	if amount <= p.currentBet {
		return 0, fmt.Errorf("bet must be greater than ${%d} already in", p.currentBet)
	}

	delta := amount - p.currentBet
	p.chips -= delta
	p.currentBet = amount
	g.pot += delta

	if p.chips == 0 {
		p.allIn = true
	}

	g.lastBetAmount = amount
	if amount > g.highestBet {
		g.highestBet = amount
	}

	g.actedThisRound = map[int]bool{p.ID: true}

	sound.Dispatch(g.sound, sound.EffectRaise)
	return amount, nil
}

// playerFolds removes the player from the hand. When only one player is
// left in, the hand ends immediately and they take the pot uncontested.
func (g *Game) playerFolds(p *Player) {
	p.inGame = false
	sound.Dispatch(g.sound, sound.EffectFold)

	if g.inGameCount() == 1 {
		g.finishFoldedHand()
	}
}

// ActionsForPlayer returns the actions the player may take right now.
// Returns nil for anyone not on the clock.
func (g *Game) ActionsForPlayer(playerID int) []action.Action {
	p := g.CurrentPlayer()
	if p == nil || p.ID != playerID {
		return nil
	}

	actions := make([]action.Action, 0, 3)
	if p.currentBet == g.lastBetAmount {
		actions = append(actions, action.Check)
	} else if p.currentBet < g.lastBetAmount {
		actions = append(actions, action.Call)
	}

	if g.lastBetAmount == 0 {
		actions = append(actions, action.Bet)
	} else if p.chips+p.currentBet > g.lastBetAmount {
		actions = append(actions, action.Raise)
	}

	return append(actions, action.Fold)
}
