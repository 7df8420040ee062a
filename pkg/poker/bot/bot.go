package bot

import (
	"pokerbots-server/internal/rng"
	"pokerbots-server/pkg/deck"
	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/handrank"
)

// Decision is the action a bot wants to take on its turn
type Decision struct {
	Type   action.Action
	Amount int
}

// PlayerView is the slice of player state a bot is allowed to see
type PlayerView struct {
	HoleCards  deck.Hand
	Chips      int
	CurrentBet int
}

// Context is the table state a bot considers when acting
type Context struct {
	Pot            int
	LastBetAmount  int
	CommunityCards deck.Hand
}

// categoryStrength maps an evaluator category to a strength scalar in [0, 1]
var categoryStrength = map[handrank.Category]float64{
	handrank.HighCard:      0.1,
	handrank.OnePair:       0.2,
	handrank.TwoPair:       0.4,
	handrank.ThreeOfAKind:  0.6,
	handrank.Straight:      0.7,
	handrank.Flush:         0.75,
	handrank.FullHouse:     0.85,
	handrank.FourOfAKind:   0.95,
	handrank.StraightFlush: 0.98,
	handrank.RoyalFlush:    1.0,
}

// Manager decides actions for bot players
type Manager struct {
	random rng.Generator
}

// NewManager returns a Manager.
// Pass nil to use the crypto-backed generator; tests inject a seeded one.
func NewManager(random rng.Generator) *Manager {
	if random == nil {
		random = rng.Crypto{}
	}

	return &Manager{random: random}
}

// HandStrength maps the player's current hand category to a scalar in [0, 1]
func (m *Manager) HandStrength(pv PlayerView, ctx Context) float64 {
	ev := handrank.Evaluate(pv.HoleCards, ctx.CommunityCards)
	if s, ok := categoryStrength[ev.Category]; ok {
		return s
	}

	return 0.1
}

// Action decides what the bot does on its turn.
// The decision is always one the table can execute: a bot never checks into
// an outstanding bet, and amounts never exceed its stack.
func (m *Manager) Action(personality Personality, pv PlayerView, ctx Context) Decision {
	strength := m.HandStrength(pv, ctx)

	// small jitter so identical spots don't always play the same
	strength += float64(m.random.Intn(101)-50) / 1000
	strength = clamp(strength, 0, 1)

	switch personality {
	case Aggressive:
		return m.aggressiveAction(pv, ctx, strength)
	case Conservative:
		return m.conservativeAction(pv, ctx, strength)
	}

	return m.balancedAction(pv, ctx, strength)
}

func (m *Manager) aggressiveAction(pv PlayerView, ctx Context, strength float64) Decision {
	callAmount := ctx.LastBetAmount - pv.CurrentBet

	if strength > 0.7 {
		return raiseTo(ctx.LastBetAmount+ctx.Pot/2, pv)
	}

	if strength > 0.4 {
		if callAmount == 0 {
			return betOf(ctx.Pot*3/10, pv)
		}

		if callAmount <= pv.Chips*3/10 {
			return Decision{Type: action.Call}
		}
	} else if strength > 0.2 && callAmount == 0 {
		return Decision{Type: action.Check}
	}

	return Decision{Type: action.Fold}
}

func (m *Manager) conservativeAction(pv PlayerView, ctx Context, strength float64) Decision {
	callAmount := ctx.LastBetAmount - pv.CurrentBet
	potOdds := potOdds(callAmount, ctx.Pot)

	if strength > 0.8 {
		return raiseTo(ctx.LastBetAmount+ctx.Pot/4, pv)
	}

	if strength > 0.5 {
		if callAmount == 0 {
			return betOf(ctx.Pot/5, pv)
		}

		if potOdds < 0.3 {
			return Decision{Type: action.Call}
		}
	} else if strength > 0.3 && callAmount == 0 {
		return Decision{Type: action.Check}
	}

	return Decision{Type: action.Fold}
}

func (m *Manager) balancedAction(pv PlayerView, ctx Context, strength float64) Decision {
	callAmount := ctx.LastBetAmount - pv.CurrentBet
	potOdds := potOdds(callAmount, ctx.Pot)

	if strength > 0.75 {
		return raiseTo(ctx.LastBetAmount+ctx.Pot*2/5, pv)
	}

	if strength > 0.5 {
		if callAmount == 0 {
			return betOf(ctx.Pot/4, pv)
		}

		if potOdds < 0.4 {
			return Decision{Type: action.Call}
		}
	} else if strength > 0.25 {
		if callAmount == 0 {
			return Decision{Type: action.Check}
		}

		if potOdds < 0.25 {
			return Decision{Type: action.Call}
		}
	}

	return Decision{Type: action.Fold}
}

// potOdds is the price of a call relative to the resulting pot
func potOdds(callAmount, pot int) float64 {
	if callAmount <= 0 {
		return 0
	}

	return float64(callAmount) / float64(pot+callAmount)
}

// raiseTo raises to the target total bet, capped at the player's whole stack
func raiseTo(amount int, pv PlayerView) Decision {
	if max := pv.Chips + pv.CurrentBet; amount > max {
		amount = max
	}

	return Decision{Type: action.Raise, Amount: amount}
}

// betOf opens for the amount, capped at the player's remaining chips
func betOf(amount int, pv PlayerView) Decision {
	if amount > pv.Chips {
		amount = pv.Chips
	}

	if amount <= 0 {
		// too small to open; take the free card instead
		return Decision{Type: action.Check}
	}

	return Decision{Type: action.Bet, Amount: amount}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
