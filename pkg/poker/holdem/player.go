package holdem

import (
	"pokerbots-server/pkg/deck"
	"pokerbots-server/pkg/poker/bot"
)

// Position is a player's table position for the current hand
type Position string

// position constants
const (
	PositionNone       Position = ""
	PositionDealer     Position = "Dealer"
	PositionSmallBlind Position = "SB"
	PositionBigBlind   Position = "BB"
)

// Seat configures a player at game creation
type Seat struct {
	Name        string
	IsBot       bool
	Personality bot.Personality
}

// Player is a seated player
// Only the game may mutate its chip and betting fields
type Player struct {
	ID          int
	Name        string
	IsBot       bool
	Personality bot.Personality

	hand       deck.Hand
	chips      int
	currentBet int
	inGame     bool
	allIn      bool
	position   Position
}

// Chips returns the player's stack
func (p *Player) Chips() int {
	return p.chips
}

// HoleCards returns the player's hole cards for the current hand
func (p *Player) HoleCards() deck.Hand {
	return p.hand.Clone()
}

// canAct returns true if the player may check, call, bet, raise, or fold
func (p *Player) canAct() bool {
	return p.inGame && !p.allIn
}

// newHand resets the per-hand fields
func (p *Player) newHand() {
	p.hand = nil
	p.currentBet = 0
	p.inGame = true
	p.allIn = false
	p.position = PositionNone
}

// view is the state slice handed to the bot policy
func (p *Player) view() bot.PlayerView {
	return bot.PlayerView{
		HoleCards:  p.hand.Clone(),
		Chips:      p.chips,
		CurrentBet: p.currentBet,
	}
}
