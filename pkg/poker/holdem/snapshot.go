package holdem

import (
	"github.com/google/uuid"

	"pokerbots-server/pkg/deck"
	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/handrank"
)

// PlayerState is a player as seen by one viewer. Hole cards are only
// populated for the viewer's own seat until the showdown.
type PlayerState struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	IsBot      bool      `json:"isBot"`
	Position   Position  `json:"position,omitempty"`
	Chips      int       `json:"chips"`
	CurrentBet int       `json:"currentBet"`
	InHand     bool      `json:"inHand"`
	AllIn      bool      `json:"allIn"`
	HoleCards  deck.Hand `json:"holeCards,omitempty"`
	IsCurrent  bool      `json:"isCurrent"`
	IsDealer   bool      `json:"isDealer"`
}

// TableState is the full table as seen by one viewer
type TableState struct {
	HandID          uuid.UUID       `json:"handId"`
	HandNumber      int             `json:"handNumber"`
	State           State           `json:"state"`
	Pot             int             `json:"pot"`
	CurrentBet      int             `json:"currentBet"`
	CommunityCards  deck.Hand       `json:"communityCards"`
	Players         []*PlayerState  `json:"players"`
	CurrentPlayerID *int            `json:"currentPlayerId"`
	LastAction      *lastAction     `json:"lastAction"`
	Results         []*Result       `json:"results"`
	HandDescription string          `json:"handDescription,omitempty"`
	Actions         []action.Action `json:"actions,omitempty"`
	GameOver        bool            `json:"gameOver"`
}

// Snapshot builds the table state visible to viewerID. Opponents' hole
// cards stay hidden until the showdown; a viewer who is still in the hand
// also gets a running description of their best hand.
func (g *Game) Snapshot(viewerID int) *TableState {
	reveal := g.state == StateShowdown

	players := make([]*PlayerState, len(g.players))
	current := g.CurrentPlayer()
	for i, p := range g.players {
		ps := &PlayerState{
			ID:         p.ID,
			Name:       p.Name,
			IsBot:      p.IsBot,
			Position:   p.position,
			Chips:      p.chips,
			CurrentBet: p.currentBet,
			InHand:     p.inGame,
			AllIn:      p.allIn,
			IsCurrent:  current != nil && current.ID == p.ID,
			IsDealer:   g.dealerIndex >= 0 && g.players[g.dealerIndex].ID == p.ID,
		}

		if p.ID == viewerID || (reveal && p.inGame) {
			ps.HoleCards = p.hand.Clone()
		}

		players[i] = ps
	}

	state := &TableState{
		HandID:         g.handID,
		HandNumber:     g.handCount,
		State:          g.state,
		Pot:            g.pot,
		CurrentBet:     g.lastBetAmount,
		CommunityCards: g.VisibleCommunityCards(),
		Players:        players,
		LastAction:     g.lastAction,
		Results:        g.results,
		Actions:        g.ActionsForPlayer(viewerID),
		GameOver:       g.gameOver,
	}

	if current != nil {
		id := current.ID
		state.CurrentPlayerID = &id
	}

	if viewer := g.playerByID(viewerID); viewer != nil && viewer.inGame && len(viewer.hand) > 0 {
		ev := handrank.Evaluate(viewer.hand, g.VisibleCommunityCards())
		state.HandDescription = ev.Description
	}

	return state
}
