package holdem

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokerbots-server/pkg/deck"
	"pokerbots-server/pkg/poker/action"
	"pokerbots-server/pkg/poker/bot"
	"pokerbots-server/pkg/sound"
)

// ErrGameOver is returned once fewer than two players have chips left
var ErrGameOver = errors.New("game is over")

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = errors.New("it is not your turn")

// ErrNoBettingRound is returned when an action arrives outside a betting round
var ErrNoBettingRound = errors.New("not in a betting round")

// Options configures a table
type Options struct {
	// SmallBlind is the forced small-blind bet; the big blind is twice it
	SmallBlind int
	// StartingChips is each player's initial stack
	StartingChips int
	// BotDelay is how long a bot pretends to think before acting
	BotDelay time.Duration
	// DeckSeed makes shuffles deterministic when > 0. Tests only
	DeckSeed int64
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind:    5,
		StartingChips: 1000,
		BotDelay:      time.Second,
	}
}

// BigBlind returns the forced big-blind bet
func (o Options) BigBlind() int {
	return o.SmallBlind * 2
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.StartingChips < opts.BigBlind() {
		return errors.New("starting chips must cover the big blind")
	}

	return nil
}

// lastAction records the most recent executed action for the view state
type lastAction struct {
	PlayerID int           `json:"playerId"`
	Action   action.Action `json:"action"`
	Amount   int           `json:"amount"`
}

// Result is one player's outcome of a completed hand
type Result struct {
	PlayerID    int    `json:"playerId"`
	Name        string `json:"name"`
	Winnings    int    `json:"winnings"`
	Description string `json:"description"`
}

// Game is a single table of Texas Hold'em against bots.
// All state is owned by the Game and must only be touched through its
// methods; callers coordinate access from one goroutine (or a mutex).
type Game struct {
	log   logrus.FieldLogger
	opts  Options
	bots  *bot.Manager
	sound sound.Player

	players        []*Player
	deck           *deck.Deck
	communityCards deck.Hand
	pot            int
	state          State

	currentPlayerIndex int
	dealerIndex        int
	highestBet         int
	lastBetAmount      int
	actedThisRound     map[int]bool

	handID     uuid.UUID
	handCount  int
	lastAction *lastAction
	results    []*Result
	gameOver   bool

	pending *pendingBotAction
}

// NewGame seats the players and returns a table with no hand in progress.
// Call StartHand to deal the first hand.
func NewGame(logger logrus.FieldLogger, seats []Seat, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(seats) < 2 {
		return nil, errors.New("there must be at least two players")
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	players := make([]*Player, len(seats))
	for i, seat := range seats {
		personality := seat.Personality
		if seat.IsBot {
			if personality == "" {
				personality = bot.Balanced
			}

			if !personality.IsValid() {
				return nil, fmt.Errorf("invalid personality: %s", personality)
			}
		}

		name := seat.Name
		if name == "" {
			if seat.IsBot {
				name = fmt.Sprintf("Bot %d", i)
			} else {
				name = "You"
			}
		}

		players[i] = &Player{
			ID:          i,
			Name:        name,
			IsBot:       seat.IsBot,
			Personality: personality,
			chips:       opts.StartingChips,
		}
	}

	return &Game{
		log:         logger,
		opts:        opts,
		bots:        bot.NewManager(nil),
		sound:       sound.NopPlayer{},
		players:     players,
		state:       StateWaiting,
		dealerIndex: -1,
	}, nil
}

// SetSoundPlayer routes action sound effects to the given player.
// Effects are fire-and-forget; a failing player never affects the game.
func (g *Game) SetSoundPlayer(p sound.Player) {
	g.sound = p
}

// SetBotManager replaces the bot decision policy. Tests use this to make
// bot play deterministic.
func (g *Game) SetBotManager(m *bot.Manager) {
	g.bots = m
}

// StartHand shuffles up and deals the next hand.
// Players who busted the previous hand lose their seats; with fewer than
// two funded players left the whole game ends with ErrGameOver.
func (g *Game) StartHand() error {
	if g.gameOver {
		return ErrGameOver
	}

	if g.state.IsBettingRound() {
		return errors.New("a hand is already in progress")
	}

	remaining := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.chips > 0 {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) < 2 {
		g.gameOver = true
		g.pending = nil
		g.log.WithField("players", len(remaining)).Info("not enough funded players, game over")
		return ErrGameOver
	}

	g.players = remaining
	for _, p := range g.players {
		p.newHand()
	}

	g.handCount++
	g.handID = uuid.New()
	g.pending = nil
	g.lastAction = nil
	g.results = nil

	d := deck.New()
	d.Shuffle(g.opts.DeckSeed)
	g.deck = d

	n := len(g.players)
	g.dealerIndex = (g.dealerIndex + 1) % n
	sbIndex := (g.dealerIndex + 1) % n
	bbIndex := (g.dealerIndex + 2) % n

	// heads-up the big blind lands back on the button
	g.players[g.dealerIndex].position = PositionDealer
	g.players[sbIndex].position = PositionSmallBlind
	g.players[bbIndex].position = PositionBigBlind

	if err := g.deal(); err != nil {
		return err
	}

	g.pot = 0
	g.postBlind(g.players[sbIndex], g.opts.SmallBlind)
	bbAmount := g.postBlind(g.players[bbIndex], g.opts.BigBlind())

	g.lastBetAmount = bbAmount
	g.highestBet = bbAmount
	g.state = StatePreflop
	g.actedThisRound = make(map[int]bool)
	g.currentPlayerIndex = g.nextActiveIndex(bbIndex)

	g.log.WithFields(logrus.Fields{
		"hand":    g.handCount,
		"players": n,
		"dealer":  g.players[g.dealerIndex].Name,
	}).Info("dealt new hand")

	sound.Dispatch(g.sound, sound.EffectDeal)
	g.maybeScheduleBot()
	return nil
}

// deal gives each player two hole cards, then sets aside the five community cards
func (g *Game) deal() error {
	for i := 0; i < 2; i++ {
		for _, p := range g.players {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.hand.AddCard(card)
		}
	}

	g.communityCards = make(deck.Hand, 0, 5)
	for i := 0; i < 5; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		g.communityCards.AddCard(card)
	}

	return nil
}

// postBlind moves a forced bet from the player to the pot, going all-in
// when the stack is shorter than the blind. Returns the amount posted.
func (g *Game) postBlind(p *Player, amount int) int {
	if amount > p.chips {
		amount = p.chips
	}

	p.chips -= amount
	p.currentBet = amount
	g.pot += amount

	if p.chips == 0 {
		p.allIn = true
	}

	return amount
}

// CurrentPlayer returns the player whose turn it is, or nil outside a betting round
func (g *Game) CurrentPlayer() *Player {
	if !g.state.IsBettingRound() {
		return nil
	}

	return g.players[g.currentPlayerIndex]
}

// VisibleCommunityCards returns the face-up community cards for the current street
func (g *Game) VisibleCommunityCards() deck.Hand {
	n := g.state.visibleCommunityCards()
	if n > len(g.communityCards) {
		n = len(g.communityCards)
	}

	return g.communityCards[0:n].Clone()
}

// State returns the current hand state
func (g *Game) State() State {
	return g.state
}

// IsGameOver returns true once the table cannot deal another hand
func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// HandNumber returns how many hands have been dealt
func (g *Game) HandNumber() int {
	return g.handCount
}

// nextActiveIndex returns the index of the next player after start who can
// still act, wrapping around the table. Returns start when no one can.
func (g *Game) nextActiveIndex(start int) int {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		index := (start + i) % n
		if g.players[index].canAct() {
			return index
		}
	}

	return start
}

// activeCount is the number of players who can still act this round
func (g *Game) activeCount() int {
	count := 0
	for _, p := range g.players {
		if p.canAct() {
			count++
		}
	}

	return count
}

// inGameCount is the number of players who have not folded
func (g *Game) inGameCount() int {
	count := 0
	for _, p := range g.players {
		if p.inGame {
			count++
		}
	}

	return count
}

// playerByID finds a seated player
func (g *Game) playerByID(id int) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// chipsInPlay is the total of all stacks plus the pot; it must stay constant
// across a hand
func (g *Game) chipsInPlay() int {
	total := g.pot
	for _, p := range g.players {
		total += p.chips
	}

	return total
}
