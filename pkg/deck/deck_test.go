package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	d := New()

	assert.Equal(t, 52, d.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Spades}, *d.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Clubs}, *d.Cards[51])
	assert.Equal(t, "3f09ff04ce7e7f1934557307bd06e398993dcd91", d.HashCode())
}

func TestNew_allCardsUnique(t *testing.T) {
	d := New()

	seen := make(map[Card]bool)
	for _, card := range d.Cards {
		seen[*card] = true
	}

	assert.Equal(t, 52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	unshuffled := New().HashCode()

	d := New()
	d.Shuffle(1)
	a.Equal(int64(1), d.GetSeed())
	a.NotEqual(unshuffled, d.HashCode())

	// the same seed must give the same order
	d2 := New()
	d2.Shuffle(1)
	a.Equal(d.HashCode(), d2.HashCode())

	// shuffling preserves the multiset of cards
	seen := make(map[Card]int)
	for _, card := range d.Cards {
		seen[*card]++
	}
	a.Equal(52, len(seen))
	for card, count := range seen {
		a.Equal(1, count, card.String())
	}

	d.Shuffle(0)
	a.NotEqual(int64(0), d.GetSeed())
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)
	d := New()

	a.True(d.CanDraw(52))
	a.False(d.CanDraw(53))

	card, err := d.Draw()
	a.NoError(err)
	a.Equal(Card{Rank: 2, Suit: Spades}, *card)
	a.Equal(51, d.CardsLeft())

	for d.CardsLeft() > 0 {
		_, err := d.Draw()
		a.NoError(err)
	}

	card, err = d.Draw()
	a.Nil(card)
	a.Equal(ErrEndOfDeck, err)
}
