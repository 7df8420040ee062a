package handrank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerbots-server/pkg/deck"
)

func evaluate(hole, community string) Evaluation {
	return Evaluate(deck.CardsFromString(hole), deck.CardsFromString(community))
}

func TestEvaluate_categories(t *testing.T) {
	tests := []struct {
		name        string
		hole        string
		community   string
		category    Category
		description string
	}{
		{"royal flush", "14s,13s", "12s,11s,10s", RoyalFlush, "Royal Flush"},
		{"straight flush", "13d,12d", "11d,10d,9d", StraightFlush, "Straight Flush, King high"},
		{"four of a kind", "9c,9d", "9h,9s,13c", FourOfAKind, "Four of a Kind, Nines"},
		{"full house", "12c,12d", "12h,8c,8d", FullHouse, "Full House, Queens full of Eights"},
		{"flush", "13h,10h", "8h,5h,2h", Flush, "Flush, King high"},
		{"straight", "13c,12d", "11h,10s,9c", Straight, "Straight, King high"},
		{"three of a kind", "6c,6d", "6h,13c,2d", ThreeOfAKind, "Three of a Kind, Sixes"},
		{"two pair", "12c,12d", "8c,8d,3h", TwoPair, "Two Pair, Queens and Eights"},
		{"one pair", "12c,12d", "8c,5d,3h", OnePair, "One Pair, Queens"},
		{"high card", "14c,9d", "8c,5d,3h", HighCard, "High Card, Ace"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ev := evaluate(test.hole, test.community)
			assert.Equal(t, test.category, ev.Category)
			assert.Equal(t, test.description, ev.Description)
		})
	}
}

func TestEvaluate_precedence(t *testing.T) {
	a := assert.New(t)

	// flush + straight + ace high must read as a royal flush, not a plain flush
	a.Equal(RoyalFlush, evaluate("14s,13s", "12s,11s,10s").Category)

	// quads win even when a lower full-house pattern coincides
	a.Equal(FourOfAKind, evaluate("9c,9d", "9h,9s,13c,13d").Category)
}

func TestEvaluate_noWheel(t *testing.T) {
	// the ace only plays high: A-2-3-4-5 is not a straight
	ev := evaluate("14c,2d", "3h,4s,5c")
	assert.Equal(t, HighCard, ev.Category)
	assert.Equal(t, "High Card, Ace", ev.Description)
}

func TestEvaluate_shortBoards(t *testing.T) {
	a := assert.New(t)

	// suited hole cards alone are not a flush
	a.Equal(HighCard, evaluate("13h,10h", "").Category)

	// consecutive hole cards alone are not a straight
	a.Equal(HighCard, evaluate("13h,12c", "").Category)

	// a preflop pair still counts
	ev := evaluate("12c,12d", "")
	a.Equal(OnePair, ev.Category)
	a.Equal("One Pair, Queens", ev.Description)
}

func TestEvaluate_emptyHoleCards(t *testing.T) {
	a := assert.New(t)

	ev := Evaluate(nil, deck.CardsFromString("2c,3d,4h"))
	a.Equal(NoHand, ev.Category)
	a.Equal("", ev.Description)

	ev = Evaluate([]*deck.Card{nil, nil}, nil)
	a.Equal(NoHand, ev.Category)
}

func TestEvaluate_threePairsPicksBestTwo(t *testing.T) {
	ev := evaluate("12c,12d", "8c,8d,3h,3s,14c")
	assert.Equal(t, TwoPair, ev.Category)
	assert.Equal(t, "Two Pair, Queens and Eights", ev.Description)
}

func TestEvaluation_Strength(t *testing.T) {
	a := assert.New(t)

	royal := evaluate("14s,13s", "12s,11s,10s")
	quads := evaluate("9c,9d", "9h,9s,13c")
	a.Greater(royal.Strength(), quads.Strength())

	// same category, kicker decides
	aceHigh := evaluate("14c,9d", "8c,5d,3h")
	kingHigh := evaluate("13c,9d", "8c,5d,3h")
	a.Greater(aceHigh.Strength(), kingHigh.Strength())

	// identical hands tie
	left := evaluate("13c,12d", "11h,10s,9c")
	right := evaluate("13h,12s", "11c,10d,9h")
	a.Equal(left.Strength(), right.Strength())

	a.Equal(0, Evaluation{}.Strength())
}
