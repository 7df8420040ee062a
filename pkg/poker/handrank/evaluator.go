package handrank

import (
	"fmt"
	"math"
	"sort"

	"pokerbots-server/pkg/deck"
)

// Evaluation is the result of classifying a set of hole and community cards
type Evaluation struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`

	// kickers are the deciding ranks in significance order, used for strength comparison
	kickers []int
}

// Evaluate classifies the combined hole and community cards using standard
// category precedence.
//
// The cards are examined as a single group rather than searching for the best
// five-card subset of seven, matching the behavior the table UI was built
// around; downstream callers depend only on the category. Straights have no
// wheel (A-2-3-4-5) case: the ace only plays high. Flushes and straights
// require at least five cards so short boards degrade to pair-type hands.
//
// Missing hole cards (nil entries or an empty slice) produce a neutral
// NoHand evaluation, never an error.
func Evaluate(holeCards, communityCards []*deck.Card) Evaluation {
	cards := make(deck.Hand, 0, len(holeCards)+len(communityCards))
	for _, c := range holeCards {
		if c != nil {
			cards = append(cards, c)
		}
	}

	if len(cards) == 0 {
		return Evaluation{}
	}

	for _, c := range communityCards {
		if c != nil {
			cards = append(cards, c)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank > cards[j].Rank
	})

	counts := rankCounts(cards)
	quad := bestRankWithCount(counts, 4)
	trips := bestRankWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)

	flush := isFlush(cards)
	straight := isStraight(cards)
	high := cards[0].Rank

	switch {
	case flush && straight && high == deck.Ace:
		return evaluation(RoyalFlush, nil, "Royal Flush")

	case flush && straight:
		return evaluation(StraightFlush, []int{high}, "Straight Flush, %s high", rankWord(high))

	case quad > 0:
		return evaluation(FourOfAKind, []int{quad, kicker(cards, quad)}, "Four of a Kind, %s", plural(quad))

	case trips > 0 && len(pairs) > 0:
		return evaluation(FullHouse, []int{trips, pairs[0]}, "Full House, %s full of %s", plural(trips), plural(pairs[0]))

	case flush:
		return evaluation(Flush, topRanks(cards, 5), "Flush, %s high", rankWord(high))

	case straight:
		return evaluation(Straight, []int{high}, "Straight, %s high", rankWord(high))

	case trips > 0:
		k := kickers(cards, 2, trips)
		return evaluation(ThreeOfAKind, append([]int{trips}, k...), "Three of a Kind, %s", plural(trips))

	case len(pairs) >= 2:
		k := kickers(cards, 1, pairs[0], pairs[1])
		return evaluation(TwoPair, append([]int{pairs[0], pairs[1]}, k...), "Two Pair, %s and %s", plural(pairs[0]), plural(pairs[1]))

	case len(pairs) == 1:
		k := kickers(cards, 3, pairs[0])
		return evaluation(OnePair, append([]int{pairs[0]}, k...), "One Pair, %s", plural(pairs[0]))
	}

	return evaluation(HighCard, topRanks(cards, 5), "High Card, %s", rankWord(high))
}

// Strength returns a positional score where higher always beats lower.
// Category dominates; kicker ranks break ties within a category.
func (e Evaluation) Strength() int {
	strength := math.Pow(15, 5) * float64(e.Category)

	fiveKickers := make([]int, 5)
	copy(fiveKickers, e.kickers)
	for i := 0; i < 5; i++ {
		strength += math.Pow(15, float64(4-i)) * float64(fiveKickers[i])
	}

	return int(strength)
}

func evaluation(c Category, kickers []int, format string, a ...interface{}) Evaluation {
	return Evaluation{
		Category:    c,
		Description: fmt.Sprintf(format, a...),
		kickers:     kickers,
	}
}

func rankCounts(cards deck.Hand) map[int]int {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.Rank]++
	}

	return counts
}

func bestRankWithCount(counts map[int]int, n int) int {
	best := 0
	for rank, count := range counts {
		if count == n && rank > best {
			best = rank
		}
	}

	return best
}

func ranksWithCount(counts map[int]int, n int) []int {
	ranks := make([]int, 0, 2)
	for rank, count := range counts {
		if count == n {
			ranks = append(ranks, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// isFlush reports whether every card shares a suit. Requires a full board
// of five cards so a suited preflop hand does not read as a flush.
func isFlush(cards deck.Hand) bool {
	if len(cards) < 5 {
		return false
	}

	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}

// isStraight reports whether the ranks run strictly consecutive descending
func isStraight(cards deck.Hand) bool {
	if len(cards) < 5 {
		return false
	}

	for i := 1; i < len(cards); i++ {
		if cards[i].Rank != cards[i-1].Rank-1 {
			return false
		}
	}

	return true
}

// kicker returns the highest rank not matching any of the excluded ranks
func kicker(cards deck.Hand, exclude ...int) int {
	k := kickers(cards, 1, exclude...)
	if len(k) == 0 {
		return 0
	}

	return k[0]
}

// kickers returns up to max ranks, highest first, skipping the excluded ranks
func kickers(cards deck.Hand, max int, exclude ...int) []int {
	out := make([]int, 0, max)

Cards:
	for _, c := range cards {
		for _, x := range exclude {
			if c.Rank == x {
				continue Cards
			}
		}

		out = append(out, c.Rank)
		if len(out) == max {
			break
		}
	}

	return out
}

func topRanks(cards deck.Hand, max int) []int {
	out := make([]int, 0, max)
	for _, c := range cards {
		out = append(out, c.Rank)
		if len(out) == max {
			break
		}
	}

	return out
}

var rankWords = map[int]string{
	2:          "Two",
	3:          "Three",
	4:          "Four",
	5:          "Five",
	6:          "Six",
	7:          "Seven",
	8:          "Eight",
	9:          "Nine",
	10:         "Ten",
	deck.Jack:  "Jack",
	deck.Queen: "Queen",
	deck.King:  "King",
	deck.Ace:   "Ace",
}

func rankWord(rank int) string {
	word, ok := rankWords[rank]
	if !ok {
		panic(fmt.Sprintf("unknown rank: %d", rank))
	}

	return word
}

func plural(rank int) string {
	if rank == 6 {
		return "Sixes"
	}

	return rankWord(rank) + "s"
}
