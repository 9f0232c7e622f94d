package domain

import (
	"math/rand"
	"sort"
	"time"
)

// Deck hands out the initial per-seat hands when a game starts.
type Deck interface {
	Deal(seats int) ([][]Card, error)
}

// ShuffledDeck deals the 48-card Literature deck round-robin after a shuffle.
type ShuffledDeck struct {
	rng *rand.Rand
}

// NewShuffledDeck constructs a ShuffledDeck with provided rng or a time-seeded default.
func NewShuffledDeck(rng *rand.Rand) *ShuffledDeck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ShuffledDeck{rng: rng}
}

// Deal shuffles a fresh deck and splits it evenly across seats.
func (d *ShuffledDeck) Deal(seats int) ([][]Card, error) {
	deck := NewDeck()
	if seats <= 0 || len(deck)%seats != 0 {
		return nil, ErrInvalidSeatCount
	}
	d.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	hands := make([][]Card, seats)
	for i, c := range deck {
		hands[i%seats] = append(hands[i%seats], c)
	}
	for _, h := range hands {
		SortHand(h)
	}
	return hands, nil
}

// SortHand orders a hand by suit, then by rank.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardOrder(cards[i]) < cardOrder(cards[j])
	})
}

func cardOrder(c Card) int {
	return suitIndex(c.Suit())*len(ranks) + rankIndex(c.Rank())
}
