package domain

import "strings"

// Card identifies a playing card as rank followed by suit, e.g. "QS" or "TH".
type Card string

var (
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}
	suits = []string{"S", "H", "D", "C"}

	suitNames = map[string]string{"S": "spades", "H": "hearts", "D": "diamonds", "C": "clubs"}
)

// ExcludedRank is removed from the deck, leaving two six-card half-suits per suit.
const ExcludedRank = "8"

// Rank returns the rank part of the card.
func (c Card) Rank() string {
	if len(c) < 2 {
		return ""
	}
	return string(c[:len(c)-1])
}

// Suit returns the suit part of the card.
func (c Card) Suit() string {
	if len(c) < 2 {
		return ""
	}
	return string(c[len(c)-1:])
}

// Valid reports whether c belongs to the Literature deck.
func (c Card) Valid() bool {
	return rankIndex(c.Rank()) >= 0 && suitIndex(c.Suit()) >= 0 && c.Rank() != ExcludedRank
}

// ParseCard normalises s into a Card.
func ParseCard(s string) (Card, error) {
	c := Card(strings.ToUpper(strings.TrimSpace(s)))
	if strings.HasPrefix(string(c), "10") {
		c = "T" + c[2:]
	}
	if !c.Valid() {
		return "", ErrUnknownCard
	}
	return c, nil
}

// HalfSuit is a declarable set of six cards.
type HalfSuit struct {
	Label string
	Cards []Card
}

// Contains reports whether card belongs to the set.
func (h HalfSuit) Contains(card Card) bool {
	for _, c := range h.Cards {
		if c == card {
			return true
		}
	}
	return false
}

// NewDeck returns the ordered 48-card Literature deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 48)
	for _, h := range HalfSuits() {
		deck = append(deck, h.Cards...)
	}
	return deck
}

// HalfSuits returns every declarable set, low then high for each suit.
func HalfSuits() []HalfSuit {
	excluded := rankIndex(ExcludedRank)
	sets := make([]HalfSuit, 0, 2*len(suits))
	for _, s := range suits {
		low := HalfSuit{Label: "low-" + suitNames[s]}
		high := HalfSuit{Label: "high-" + suitNames[s]}
		for i, r := range ranks {
			switch {
			case i < excluded:
				low.Cards = append(low.Cards, Card(r+s))
			case i > excluded:
				high.Cards = append(high.Cards, Card(r+s))
			}
		}
		sets = append(sets, low, high)
	}
	return sets
}

// HalfSuitByLabel looks up a set by its label.
func HalfSuitByLabel(label string) (HalfSuit, bool) {
	for _, h := range HalfSuits() {
		if h.Label == label {
			return h, true
		}
	}
	return HalfSuit{}, false
}

// HalfSuitOf returns the set that card belongs to.
func HalfSuitOf(card Card) (HalfSuit, bool) {
	for _, h := range HalfSuits() {
		if h.Contains(card) {
			return h, true
		}
	}
	return HalfSuit{}, false
}

func rankIndex(r string) int {
	for i, x := range ranks {
		if x == r {
			return i
		}
	}
	return -1
}

func suitIndex(s string) int {
	for i, x := range suits {
		if x == s {
			return i
		}
	}
	return -1
}
