package brain

import "literature/internal/domain"

// Memory is a bot's view of where cards sit, rebuilt from the public game log
// and its own hand.
type Memory struct {
	seat   int
	seen   int
	holder map[domain.Card]int
	lacks  map[domain.Card]map[int]bool
}

// NewMemory initializes a fresh memory for the bot sitting at seat.
func NewMemory(seat int) *Memory {
	m := &Memory{seat: seat}
	m.Reset()
	return m
}

// Reset clears the memory for a new game.
func (m *Memory) Reset() {
	m.seen = 0
	m.holder = make(map[domain.Card]int)
	m.lacks = make(map[domain.Card]map[int]bool)
}

// Observe consumes the log entries not seen yet. A shorter log than last time
// means a different game, so memory starts over.
func (m *Memory) Observe(log []domain.LogEntry) {
	if len(log) < m.seen {
		m.Reset()
	}
	for _, e := range log[m.seen:] {
		m.apply(e)
	}
	m.seen = len(log)
}

func (m *Memory) apply(e domain.LogEntry) {
	switch e.Tag {
	case domain.TagStart:
		m.Reset()
	case domain.TagTake:
		m.holder[e.Card] = e.ActorSeat
		m.markLacks(e.Card, e.TargetSeat)
	case domain.TagAsk:
		m.markLacks(e.Card, e.TargetSeat)
		if m.holder[e.Card] == e.TargetSeat {
			delete(m.holder, e.Card)
		}
	case domain.TagDeclare:
		for _, c := range e.Cards {
			delete(m.holder, c)
			delete(m.lacks, c)
		}
	}
}

func (m *Memory) markLacks(card domain.Card, seat int) {
	if m.lacks[card] == nil {
		m.lacks[card] = make(map[int]bool)
	}
	m.lacks[card][seat] = true
}

// SyncHand records the bot's current hand as ground truth.
func (m *Memory) SyncHand(hand []domain.Card) {
	held := make(map[domain.Card]bool, len(hand))
	for _, c := range hand {
		held[c] = true
		m.holder[c] = m.seat
	}
	for c, seat := range m.holder {
		if seat == m.seat && !held[c] {
			delete(m.holder, c)
		}
	}
}

// Holder returns the seat known to hold card.
func (m *Memory) Holder(card domain.Card) (int, bool) {
	seat, ok := m.holder[card]
	return seat, ok
}

// Lacks reports whether seat is known not to hold card.
func (m *Memory) Lacks(card domain.Card, seat int) bool {
	return m.lacks[card][seat]
}

// Forget drops what was learnt about other hands.
func (m *Memory) Forget() {
	m.holder = make(map[domain.Card]int)
	m.lacks = make(map[domain.Card]map[int]bool)
}
