package domain

import (
	"sort"
	"sync"
)

// Status represents the lifecycle stage of a Literature game.
type Status string

const (
	// StatusLobby is the pre-game state where players can join.
	StatusLobby Status = "lobby"
	// StatusActive is the state where cards are asked for and sets declared.
	StatusActive Status = "active"
	// StatusOver is reached once no seated player holds a card.
	StatusOver Status = "over"
)

// Player holds state for a participant in the game.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Seat   int    `json:"seat"` // 1-based seat number
	GameID string `json:"game_id,omitempty"`
	Hand   []Card `json:"hand"`
	Score  int    `json:"score"`
}

// Holds reports whether card is in the player's hand.
func (p *Player) Holds(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// Discard removes card from the hand, failing with ErrCardNotHeld when it is absent.
func (p *Player) Discard(card Card) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return ErrCardNotHeld
}

// Add places card into the hand.
func (p *Player) Add(card Card) {
	p.Hand = append(p.Hand, card)
}

// Game holds authoritative state for a Literature game instance.
//
// A Game is mutated by one writer at a time: callers hold Lock for the whole
// read-modify-write sequence of an action.
type Game struct {
	mu sync.Mutex

	ID       string `json:"id"`
	Code     string `json:"code"`
	OwnerID  string `json:"owner_id"`
	Status   Status `json:"status"`
	TeamGame bool   `json:"team_game"`

	Players     []*Player `json:"players"`      // ordered by seat
	CurrentTurn int       `json:"current_turn"` // seat of the turn holder

	Deck      Deck   `json:"-"`
	Discarded []Card `json:"discarded"`

	Log []LogEntry `json:"log"`
}

// Lock acquires the game's single-writer lock.
func (g *Game) Lock() { g.mu.Lock() }

// Unlock releases the game's single-writer lock.
func (g *Game) Unlock() { g.mu.Unlock() }

// SeatCount returns the number of seated players.
func (g *Game) SeatCount() int {
	return len(g.Players)
}

// PlayerBySeat returns the player seated at seat.
func (g *Game) PlayerBySeat(seat int) (*Player, error) {
	for _, p := range g.Players {
		if p.Seat == seat {
			return p, nil
		}
	}
	return nil, ErrSeatNotFound
}

// PlayerByID returns the seated player with the given id.
func (g *Game) PlayerByID(id string) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// CardHolder returns the seat of the player currently holding card.
func (g *Game) CardHolder(card Card) (int, error) {
	for _, p := range g.Players {
		if p.Holds(card) {
			return p.Seat, nil
		}
	}
	return 0, ErrCardNotInPlay
}

// CardsInPlay counts the cards across all hands.
func (g *Game) CardsInPlay() int {
	n := 0
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	return n
}

// ActivePlayers returns the seated players that still hold cards.
func (g *Game) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// TeamScore sums the scores of every player on team.
func (g *Game) TeamScore(team int) int {
	total := 0
	for _, p := range g.Players {
		if Team(p.Seat) == team {
			total += p.Score
		}
	}
	return total
}

// Record appends an entry to the game's event log.
func (g *Game) Record(entry LogEntry) {
	g.Log = append(g.Log, entry)
}

// LogLines renders the event log in its line format.
func (g *Game) LogLines() []string {
	lines := make([]string, len(g.Log))
	for i, e := range g.Log {
		lines[i] = e.String()
	}
	return lines
}

func (g *Game) sortPlayers() {
	sort.Slice(g.Players, func(i, j int) bool {
		return g.Players[i].Seat < g.Players[j].Seat
	})
}
