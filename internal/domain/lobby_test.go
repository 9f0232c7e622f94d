package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func newLobby(t *testing.T, seats int) *Game {
	t.Helper()
	g := NewGame("g1", "ABCDEF", &Player{ID: "p1", Name: "Nandha"}, NewShuffledDeck(rand.New(rand.NewSource(7))))
	for i := 2; i <= seats; i++ {
		if err := g.AddPlayer(&Player{ID: "p" + string(rune('0'+i)), Name: "n" + string(rune('0'+i))}); err != nil {
			t.Fatalf("AddPlayer() error: %v", err)
		}
	}
	return g
}

func TestNewGameSeatsOwner(t *testing.T) {
	g := newLobby(t, 1)
	if g.Status != StatusLobby || !g.TeamGame {
		t.Fatalf("unexpected lobby: %+v", g)
	}
	owner := player(t, g, 1)
	if owner.ID != "p1" || g.OwnerID != "p1" || owner.GameID != "g1" {
		t.Fatalf("owner not seated at 1: %+v", owner)
	}
	if g.LogLines()[0] != "CREATE:Nandha" {
		t.Fatalf("log = %v", g.LogLines())
	}
}

func TestAddPlayer(t *testing.T) {
	g := newLobby(t, 2)

	if err := g.AddPlayer(&Player{ID: "x", Seat: 2}); !errors.Is(err, ErrSeatTaken) {
		t.Fatalf("error = %v, want ErrSeatTaken", err)
	}
	if err := g.AddPlayer(&Player{ID: "x", Seat: 9}); !errors.Is(err, ErrInvalidSeat) {
		t.Fatalf("error = %v, want ErrInvalidSeat", err)
	}
	if err := g.AddPlayer(&Player{ID: "x", Name: "Vivek", Seat: 5}); err != nil {
		t.Fatalf("AddPlayer() error: %v", err)
	}
	if p := player(t, g, 5); p.ID != "x" {
		t.Fatalf("seat 5 = %+v", p)
	}

	g = newLobby(t, MaxSeats)
	if err := g.AddPlayer(&Player{ID: "late"}); !errors.Is(err, ErrGameFull) {
		t.Fatalf("error = %v, want ErrGameFull", err)
	}
}

func TestRemovePlayerHandsOverOwnership(t *testing.T) {
	g := newLobby(t, 3)
	if !g.RemovePlayer("p1") {
		t.Fatal("expected owner to be removed")
	}
	if g.RemovePlayer("p1") {
		t.Fatal("second removal should report false")
	}
	if g.OwnerID != "p2" {
		t.Fatalf("owner = %s, want p2", g.OwnerID)
	}
	if got := g.LogLines()[len(g.Log)-1]; got != "LEAVE:Nandha" {
		t.Fatalf("last log line = %s", got)
	}
}

func TestPrepare(t *testing.T) {
	for _, seats := range []int{6, 8} {
		g := newLobby(t, seats)
		if err := g.Prepare(); err != nil {
			t.Fatalf("seats=%d: Prepare() error: %v", seats, err)
		}
		if g.Status != StatusActive || g.CurrentTurn != 1 {
			t.Fatalf("seats=%d: status=%s turn=%d", seats, g.Status, g.CurrentTurn)
		}
		seen := map[Card]bool{}
		for _, p := range g.Players {
			if len(p.Hand) != 48/seats {
				t.Fatalf("seats=%d: seat %d holds %d cards", seats, p.Seat, len(p.Hand))
			}
			for _, c := range p.Hand {
				if seen[c] {
					t.Fatalf("duplicate card %s", c)
				}
				seen[c] = true
			}
		}
		if len(seen) != 48 {
			t.Fatalf("dealt %d distinct cards, want 48", len(seen))
		}
		if got := g.LogLines()[len(g.Log)-1]; got != "START" {
			t.Fatalf("last log line = %s", got)
		}
	}
}

func TestPrepareRejectsBadTables(t *testing.T) {
	odd := newLobby(t, 7)
	if err := odd.Prepare(); !errors.Is(err, ErrInvalidSeatCount) {
		t.Fatalf("7 seats: error = %v", err)
	}

	gap := newLobby(t, 6)
	gap.RemovePlayer("p3")
	if err := gap.AddPlayer(&Player{ID: "x", Seat: 8}); err != nil {
		t.Fatalf("AddPlayer() error: %v", err)
	}
	if err := gap.Prepare(); !errors.Is(err, ErrInvalidSeatCount) {
		t.Fatalf("gap: error = %v", err)
	}
}
