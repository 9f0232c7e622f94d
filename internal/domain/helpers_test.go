package domain

import (
	"encoding/json"
	"testing"
)

// activeGame builds an active game whose seat i+1 holds hands[i].
func activeGame(hands ...[]Card) *Game {
	g := &Game{ID: "g1", Code: "ABCDEF", Status: StatusActive, TeamGame: true, CurrentTurn: FirstSeat}
	for i, h := range hands {
		g.Players = append(g.Players, &Player{
			ID:   "p" + string(rune('1'+i)),
			Name: "n" + string(rune('1'+i)),
			Seat: i + 1,
			Hand: append([]Card{}, h...),
		})
	}
	return g
}

func player(t *testing.T, g *Game, seat int) *Player {
	t.Helper()
	p, err := g.PlayerBySeat(seat)
	if err != nil {
		t.Fatalf("PlayerBySeat(%d): %v", seat, err)
	}
	return p
}

func lastEntry(t *testing.T, g *Game) LogEntry {
	t.Helper()
	if len(g.Log) == 0 {
		t.Fatal("log is empty")
	}
	return g.Log[len(g.Log)-1]
}

func TestLowestAvailableSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats []int
		want  int
	}{
		{name: "all empty", seats: nil, want: 1},
		{name: "first taken", seats: []int{1}, want: 2},
		{name: "gap", seats: []int{1, 2, 4}, want: 3},
		{name: "full returns zero", seats: []int{1, 2, 3, 4, 5, 6, 7, 8}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{}
			for _, s := range tt.seats {
				g.Players = append(g.Players, &Player{Seat: s})
			}
			if got := LowestAvailableSeat(g); got != tt.want {
				t.Fatalf("LowestAvailableSeat() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeLabel(t *testing.T) {
	g := &Game{Status: StatusLobby, Players: []*Player{{Seat: 1}, {Seat: 2}}}
	label := ComputeLabel(g)
	if label.Open != 6 || label.Game != "literature" || label.Phase != string(StatusLobby) {
		t.Fatalf("unexpected label: %+v", label)
	}

	g.Status = StatusActive
	if label = ComputeLabel(g); label.Open != 0 {
		t.Fatalf("expected no open seats once active, got %d", label.Open)
	}

	if _, err := json.Marshal(label); err != nil {
		t.Fatalf("label should marshal: %v", err)
	}
}
