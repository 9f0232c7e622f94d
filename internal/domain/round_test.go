package domain

import "testing"

func TestProcessRound(t *testing.T) {
	tests := []struct {
		name       string
		hands      [][]Card
		turn       int
		wantTurn   int
		wantStatus Status
	}{
		{
			name:       "all hands empty ends the game",
			hands:      [][]Card{nil, nil, nil, nil, nil, nil},
			turn:       4,
			wantTurn:   4,
			wantStatus: StatusOver,
		},
		{
			name:       "even team out and even turn advances",
			hands:      [][]Card{{"2S"}, nil, {"3S"}, nil, {"4S"}, nil},
			turn:       2,
			wantTurn:   3,
			wantStatus: StatusActive,
		},
		{
			name:       "even team out wraps last seat to first",
			hands:      [][]Card{{"2S"}, nil, {"3S"}, nil, {"4S"}, nil},
			turn:       6,
			wantTurn:   1,
			wantStatus: StatusActive,
		},
		{
			name:       "odd team out and odd turn advances",
			hands:      [][]Card{nil, {"2S"}, nil, {"3S"}, nil, {"4S"}},
			turn:       5,
			wantTurn:   6,
			wantStatus: StatusActive,
		},
		{
			name:       "even team out but odd turn is kept",
			hands:      [][]Card{{"2S"}, nil, {"3S"}, nil, {"4S"}, nil},
			turn:       3,
			wantTurn:   3,
			wantStatus: StatusActive,
		},
		{
			name:       "both teams holding cards keeps turn",
			hands:      [][]Card{{"2S"}, {"5S"}, nil, nil, nil, nil},
			turn:       4,
			wantTurn:   4,
			wantStatus: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := activeGame(tt.hands...)
			g.CurrentTurn = tt.turn
			g.ProcessRound()
			if g.CurrentTurn != tt.wantTurn {
				t.Fatalf("turn = %d, want %d", g.CurrentTurn, tt.wantTurn)
			}
			if g.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", g.Status, tt.wantStatus)
			}
		})
	}
}

func TestActivePlayers(t *testing.T) {
	g := activeGame([]Card{"2S"}, nil, []Card{"3S"}, nil, nil, nil)
	active := g.ActivePlayers()
	if len(active) != 2 || active[0].Seat != 1 || active[1].Seat != 3 {
		t.Fatalf("ActivePlayers() = %v", active)
	}
}
