package domain

// LowestAvailableSeat returns the first free seat number (1-based). If full, returns 0.
func LowestAvailableSeat(g *Game) int {
	taken := make(map[int]bool, len(g.Players))
	for _, p := range g.Players {
		taken[p.Seat] = true
	}
	for s := 1; s <= MaxSeats; s++ {
		if !taken[s] {
			return s
		}
	}
	return 0
}

// LabelPayload holds the values advertised in a match label.
type LabelPayload struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from game state.
func ComputeLabel(g *Game) LabelPayload {
	open := 0
	if g.Status == StatusLobby {
		open = MaxSeats - g.SeatCount()
	}
	return LabelPayload{Open: open, Game: "literature", Phase: string(g.Status)}
}
