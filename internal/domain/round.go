package domain

// IsOver reports whether every seated player has an empty hand.
func (g *Game) IsOver() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// ProcessRound re-evaluates the game after cards leave play.
//
// The game ends once every hand is empty. Otherwise, when a whole team is out
// of cards and holds the turn, the turn moves to the next seat. The even-team
// branch wraps the last seat to seat 1; the odd-team branch does not, since an
// odd seat is never the last seat at an even-sized table.
func (g *Game) ProcessRound() {
	if g.IsOver() {
		g.Status = StatusOver
		return
	}

	evenDone, oddDone := true, true
	for _, p := range g.Players {
		empty := len(p.Hand) == 0
		if Team(p.Seat) == TeamEven {
			evenDone = evenDone && empty
		} else {
			oddDone = oddDone && empty
		}
	}

	switch {
	case evenDone && Team(g.CurrentTurn) == TeamEven:
		if g.CurrentTurn == g.SeatCount() {
			g.CurrentTurn = FirstSeat
		} else {
			g.CurrentTurn++
		}
	case oddDone && Team(g.CurrentTurn) == TeamOdd:
		g.CurrentTurn++
	}
}
