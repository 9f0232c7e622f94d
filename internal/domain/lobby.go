package domain

// NewGame creates a lobby with owner at seat 1 and logs CREATE.
func NewGame(id, code string, owner *Player, deck Deck) *Game {
	owner.Seat = FirstSeat
	owner.GameID = id
	g := &Game{
		ID:       id,
		Code:     code,
		OwnerID:  owner.ID,
		Status:   StatusLobby,
		TeamGame: true,
		Players:  []*Player{owner},
		Deck:     deck,
	}
	g.Record(playerEntry(TagCreate, owner))
	return g
}

// AddPlayer seats p in the lobby and logs JOIN. A zero seat takes the lowest
// free seat; a requested seat must be free.
func (g *Game) AddPlayer(p *Player) error {
	if g.Status != StatusLobby {
		return ErrNotInLobby
	}
	if g.SeatCount() >= MaxSeats {
		return ErrGameFull
	}

	switch {
	case p.Seat == 0:
		p.Seat = LowestAvailableSeat(g)
	case p.Seat < 1 || p.Seat > MaxSeats:
		return ErrInvalidSeat
	default:
		if _, err := g.PlayerBySeat(p.Seat); err == nil {
			return ErrSeatTaken
		}
	}

	p.GameID = g.ID
	p.Hand = nil
	g.Players = append(g.Players, p)
	g.sortPlayers()
	g.Record(playerEntry(TagJoin, p))
	return nil
}

// RemovePlayer detaches the player with id from the lobby and logs LEAVE.
// It reports whether a player was removed.
func (g *Game) RemovePlayer(id string) bool {
	if g.Status != StatusLobby {
		return false
	}
	for i, p := range g.Players {
		if p.ID != id {
			continue
		}
		g.Players = append(g.Players[:i], g.Players[i+1:]...)
		p.GameID = ""
		g.Record(playerEntry(TagLeave, p))
		if g.OwnerID == id && len(g.Players) > 0 {
			g.OwnerID = g.Players[0].ID
		}
		return true
	}
	return false
}

// Prepare deals hands, gives seat 1 the turn and makes the game active.
func (g *Game) Prepare() error {
	if g.Status != StatusLobby {
		return ErrNotInLobby
	}
	n := g.SeatCount()
	if n < MinSeats || n > MaxSeats || n%2 != 0 {
		return ErrInvalidSeatCount
	}
	for i, p := range g.Players {
		if p.Seat != i+1 {
			return ErrInvalidSeatCount
		}
	}

	hands, err := g.Deck.Deal(n)
	if err != nil {
		return err
	}
	for i, p := range g.Players {
		p.Hand = hands[i]
		p.Score = 0
	}
	g.Discarded = nil
	g.CurrentTurn = FirstSeat
	g.Status = StatusActive
	g.Record(LogEntry{Tag: TagStart})
	return nil
}
