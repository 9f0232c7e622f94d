package domain

// TransferTurn hands the turn from one player to another and logs a TRANSFER entry.
func (g *Game) TransferTurn(from, to *Player) {
	g.CurrentTurn = to.Seat
	g.Record(pairEntry(TagTransfer, from, to))
}
