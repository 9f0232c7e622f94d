package domain

// RequestCard has from ask to for card.
//
// When to holds the card it moves into from's hand, a TAKE entry is logged and
// from keeps the turn. Otherwise no hand changes, an ASK entry is logged and the
// turn passes to to. Round progress is not evaluated here; callers that want it
// run ProcessRound themselves. Turn ownership of from is the caller's contract.
func (g *Game) RequestCard(from, to *Player, card Card) bool {
	if err := to.Discard(card); err != nil {
		e := pairEntry(TagAsk, from, to)
		e.Card = card
		g.Record(e)
		g.CurrentTurn = to.Seat
		return false
	}

	from.Add(card)
	e := pairEntry(TagTake, from, to)
	e.Card = card
	g.Record(e)
	return true
}
