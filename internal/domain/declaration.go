package domain

import "fmt"

// Declaration claims where every card of a set sits: group i lists the cards
// held by the declarer's team seat for slot i (see SlotSeat).
type Declaration [][]Card

// Cards flattens the declaration in slot order.
func (d Declaration) Cards() []Card {
	var out []Card
	for _, group := range d {
		out = append(out, group...)
	}
	return out
}

// DeclarationResult reports the verdict of a declaration.
type DeclarationResult struct {
	Correct bool
	// ScorerSeat is the declarer on success and the opponent seat otherwise.
	ScorerSeat int
	Removed    []Card
	// Holders maps each removed card to the seat that really held it.
	Holders map[Card]int
}

// DeclareSet verifies player's claim about set and removes every named card
// from its true holder whatever the verdict.
//
// A correct claim scores for the declarer. Any mismatch scores for the
// declarer's opponent seat, which also takes the turn. Round progress runs
// afterwards. If any card cannot be resolved to a holder the game is left
// untouched and ErrInvalidCardOwnership is returned.
func (g *Game) DeclareSet(player *Player, set string, decl Declaration) (DeclarationResult, error) {
	holders, err := g.resolveHolders(decl)
	if err != nil {
		return DeclarationResult{}, err
	}
	opponent, err := g.PlayerBySeat(OpponentSeat(player.Seat, g.SeatCount()))
	if err != nil {
		return DeclarationResult{}, err
	}

	attempt := playerEntry(TagAttempt, player)
	attempt.Set = set
	g.Record(attempt)

	team := Team(player.Seat)
	result := DeclarationResult{Correct: true, Holders: make(map[Card]int, len(holders))}
	for i, group := range decl {
		expected := SlotSeat(i, team)
		for _, card := range group {
			holder := holders[card]
			if holder.Seat != expected {
				result.Correct = false
			}
			// resolveHolders guarantees the card is in this hand.
			_ = holder.Discard(card)
			result.Removed = append(result.Removed, card)
			result.Holders[card] = holder.Seat
		}
	}
	g.Discarded = append(g.Discarded, result.Removed...)

	declare := playerEntry(TagDeclare, player)
	declare.Set = set
	declare.Cards = result.Removed
	if result.Correct {
		player.Score++
		result.ScorerSeat = player.Seat
		declare.Outcome = OutcomeCorrect
	} else {
		opponent.Score++
		g.CurrentTurn = opponent.Seat
		result.ScorerSeat = opponent.Seat
		declare.Outcome = OutcomeIncorrect
	}
	g.Record(declare)

	g.ProcessRound()
	return result, nil
}

// resolveHolders finds the true holder of every declared card before anything is mutated.
func (g *Game) resolveHolders(decl Declaration) (map[Card]*Player, error) {
	holders := make(map[Card]*Player)
	for _, card := range decl.Cards() {
		if _, dup := holders[card]; dup {
			return nil, fmt.Errorf("%w: %s named twice", ErrInvalidCardOwnership, card)
		}
		seat, err := g.CardHolder(card)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCardOwnership, card)
		}
		holder, err := g.PlayerBySeat(seat)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCardOwnership, card)
		}
		holders[card] = holder
	}
	return holders, nil
}
