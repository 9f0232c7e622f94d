package bot

import (
	"math/rand"

	"literature/internal/bot/brain"
	"literature/internal/domain"
)

// Planner picks Literature moves in order of preference: pass the turn on
// with an empty hand, declare a set the team is known to hold, ask an
// opponent for a missing card, and finally declare on a best guess.
// A nil Memory means the planner only knows its own hand and public declarations.
type Planner struct {
	Memory *brain.Memory
	rng    *rand.Rand
}

type askOption struct {
	seat int
	card domain.Card
}

func (p *Planner) CalculateMove(game *domain.Game, player *domain.Player) (Move, error) {
	if game.Status != domain.StatusActive || game.CurrentTurn != player.Seat {
		return Move{}, nil
	}
	mem := p.memory(game, player)

	if len(player.Hand) == 0 {
		return p.transfer(game, player), nil
	}
	if mv, ok := p.declareKnown(game, player, mem); ok {
		return mv, nil
	}
	if mv, ok := p.ask(game, player, mem); ok {
		return mv, nil
	}
	if mv, ok := p.declareGuess(game, player, mem); ok {
		return mv, nil
	}
	return p.transfer(game, player), nil
}

func (p *Planner) memory(game *domain.Game, player *domain.Player) *brain.Memory {
	mem := p.Memory
	if mem == nil {
		mem = brain.NewMemory(player.Seat)
		mem.Observe(game.Log)
		mem.Forget()
	} else {
		mem.Observe(game.Log)
	}
	mem.SyncHand(player.Hand)
	return mem
}

// heldSets lists the half-suits the player holds at least one card of.
// Sets leave play whole, so every card of a held set is still in some hand.
func heldSets(player *domain.Player) []domain.HalfSuit {
	var out []domain.HalfSuit
	for _, h := range domain.HalfSuits() {
		for _, c := range player.Hand {
			if h.Contains(c) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

func (p *Planner) declareKnown(game *domain.Game, player *domain.Player, mem *brain.Memory) (Move, bool) {
	for _, set := range heldSets(player) {
		assign := make(map[domain.Card]int)
		complete := true
		for _, c := range set.Cards {
			seat, ok := mem.Holder(c)
			if !ok || !domain.SameTeam(seat, player.Seat) {
				complete = false
				break
			}
			assign[c] = seat
		}
		if complete {
			return declareMove(game, player, set, assign), true
		}
	}
	return Move{}, false
}

func (p *Planner) ask(game *domain.Game, player *domain.Player, mem *brain.Memory) (Move, bool) {
	var options []askOption
	for _, set := range heldSets(player) {
		for _, c := range set.Cards {
			if player.Holds(c) {
				continue
			}
			if seat, ok := mem.Holder(c); ok {
				if !domain.SameTeam(seat, player.Seat) && hasCards(game, seat) {
					return Move{Kind: MoveAsk, TargetSeat: seat, Card: c}, true
				}
				continue
			}
			for _, opp := range game.ActivePlayers() {
				if domain.SameTeam(opp.Seat, player.Seat) || mem.Lacks(c, opp.Seat) {
					continue
				}
				options = append(options, askOption{seat: opp.Seat, card: c})
			}
		}
	}
	if len(options) == 0 {
		return Move{}, false
	}
	pick := options[p.rng.Intn(len(options))]
	return Move{Kind: MoveAsk, TargetSeat: pick.seat, Card: pick.card}, true
}

// declareGuess declares the best-known held set, placing unknown cards on
// teammates that still hold cards.
func (p *Planner) declareGuess(game *domain.Game, player *domain.Player, mem *brain.Memory) (Move, bool) {
	var mates []int
	for _, other := range game.ActivePlayers() {
		if other.Seat != player.Seat && domain.SameTeam(other.Seat, player.Seat) {
			mates = append(mates, other.Seat)
		}
	}

	best, bestKnown := -1, -1
	sets := heldSets(player)
	for i, set := range sets {
		known := 0
		for _, c := range set.Cards {
			if seat, ok := mem.Holder(c); ok && domain.SameTeam(seat, player.Seat) {
				known++
			}
		}
		if known > bestKnown {
			best, bestKnown = i, known
		}
	}
	if best < 0 {
		return Move{}, false
	}

	set := sets[best]
	assign := make(map[domain.Card]int)
	next := 0
	for _, c := range set.Cards {
		if seat, ok := mem.Holder(c); ok && domain.SameTeam(seat, player.Seat) {
			assign[c] = seat
			continue
		}
		if len(mates) == 0 {
			assign[c] = player.Seat
			continue
		}
		assign[c] = mates[next%len(mates)]
		next++
	}
	return declareMove(game, player, set, assign), true
}

func (p *Planner) transfer(game *domain.Game, player *domain.Player) Move {
	var fallback int
	for _, other := range game.ActivePlayers() {
		if other.Seat == player.Seat {
			continue
		}
		if domain.SameTeam(other.Seat, player.Seat) {
			return Move{Kind: MoveTransfer, TargetSeat: other.Seat}
		}
		if fallback == 0 {
			fallback = other.Seat
		}
	}
	if fallback == 0 {
		return Move{}
	}
	return Move{Kind: MoveTransfer, TargetSeat: fallback}
}

func declareMove(game *domain.Game, player *domain.Player, set domain.HalfSuit, assign map[domain.Card]int) Move {
	team := domain.Team(player.Seat)
	decl := make(domain.Declaration, game.SeatCount()/2)
	for _, c := range set.Cards {
		seat, ok := assign[c]
		if !ok {
			continue
		}
		slot := (seat+team)/2 - 1
		decl[slot] = append(decl[slot], c)
	}
	return Move{Kind: MoveDeclare, Set: set.Label, Declaration: decl}
}

func hasCards(game *domain.Game, seat int) bool {
	p, err := game.PlayerBySeat(seat)
	return err == nil && len(p.Hand) > 0
}
