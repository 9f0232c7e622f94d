package bot

import (
	"literature/internal/domain"
)

// MoveKind is the action a bot chose for its turn.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveAsk
	MoveDeclare
	MoveTransfer
)

// Move represents the decision made by the AI.
type Move struct {
	Kind        MoveKind
	TargetSeat  int
	Card        domain.Card
	Set         string
	Declaration domain.Declaration
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(game *domain.Game, player *domain.Player) (Move, error)
}
