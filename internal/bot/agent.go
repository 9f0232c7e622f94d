package bot

import (
	"literature/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	player, ok := game.PlayerByID(a.ID)
	if !ok {
		// Agent is not part of this game
		return Move{}, nil
	}
	return a.Strategy.CalculateMove(game, player)
}
