package app

import "literature/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined    EventKind = "player_joined"
	EventPlayerLeft      EventKind = "player_left"
	EventGameStarted     EventKind = "game_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventCardTaken       EventKind = "card_taken"
	EventCardAsked       EventKind = "card_asked"
	EventTurnTransferred EventKind = "turn_transferred"
	EventSetDeclared     EventKind = "set_declared"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
	Owner    bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	OwnerID  string `json:"owner_id"`
}

type GameStartedPayload struct {
	Status        domain.Status `json:"status"`
	FirstTurnSeat int           `json:"first_turn_seat"`
	HandSizes     map[int]int   `json:"hand_sizes"`
}

// HandDealtPayload carries a player's private hand after any change to it.
type HandDealtPayload struct {
	PlayerID string        `json:"player_id"`
	Hand     []domain.Card `json:"hand"`
}

type CardTakenPayload struct {
	FromSeat     int         `json:"from_seat"`
	ToSeat       int         `json:"to_seat"`
	Card         domain.Card `json:"card"`
	NextTurnSeat int         `json:"next_turn_seat"`
}

type CardAskedPayload struct {
	FromSeat     int         `json:"from_seat"`
	ToSeat       int         `json:"to_seat"`
	Card         domain.Card `json:"card"`
	NextTurnSeat int         `json:"next_turn_seat"`
}

type TurnTransferredPayload struct {
	FromSeat     int `json:"from_seat"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type SetDeclaredPayload struct {
	Seat         int                 `json:"seat"`
	Set          string              `json:"set"`
	Correct      bool                `json:"correct"`
	ScorerSeat   int                 `json:"scorer_seat"`
	Holders      map[domain.Card]int `json:"holders"`
	NextTurnSeat int                 `json:"next_turn_seat"`
}

type GameEndedPayload struct {
	Scores     map[int]int `json:"scores"` // seat -> points
	TeamScores [2]int      `json:"team_scores"`
	// WinningTeam is -1 on a draw.
	WinningTeam int `json:"winning_team"`
}
