package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"literature/internal/domain"

	"github.com/google/uuid"
)

// Service contains Literature use-cases operating on domain state.
//
// Every mutating call holds the game's own lock for its whole duration, so
// actions against one game are applied one at a time while different games
// proceed independently.
type Service struct {
	mu  sync.Mutex // guards rng
	rng *rand.Rand

	newDeck                func() domain.Deck
	roundProgressAfterTake bool
}

// Option customises a Service.
type Option func(*Service)

// WithDeck overrides the deck used for new games.
func WithDeck(newDeck func() domain.Deck) Option {
	return func(s *Service) { s.newDeck = newDeck }
}

// WithRoundProgressAfterTake re-evaluates round progress after a successful
// card request, which can empty the giver's hand.
func WithRoundProgressAfterTake(enabled bool) Option {
	return func(s *Service) { s.roundProgressAfterTake = enabled }
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, opts ...Option) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Service{rng: rng}
	s.newDeck = func() domain.Deck {
		return domain.NewShuffledDeck(rand.New(rand.NewSource(s.int63())))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrNotOwner              = errors.New("actor is not game owner")
	ErrNotInLobby            = errors.New("game not in lobby")
	ErrNotPlaying            = errors.New("game not in active phase")
	ErrTooFewPlayers         = errors.New("not enough players to start")
	ErrUnknownPlayer         = errors.New("player not seated")
	ErrNotYourTurn           = errors.New("actor does not hold the turn")
	ErrSamePlayer            = errors.New("actor cannot target themselves")
	ErrUnknownSet            = errors.New("unknown set")
	ErrCardNotInSet          = errors.New("declared card does not belong to set")
	ErrInvalidDeclaration    = errors.New("declaration has more slots than team seats")
	ErrIncompleteDeclaration = errors.New("declaration must name every card of the set once")
	ErrSetDeclared           = errors.New("set already declared")
)

var preconditionErrors = []error{
	ErrNotOwner, ErrNotInLobby, ErrNotPlaying, ErrTooFewPlayers, ErrUnknownPlayer,
	ErrNotYourTurn, ErrSamePlayer, ErrUnknownSet, ErrCardNotInSet, ErrInvalidDeclaration,
	ErrIncompleteDeclaration, ErrSetDeclared,
	domain.ErrUnknownCard, domain.ErrSeatTaken, domain.ErrInvalidSeat, domain.ErrGameFull,
	domain.ErrInvalidSeatCount, domain.ErrNotInLobby,
}

// IsPreconditionViolation reports whether err rejects an action the caller was
// not allowed to take, as opposed to a data or infrastructure failure.
func IsPreconditionViolation(err error) bool {
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HostGame opens a new lobby owned by owner.
func (s *Service) HostGame(owner *domain.Player) (*domain.Game, []Event) {
	game := domain.NewGame(uuid.NewString(), s.joinCode(), owner, s.newDeck())
	return game, []Event{joinedEvent(game, owner)}
}

// JoinGame seats player in the lobby.
func (s *Service) JoinGame(game *domain.Game, player *domain.Player) ([]Event, error) {
	game.Lock()
	defer game.Unlock()

	if game.Status != domain.StatusLobby {
		return nil, ErrNotInLobby
	}
	if err := game.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("join game %s: %w", game.Code, err)
	}
	return []Event{joinedEvent(game, player)}, nil
}

// LeaveGame removes a player from the lobby. It reports whether anyone left.
func (s *Service) LeaveGame(game *domain.Game, playerID string) (bool, []Event, error) {
	game.Lock()
	defer game.Unlock()

	if game.Status != domain.StatusLobby {
		return false, nil, ErrNotInLobby
	}
	if !game.RemovePlayer(playerID) {
		return false, nil, nil
	}
	return true, []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerID: playerID, OwnerID: game.OwnerID},
	}}, nil
}

// StartGame deals the hands and hands seat 1 the turn.
func (s *Service) StartGame(game *domain.Game, actorID string) ([]Event, error) {
	game.Lock()
	defer game.Unlock()

	if game.Status != domain.StatusLobby {
		return nil, ErrNotInLobby
	}
	if actorID != game.OwnerID {
		return nil, ErrNotOwner
	}
	if game.SeatCount() < MinPlayersToStartGame {
		return nil, ErrTooFewPlayers
	}
	if err := game.Prepare(); err != nil {
		return nil, fmt.Errorf("start game %s: %w", game.Code, err)
	}

	events := make([]Event, 0, game.SeatCount()+1)
	sizes := make(map[int]int, game.SeatCount())
	for _, p := range game.Players {
		events = append(events, handEvent(p))
		sizes[p.Seat] = len(p.Hand)
	}
	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Status: game.Status, FirstTurnSeat: game.CurrentTurn, HandSizes: sizes},
	})
	return events, nil
}

// AskForCard has the turn holder request card from the player at targetSeat.
func (s *Service) AskForCard(game *domain.Game, actorID string, targetSeat int, card domain.Card) ([]Event, error) {
	game.Lock()
	defer game.Unlock()

	actor, err := turnHolder(game, actorID)
	if err != nil {
		return nil, err
	}
	target, err := otherPlayer(game, actor, targetSeat)
	if err != nil {
		return nil, err
	}
	if !card.Valid() {
		return nil, domain.ErrUnknownCard
	}

	if !game.RequestCard(actor, target, card) {
		return []Event{{
			Kind: EventCardAsked,
			Payload: CardAskedPayload{
				FromSeat: actor.Seat, ToSeat: target.Seat, Card: card, NextTurnSeat: game.CurrentTurn,
			},
		}}, nil
	}

	if s.roundProgressAfterTake {
		game.ProcessRound()
	}
	events := []Event{
		{
			Kind: EventCardTaken,
			Payload: CardTakenPayload{
				FromSeat: actor.Seat, ToSeat: target.Seat, Card: card, NextTurnSeat: game.CurrentTurn,
			},
		},
		handEvent(actor),
		handEvent(target),
	}
	return appendGameEnded(game, events), nil
}

// TransferTurn hands the turn from the turn holder to the player at targetSeat.
func (s *Service) TransferTurn(game *domain.Game, actorID string, targetSeat int) ([]Event, error) {
	game.Lock()
	defer game.Unlock()

	actor, err := turnHolder(game, actorID)
	if err != nil {
		return nil, err
	}
	target, err := otherPlayer(game, actor, targetSeat)
	if err != nil {
		return nil, err
	}

	game.TransferTurn(actor, target)
	return []Event{{
		Kind:    EventTurnTransferred,
		Payload: TurnTransferredPayload{FromSeat: actor.Seat, NextTurnSeat: game.CurrentTurn},
	}}, nil
}

// DeclareSet has the turn holder claim where every card of set sits on their team.
func (s *Service) DeclareSet(game *domain.Game, actorID, set string, decl domain.Declaration) ([]Event, error) {
	game.Lock()
	defer game.Unlock()

	actor, err := turnHolder(game, actorID)
	if err != nil {
		return nil, err
	}
	halfSuit, ok := domain.HalfSuitByLabel(set)
	if !ok {
		return nil, ErrUnknownSet
	}
	for _, c := range decl.Cards() {
		if !halfSuit.Contains(c) {
			return nil, fmt.Errorf("%w: %s not in %s", ErrCardNotInSet, c, set)
		}
	}
	if len(decl) > game.SeatCount()/2 {
		return nil, ErrInvalidDeclaration
	}
	if setDiscarded(game, halfSuit) {
		return nil, fmt.Errorf("%w: %s", ErrSetDeclared, set)
	}
	if err := checkComplete(halfSuit, decl); err != nil {
		return nil, err
	}

	result, err := game.DeclareSet(actor, set, decl)
	if err != nil {
		return nil, fmt.Errorf("declare %s in game %s: %w", set, game.Code, err)
	}

	events := []Event{{
		Kind: EventSetDeclared,
		Payload: SetDeclaredPayload{
			Seat:         actor.Seat,
			Set:          set,
			Correct:      result.Correct,
			ScorerSeat:   result.ScorerSeat,
			Holders:      result.Holders,
			NextTurnSeat: game.CurrentTurn,
		},
	}}
	touched := make(map[int]bool)
	for _, seat := range result.Holders {
		if touched[seat] {
			continue
		}
		touched[seat] = true
		if p, err := game.PlayerBySeat(seat); err == nil {
			events = append(events, handEvent(p))
		}
	}
	return appendGameEnded(game, events), nil
}

func turnHolder(game *domain.Game, actorID string) (*domain.Player, error) {
	if game.Status != domain.StatusActive {
		return nil, ErrNotPlaying
	}
	actor, ok := game.PlayerByID(actorID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentTurn != actor.Seat {
		return nil, ErrNotYourTurn
	}
	return actor, nil
}

func otherPlayer(game *domain.Game, actor *domain.Player, seat int) (*domain.Player, error) {
	target, err := game.PlayerBySeat(seat)
	if err != nil {
		return nil, ErrUnknownPlayer
	}
	if target.ID == actor.ID {
		return nil, ErrSamePlayer
	}
	return target, nil
}

func appendGameEnded(game *domain.Game, events []Event) []Event {
	if game.Status != domain.StatusOver {
		return events
	}
	scores := make(map[int]int, game.SeatCount())
	for _, p := range game.Players {
		scores[p.Seat] = p.Score
	}
	teams := [2]int{game.TeamScore(domain.TeamEven), game.TeamScore(domain.TeamOdd)}
	winner := -1
	switch {
	case teams[domain.TeamEven] > teams[domain.TeamOdd]:
		winner = domain.TeamEven
	case teams[domain.TeamOdd] > teams[domain.TeamEven]:
		winner = domain.TeamOdd
	}
	return append(events, Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Scores: scores, TeamScores: teams, WinningTeam: winner},
	})
}

func joinedEvent(game *domain.Game, p *domain.Player) Event {
	return Event{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{PlayerID: p.ID, Name: p.Name, Seat: p.Seat, Owner: p.ID == game.OwnerID},
	}
}

func handEvent(p *domain.Player) Event {
	hand := append([]domain.Card{}, p.Hand...)
	domain.SortHand(hand)
	return Event{
		Kind:       EventHandDealt,
		Payload:    HandDealtPayload{PlayerID: p.ID, Hand: hand},
		Recipients: []string{p.ID},
	}
}

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (s *Service) joinCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := make([]byte, domain.JoinCodeLength)
	for i := range b {
		b[i] = joinCodeAlphabet[s.rng.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}

func (s *Service) int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}

func setDiscarded(game *domain.Game, set domain.HalfSuit) bool {
	for _, c := range game.Discarded {
		if set.Contains(c) {
			return true
		}
	}
	return false
}

// checkComplete requires decl to name each card of set exactly once.
func checkComplete(set domain.HalfSuit, decl domain.Declaration) error {
	named := make(map[domain.Card]bool, len(set.Cards))
	for _, c := range decl.Cards() {
		if named[c] {
			return fmt.Errorf("%w: %s named twice", ErrIncompleteDeclaration, c)
		}
		named[c] = true
	}
	for _, c := range set.Cards {
		if !named[c] {
			return fmt.Errorf("%w: %s missing", ErrIncompleteDeclaration, c)
		}
	}
	return nil
}
