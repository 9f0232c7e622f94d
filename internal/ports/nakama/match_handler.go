package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"literature/internal/app"
	"literature/internal/app/reconnect"
	"literature/internal/bot"
	"literature/internal/config"
	"literature/internal/domain"
	"literature/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	App       *app.Service                `json:"-"`
	Game      *domain.Game                `json:"-"` // nil until the first player joins
	Config    config.GameConfig           `json:"config"`
	Env       config.Env                  `json:"-"`

	Players ports.PlayerDirectory `json:"-"`
	Games   ports.GameDirectory   `json:"-"`
	Chat    *reconnect.Service    `json:"-"`

	Bots                 map[string]*bot.Agent `json:"-"`
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // Tick when the bot should act
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // Tick when a single player started waiting

	// Turn timer: restarted whenever the turn holder changes or the log grows.
	TurnSeat        int   `json:"turn_seat"`
	TurnLogLength   int   `json:"turn_log_length"`
	TurnStartedTick int64 `json:"turn_started_tick"`

	rng *rand.Rand
}

// code prefixes log lines so one table can be followed in the server log.
func (ms *MatchState) code() string {
	if ms.Game == nil {
		return "------"
	}
	return ms.Game.Code
}

// humanCount counts seated players that are not bots.
func (ms *MatchState) humanCount() int {
	if ms.Game == nil {
		return 0
	}
	count := 0
	for _, p := range ms.Game.Players {
		if !bot.IsBot(p.ID) {
			count++
		}
	}
	return count
}

func (ms *MatchState) connected() map[string]bool {
	out := make(map[string]bool, len(ms.Presences))
	for id := range ms.Presences {
		out[id] = true
	}
	return out
}

type matchHandler struct {
	players ports.PlayerDirectory
	games   ports.GameDirectory
	chats   ports.ChatHistory
}

func newMatchHandler(store StorageAPI) *matchHandler {
	return &matchHandler{
		players: NewPlayerStore(store),
		games:   NewGameStore(store),
		chats:   NewChatStore(store),
	}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil, app.WithRoundProgressAfterTake(cfg.RoundProgressAfterTake)),
		Config:    cfg,
		Env:       config.FromEnv(env),
		Players:   mh.players,
		Games:     mh.games,
		Chat:      reconnect.NewService(mh.players, mh.games, mh.chats),
		Bots:      make(map[string]*bot.Agent),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	label, err := matchLabel(nil, cfg.MaxPlayers)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // 1 tick per second; bot delays and turn timers count ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	game := matchState.Game
	if game == nil {
		return state, true, ""
	}
	// Seated players may always come back.
	if _, seated := game.PlayerByID(presence.GetUserId()); seated {
		return state, true, ""
	}
	if game.Status != domain.StatusLobby {
		return state, false, "Game in progress"
	}
	if game.SeatCount() < matchState.Config.MaxPlayers || findBot(game) != "" {
		return state, true, ""
	}
	return state, false, "Match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.Game != nil {
			if seated, ok := matchState.Game.PlayerByID(userID); ok {
				logger.Info("[%s] %s reconnected to seat %d", matchState.code(), seated.Name, seated.Seat)
				mh.sendHand(matchState, dispatcher, logger, seated)
				continue
			}
		}

		player := mh.loadPlayer(ctx, matchState, logger, userID, p.GetUsername())
		if err := mh.seat(matchState, logger, player); err != nil {
			logger.Warn("[%s] MatchJoin: %s could not be seated: %v", matchState.code(), userID, err)
			continue
		}
		mh.savePlayer(ctx, matchState, logger, player)
		logger.Debug("[%s] %s joined at seat %d", matchState.code(), player.Name, player.Seat)
	}

	mh.persistGame(ctx, matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

// loadPlayer returns the stored player record for userID, or a fresh one.
func (mh *matchHandler) loadPlayer(ctx context.Context, state *MatchState, logger runtime.Logger, userID, username string) *domain.Player {
	player, err := state.Players.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logger.Warn("MatchJoin: Failed to load player %s: %v", userID, err)
		}
		player = &domain.Player{ID: userID}
	}
	if player.Name = domain.CleanName(player.Name); player.Name == "" {
		player.Name = domain.CleanName(username)
	}
	if player.Name == "" {
		player.Name = userID
	}
	player.Hand, player.Score, player.GameID, player.Seat = nil, 0, "", 0
	return player
}

// seat hosts a new game or joins the lobby at the lowest free seat, replacing
// a bot when the table is full.
func (mh *matchHandler) seat(state *MatchState, logger runtime.Logger, player *domain.Player) error {
	if state.Game == nil {
		game, _ := state.App.HostGame(player)
		state.Game = game
		logger.Info("[%s] %s hosted game %s", game.Code, player.Name, game.ID)
		return nil
	}

	if state.Game.SeatCount() >= state.Config.MaxPlayers {
		botID := findBot(state.Game)
		if botID == "" {
			return domain.ErrGameFull
		}
		logger.Info("[%s] Replacing bot %s with human %s", state.code(), botID, player.ID)
		if _, _, err := state.App.LeaveGame(state.Game, botID); err != nil {
			return err
		}
		delete(state.Bots, botID)
	}

	_, err := state.App.JoinGame(state.Game, player)
	return err
}

// nextBotIdentity picks the first pooled bot that is not already seated.
func nextBotIdentity(game *domain.Game) bot.BotIdentity {
	for i := 0; ; i++ {
		identity := bot.GetBotIdentity(i)
		if _, seated := game.PlayerByID(identity.UserID); !seated {
			return identity
		}
		if i >= domain.MaxSeats {
			// Pool exhausted; fall back to a local bot id.
			return bot.BotIdentity{UserID: fmt.Sprintf("%s%d", bot.LocalBotPrefix, i), Difficulty: "good"}
		}
	}
}

func findBot(game *domain.Game) string {
	for _, p := range game.Players {
		if bot.IsBot(p.ID) {
			return p.ID
		}
	}
	return ""
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		game := matchState.Game
		if game == nil || game.Status != domain.StatusLobby {
			// Active seats are kept for reconnects.
			continue
		}
		player, seated := game.PlayerByID(userID)
		if !seated {
			continue
		}
		if left, _, err := matchState.App.LeaveGame(game, userID); err != nil || !left {
			continue
		}
		mh.savePlayer(ctx, matchState, logger, player)
		logger.Debug("[%s] %s left seat %d", matchState.code(), player.Name, player.Seat)
	}

	mh.persistGame(ctx, matchState, logger)
	if len(matchState.Presences) == 0 {
		logger.Info("[%s] MatchLeave: Terminating match with no humans.", matchState.code())
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(ctx, matchState, dispatcher, logger, msg)
	}

	if matchState.Env.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	mh.enforceTurnTimer(ctx, matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) handleMessage(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeRejected, "no game in this match")
		return
	}
	if _, seated := state.Game.PlayerByID(senderID); !seated {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeNotSeated, "not seated at this table")
		return
	}

	var (
		events []app.Event
		err    error
	)
	switch msg.GetOpCode() {
	case OpStartGame:
		events, err = state.App.StartGame(state.Game, senderID)
	case OpAskCard:
		seat, card, decodeErr := decodeAsk(msg.GetData())
		if decodeErr != nil {
			mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, decodeErr.Error())
			return
		}
		events, err = state.App.AskForCard(state.Game, senderID, seat, card)
	case OpDeclareSet:
		set, decl, decodeErr := decodeDeclare(msg.GetData())
		if decodeErr != nil {
			mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, decodeErr.Error())
			return
		}
		events, err = state.App.DeclareSet(state.Game, senderID, set, decl)
	case OpTransferTurn:
		seat, decodeErr := decodeTransfer(msg.GetData())
		if decodeErr != nil {
			mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, decodeErr.Error())
			return
		}
		events, err = state.App.TransferTurn(state.Game, senderID, seat)
	case OpChat:
		mh.handleChat(ctx, state, dispatcher, logger, msg)
		return
	default:
		logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		return
	}

	if err != nil {
		code := ErrCodeInternal
		switch {
		case app.IsPreconditionViolation(err):
			code = ErrCodeRejected
		case errors.Is(err, domain.ErrInvalidCardOwnership):
			code = ErrCodeBadRequest
		}
		logger.Warn("[%s] %s: op %d rejected: %v", state.code(), senderID, msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
		return
	}
	mh.applyEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleChat(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	text, err := decodeChat(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, err.Error())
		return
	}
	message, err := state.Chat.AddChat(ctx, state.Game.ID, senderID, text)
	if err != nil {
		code := ErrCodeInternal
		if errors.Is(err, reconnect.ErrEmptyChat) || errors.Is(err, reconnect.ErrChatTooLong) {
			code = ErrCodeBadRequest
		}
		mh.sendError(state, dispatcher, logger, senderID, code, err.Error())
		return
	}
	data, _ := json.Marshal(message)
	dispatcher.BroadcastMessage(OpChatMessage, data, nil, nil, true)
}

// applyEvents logs, dispatches and persists the outcome of an accepted action.
func (mh *matchHandler) applyEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	reseated := false
	for _, ev := range events {
		logEvent(logger, state.Game, ev)
		switch ev.Kind {
		case app.EventPlayerJoined, app.EventPlayerLeft:
			reseated = true
			continue
		case app.EventGameStarted, app.EventGameEnded:
			mh.saveSeatedPlayers(ctx, state, logger)
		}
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	mh.persistGame(ctx, state, logger)
	mh.updateLabel(state, dispatcher, logger)
	if reseated {
		mh.broadcastSnapshot(state, dispatcher, logger)
	}
}

// applyMove executes a bot or timer move on behalf of actorID.
func (mh *matchHandler) applyMove(state *MatchState, actorID string, move bot.Move) ([]app.Event, error) {
	switch move.Kind {
	case bot.MoveAsk:
		return state.App.AskForCard(state.Game, actorID, move.TargetSeat, move.Card)
	case bot.MoveDeclare:
		return state.App.DeclareSet(state.Game, actorID, move.Set, move.Declaration)
	case bot.MoveTransfer:
		return state.App.TransferTurn(state.Game, actorID, move.TargetSeat)
	}
	return nil, nil
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil {
		return
	}

	// 1. Auto-fill the lobby up to the minimum table size when one human waits alone.
	if game.Status == domain.StatusLobby {
		if state.humanCount() != 1 {
			state.LastSinglePlayerTick = 0
			return
		}
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("[%s] processBots: Single player detected, starting auto-fill timer.", state.code())
		}
		if state.Tick-state.LastSinglePlayerTick < int64(state.Env.BotAutoFillDelay) {
			return
		}

		added := false
		for game.SeatCount() < state.Config.MinPlayers {
			identity := nextBotIdentity(game)
			player := &domain.Player{ID: identity.UserID, Name: bot.GetBotDisplayName(identity.UserID)}
			if _, err := state.App.JoinGame(game, player); err != nil {
				logger.Error("[%s] processBots: Failed to seat bot %s: %v", state.code(), identity.UserID, err)
				break
			}
			agent, err := bot.NewAgent(player.ID, player.Seat)
			if err != nil {
				logger.Error("[%s] Failed to create bot agent for %s: %v", state.code(), player.ID, err)
			} else {
				state.Bots[player.ID] = agent
			}
			logger.Info("[%s] processBots: Added bot %s (%s) to seat %d", state.code(), player.Name, player.ID, player.Seat)
			added = true
		}
		if added {
			mh.persistGame(ctx, state, logger)
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastSnapshot(state, dispatcher, logger)
		}
		state.LastSinglePlayerTick = 0
		return
	}

	// 2. Handle bot turns in-game.
	if game.Status != domain.StatusActive {
		return
	}
	current, err := game.PlayerBySeat(game.CurrentTurn)
	if err != nil || !bot.IsBot(current.ID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.rng.Intn(state.Env.BotMaxDelay-state.Env.BotMinDelay+1) + state.Env.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("[%s] processBots: Bot %s (seat %d) will act at tick %d (current %d)", state.code(), current.ID, current.Seat, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[current.ID]
	if !exists {
		agent, err = bot.NewAgent(current.ID, current.Seat)
		if err != nil {
			logger.Error("[%s] processBots: Failed to create fallback agent: %v", state.code(), err)
			return
		}
		state.Bots[current.ID] = agent
	}

	move, err := agent.Play(game)
	if err != nil {
		logger.Error("[%s] processBots: Bot %s failed to calculate move: %v", state.code(), current.ID, err)
		return
	}
	mh.playMove(ctx, state, dispatcher, logger, current, move)
}

// playMove applies move for player, passing the turn on if the move is rejected
// so that a confused bot cannot stall the table.
func (mh *matchHandler) playMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, player *domain.Player, move bot.Move) {
	events, err := mh.applyMove(state, player.ID, move)
	if err != nil {
		logger.Warn("[%s] %s move %+v rejected: %v", state.code(), player.Name, move, err)
		next := domain.OpponentSeat(player.Seat, state.Game.SeatCount())
		events, err = state.App.TransferTurn(state.Game, player.ID, next)
		if err != nil {
			logger.Error("[%s] %s could not pass the turn: %v", state.code(), player.Name, err)
			return
		}
	}
	mh.applyEvents(ctx, state, dispatcher, logger, events)
}

// enforceTurnTimer plays a cautious move for a human who sat on the turn too long.
func (mh *matchHandler) enforceTurnTimer(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := state.Game
	if game == nil || game.Status != domain.StatusActive || state.Config.TurnDurationSeconds <= 0 {
		return
	}
	if state.TurnSeat != game.CurrentTurn || state.TurnLogLength != len(game.Log) {
		state.TurnSeat = game.CurrentTurn
		state.TurnLogLength = len(game.Log)
		state.TurnStartedTick = state.Tick
		return
	}
	if state.Tick-state.TurnStartedTick < int64(state.Config.TurnDurationSeconds) {
		return
	}

	current, err := game.PlayerBySeat(game.CurrentTurn)
	if err != nil || bot.IsBot(current.ID) {
		return
	}
	logger.Info("[%s] Turn timer expired for %s (seat %d)", state.code(), current.Name, current.Seat)
	brain, err := bot.NewBrain(bot.BotLevelEasy, current.Seat, state.rng)
	if err != nil {
		logger.Error("[%s] Failed to create timer brain: %v", state.code(), err)
		return
	}
	move, err := brain.CalculateMove(game, current)
	if err != nil {
		logger.Error("[%s] Timer move failed: %v", state.code(), err)
		return
	}
	state.TurnStartedTick = state.Tick
	mh.playMove(ctx, state, dispatcher, logger, current, move)
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCode(ev.Kind)
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for disconnected players or bots must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := json.Marshal(buildSnapshot(state.Game, state.connected(), state.Tick))
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, data, nil, nil, true)
}

// sendHand sends a reconnecting player the snapshot and their own hand.
func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, player *domain.Player) {
	presence, ok := state.Presences[player.ID]
	if !ok {
		return
	}
	hand := append([]domain.Card{}, player.Hand...)
	domain.SortHand(hand)
	data, err := json.Marshal(app.HandDealtPayload{PlayerID: player.ID, Hand: hand})
	if err != nil {
		logger.Error("Failed to marshal hand: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpHand, data, []runtime.Presence{presence}, nil, true)
}

// sendError sends an ErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	data, err := json.Marshal(ErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal ErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.Game, state.Config.MaxPlayers)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) persistGame(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Game == nil || state.Games == nil {
		return
	}
	if err := state.Games.Save(ctx, state.Game); err != nil {
		logger.Error("[%s] Failed to save game: %v", state.code(), err)
	}
}

func (mh *matchHandler) savePlayer(ctx context.Context, state *MatchState, logger runtime.Logger, player *domain.Player) {
	if state.Players == nil || bot.IsBot(player.ID) {
		return
	}
	if err := state.Players.Save(ctx, player); err != nil {
		logger.Error("[%s] Failed to save player %s: %v", state.code(), player.ID, err)
	}
}

func (mh *matchHandler) saveSeatedPlayers(ctx context.Context, state *MatchState, logger runtime.Logger) {
	for _, p := range state.Game.Players {
		mh.savePlayer(ctx, state, logger, p)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.persistGame(ctx, matchState, logger)
	}
	logger.Debug("MatchTerminate: Match terminated with grace %d", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// seatName renders a seat for the server log.
func seatName(game *domain.Game, seat int) string {
	if p, err := game.PlayerBySeat(seat); err == nil {
		return fmt.Sprintf("%s(%d)", p.Name, seat)
	}
	return fmt.Sprintf("seat %d", seat)
}

// logEvent writes one line per accepted action at debug level.
func logEvent(logger runtime.Logger, game *domain.Game, ev app.Event) {
	code := game.Code
	switch p := ev.Payload.(type) {
	case app.CardTakenPayload:
		logger.Debug("[%s] %s took %s from %s", code, seatName(game, p.FromSeat), p.Card, seatName(game, p.ToSeat))
	case app.CardAskedPayload:
		logger.Debug("[%s] %s asked %s for %s; turn passes", code, seatName(game, p.FromSeat), seatName(game, p.ToSeat), p.Card)
	case app.TurnTransferredPayload:
		logger.Debug("[%s] %s handed the turn to %s", code, seatName(game, p.FromSeat), seatName(game, p.NextTurnSeat))
	case app.SetDeclaredPayload:
		logger.Debug("[%s] %s declared %s: correct=%t, point to %s", code, seatName(game, p.Seat), p.Set, p.Correct, seatName(game, p.ScorerSeat))
	case app.GameStartedPayload:
		logger.Debug("[%s] game started with %d players", code, len(p.HandSizes))
	case app.GameEndedPayload:
		logger.Debug("[%s] game over: teams %d-%d, winner %d", code, p.TeamScores[domain.TeamEven], p.TeamScores[domain.TeamOdd], p.WinningTeam)
	case app.HandDealtPayload:
		// Hands stay out of the log.
	default:
		logger.Debug("[%s] %s", code, ev.Kind)
	}
}
