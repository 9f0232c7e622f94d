package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"
	// RpcRegisterPlayer creates or updates the caller's player record.
	RpcRegisterPlayer = "register_player"
	// RpcReconnect returns the caller's game, hand, log and chat.
	RpcReconnect = "reconnect"
	// RpcVivoxToken issues a voice token for the caller's team channel.
	RpcVivoxToken = "vivox_token"

	// MatchNameLiterature is the authoritative match handler name registered with Nakama.
	MatchNameLiterature = "literature_match"

	// MatchLabelKeyOpenSeats is the label key quick match filters on.
	MatchLabelKeyOpenSeats = "open"
)

// Storage collections.
const (
	CollectionPlayers = "literature_players"
	CollectionGames   = "literature_games"
	CollectionChat    = "literature_chat"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpAskCard      int64 = 2
	OpDeclareSet   int64 = 3
	OpTransferTurn int64 = 4
	OpChat         int64 = 5

	// Server -> Client events
	OpStateSnapshot   int64 = 101
	OpHand            int64 = 102 // send privately
	OpGameStarted     int64 = 103
	OpCardTaken       int64 = 104
	OpCardAsked       int64 = 105
	OpTurnTransferred int64 = 106
	OpSetDeclared     int64 = 107
	OpGameOver        int64 = 108
	OpChatMessage     int64 = 109
	OpError           int64 = 110
)

// Error codes carried by OpError.
const (
	ErrCodeBadRequest = 400
	ErrCodeNotSeated  = 403
	ErrCodeRejected   = 409
	ErrCodeInternal   = 500
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeInternal           = 13
)
