package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"literature/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcQuickMatch:     rpcQuickMatch,
		RpcRegisterPlayer: rpcRegisterPlayer,
		RpcReconnect:      rpcReconnect,
		RpcVivoxToken:     RpcGetVivoxToken,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// callerID returns the authenticated user, or an error for server-to-server calls.
func callerID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("user session required", codeInvalidArgument)
	}
	return userID, nil
}

// requestedPlayerID resolves whose record a call may touch. A session caller
// only ever gets their own id; a payload id naming someone else is refused.
// Server-to-server calls carry no session and may name any player.
func requestedPlayerID(ctx context.Context, requested string) (id string, session bool, err error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return requested, false, nil
	}
	if requested != "" && requested != userID {
		return "", true, runtime.NewError("player_id does not match session", codePermissionDenied)
	}
	return userID, true, nil
}

// lookupError maps a directory failure to a gRPC-coded runtime error.
func lookupError(err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return runtime.NewError("not found", codeNotFound)
	}
	return runtime.NewError("internal error", codeInternal)
}

func respond(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}
