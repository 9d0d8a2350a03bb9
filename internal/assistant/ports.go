package assistant

import (
	"context"
	"errors"
)

var (
	// ErrRemoteUnavailable covers network failures, timeouts and non-2xx
	// responses from the remote assistant service.
	ErrRemoteUnavailable = errors.New("assistant: remote unavailable")

	// ErrRemoteProtocol covers 2xx responses whose body cannot be parsed
	// or is missing required fields.
	ErrRemoteProtocol = errors.New("assistant: remote protocol error")

	// ErrTurnInFlight is returned when a message is submitted while a
	// previous turn is still being dispatched.
	ErrTurnInFlight = errors.New("assistant: turn already in flight")
)

// DispatchRequest is the enriched outgoing request for one turn.
type DispatchRequest struct {
	Text        string
	Context     ContextDescriptor
	History     []Exchange // trailing window, capped by the dispatcher
	Preferences Preferences
	SessionID   string
}

// Dispatcher sends a turn to the remote assistant service. Implementations
// must bound their wait and return ErrRemoteUnavailable or ErrRemoteProtocol
// on failure; they never fabricate replies.
type Dispatcher interface {
	Send(ctx context.Context, req DispatchRequest) (*AssistantReply, error)
}

// BlobStore is the key-value persistence port used for preferences.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ExchangeArchive persists completed exchanges for later analytics.
// All writes are best-effort from the orchestrator's point of view.
type ExchangeArchive interface {
	SaveExchange(ctx context.Context, sessionID string, ex Exchange, source ReplySource) error
	RecentExchanges(ctx context.Context, sessionID string, limit int) ([]Exchange, error)
}
