package assistant

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Orchestrator coordinates one conversation thread: it accepts user
// messages, dispatches them to the remote service, falls back to the local
// classifier on failure, and maintains history and session analytics.
// At most one turn is in flight at a time; a concurrent Submit is rejected
// with ErrTurnInFlight.
type Orchestrator struct {
	dispatcher Dispatcher
	prefs      *PreferenceStore
	suggest    *SuggestionEngine
	fallback   *FallbackClassifier
	typing     *TypingSimulator
	history    *ConversationHistory
	session    *SessionContext
	archive    ExchangeArchive
	log        *zap.Logger
	nowFn      func() time.Time

	mu       sync.Mutex
	inFlight bool
}

// Config wires an Orchestrator. Dispatcher and Preferences are required;
// Archive and Logger are optional.
type Config struct {
	Dispatcher  Dispatcher
	Preferences *PreferenceStore
	Archive     ExchangeArchive
	Logger      *zap.Logger
}

func NewOrchestrator(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	suggest := NewSuggestionEngine()
	return &Orchestrator{
		dispatcher: cfg.Dispatcher,
		prefs:      cfg.Preferences,
		suggest:    suggest,
		fallback:   NewFallbackClassifier(suggest),
		typing:     NewTypingSimulator(),
		history:    NewConversationHistory(),
		session:    NewSessionContext(),
		archive:    cfg.Archive,
		log:        logger,
		nowFn:      time.Now,
	}
}

// Submit runs one turn. It never returns an error for network-class
// failures; the remote dispatch converts to a fallback reply exactly once
// per turn. The only error condition is a second submission while a turn
// is still dispatching.
func (o *Orchestrator) Submit(ctx context.Context, text string, desc ContextDescriptor) (*AssistantReply, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	prefs := o.prefs.Load(ctx)

	// The typing delay runs concurrently with the dispatch; both must
	// elapse before the reply is surfaced.
	timer := time.NewTimer(o.typing.DelayFor(prefs))
	defer timer.Stop()

	remote, err := o.dispatcher.Send(ctx, DispatchRequest{
		Text:        text,
		Context:     desc,
		History:     o.history.RecentWindow(UpstreamHistoryLimit),
		Preferences: prefs,
		SessionID:   o.session.SessionID(),
	})

	var reply AssistantReply
	if err != nil {
		o.log.Warn("remote dispatch failed, answering locally",
			zap.String("sessionId", o.session.SessionID()), zap.Error(err))
		reply = o.fallback.Classify(text, desc)
	} else {
		reply = *remote
	}

	select {
	case <-timer.C:
	case <-ctx.Done():
		// caller gave up waiting; surface the reply immediately
	}

	if prefs.ShowSuggestions {
		if len(reply.Suggestions) == 0 {
			reply.Suggestions = o.suggest.Suggest(desc)
		}
	} else {
		reply.Suggestions = nil
	}

	ex := Exchange{
		UserText:      text,
		AssistantText: reply.Text,
		Intent:        reply.Intent,
		Confidence:    reply.Confidence,
		Timestamp:     o.nowFn(),
	}
	o.history.Append(ex)
	o.session.RecordInteraction(reply.Intent)

	if o.archive != nil && prefs.EnableAnalytics {
		if err := o.archive.SaveExchange(ctx, o.session.SessionID(), ex, reply.Source); err != nil {
			o.log.Warn("exchange archive write failed", zap.Error(err))
		}
	}

	return &reply, nil
}

// NewConversation clears the history for an explicit "new conversation"
// action. Preferences and session analytics are untouched.
func (o *Orchestrator) NewConversation() {
	o.history.Clear()
}

// History exposes the bounded conversation history.
func (o *Orchestrator) History() *ConversationHistory {
	return o.history
}

// Session exposes the session context and its analytics.
func (o *Orchestrator) Session() *SessionContext {
	return o.session
}

// Typing exposes the typing simulator, e.g. to set a delay override.
func (o *Orchestrator) Typing() *TypingSimulator {
	return o.typing
}
