package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/workhub-hr/assistant-core/internal/ai"
	"github.com/workhub-hr/assistant-core/internal/assistant"
)

// Handler serves the remote assistant endpoints consumed by the client
// dispatcher.
type Handler struct {
	engine  *Engine
	archive assistant.ExchangeArchive // optional
	log     *zap.Logger
}

func NewHandler(engine *Engine, archive assistant.ExchangeArchive, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, archive: archive, log: logger}
}

type chatPayload struct {
	Message string `json:"message"`
	Context struct {
		Page            string `json:"page"`
		OnboardingPhase int    `json:"onboardingPhase"`
		EmployeeStatus  string `json:"employeeStatus"`
		SessionID       string `json:"sessionId"`
	} `json:"context"`
	History []struct {
		UserText      string `json:"userText"`
		AssistantText string `json:"assistantText"`
	} `json:"history"`
}

// HandleChat answers POST /chat.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if payload.Message == "" {
		http.Error(w, "missing message", http.StatusBadRequest)
		return
	}

	desc := assistant.ContextDescriptor{
		Page:            payload.Context.Page,
		OnboardingPhase: payload.Context.OnboardingPhase,
		EmployeeStatus:  payload.Context.EmployeeStatus,
	}
	history := make([]ai.Message, 0, len(payload.History)*2)
	for _, ex := range payload.History {
		history = append(history,
			ai.Message{Role: "user", Text: ex.UserText},
			ai.Message{Role: "assistant", Text: ex.AssistantText},
		)
	}

	resp := h.engine.Answer(r.Context(), payload.Message, desc, history)

	if h.archive != nil {
		sessionID := payload.Context.SessionID
		if sessionID == "" {
			sessionID = "anonymous"
		}
		ex := assistant.Exchange{
			UserText:      payload.Message,
			AssistantText: resp.Response,
			Intent:        resp.Intent,
			Confidence:    resp.Confidence,
			Timestamp:     time.Now(),
		}
		if err := h.archive.SaveExchange(r.Context(), sessionID, ex, assistant.SourceRemote); err != nil {
			h.log.Warn("exchange archive write failed", zap.Error(err))
		}
	}

	writeJSON(w, resp)
}

// HandleSuggestions answers POST /suggestions.
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Context assistant.ContextDescriptor `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{
		"suggestions": h.engine.Suggest(payload.Context),
	})
}

// HandleHealth answers GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"features":  []string{"intent_detection", "context_awareness", "contextual_suggestions"},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
