package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UpstreamHistoryLimit caps the trailing history window sent with each
// request. Local retention is larger; this only bounds payload size.
const UpstreamHistoryLimit = 5

const defaultDispatchTimeout = 5 * time.Second

// HTTPDispatcher talks to the remote assistant service over HTTP.
// Every call is bounded by the client timeout; an expired wait is reported
// as ErrRemoteUnavailable.
type HTTPDispatcher struct {
	baseURL string
	token   string
	client  *http.Client
	log     *zap.Logger
}

// DispatcherConfig configures an HTTPDispatcher. Token is the bearer
// credential supplied by the embedding application.
type DispatcherConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewHTTPDispatcher(cfg DispatcherConfig) *HTTPDispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPDispatcher{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
		log:     logger,
	}
}

type chatContext struct {
	Page            string      `json:"page,omitempty"`
	OnboardingPhase int         `json:"onboardingPhase,omitempty"`
	EmployeeStatus  string      `json:"employeeStatus,omitempty"`
	Timestamp       string      `json:"timestamp"`
	SessionID       string      `json:"sessionId"`
	Preferences     Preferences `json:"preferences"`
}

type chatExchange struct {
	UserText      string `json:"userText"`
	AssistantText string `json:"assistantText"`
	Intent        string `json:"intent,omitempty"`
}

type chatRequest struct {
	Message string         `json:"message"`
	Context chatContext    `json:"context"`
	History []chatExchange `json:"history,omitempty"`
}

// chatResponse accepts both "response" and "message" as the reply text key;
// deployed service versions differ.
type chatResponse struct {
	Response    string         `json:"response"`
	Message     string         `json:"message"`
	Intent      string         `json:"intent"`
	Confidence  *float64       `json:"confidence"`
	Data        map[string]any `json:"data"`
	Suggestions []string       `json:"suggestions"`
}

// Send submits one turn and normalizes the response. The history window is
// truncated to the last UpstreamHistoryLimit exchanges.
func (d *HTTPDispatcher) Send(ctx context.Context, req DispatchRequest) (*AssistantReply, error) {
	history := req.History
	if len(history) > UpstreamHistoryLimit {
		history = history[len(history)-UpstreamHistoryLimit:]
	}
	wireHistory := make([]chatExchange, 0, len(history))
	for _, ex := range history {
		wireHistory = append(wireHistory, chatExchange{
			UserText:      ex.UserText,
			AssistantText: ex.AssistantText,
			Intent:        ex.Intent,
		})
	}

	body := chatRequest{
		Message: req.Text,
		Context: chatContext{
			Page:            req.Context.Page,
			OnboardingPhase: req.Context.OnboardingPhase,
			EmployeeStatus:  req.Context.EmployeeStatus,
			Timestamp:       time.Now().UTC().Format(time.RFC3339),
			SessionID:       req.SessionID,
			Preferences:     req.Preferences,
		},
		History: wireHistory,
	}

	raw, err := d.post(ctx, "/chat", body)
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteProtocol, err)
	}
	text := resp.Response
	if text == "" {
		text = resp.Message
	}
	if text == "" {
		return nil, fmt.Errorf("%w: reply text missing", ErrRemoteProtocol)
	}

	confidence := 1.0
	if resp.Confidence != nil {
		confidence = *resp.Confidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &AssistantReply{
		Text:        text,
		Data:        resp.Data,
		Suggestions: resp.Suggestions,
		Confidence:  confidence,
		Intent:      resp.Intent,
		Source:      SourceRemote,
	}, nil
}

// Suggestions fetches the remote suggestion list for a context.
func (d *HTTPDispatcher) Suggestions(ctx context.Context, desc ContextDescriptor) ([]string, error) {
	body := map[string]any{"context": desc}
	raw, err := d.post(ctx, "/suggestions", body)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteProtocol, err)
	}
	return resp.Suggestions, nil
}

func (d *HTTPDispatcher) post(ctx context.Context, path string, body any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Warn("remote call failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		d.log.Warn("remote returned non-2xx",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return raw, nil
}

var _ Dispatcher = (*HTTPDispatcher)(nil)
