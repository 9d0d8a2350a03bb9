package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhub-hr/assistant-core/internal/assistant"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewEngine(nil, nil), nil, nil))
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func TestHandler_Chat(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/chat", map[string]any{
		"message": "what is my leave balance",
		"context": map[string]any{"sessionId": "s1"},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "leave_balance", out.Intent)
	assert.NotEmpty(t, out.Response)
	assert.NotEmpty(t, out.Suggestions)
}

func TestHandler_ChatRejectsEmptyMessage(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/chat", map[string]any{"message": ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Suggestions(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/suggestions", map[string]any{
		"context": map[string]any{"page": "attendance"},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Suggestions, 4)
	assert.Equal(t, "Mark attendance", out.Suggestions[0])
}

func TestHandler_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// End-to-end: the client dispatcher talking to this server.
func TestHandler_DispatcherRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	d := assistant.NewHTTPDispatcher(assistant.DispatcherConfig{BaseURL: ts.URL})
	reply, err := d.Send(context.Background(), assistant.DispatchRequest{
		Text:        "show my latest payslip",
		Context:     assistant.ContextDescriptor{Page: "payroll"},
		Preferences: assistant.DefaultPreferences(),
		SessionID:   "round-trip",
	})
	require.NoError(t, err)

	assert.Equal(t, assistant.SourceRemote, reply.Source)
	assert.Equal(t, "payroll_current", reply.Intent)
	assert.NotEmpty(t, reply.Suggestions)
}

func TestHandler_ChatArchivesExchange(t *testing.T) {
	archive := &memoryArchive{}
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewEngine(nil, nil), archive, nil))
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/chat", map[string]any{
		"message": "what is my leave balance",
		"context": map[string]any{"sessionId": "s9"},
	})
	resp.Body.Close()

	require.Len(t, archive.saved, 1)
	assert.Equal(t, "s9", archive.sessions[0])
	assert.Equal(t, "leave_balance", archive.saved[0].Intent)
}

type memoryArchive struct {
	saved    []assistant.Exchange
	sessions []string
}

func (a *memoryArchive) SaveExchange(_ context.Context, sessionID string, ex assistant.Exchange, _ assistant.ReplySource) error {
	a.saved = append(a.saved, ex)
	a.sessions = append(a.sessions, sessionID)
	return nil
}

func (a *memoryArchive) RecentExchanges(context.Context, string, int) ([]assistant.Exchange, error) {
	return a.saved, nil
}
