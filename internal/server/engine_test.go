package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhub-hr/assistant-core/internal/ai"
	"github.com/workhub-hr/assistant-core/internal/assistant"
)

func TestEngine_DetectIntent(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		message string
		want    string
	}{
		{"what is my leave balance", "leave_balance"},
		{"I want to apply for leave next week", "leave_request"},
		{"did I get checked in today", "attendance_today"},
		{"show my latest payslip", "payroll_current"},
		{"how much income tax am I paying", "tax_info"},
		{"what is my provident fund balance", "pf_info"},
		{"what can you do", "help_general"},
	}
	for _, c := range cases {
		intent, confidence := e.DetectIntent(c.message, assistant.ContextDescriptor{})
		assert.Equal(t, c.want, intent, "message %q", c.message)
		assert.Greater(t, confidence, 0.0, "message %q", c.message)
	}
}

func TestEngine_DetectIntentNoMatch(t *testing.T) {
	e := NewEngine(nil, nil)
	intent, confidence := e.DetectIntent("completely unrelated chatter", assistant.ContextDescriptor{})
	assert.Empty(t, intent)
	assert.Zero(t, confidence)
}

func TestEngine_PageContextBoost(t *testing.T) {
	e := NewEngine(nil, nil)

	// ambiguous message; the payroll page tips the score
	intent, _ := e.DetectIntent("show me my current pay", assistant.ContextDescriptor{Page: "payroll"})
	assert.Equal(t, "payroll_current", intent)
}

func TestEngine_AnswerFallsBackToGeneralHelp(t *testing.T) {
	e := NewEngine(nil, nil)
	resp := e.Answer(context.Background(), "gibberish", assistant.ContextDescriptor{}, nil)

	assert.Equal(t, "help_general", resp.Intent)
	assert.NotEmpty(t, resp.Response)
	require.NotEmpty(t, resp.Suggestions)
	assert.LessOrEqual(t, len(resp.Suggestions), 4)
}

func TestEngine_AnswerCarriesIntentData(t *testing.T) {
	e := NewEngine(nil, nil)
	resp := e.Answer(context.Background(), "what is my leave balance", assistant.ContextDescriptor{}, nil)

	assert.Equal(t, "leave_balance", resp.Intent)
	assert.Equal(t, "leave", resp.Data["section"])
	assert.Equal(t, "Apply for leave", resp.Suggestions[0])
}

type cannedResponder struct {
	text string
	err  error
}

func (r *cannedResponder) Reply(context.Context, []ai.Message, string) (string, error) {
	return r.text, r.err
}

func TestEngine_UnmatchedMessageUsesResponder(t *testing.T) {
	e := NewEngine(&cannedResponder{text: "generated answer"}, nil)
	resp := e.Answer(context.Background(), "tell me something odd", assistant.ContextDescriptor{}, nil)

	assert.Equal(t, "ai_generated", resp.Intent)
	assert.Equal(t, "generated answer", resp.Response)
	assert.Equal(t, true, resp.Data["generated"])
}

func TestEngine_ResponderErrorFallsBackToGeneralHelp(t *testing.T) {
	e := NewEngine(&cannedResponder{err: context.DeadlineExceeded}, nil)
	resp := e.Answer(context.Background(), "tell me something odd", assistant.ContextDescriptor{}, nil)
	assert.Equal(t, "help_general", resp.Intent)
}

func TestEngine_MatchedIntentSkipsResponder(t *testing.T) {
	e := NewEngine(&cannedResponder{text: "should not be used"}, nil)
	resp := e.Answer(context.Background(), "what is my leave balance", assistant.ContextDescriptor{}, nil)
	assert.Equal(t, "leave_balance", resp.Intent)
}
