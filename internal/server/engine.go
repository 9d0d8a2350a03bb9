package server

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/workhub-hr/assistant-core/internal/ai"
	"github.com/workhub-hr/assistant-core/internal/assistant"
)

// ChatResponse is the wire shape served by POST /chat. The client
// dispatcher accepts either "response" or "message"; this server always
// fills "response".
type ChatResponse struct {
	Response    string         `json:"response"`
	Data        map[string]any `json:"data,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Confidence  float64        `json:"confidence"`
	Intent      string         `json:"intent,omitempty"`
}

type intentGroup struct {
	intent   string
	patterns []*regexp.Regexp
}

func compileGroup(intent string, exprs ...string) intentGroup {
	ps := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		ps[i] = regexp.MustCompile(e)
	}
	return intentGroup{intent: intent, patterns: ps}
}

// intentGroups are evaluated by score; on equal scores the earlier group
// wins, so the order is part of the contract.
var intentGroups = []intentGroup{
	compileGroup("leave_balance",
		`leave.*balance`, `remaining.*leave`, `how.*many.*leave`,
		`vacation.*days`, `pto.*balance`, `time.*off.*left`),
	compileGroup("leave_request",
		`apply.*leave`, `request.*leave`, `take.*leave`,
		`book.*vacation`, `submit.*leave`),
	compileGroup("attendance_today",
		`attendance.*today`, `checked.*in`, `today.*attendance`,
		`work.*today`, `present.*today`),
	compileGroup("payroll_current",
		`current.*salary`, `this.*month.*salary`, `latest.*payslip`,
		`recent.*pay`, `current.*pay`),
	compileGroup("tax_info",
		`tax.*deduction`, `income.*tax`, `tds.*amount`,
		`tax.*calculation`, `tax.*details`),
	compileGroup("pf_info",
		`pf.*amount`, `provident.*fund`, `pf.*balance`,
		`epf.*contribution`, `retirement.*fund`),
	compileGroup("help_general",
		`help.*me`, `what.*can.*you.*do`, `how.*to.*use`,
		`assistance.*needed`, `support.*required`),
}

// Engine is the rule-based answer engine behind the reference server.
// Messages that match no intent pattern are routed to the optional
// generative responder, then to the general-help handler.
type Engine struct {
	responder ai.Responder
	suggest   *assistant.SuggestionEngine
	log       *zap.Logger
}

func NewEngine(responder ai.Responder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		responder: responder,
		suggest:   assistant.NewSuggestionEngine(),
		log:       logger,
	}
}

// DetectIntent scores every intent group against the message and applies
// page-context boosts. Returns ("", 0) when nothing matches.
func (e *Engine) DetectIntent(message string, desc assistant.ContextDescriptor) (string, float64) {
	lowered := strings.ToLower(message)

	scores := make(map[string]float64)
	for _, g := range intentGroups {
		matched := 0
		for _, p := range g.patterns {
			if p.MatchString(lowered) {
				matched++
			}
		}
		if matched > 0 {
			scores[g.intent] = float64(matched) / float64(len(g.patterns))
		}
	}

	page := strings.ToLower(desc.Page)
	if page != "" {
		if strings.Contains(page, "leave") {
			scores["leave_balance"] += 0.3
			scores["leave_request"] += 0.3
		}
		if strings.Contains(page, "attendance") {
			scores["attendance_today"] += 0.3
		}
		if strings.Contains(page, "payroll") {
			scores["payroll_current"] += 0.3
		}
	}

	best, bestScore := "", 0.0
	for _, g := range intentGroups {
		if s, ok := scores[g.intent]; ok && s > bestScore {
			best, bestScore = g.intent, s
		}
	}
	if bestScore > 1 {
		bestScore = 1
	}
	return best, bestScore
}

// Answer produces the chat response for one message.
func (e *Engine) Answer(ctx context.Context, message string, desc assistant.ContextDescriptor, history []ai.Message) ChatResponse {
	intent, confidence := e.DetectIntent(message, desc)

	if intent == "" && e.responder != nil {
		if text, err := e.responder.Reply(ctx, history, message); err == nil && text != "" {
			return ChatResponse{
				Response:    text,
				Data:        map[string]any{"generated": true},
				Suggestions: e.suggest.Suggest(desc),
				Confidence:  0.9,
				Intent:      "ai_generated",
			}
		} else if err != nil {
			e.log.Warn("responder failed, using general help", zap.Error(err))
		}
	}

	if intent == "" {
		intent, confidence = "help_general", 0.5
	}

	text, data := handlerFor(intent)
	return ChatResponse{
		Response:    text,
		Data:        data,
		Suggestions: e.suggestionsFor(intent, desc),
		Confidence:  confidence,
		Intent:      intent,
	}
}

func handlerFor(intent string) (string, map[string]any) {
	switch intent {
	case "leave_balance":
		return "Your leave balance is shown in the Leave section: remaining casual, sick and earned leave for this year, plus any requests still pending approval.",
			map[string]any{"section": "leave"}
	case "leave_request":
		return "To apply for leave, open the Leave section, choose the leave type and dates, add a short reason and submit. Your manager is notified immediately and you can track the approval there.",
			map[string]any{"section": "leave", "steps": []string{
				"Open the Leave section",
				"Choose leave type and dates",
				"Add a reason and submit",
				"Track approval status",
			}}
	case "attendance_today":
		return "Today's check-in time, status and working hours are on the Attendance page. If you have not checked in yet you can do it from there.",
			map[string]any{"section": "attendance"}
	case "payroll_current":
		return "Your latest payslip is in the Payroll section, with the gross amount, deductions and net pay broken down line by line.",
			map[string]any{"section": "payroll"}
	case "tax_info":
		return "Tax deductions, TDS and your projected income tax for the year are listed under Payroll, in the tax breakdown of each payslip.",
			map[string]any{"section": "payroll", "topic": "tax"}
	case "pf_info":
		return "Your provident fund contributions, both yours and the employer's, accumulate monthly and are shown under Payroll in the PF summary.",
			map[string]any{"section": "payroll", "topic": "pf"}
	default:
		return "I'm your HR assistant. I can help with leave balances and requests, attendance, payroll and payslips, performance goals, and learning progress. Ask me in natural language, for example \"What's my leave balance?\".",
			map[string]any{"features": []string{
				"intent_detection",
				"context_awareness",
				"personalized_suggestions",
			}}
	}
}

// suggestionsFor prefers the per-intent follow-ups and falls back to the
// context-tiered engine.
func (e *Engine) suggestionsFor(intent string, desc assistant.ContextDescriptor) []string {
	switch intent {
	case "leave_balance", "leave_request":
		return []string{"Apply for leave", "Check leave policy", "View leave history", "Plan vacation"}
	case "attendance_today":
		return []string{"Mark attendance", "Check weekly hours", "Attendance policy", "Report issue"}
	case "payroll_current", "tax_info", "pf_info":
		return []string{"View payslip details", "Tax breakdown", "PF information", "Salary structure"}
	case "help_general":
		return []string{"What can you do?", "Leave balance", "Today's attendance", "Recent announcements"}
	default:
		return e.suggest.Suggest(desc)
	}
}

// Suggest exposes the context-tiered suggestion list for POST /suggestions.
func (e *Engine) Suggest(desc assistant.ContextDescriptor) []string {
	return e.suggest.Suggest(desc)
}
