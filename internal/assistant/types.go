package assistant

import "time"

type ResponseSpeed string

const (
	SpeedInstant ResponseSpeed = "instant"
	SpeedFast    ResponseSpeed = "fast"
	SpeedNormal  ResponseSpeed = "normal"
	SpeedSlow    ResponseSpeed = "slow"
)

// Preferences are user-tunable behavior flags. They persist across sessions
// and are only ever overwritten, never deleted.
type Preferences struct {
	ResponseSpeed     ResponseSpeed `json:"responseSpeed"`
	DetailedResponses bool          `json:"detailedResponses"`
	ShowSuggestions   bool          `json:"showSuggestions"`
	EnableAnalytics   bool          `json:"enableAnalytics"`
}

// DefaultPreferences is the value substituted when nothing is stored
// or the stored blob is malformed.
func DefaultPreferences() Preferences {
	return Preferences{
		ResponseSpeed:     SpeedNormal,
		DetailedResponses: true,
		ShowSuggestions:   true,
		EnableAnalytics:   true,
	}
}

// PreferencesPatch is a partial update; nil fields keep the current value.
type PreferencesPatch struct {
	ResponseSpeed     *ResponseSpeed `json:"responseSpeed,omitempty"`
	DetailedResponses *bool          `json:"detailedResponses,omitempty"`
	ShowSuggestions   *bool          `json:"showSuggestions,omitempty"`
	EnableAnalytics   *bool          `json:"enableAnalytics,omitempty"`
}

// ContextDescriptor is the caller-supplied hint for the current turn.
// It is never stored beyond the call it was passed to.
type ContextDescriptor struct {
	Page            string `json:"page,omitempty"`
	OnboardingPhase int    `json:"onboardingPhase,omitempty"` // 1..6, 0 = unset
	EmployeeStatus  string `json:"employeeStatus,omitempty"`
}

// Exchange is one completed turn: a user message paired with the
// assistant's reply and its detection metadata.
type Exchange struct {
	UserText      string    `json:"userText"`
	AssistantText string    `json:"assistantText"`
	Intent        string    `json:"intent,omitempty"`
	Confidence    float64   `json:"confidence"`
	Timestamp     time.Time `json:"timestamp"`
}

type ReplySource string

const (
	SourceRemote   ReplySource = "remote"
	SourceFallback ReplySource = "fallback"
)

// AssistantReply is the per-turn result handed back to the caller.
// Immutable once returned.
type AssistantReply struct {
	Text        string         `json:"text"`
	Data        map[string]any `json:"data,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Confidence  float64        `json:"confidence"`
	Intent      string         `json:"intent,omitempty"`
	Source      ReplySource    `json:"source"`
}
