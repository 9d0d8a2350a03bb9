package assistant

import "time"

// MaxTypingDelay caps the artificial reply delay regardless of preferences
// or override.
const MaxTypingDelay = 1500 * time.Millisecond

var speedDelays = map[ResponseSpeed]time.Duration{
	SpeedInstant: 0,
	SpeedFast:    500 * time.Millisecond,
	SpeedNormal:  1000 * time.Millisecond,
	SpeedSlow:    1500 * time.Millisecond,
}

// TypingSimulator maps the response-speed preference to a bounded delay
// that the orchestrator awaits before surfacing a reply. An explicit
// override bypasses the table.
type TypingSimulator struct {
	override *time.Duration
}

func NewTypingSimulator() *TypingSimulator {
	return &TypingSimulator{}
}

// SetOverride forces a fixed delay for subsequent turns. Pass a negative
// duration to clear the override.
func (t *TypingSimulator) SetOverride(d time.Duration) {
	if d < 0 {
		t.override = nil
		return
	}
	t.override = &d
}

// DelayFor returns the delay for the given preferences, capped at
// MaxTypingDelay.
func (t *TypingSimulator) DelayFor(prefs Preferences) time.Duration {
	d, ok := speedDelays[prefs.ResponseSpeed]
	if !ok {
		d = speedDelays[SpeedNormal]
	}
	if t.override != nil {
		d = *t.override
	}
	if d > MaxTypingDelay {
		d = MaxTypingDelay
	}
	return d
}
