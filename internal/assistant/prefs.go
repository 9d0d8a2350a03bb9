package assistant

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

const preferencesKey = "assistant:preferences"

// PreferenceStore loads and persists user preferences through a BlobStore.
// Corruption is self-healing: a missing or malformed blob yields defaults
// and is never surfaced as an error.
type PreferenceStore struct {
	store BlobStore
	log   *zap.Logger
}

func NewPreferenceStore(store BlobStore, logger *zap.Logger) *PreferenceStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceStore{store: store, log: logger}
}

// Load returns the stored preferences, or defaults when nothing usable
// is stored.
func (p *PreferenceStore) Load(ctx context.Context) Preferences {
	raw, err := p.store.Get(ctx, preferencesKey)
	if err != nil {
		p.log.Warn("preferences read failed, using defaults", zap.Error(err))
		return DefaultPreferences()
	}
	if raw == "" {
		return DefaultPreferences()
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		p.log.Warn("preferences blob malformed, using defaults", zap.Error(err))
		return DefaultPreferences()
	}
	if !validSpeed(prefs.ResponseSpeed) {
		p.log.Warn("preferences blob has unknown response speed, using defaults",
			zap.String("responseSpeed", string(prefs.ResponseSpeed)))
		return DefaultPreferences()
	}
	return prefs
}

// Save merges the patch onto the current preferences, persists the result
// and returns it. Persistence failures are logged, not surfaced.
func (p *PreferenceStore) Save(ctx context.Context, patch PreferencesPatch) Preferences {
	prefs := p.Load(ctx)

	if patch.ResponseSpeed != nil && validSpeed(*patch.ResponseSpeed) {
		prefs.ResponseSpeed = *patch.ResponseSpeed
	}
	if patch.DetailedResponses != nil {
		prefs.DetailedResponses = *patch.DetailedResponses
	}
	if patch.ShowSuggestions != nil {
		prefs.ShowSuggestions = *patch.ShowSuggestions
	}
	if patch.EnableAnalytics != nil {
		prefs.EnableAnalytics = *patch.EnableAnalytics
	}

	data, _ := json.Marshal(prefs)
	if err := p.store.Set(ctx, preferencesKey, string(data)); err != nil {
		p.log.Warn("preferences write failed", zap.Error(err))
	}
	return prefs
}

func validSpeed(s ResponseSpeed) bool {
	switch s {
	case SpeedInstant, SpeedFast, SpeedNormal, SpeedSlow:
		return true
	}
	return false
}
