package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_PageTierWinsOverPhase(t *testing.T) {
	e := NewSuggestionEngine()
	got := e.Suggest(ContextDescriptor{Page: "/dashboard/leave-requests", OnboardingPhase: 3})
	require.Len(t, got, 4)
	assert.Equal(t, "Apply for leave", got[0])
}

func TestSuggest_PhaseTier(t *testing.T) {
	e := NewSuggestionEngine()
	got := e.Suggest(ContextDescriptor{OnboardingPhase: 5})
	require.Len(t, got, 4)
	assert.Equal(t, "When will I get my laptop?", got[0])
}

func TestSuggest_DefaultTier(t *testing.T) {
	e := NewSuggestionEngine()

	assert.Equal(t, defaultSuggestions, e.Suggest(ContextDescriptor{}))
	// unknown page and out-of-range phase both fall through
	assert.Equal(t, defaultSuggestions, e.Suggest(ContextDescriptor{Page: "/settings", OnboardingPhase: 9}))
}

func TestSuggest_Deterministic(t *testing.T) {
	e := NewSuggestionEngine()
	descs := []ContextDescriptor{
		{Page: "payroll"},
		{OnboardingPhase: 2},
		{},
	}
	for _, desc := range descs {
		first := e.Suggest(desc)
		second := e.Suggest(desc)
		assert.Equal(t, first, second)
		assert.LessOrEqual(t, len(first), 4)
	}
}

func TestSuggest_EveryPageListHasFourItems(t *testing.T) {
	for _, ps := range pageSuggestions {
		assert.Len(t, ps.suggestions, 4, "page %q", ps.pattern)
	}
	for phase, s := range phaseSuggestions {
		assert.Len(t, s, 4, "phase %d", phase)
	}
}
