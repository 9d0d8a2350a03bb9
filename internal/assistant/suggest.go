package assistant

import "strings"

// SuggestionEngine maps a context descriptor to a ranked list of suggested
// next messages. Page-level intent wins over lifecycle-phase intent, which
// wins over the global default. Output is deterministic for identical input.
type SuggestionEngine struct{}

func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{}
}

// pageSuggestions is checked in fixed order; the first pattern contained in
// the page name wins.
var pageSuggestions = []struct {
	pattern     string
	suggestions []string
}{
	{"leave", []string{
		"Apply for leave",
		"Check leave policy",
		"View leave history",
		"Plan vacation",
	}},
	{"attendance", []string{
		"Mark attendance",
		"Check weekly hours",
		"Attendance policy",
		"Report issue",
	}},
	{"payroll", []string{
		"View payslip details",
		"Tax breakdown",
		"PF information",
		"Salary structure",
	}},
	{"performance", []string{
		"View my goals",
		"Performance review status",
		"Feedback received",
		"Set new objectives",
	}},
	{"learning", []string{
		"My course progress",
		"Available courses",
		"Certification status",
		"Learning recommendations",
	}},
}

// phaseSuggestions follows the onboarding lifecycle: Pre-Boarding,
// Information Form, Document Upload, Compliance Review, IT Provisioning,
// Induction & Activation.
var phaseSuggestions = map[int][]string{
	1: {
		"What documents do I need?",
		"Review my offer details",
		"Pre-boarding checklist",
		"Who is my HR contact?",
	},
	2: {
		"Help me fill the information form",
		"What details are required?",
		"Update my personal information",
		"Save my form progress",
	},
	3: {
		"Which documents are pending?",
		"Upload my ID proof",
		"Document verification status",
		"Accepted file formats",
	},
	4: {
		"What is compliance review?",
		"Check my review status",
		"Pending compliance items",
		"Contact the compliance team",
	},
	5: {
		"When will I get my laptop?",
		"Set up my email account",
		"Request software access",
		"IT support contact",
	},
	6: {
		"Induction schedule",
		"Meet my team",
		"First week checklist",
		"Activate my employee account",
	},
}

var defaultSuggestions = []string{
	"How can you help?",
	"Leave information",
	"Attendance details",
	"Company updates",
}

// Suggest returns at most four suggested messages for the given context.
func (e *SuggestionEngine) Suggest(desc ContextDescriptor) []string {
	page := strings.ToLower(desc.Page)
	if page != "" {
		for _, ps := range pageSuggestions {
			if strings.Contains(page, ps.pattern) {
				return clone(ps.suggestions)
			}
		}
	}
	if s, ok := phaseSuggestions[desc.OnboardingPhase]; ok {
		return clone(s)
	}
	return clone(defaultSuggestions)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
