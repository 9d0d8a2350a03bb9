package assistant

import "strings"

// Intent tags reported by the fallback classifier.
const (
	IntentLeaveHelp          = "leave_help"
	IntentAttendanceHelp     = "attendance_help"
	IntentPayrollHelp        = "payroll_help"
	IntentOnboardingGuidance = "onboarding_guidance"
	IntentHelpGeneral        = "help_general"
)

// FallbackClassifier synthesizes a reply locally when the remote service
// cannot be reached. Keyword groups are tested in a fixed priority order
// (leave > attendance > payroll); first match wins, no scoring. This keeps
// the behavior reproducible and free of ambiguous ties.
type FallbackClassifier struct {
	suggest *SuggestionEngine
}

func NewFallbackClassifier(suggest *SuggestionEngine) *FallbackClassifier {
	if suggest == nil {
		suggest = NewSuggestionEngine()
	}
	return &FallbackClassifier{suggest: suggest}
}

type fallbackTemplate struct {
	intent     string
	keywords   []string
	text       string
	confidence float64
}

var keywordTemplates = []fallbackTemplate{
	{
		intent:   IntentLeaveHelp,
		keywords: []string{"leave", "vacation", "time off", "pto"},
		text: "I can help you with leave management. You can check your leave balance, " +
			"apply for new leave, or review the status of pending requests from the Leave " +
			"section. Would you like guidance on any of these?",
		confidence: 0.8,
	},
	{
		intent:   IntentAttendanceHelp,
		keywords: []string{"attendance", "check in", "check out", "present"},
		text: "I can help you with attendance. You can check in or out for today, review " +
			"your attendance history, and see your weekly working hours from the Attendance " +
			"section.",
		confidence: 0.8,
	},
	{
		intent:   IntentPayrollHelp,
		keywords: []string{"salary", "payroll", "pay", "tax", "pf"},
		text: "I can help you with payroll. Your payslips, salary breakdown, tax deductions " +
			"and PF contributions are all available in the Payroll section. Ask me about any " +
			"of them.",
		confidence: 0.8,
	},
}

var phaseGuidance = map[int]string{
	1: "You are in the Pre-Boarding phase. Review your offer details and keep your documents ready for submission.",
	2: "You are in the Information Form phase. Complete your personal details form so HR can proceed with verification.",
	3: "You are in the Document Upload phase. Upload your pending documents so they can be verified.",
	4: "You are in the Compliance Review phase. HR is verifying your documents; you will be notified if anything else is needed.",
	5: "You are in the IT Provisioning phase. Your accounts and equipment are being set up; watch for your credentials email.",
	6: "You are in the Induction & Activation phase. Attend your induction sessions to activate your employee account.",
}

const genericPhaseGuidance = "Continue with your onboarding steps; your HR contact can help if you are unsure what comes next."

const capabilityOverview = "I'm your HR assistant. I can help with leave balances and requests, " +
	"attendance, payroll and payslips, performance goals, and learning progress. " +
	"Ask me in natural language, for example \"What's my leave balance?\"."

// Classify produces a best-effort reply for the given message and context.
// The result is always tagged Source=fallback and never reports confidence
// above 0.8.
func (c *FallbackClassifier) Classify(text string, desc ContextDescriptor) AssistantReply {
	lowered := strings.ToLower(text)

	for _, tpl := range keywordTemplates {
		for _, kw := range tpl.keywords {
			if strings.Contains(lowered, kw) {
				return AssistantReply{
					Text:        tpl.text,
					Data:        map[string]any{"intent": tpl.intent},
					Suggestions: c.suggest.Suggest(desc),
					Confidence:  tpl.confidence,
					Intent:      tpl.intent,
					Source:      SourceFallback,
				}
			}
		}
	}

	if desc.OnboardingPhase != 0 {
		guidance, ok := phaseGuidance[desc.OnboardingPhase]
		if !ok {
			guidance = genericPhaseGuidance
		}
		return AssistantReply{
			Text: guidance,
			Data: map[string]any{
				"intent": IntentOnboardingGuidance,
				"phase":  desc.OnboardingPhase,
			},
			Suggestions: c.suggest.Suggest(desc),
			Confidence:  0.7,
			Intent:      IntentOnboardingGuidance,
			Source:      SourceFallback,
		}
	}

	return AssistantReply{
		Text:        capabilityOverview,
		Data:        map[string]any{"intent": IntentHelpGeneral},
		Suggestions: c.suggest.Suggest(desc),
		Confidence:  0.6,
		Intent:      IntentHelpGeneral,
		Source:      SourceFallback,
	}
}
