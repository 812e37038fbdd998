package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

const supportDisclaimer = "\n\n💙 Remember: I'm here to support you, but always consult your healthcare provider for medical concerns."

// SafeResponse is a canned reply for one safety level. Warning templates
// carry {symptom} and {suggestions} placeholders until rendered.
type SafeResponse struct {
	Template string `json:"template"`
	FollowUp string `json:"follow_up"`
}

var (
	criticalResponse = SafeResponse{
		Template: "⚠️ This sounds like something you should discuss with your healthcare provider right away. If you're experiencing severe symptoms, please call your doctor or go to the emergency room. Your health and baby's health come first.",
		FollowUp: "Would you like me to help you find emergency contact information?",
	}
	warningResponse = SafeResponse{
		Template: "I understand you're experiencing {symptom}. While this can be common in pregnancy, it's always best to mention any concerns to your healthcare provider. They know your specific situation best.",
		FollowUp: "In the meantime, here are some general comfort measures that might help: {suggestions}",
	}
	supportiveResponse = SafeResponse{
		Template: "Thank you for sharing that with me. Every pregnancy is unique, and it's important to listen to your body. If this symptom is concerning you or getting worse, don't hesitate to contact your healthcare provider.",
		FollowUp: "Remember, you know your body best, and it's always okay to seek professional guidance.",
	}
)

type SafetyAnalysis struct {
	SafetyLevel         domain.SafetyLevel `json:"safety_level"`
	RequiresEscalation  bool               `json:"requires_escalation"`
	DetectedKeywords    []string           `json:"detected_keywords"`
	RecommendedResponse SafeResponse       `json:"recommended_response"`
	EscalationMessage   string             `json:"escalation_message"`
}

type ResponseSafety struct {
	IsSafe               bool     `json:"is_safe"`
	UnsafePatterns       []string `json:"unsafe_patterns"`
	RequiresModification bool     `json:"requires_modification"`
	SafeAlternative      string   `json:"safe_alternative"`
}

type ValidationResult struct {
	IsValid            bool           `json:"is_valid"`
	SafetyAnalysis     SafetyAnalysis `json:"safety_analysis"`
	ResponseSafety     ResponseSafety `json:"response_safety"`
	FinalResponse      string         `json:"final_response"`
	RequiresEscalation bool           `json:"requires_escalation"`
}

// AnalyzeSafety classifies a user message. Critical keywords win over
// warning keywords; a message matching neither is safe.
func AnalyzeSafety(message string) SafetyAnalysis {
	lower := strings.ToLower(message)

	if matches := matchAll(lower, criticalSafetyKeywords); len(matches) > 0 {
		return SafetyAnalysis{
			SafetyLevel:         domain.SafetyCritical,
			RequiresEscalation:  true,
			DetectedKeywords:    matches,
			RecommendedResponse: criticalResponse,
			EscalationMessage:   escalationMessage(matches),
		}
	}

	if matches := matchAll(lower, warningSafetyKeywords); len(matches) > 0 {
		return SafetyAnalysis{
			SafetyLevel:         domain.SafetyWarning,
			DetectedKeywords:    matches,
			RecommendedResponse: renderWarning(matches[0], ComfortMeasures(message)),
		}
	}

	return SafetyAnalysis{
		SafetyLevel:         domain.SafetySafe,
		DetectedKeywords:    []string{},
		RecommendedResponse: supportiveResponse,
	}
}

func escalationMessage(keywords []string) string {
	return fmt.Sprintf("EMERGENCY KEYWORDS DETECTED: %s. Immediate healthcare consultation recommended.",
		strings.Join(keywords, ", "))
}

func renderWarning(symptom, suggestions string) SafeResponse {
	return SafeResponse{
		Template: strings.ReplaceAll(warningResponse.Template, "{symptom}", symptom),
		FollowUp: strings.ReplaceAll(warningResponse.FollowUp, "{suggestions}", suggestions),
	}
}

// CheckResponseSafety scans a candidate agent response for unsafe advice and
// builds a rewritten alternative when any is found.
func CheckResponseSafety(response string) ResponseSafety {
	lower := strings.ToLower(response)
	var matched []advicePattern
	patterns := []string{}
	for _, p := range unsafeAdvicePatterns {
		if strings.Contains(lower, p.phrase) {
			matched = append(matched, p)
			patterns = append(patterns, p.phrase)
		}
	}

	result := ResponseSafety{
		IsSafe:               len(matched) == 0,
		UnsafePatterns:       patterns,
		RequiresModification: len(matched) > 0,
		SafeAlternative:      response,
	}
	if len(matched) == 0 {
		return result
	}

	safe := response
	for _, p := range matched {
		safe = p.re.ReplaceAllLiteralString(safe, p.replacement)
	}
	result.SafeAlternative = safe + supportDisclaimer
	return result
}

// ValidateResponse checks both sides of a conversational turn. An escalating
// user message always replaces the agent response with the critical template.
func ValidateResponse(response, userMessage string) ValidationResult {
	analysis := AnalyzeSafety(userMessage)
	safety := CheckResponseSafety(response)

	final := safety.SafeAlternative
	if analysis.RequiresEscalation {
		final = analysis.RecommendedResponse.Template
	}
	return ValidationResult{
		IsValid:            safety.IsSafe && !analysis.RequiresEscalation,
		SafetyAnalysis:     analysis,
		ResponseSafety:     safety,
		FinalResponse:      final,
		RequiresEscalation: analysis.RequiresEscalation,
	}
}

// SafeSymptomResponse phrases a reply about a named symptom at the level
// decided by analysis. Warning replies include comfort measures.
func SafeSymptomResponse(symptom string, analysis SafetyAnalysis) string {
	switch analysis.SafetyLevel {
	case domain.SafetyCritical:
		return criticalResponse.Template
	case domain.SafetyWarning:
		r := renderWarning(symptom, ComfortMeasures(symptom))
		return r.Template + " " + r.FollowUp
	default:
		return supportiveResponse.Template
	}
}

type SafetyIncident struct {
	Timestamp time.Time          `json:"timestamp"`
	Level     domain.SafetyLevel `json:"level"`
	Keywords  []string           `json:"keywords"`
	Escalated bool               `json:"escalated"`
}

type SafetyReport struct {
	Timestamp         time.Time        `json:"timestamp"`
	TotalInteractions int              `json:"total_interactions"`
	SafetyIncidents   []SafetyIncident `json:"safety_incidents"`
	Escalations       int              `json:"escalations"`
	Warnings          int              `json:"warnings"`
	SafeInteractions  int              `json:"safe_interactions"`
}

// CreateSafetyReport summarizes the safety verdicts recorded in an agent log.
// Entries without a safety level count toward the total only.
func CreateSafetyReport(log []domain.AgentLogEntry, now time.Time) SafetyReport {
	report := SafetyReport{
		Timestamp:         now,
		TotalInteractions: len(log),
		SafetyIncidents:   []SafetyIncident{},
	}
	for _, entry := range log {
		switch entry.SafetyLevel {
		case domain.SafetyCritical:
			report.Escalations++
			report.SafetyIncidents = append(report.SafetyIncidents, SafetyIncident{
				Timestamp: entry.Timestamp,
				Level:     domain.SafetyCritical,
				Keywords:  nonNil(entry.DetectedKeywords),
				Escalated: entry.Escalated,
			})
		case domain.SafetyWarning:
			report.Warnings++
			report.SafetyIncidents = append(report.SafetyIncidents, SafetyIncident{
				Timestamp: entry.Timestamp,
				Level:     domain.SafetyWarning,
				Keywords:  nonNil(entry.DetectedKeywords),
			})
		case domain.SafetySafe:
			report.SafeInteractions++
		}
	}
	return report
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
