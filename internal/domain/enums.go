package domain

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// PriorityWeight orders priorities for sorting (higher = more important).
func PriorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// ValidSeverities is the canonical set of accepted symptom severities.
var ValidSeverities = map[string]bool{
	"mild": true, "moderate": true, "severe": true,
}

type RiskLevel string

const (
	RiskNormal   RiskLevel = "normal"
	RiskWatch    RiskLevel = "watch"
	RiskCritical RiskLevel = "critical"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type SafetyLevel string

const (
	SafetySafe     SafetyLevel = "safe"
	SafetyWarning  SafetyLevel = "warning"
	SafetyCritical SafetyLevel = "critical"
)

type AgentEvent string

const (
	EventSessionStart AgentEvent = "session_start"
	EventSafetyCheck  AgentEvent = "safety_check"
	EventConversation AgentEvent = "conversation"
)
