package service

import (
	"context"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/importer"
	"github.com/dpp0007/HackHerth/internal/intelligence"
)

// A zero now passed to any method means time.Now().UTC().

type JournalService interface {
	StartSession(ctx context.Context, now time.Time) (string, error)
	GetProfile(ctx context.Context, userID string, now time.Time) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate, now time.Time) (*domain.Profile, error)
	LogMood(ctx context.Context, userID string, in MoodInput, now time.Time) (*domain.MoodEntry, error)
	LogSymptom(ctx context.Context, userID string, in SymptomInput, now time.Time) (*domain.SymptomEntry, error)
	LogNutrition(ctx context.Context, userID string, in NutritionInput, now time.Time) (*domain.NutritionEntry, error)
	AddTodo(ctx context.Context, userID string, in TodoInput, now time.Time) (*domain.TodoEntry, error)
	CompleteTodo(ctx context.Context, userID, todoID string, now time.Time) error
	ListTodos(ctx context.Context, userID string) ([]domain.TodoEntry, error)
	LogAgentEvent(ctx context.Context, userID string, in AgentEventInput, now time.Time) (*domain.AgentLogEntry, error)
	RecordFeedback(ctx context.Context, userID string, in FeedbackInput, now time.Time) (*domain.LearningFeedback, error)
	LoadUserData(ctx context.Context, userID string, now time.Time) (*domain.UserData, error)
}

type IntelligenceService interface {
	Analyze(ctx context.Context, userID string, now time.Time) (*Analysis, error)
	ActionPlan(ctx context.Context, userID string, now time.Time) (*intelligence.ActionPlan, error)
	Report(ctx context.Context, kind intelligence.ReportKind, userID string, now time.Time) (*intelligence.Report, error)
	Summary(ctx context.Context, kind intelligence.SummaryKind, userID string, now time.Time) (*intelligence.JournalSummary, error)
	SafetyCheck(ctx context.Context, req SafetyCheckRequest, now time.Time) (*SafetyCheckResult, error)
	ValidateResponse(ctx context.Context, userMessage, agentResponse string) (*intelligence.ValidationResult, error)
	SafetyReport(ctx context.Context, userID string, now time.Time) (*intelligence.SafetyReport, error)
}

// ImportService loads legacy per-user JSON files into the store. A file is
// imported whole or not at all.
type ImportService interface {
	ImportUserFile(ctx context.Context, filePath string, now time.Time) (*ImportResult, error)
	ImportUserData(ctx context.Context, f *importer.UserFile, now time.Time) (*ImportResult, error)
}

// ImportResult holds the outcome of a user file import.
type ImportResult struct {
	UserID           string `json:"user_id"`
	MoodEntries      int    `json:"mood_entries"`
	SymptomEntries   int    `json:"symptom_entries"`
	NutritionEntries int    `json:"nutrition_entries"`
	Todos            int    `json:"todos"`
	AgentEvents      int    `json:"agent_events"`
	Feedback         int    `json:"feedback"`
}

// ProfileUpdate merges into the stored profile. Nil fields are left as is.
type ProfileUpdate struct {
	CurrentWeek     *int     `json:"current_week"`
	Trimester       *int     `json:"trimester"`
	DueDate         *string  `json:"due_date"`
	LMP             *string  `json:"lmp"`
	Allergies       []string `json:"allergies"`
	FoodPreferences []string `json:"food_preferences"`
}

type MoodInput struct {
	EmotionalState string `json:"emotional_state"`
	Notes          string `json:"notes"`
}

// SymptomInput defaults severity to moderate.
type SymptomInput struct {
	Symptom       string                 `json:"symptom"`
	Severity      domain.SymptomSeverity `json:"severity"`
	IsEmergency   bool                   `json:"is_emergency"`
	AgentResponse string                 `json:"agent_response"`
}

// NutritionInput treats a nil IsSafe as safe.
type NutritionInput struct {
	FoodQuery       string `json:"food_query"`
	IsSafe          *bool  `json:"is_safe"`
	AllergenWarning bool   `json:"allergen_warning"`
	AgentResponse   string `json:"agent_response"`
}

// TodoInput defaults priority to medium and the due date to today.
type TodoInput struct {
	Task     string          `json:"task"`
	Priority domain.Priority `json:"priority"`
	DueDate  string          `json:"due_date"`
}

type AgentEventInput struct {
	Event            domain.AgentEvent  `json:"event"`
	Message          string             `json:"message"`
	SafetyLevel      domain.SafetyLevel `json:"safety_level"`
	DetectedKeywords []string           `json:"detected_keywords"`
	Escalated        bool               `json:"escalated"`
}

type FeedbackInput struct {
	SuggestionID string `json:"suggestion_id"`
	WasHelpful   bool   `json:"was_helpful"`
	UserFeedback string `json:"user_feedback"`
}

// Analysis bundles the three per-user assessments.
type Analysis struct {
	Trends          intelligence.TrendSummary    `json:"trends"`
	RiskAssessment  intelligence.RiskAssessment  `json:"risk_assessment"`
	Personalization intelligence.Personalization `json:"personalization"`
}

// SafetyCheckRequest analyzes Message and, when set, screens Response.
// A non-empty UserID records the check in that user's agent log.
type SafetyCheckRequest struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

type SafetyCheckResult struct {
	SafetyAnalysis intelligence.SafetyAnalysis  `json:"safety_analysis"`
	ResponseSafety *intelligence.ResponseSafety `json:"response_safety"`
}
