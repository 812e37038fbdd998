package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UserFile is the legacy per-user JSON document stored as user_<id>.json.
// Nullable fields are pointers so an absent value is distinguishable from
// a zero one.
type UserFile struct {
	UserID       string            `json:"user_id"`
	Profile      ProfileImport     `json:"profile"`
	MoodLog      []MoodImport      `json:"mood_log"`
	SymptomLog   []SymptomImport   `json:"symptom_log"`
	NutritionLog []NutritionImport `json:"nutrition_log"`
	TodoList     []TodoImport      `json:"todo_list"`
	AgentLog     []AgentLogImport  `json:"agent_log"`
	LearningData []FeedbackImport  `json:"learning_data"`
}

type ProfileImport struct {
	LMP             *string  `json:"lmp"`
	DueDate         *string  `json:"due_date"`
	CurrentWeek     *int     `json:"current_week"`
	Trimester       *int     `json:"trimester"`
	Allergies       []string `json:"allergies"`
	FoodPreferences []string `json:"food_preferences"`
	CreatedAt       string   `json:"created_at"`
}

type MoodImport struct {
	ID             string `json:"id"`
	Timestamp      string `json:"timestamp"`
	EmotionalState string `json:"emotional_state"`
	Notes          string `json:"notes"`
	Week           *int   `json:"week"`
}

type SymptomImport struct {
	ID            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Symptom       string `json:"symptom"`
	Severity      string `json:"severity"`
	IsEmergency   bool   `json:"is_emergency"`
	AgentResponse string `json:"agent_response"`
	Week          *int   `json:"week"`
}

type NutritionImport struct {
	ID              string `json:"id"`
	Timestamp       string `json:"timestamp"`
	FoodQuery       string `json:"food_query"`
	IsSafe          *bool  `json:"is_safe"`
	AllergenWarning bool   `json:"allergen_warning"`
	AgentResponse   string `json:"agent_response"`
	Week            *int   `json:"week"`
}

type TodoImport struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Task      string `json:"task"`
	Priority  string `json:"priority"`
	DueDate   string `json:"due_date"`
	Completed bool   `json:"completed"`
	Week      *int   `json:"week"`
}

// AgentLogImport keeps only the safety verdict from the free-form data
// object; other keys are dropped.
type AgentLogImport struct {
	ID        string           `json:"id"`
	Timestamp string           `json:"timestamp"`
	Event     string           `json:"event"`
	Message   string           `json:"message"`
	Data      *AgentDataImport `json:"data"`
	Week      *int             `json:"week"`
}

type AgentDataImport struct {
	SafetyAnalysis *SafetyAnalysisImport `json:"safety_analysis"`
}

type SafetyAnalysisImport struct {
	SafetyLevel        string   `json:"safety_level"`
	DetectedKeywords   []string `json:"detected_keywords"`
	RequiresEscalation bool     `json:"requires_escalation"`
}

type FeedbackImport struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	SuggestionID string `json:"suggestion_id"`
	WasHelpful   bool   `json:"was_helpful"`
	UserFeedback string `json:"user_feedback"`
	Week         *int   `json:"week"`
}

// LoadUserFile reads and parses a legacy user file. A missing user_id is
// taken from a user_<id>.json file name.
func LoadUserFile(path string) (*UserFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseUserFile(data)
	if err != nil {
		return nil, err
	}
	if f.UserID == "" {
		f.UserID = UserIDFromFileName(path)
	}
	return f, nil
}

func ParseUserFile(data []byte) (*UserFile, error) {
	var f UserFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing user file: %w", err)
	}
	return &f, nil
}

// UserIDFromFileName returns "abc" for "data/user_abc.json", or "" when the
// name does not follow that pattern.
func UserIDFromFileName(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "user_") || !strings.HasSuffix(base, ".json") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(base, "user_"), ".json")
}
