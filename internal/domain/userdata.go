package domain

import "time"

// UserData is the full per-user record. Each log is append-only and kept in
// chronological insertion order.
type UserData struct {
	UserID           string             `json:"user_id"`
	Profile          Profile            `json:"profile"`
	MoodLog          []MoodEntry        `json:"mood_log"`
	SymptomLog       []SymptomEntry     `json:"symptom_log"`
	NutritionLog     []NutritionEntry   `json:"nutrition_log"`
	TodoList         []TodoEntry        `json:"todo_list"`
	AgentLog         []AgentLogEntry    `json:"agent_log"`
	LearningFeedback []LearningFeedback `json:"learning_feedback"`
}

// Profile holds pregnancy details. Zero values mean "not set".
type Profile struct {
	CurrentWeek     int       `json:"current_week"`
	Trimester       int       `json:"trimester"`
	DueDate         string    `json:"due_date"`
	LMP             string    `json:"lmp"`
	Allergies       []string  `json:"allergies"`
	FoodPreferences []string  `json:"food_preferences"`
	CreatedAt       time.Time `json:"created_at"`
}

type MoodEntry struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	EmotionalState string    `json:"emotional_state"`
	Notes          string    `json:"notes"`
	Week           int       `json:"week"`
}

type SymptomEntry struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Symptom       string          `json:"symptom"`
	Severity      SymptomSeverity `json:"severity"`
	IsEmergency   bool            `json:"is_emergency"`
	AgentResponse string          `json:"agent_response"`
	Week          int             `json:"week"`
}

type NutritionEntry struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	FoodQuery       string    `json:"food_query"`
	IsSafe          bool      `json:"is_safe"`
	AllergenWarning bool      `json:"allergen_warning"`
	AgentResponse   string    `json:"agent_response"`
	Week            int       `json:"week"`
}

type TodoEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Task      string    `json:"task"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"due_date"`
	Completed bool      `json:"completed"`
	Week      int       `json:"week"`
}

// AgentLogEntry records one agent interaction. Safety fields are empty for
// events that did not run a safety check.
type AgentLogEntry struct {
	ID               string      `json:"id"`
	Timestamp        time.Time   `json:"timestamp"`
	Event            AgentEvent  `json:"event"`
	Message          string      `json:"message"`
	SafetyLevel      SafetyLevel `json:"safety_level"`
	DetectedKeywords []string    `json:"detected_keywords"`
	Escalated        bool        `json:"escalated"`
	Week             int         `json:"week"`
}

type LearningFeedback struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	SuggestionID string    `json:"suggestion_id"`
	WasHelpful   bool      `json:"was_helpful"`
	UserFeedback string    `json:"user_feedback"`
	Week         int       `json:"week"`
}

// NewUserData returns the default empty record for a user.
func NewUserData(userID string, now time.Time) *UserData {
	return &UserData{
		UserID: userID,
		Profile: Profile{
			Allergies:       []string{},
			FoodPreferences: []string{},
			CreatedAt:       now,
		},
		MoodLog:          []MoodEntry{},
		SymptomLog:       []SymptomEntry{},
		NutritionLog:     []NutritionEntry{},
		TodoList:         []TodoEntry{},
		AgentLog:         []AgentLogEntry{},
		LearningFeedback: []LearningFeedback{},
	}
}
