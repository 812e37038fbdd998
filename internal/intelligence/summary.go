package intelligence

import (
	"fmt"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
)

type SummaryKind string

const (
	SummaryWeekly  SummaryKind = "weekly"
	SummaryOverall SummaryKind = "overall"
)

const summaryRecentEntries = 5

// ParseSummaryKind accepts weekly or overall. Empty means overall.
func ParseSummaryKind(s string) (SummaryKind, error) {
	switch k := SummaryKind(s); k {
	case "":
		return SummaryOverall, nil
	case SummaryWeekly, SummaryOverall:
		return k, nil
	default:
		return "", fmt.Errorf("unknown summary type %q (expected weekly or overall)", s)
	}
}

type SummaryPregnancyInfo struct {
	CurrentWeek int    `json:"current_week"`
	Trimester   int    `json:"trimester"`
	DueDate     string `json:"due_date"`
}

type SummaryTotals struct {
	TotalMoodEntries      int `json:"total_mood_entries"`
	TotalSymptoms         int `json:"total_symptoms"`
	TotalNutritionQueries int `json:"total_nutrition_queries"`
	TotalTodos            int `json:"total_todos"`
	CompletedTodos        int `json:"completed_todos"`
}

type RecentMood struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
}

type MoodSummary struct {
	Entries     int          `json:"entries"`
	MostCommon  *string      `json:"most_common"`
	RecentMoods []RecentMood `json:"recent_moods"`
}

type RecentSymptom struct {
	Date     string                 `json:"date"`
	Symptom  string                 `json:"symptom"`
	Severity domain.SymptomSeverity `json:"severity"`
}

type SymptomSummary struct {
	Entries        int             `json:"entries"`
	MostCommon     *string         `json:"most_common"`
	EmergencyCount int             `json:"emergency_count"`
	RecentSymptoms []RecentSymptom `json:"recent_symptoms"`
}

type NutritionSummary struct {
	Queries            int `json:"queries"`
	UnsafeFoodsChecked int `json:"unsafe_foods_checked"`
	AllergenWarnings   int `json:"allergen_warnings"`
}

type TodoSummary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// JournalSummary is the plain count-based report: totals, most common mood
// and symptom, the latest entries and todo progress. It carries no risk or
// personalization analysis.
type JournalSummary struct {
	UserID            string               `json:"user_id"`
	ReportType        SummaryKind          `json:"report_type"`
	GeneratedAt       time.Time            `json:"generated_at"`
	PregnancyInfo     SummaryPregnancyInfo `json:"pregnancy_info"`
	Summary           SummaryTotals        `json:"summary"`
	MoodAnalysis      MoodSummary          `json:"mood_analysis"`
	SymptomAnalysis   SymptomSummary       `json:"symptom_analysis"`
	NutritionAnalysis NutritionSummary     `json:"nutrition_analysis"`
	TodoAnalysis      TodoSummary          `json:"todo_analysis"`
}

// SummarizeJournal builds a JournalSummary. Weekly keeps entries from the
// last seven days; the profile is never windowed.
func SummarizeJournal(kind SummaryKind, u domain.UserData, now time.Time) JournalSummary {
	data := u
	if kind == SummaryWeekly {
		data = windowUserData(u, now.Add(-reportWindows[ReportWeekly]))
	} else {
		kind = SummaryOverall
	}

	completed := 0
	for _, t := range data.TodoList {
		if t.Completed {
			completed++
		}
	}

	s := JournalSummary{
		UserID:      u.UserID,
		ReportType:  kind,
		GeneratedAt: now,
		PregnancyInfo: SummaryPregnancyInfo{
			CurrentWeek: u.Profile.CurrentWeek,
			Trimester:   u.Profile.Trimester,
			DueDate:     u.Profile.DueDate,
		},
		Summary: SummaryTotals{
			TotalMoodEntries:      len(data.MoodLog),
			TotalSymptoms:         len(data.SymptomLog),
			TotalNutritionQueries: len(data.NutritionLog),
			TotalTodos:            len(data.TodoList),
			CompletedTodos:        completed,
		},
		MoodAnalysis:    summarizeMoods(data.MoodLog),
		SymptomAnalysis: summarizeSymptoms(data.SymptomLog),
		TodoAnalysis: TodoSummary{
			Total:          len(data.TodoList),
			Completed:      completed,
			Pending:        len(data.TodoList) - completed,
			CompletionRate: percent(completed, len(data.TodoList)),
		},
	}
	s.NutritionAnalysis.Queries = len(data.NutritionLog)
	for _, n := range data.NutritionLog {
		if !n.IsSafe {
			s.NutritionAnalysis.UnsafeFoodsChecked++
		}
		if n.AllergenWarning {
			s.NutritionAnalysis.AllergenWarnings++
		}
	}
	return s
}

func summarizeMoods(log []domain.MoodEntry) MoodSummary {
	counter := newOrderedCounter()
	for _, m := range log {
		counter.add(m.EmotionalState)
	}
	out := MoodSummary{
		Entries:     len(log),
		MostCommon:  mostCommon(counter),
		RecentMoods: []RecentMood{},
	}
	for _, m := range lastN(log, summaryRecentEntries) {
		out.RecentMoods = append(out.RecentMoods, RecentMood{
			Date: m.Timestamp.UTC().Format(domain.DateLayout),
			Mood: m.EmotionalState,
		})
	}
	return out
}

func summarizeSymptoms(log []domain.SymptomEntry) SymptomSummary {
	counter := newOrderedCounter()
	out := SymptomSummary{Entries: len(log), RecentSymptoms: []RecentSymptom{}}
	for _, s := range log {
		counter.add(s.Symptom)
		if s.IsEmergency {
			out.EmergencyCount++
		}
	}
	out.MostCommon = mostCommon(counter)
	for _, s := range lastN(log, summaryRecentEntries) {
		out.RecentSymptoms = append(out.RecentSymptoms, RecentSymptom{
			Date:     s.Timestamp.UTC().Format(domain.DateLayout),
			Symptom:  s.Symptom,
			Severity: s.Severity,
		})
	}
	return out
}

// mostCommon is nil for an empty counter. Ties go to the first seen key.
func mostCommon(c *orderedCounter) *string {
	top := c.top(1, 1)
	if len(top) == 0 {
		return nil
	}
	return &top[0]
}

func lastN[T any](entries []T, n int) []T {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
