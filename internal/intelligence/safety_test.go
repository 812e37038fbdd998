package intelligence

import (
	"strings"
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSafety_Critical(t *testing.T) {
	analysis := AnalyzeSafety("I have Heavy Bleeding and dizziness")

	assert.Equal(t, domain.SafetyCritical, analysis.SafetyLevel)
	assert.True(t, analysis.RequiresEscalation)
	assert.Equal(t, []string{"bleeding", "heavy bleeding", "dizziness"}, analysis.DetectedKeywords)
	assert.Equal(t, criticalResponse, analysis.RecommendedResponse)
	assert.Equal(t,
		"EMERGENCY KEYWORDS DETECTED: bleeding, heavy bleeding, dizziness. Immediate healthcare consultation recommended.",
		analysis.EscalationMessage)
}

func TestAnalyzeSafety_CriticalShortCircuitsWarning(t *testing.T) {
	analysis := AnalyzeSafety("some cramping and now contractions")

	assert.Equal(t, domain.SafetyCritical, analysis.SafetyLevel)
	assert.Equal(t, []string{"contractions"}, analysis.DetectedKeywords)
}

func TestAnalyzeSafety_Warning(t *testing.T) {
	analysis := AnalyzeSafety("I feel nausea every morning")

	assert.Equal(t, domain.SafetyWarning, analysis.SafetyLevel)
	assert.False(t, analysis.RequiresEscalation)
	assert.Equal(t, []string{"nausea"}, analysis.DetectedKeywords)
	assert.Contains(t, analysis.RecommendedResponse.Template, "experiencing nausea")
	assert.Contains(t, analysis.RecommendedResponse.FollowUp, "ginger tea")
	assert.NotContains(t, analysis.RecommendedResponse.FollowUp, "{suggestions}")
	assert.Empty(t, analysis.EscalationMessage)
}

func TestAnalyzeSafety_Safe(t *testing.T) {
	analysis := AnalyzeSafety("Feeling great today!")

	assert.Equal(t, domain.SafetySafe, analysis.SafetyLevel)
	assert.NotNil(t, analysis.DetectedKeywords)
	assert.Empty(t, analysis.DetectedKeywords)
	assert.Equal(t, supportiveResponse, analysis.RecommendedResponse)
}

func TestCheckResponseSafety_Diagnose(t *testing.T) {
	result := CheckResponseSafety("I diagnose you with X")

	assert.False(t, result.IsSafe)
	assert.True(t, result.RequiresModification)
	assert.Equal(t, []string{"diagnose"}, result.UnsafePatterns)
	require.NotEmpty(t, result.SafeAlternative)
	assert.NotContains(t, strings.ToLower(result.SafeAlternative), "diagnose")
	assert.True(t, strings.HasSuffix(result.SafeAlternative, supportDisclaimer))
}

func TestCheckResponseSafety_ReplacesCaseInsensitiveGlobally(t *testing.T) {
	result := CheckResponseSafety("You have a cold. Honestly YOU HAVE nothing to worry about.")

	assert.Equal(t, []string{"you have", "nothing to worry about"}, result.UnsafePatterns)
	assert.Equal(t,
		"you might be experiencing a cold. Honestly you might be experiencing worth mentioning to your healthcare provider."+supportDisclaimer,
		result.SafeAlternative)
}

func TestCheckResponseSafety_SafeResponseUnchanged(t *testing.T) {
	text := "Ginger tea can help with morning sickness."

	result := CheckResponseSafety(text)

	assert.True(t, result.IsSafe)
	assert.False(t, result.RequiresModification)
	assert.Empty(t, result.UnsafePatterns)
	assert.Equal(t, text, result.SafeAlternative)
}

func TestValidateResponse(t *testing.T) {
	t.Run("escalating message overrides a safe response", func(t *testing.T) {
		result := ValidateResponse("Let's talk about names.", "my water broke")
		assert.False(t, result.IsValid)
		assert.True(t, result.RequiresEscalation)
		assert.Equal(t, criticalResponse.Template, result.FinalResponse)
	})

	t.Run("unsafe response is sanitized", func(t *testing.T) {
		result := ValidateResponse("Just ignore it.", "my feet feel weird")
		assert.False(t, result.IsValid)
		assert.False(t, result.RequiresEscalation)
		assert.Equal(t, result.ResponseSafety.SafeAlternative, result.FinalResponse)
		assert.Contains(t, result.FinalResponse, "monitor and discuss with your doctor")
	})

	t.Run("both safe", func(t *testing.T) {
		result := ValidateResponse("Stay hydrated today.", "hello there")
		assert.True(t, result.IsValid)
		assert.Equal(t, "Stay hydrated today.", result.FinalResponse)
	})
}

func TestSafeSymptomResponse(t *testing.T) {
	warning := SafeSymptomResponse("back pain", AnalyzeSafety("I have back pain"))
	assert.Contains(t, warning, "experiencing back pain")
	assert.Contains(t, warning, "proper posture")

	critical := SafeSymptomResponse("chest pain", AnalyzeSafety("chest pain"))
	assert.Equal(t, criticalResponse.Template, critical)

	safe := SafeSymptomResponse("hiccups", AnalyzeSafety("hiccups"))
	assert.Equal(t, supportiveResponse.Template, safe)
}

func TestComfortMeasures_Fallback(t *testing.T) {
	assert.Equal(t, defaultComfortMeasure, ComfortMeasures("itchy skin"))
	assert.Contains(t, ComfortMeasures("Swelling in my ankles"), "elevate your feet")
}

func TestCreateSafetyReport(t *testing.T) {
	log := []domain.AgentLogEntry{
		{Event: domain.EventSessionStart, Timestamp: ago(4 * time.Hour)},
		{Event: domain.EventSafetyCheck, Timestamp: ago(3 * time.Hour), SafetyLevel: domain.SafetyCritical, DetectedKeywords: []string{"bleeding"}, Escalated: true},
		{Event: domain.EventSafetyCheck, Timestamp: ago(2 * time.Hour), SafetyLevel: domain.SafetyWarning},
		{Event: domain.EventSafetyCheck, Timestamp: ago(time.Hour), SafetyLevel: domain.SafetySafe},
	}

	report := CreateSafetyReport(log, refNow)

	assert.Equal(t, 4, report.TotalInteractions)
	assert.Equal(t, 1, report.Escalations)
	assert.Equal(t, 1, report.Warnings)
	assert.Equal(t, 1, report.SafeInteractions)
	require.Len(t, report.SafetyIncidents, 2)
	assert.True(t, report.SafetyIncidents[0].Escalated)
	assert.Equal(t, []string{"bleeding"}, report.SafetyIncidents[0].Keywords)
	assert.NotNil(t, report.SafetyIncidents[1].Keywords)
}
