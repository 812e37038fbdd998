package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dpp0007/HackHerth/internal/metrics"
	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/dpp0007/HackHerth/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refNowFlag = "--now=2025-03-15T12:00:00Z"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	users := repository.NewSQLiteUserRepo(database)
	logs := repository.NewSQLiteLogRepo(database)
	m := metrics.New()

	return &App{
		Journal:      service.NewJournalService(users, logs, uow, m),
		Intelligence: service.NewIntelligenceService(logs, uow, m),
		Import:       service.NewImportService(uow, m),
		Metrics:      m,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// executeJSON runs a command that must succeed and decodes its JSON output.
func executeJSON(t *testing.T, app *App, args ...string) map[string]any {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	return decoded
}

func startSession(t *testing.T, app *App) string {
	t.Helper()
	out := executeJSON(t, app, "session", "start", "--json", refNowFlag)
	userID, _ := out["user_id"].(string)
	require.NotEmpty(t, userID)
	return userID
}

// --- Root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "hackherth")
}

func TestRootCmd_InvalidNow(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "show", "--user", "u1", "--now", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --now")
}

func TestRootCmd_NowAcceptsPlainDate(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "profile", "set", "--user", "u1", "--lmp", "2025-01-04", "--now", "2025-03-15")
	profile := out["profile"].(map[string]any)
	assert.Equal(t, float64(10), profile["current_week"])
}

func TestRootCmd_MissingUser(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "analyze")
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
	assert.Contains(t, err.Error(), "user_id")
}

// --- session and profile ---

func TestSessionStart_PrettyOutput(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "session", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Session started")
}

func TestSessionStart_JSONFlagWinsOnTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	out := executeJSON(t, app, "session", "start", "--json")
	assert.Equal(t, "Session started", out["message"])
}

func TestProfileSet_FromLMP(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)

	out := executeJSON(t, app, "profile", "set", "-u", userID, "--lmp", "2025-01-04",
		"--allergy", "peanuts", "--allergy", "shellfish", refNowFlag)
	profile := out["profile"].(map[string]any)
	assert.Equal(t, float64(11), profile["current_week"])
	assert.Equal(t, float64(1), profile["trimester"])
	assert.Equal(t, "2025-10-11", profile["due_date"])
	assert.Equal(t, []any{"peanuts", "shellfish"}, profile["allergies"])

	shown := executeJSON(t, app, "profile", "show", "-u", userID, refNowFlag)
	assert.Equal(t, "2025-10-11", shown["profile"].(map[string]any)["due_date"])
}

func TestProfileSet_UnchangedFlagsAreLeftAlone(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)

	executeJSON(t, app, "profile", "set", "-u", userID, "--week", "20", refNowFlag)
	out := executeJSON(t, app, "profile", "set", "-u", userID, "--food-pref", "vegetarian", refNowFlag)
	profile := out["profile"].(map[string]any)
	assert.Equal(t, float64(20), profile["current_week"])
	assert.Equal(t, float64(2), profile["trimester"])
	assert.Equal(t, []any{"vegetarian"}, profile["food_preferences"])
}

func TestProfileSet_RejectsOutOfRangeWeek(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "profile", "set", "-u", "u1", "--week", "50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current_week")
}

// --- log and todo ---

func TestLogMood_JoinsArgs(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "log", "mood", "-u", "u1", "a", "bit", "anxious", "--notes", "slept badly", refNowFlag)
	entry := out["entry"].(map[string]any)
	assert.Equal(t, "a bit anxious", entry["emotional_state"])
	assert.Equal(t, "slept badly", entry["notes"])
}

func TestLogSymptom_DefaultsAndFlagValidation(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "log", "symptom", "-u", "u1", "nausea", refNowFlag)
	assert.Equal(t, "moderate", out["entry"].(map[string]any)["severity"])

	out = executeJSON(t, app, "log", "symptom", "-u", "u1", "back", "pain", "--severity", "SEVERE", refNowFlag)
	assert.Equal(t, "severe", out["entry"].(map[string]any)["severity"])

	_, err := executeCmd(t, app, "log", "symptom", "-u", "u1", "nausea", "--severity", "awful")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestLogNutrition_UnsafeFlag(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "log", "nutrition", "-u", "u1", "raw", "sushi", "--unsafe", refNowFlag)
	entry := out["entry"].(map[string]any)
	assert.Equal(t, "raw sushi", entry["food_query"])
	assert.Equal(t, false, entry["is_safe"])

	out = executeJSON(t, app, "log", "nutrition", "-u", "u1", "banana", refNowFlag)
	assert.Equal(t, true, out["entry"].(map[string]any)["is_safe"])
}

func TestLogFeedback(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "log", "feedback", "-u", "u1", "rec-1", "--helpful", refNowFlag)
	entry := out["entry"].(map[string]any)
	assert.Equal(t, "rec-1", entry["suggestion_id"])
	assert.Equal(t, true, entry["was_helpful"])
}

func TestTodo_AddListComplete(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)

	added := executeJSON(t, app, "log", "todo", "-u", userID, "Book", "ultrasound", "--priority", "high", "--due", "2025-03-20", refNowFlag)
	todoID := added["entry"].(map[string]any)["id"].(string)

	listed := executeJSON(t, app, "todo", "list", "-u", userID)
	todos := listed["todos"].([]any)
	require.Len(t, todos, 1)
	first := todos[0].(map[string]any)
	assert.Equal(t, "Book ultrasound", first["task"])
	assert.Equal(t, "high", first["priority"])
	assert.Equal(t, false, first["completed"])

	done := executeJSON(t, app, "todo", "done", "-u", userID, todoID, refNowFlag)
	assert.Equal(t, "Todo completed", done["message"])

	listed = executeJSON(t, app, "todo", "list", "-u", userID)
	assert.Equal(t, true, listed["todos"].([]any)[0].(map[string]any)["completed"])
}

func TestTodoDone_UnknownID(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)

	_, err := executeCmd(t, app, "todo", "done", "-u", userID, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTodoList_PrettyEmpty(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "todo", "list", "-u", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet.")
}

// --- intelligence ---

func TestAnalyze_NegativeMoodRaisesRisk(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)
	for _, mood := range []string{"sad", "anxious", "sad"} {
		executeJSON(t, app, "log", "mood", "-u", userID, mood, refNowFlag)
	}

	out := executeJSON(t, app, "analyze", "-u", userID, refNowFlag)
	analysis := out["analysis"].(map[string]any)
	risk := analysis["risk_assessment"].(map[string]any)
	assert.Equal(t, "watch", risk["risk_level"])
	moods := analysis["trends"].(map[string]any)["moods"].(map[string]any)
	assert.Equal(t, "consistently_negative", moods["mood_pattern"])
}

func TestPlan_UnknownUserIsEmptyPlan(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "plan", "-u", "nobody", refNowFlag)
	plan := out["action_plan"].(map[string]any)
	assert.Equal(t, "nobody", plan["user_id"])
}

func TestReportSummary(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)
	executeJSON(t, app, "log", "mood", "-u", userID, "calm", refNowFlag)
	executeJSON(t, app, "log", "mood", "-u", userID, "calm", refNowFlag)

	out := executeJSON(t, app, "report", "summary", "-u", userID, "--type", "weekly", refNowFlag)
	report := out["report"].(map[string]any)
	assert.Equal(t, "weekly", report["report_type"])
	mood := report["mood_analysis"].(map[string]any)
	assert.Equal(t, "calm", mood["most_common"])
	assert.Equal(t, float64(2), mood["entries"])

	out = executeJSON(t, app, "report", "summary", "-u", userID, refNowFlag)
	assert.Equal(t, "overall", out["report"].(map[string]any)["report_type"])

	_, err := executeCmd(t, app, "report", "summary", "-u", userID, "--type", "daily")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of weekly, overall")
}

func TestReport_AllKinds(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)
	executeJSON(t, app, "log", "mood", "-u", userID, "happy", refNowFlag)

	for _, kind := range []string{"weekly", "monthly", "full"} {
		t.Run(kind, func(t *testing.T) {
			out := executeJSON(t, app, "report", kind, "-u", userID, refNowFlag)
			report := out["report"].(map[string]any)
			assert.Equal(t, kind, report["report_type"])
			_, hasPeriod := report["period"]
			assert.Equal(t, kind != "full", hasPeriod)
		})
	}
}

func TestReport_PrettyOutput(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "report", "weekly", "-u", "u1", refNowFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "WEEKLY REPORT")
}

// --- safety ---

func TestSafetyCheck_CriticalMessageIsRecorded(t *testing.T) {
	app := testApp(t)
	userID := startSession(t, app)

	out := executeJSON(t, app, "safety", "check", "-u", userID, "I", "have", "heavy", "bleeding", refNowFlag)
	analysis := out["safety_analysis"].(map[string]any)
	assert.Equal(t, "critical", analysis["safety_level"])
	assert.Equal(t, true, analysis["requires_escalation"])
	assert.Nil(t, out["response_safety"])

	report := executeJSON(t, app, "safety", "report", "-u", userID, refNowFlag)
	sr := report["safety_report"].(map[string]any)
	assert.Equal(t, float64(1), sr["escalations"])
	assert.Len(t, sr["safety_incidents"], 1)
}

func TestSafetyCheck_WithoutUserScreensResponse(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "safety", "check", "feeling", "fine", "--response", "You have nothing to worry about")
	assert.Equal(t, "safe", out["safety_analysis"].(map[string]any)["safety_level"])
	rs := out["response_safety"].(map[string]any)
	assert.Equal(t, false, rs["is_safe"])
}

func TestSafetyValidate_ReplacesUnsafeAdvice(t *testing.T) {
	app := testApp(t)

	out := executeJSON(t, app, "safety", "validate", "--message", "hello", "This", "is", "normal")
	v := out["validation"].(map[string]any)
	assert.Equal(t, false, v["is_valid"])
	assert.NotContains(t, v["final_response"], "This is normal")
	assert.Contains(t, v["final_response"], "discuss with your doctor")
}

func TestSafetyValidate_RequiresResponse(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "safety", "validate", "--message", "hello")
	assert.Error(t, err)
}

// --- import ---

func TestImport_LegacyFileThenAnalyze(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "user_legacy-9.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"profile": {"current_week": 12, "allergies": ["peanuts"]},
		"mood_log": [
			{"timestamp": "2025-03-13T09:00:00.000Z", "emotional_state": "sad"},
			{"timestamp": "2025-03-14T09:00:00.000Z", "emotional_state": "anxious"}
		],
		"agent_log": [{"timestamp": "2025-03-01T08:00:00.000Z", "event": "session_start", "message": "New session started"}]
	}`), 0o644))

	out := executeJSON(t, app, "import", path, refNowFlag)
	imported := out["imported"].([]any)
	require.Len(t, imported, 1)
	first := imported[0].(map[string]any)
	assert.Equal(t, "legacy-9", first["user_id"])
	assert.Equal(t, float64(2), first["mood_entries"])

	shown := executeJSON(t, app, "profile", "show", "-u", "legacy-9")
	assert.Equal(t, float64(12), shown["profile"].(map[string]any)["current_week"])

	analysis := executeJSON(t, app, "analyze", "-u", "legacy-9", refNowFlag)["analysis"].(map[string]any)
	moods := analysis["trends"].(map[string]any)["moods"].(map[string]any)
	assert.Equal(t, "consistently_negative", moods["mood_pattern"])

	_, err := executeCmd(t, app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestImport_PrettyOutput(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	path := filepath.Join(t.TempDir(), "user_pretty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mood_log": []}`), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "pretty")
}

// --- serve ---

func TestServe_HandlesRequestsUntilCancelled(t *testing.T) {
	app := testApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, app, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
