package api

import (
	"net/http"
	"time"

	"github.com/dpp0007/HackHerth/internal/intelligence"
	"github.com/dpp0007/HackHerth/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"message":   "Pregnancy Companion Backend is running",
		"timestamp": time.Now().UTC(),
	})
}

func (h *handler) startSession(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := h.journal.StartSession(r.Context(), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"user_id": userID,
		"message": "Session started successfully",
	})
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.journal.GetProfile(r.Context(), chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"profile": profile})
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd service.ProfileUpdate
	now, err := decodeWithNow(w, r, &upd)
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.journal.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), upd, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"profile": profile})
}

func (h *handler) logMood(w http.ResponseWriter, r *http.Request) {
	var in service.MoodInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.journal.LogMood(r.Context(), chi.URLParam(r, "userID"), in, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"entry": entry})
}

func (h *handler) logSymptom(w http.ResponseWriter, r *http.Request) {
	var in service.SymptomInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.journal.LogSymptom(r.Context(), chi.URLParam(r, "userID"), in, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"entry": entry})
}

func (h *handler) logNutrition(w http.ResponseWriter, r *http.Request) {
	var in service.NutritionInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.journal.LogNutrition(r.Context(), chi.URLParam(r, "userID"), in, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"entry": entry})
}

func (h *handler) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.journal.ListTodos(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"todos": todos})
}

func (h *handler) addTodo(w http.ResponseWriter, r *http.Request) {
	var in service.TodoInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	todo, err := h.journal.AddTodo(r.Context(), chi.URLParam(r, "userID"), in, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"todo": todo})
}

func (h *handler) completeTodo(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.journal.CompleteTodo(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "todoID"), now); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"message": "Todo completed"})
}

func (h *handler) logAgentEvent(w http.ResponseWriter, r *http.Request) {
	var in service.AgentEventInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.journal.LogAgentEvent(r.Context(), chi.URLParam(r, "userID"), in, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"entry": entry})
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	analysis, err := h.intelligence.Analyze(r.Context(), chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"analysis": analysis})
}

func (h *handler) report(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind := intelligence.ReportKind(chi.URLParam(r, "kind"))
	report, err := h.intelligence.Report(r.Context(), kind, chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"report": report})
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	kind := intelligence.SummaryKind(r.URL.Query().Get("type"))
	summary, err := h.intelligence.Summary(r.Context(), kind, chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"report": summary})
}

func (h *handler) actionPlan(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := h.intelligence.ActionPlan(r.Context(), chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"action_plan": plan})
}

func (h *handler) safetyCheck(w http.ResponseWriter, r *http.Request) {
	var req service.SafetyCheckRequest
	now, err := decodeWithNow(w, r, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.intelligence.SafetyCheck(r.Context(), req, now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"safety_analysis": result.SafetyAnalysis,
		"response_safety": result.ResponseSafety,
	})
}

type validateRequest struct {
	UserMessage   string `json:"user_message"`
	AgentResponse string `json:"agent_response"`
}

func (h *handler) validateResponse(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	validation, err := h.intelligence.ValidateResponse(r.Context(), req.UserMessage, req.AgentResponse)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"validation": validation})
}

func (h *handler) learn(w http.ResponseWriter, r *http.Request) {
	var in service.FeedbackInput
	now, err := decodeWithNow(w, r, &in)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.journal.RecordFeedback(r.Context(), chi.URLParam(r, "userID"), in, now); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"message": "Learning data recorded"})
}

func (h *handler) safetyReport(w http.ResponseWriter, r *http.Request) {
	now, err := requestNow(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.intelligence.SafetyReport(r.Context(), chi.URLParam(r, "userID"), now)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"safety_report": report})
}

func decodeWithNow(w http.ResponseWriter, r *http.Request, dst any) (time.Time, error) {
	now, err := requestNow(r)
	if err != nil {
		return time.Time{}, err
	}
	if err := decodeBody(w, r, dst); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
