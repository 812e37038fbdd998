package service

import (
	"context"
	"strings"
	"time"

	"github.com/dpp0007/HackHerth/internal/db"
	"github.com/dpp0007/HackHerth/internal/domain"
	"github.com/dpp0007/HackHerth/internal/intelligence"
	"github.com/dpp0007/HackHerth/internal/repository"
	"github.com/google/uuid"
)

type intelligenceService struct {
	logs     repository.LogRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewIntelligenceService(
	logs repository.LogRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) IntelligenceService {
	return &intelligenceService{
		logs:     logs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *intelligenceService) Analyze(ctx context.Context, userID string, now time.Time) (analysis *Analysis, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "analyze", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	now = resolveNow(now)
	var u *domain.UserData
	if u, err = loadOrDefault(ctx, s.logs, userID, now); err != nil {
		return nil, err
	}

	trends := intelligence.AnalyzeTrends(*u, now)
	analysis = &Analysis{
		Trends:          trends,
		RiskAssessment:  intelligence.CalculateRiskScore(*u, trends, now),
		Personalization: intelligence.CalculatePersonalizationScore(*u, now),
	}
	fields[FieldRiskLevel] = string(analysis.RiskAssessment.RiskLevel)
	fields["risk_score"] = analysis.RiskAssessment.TotalScore
	return analysis, nil
}

func (s *intelligenceService) ActionPlan(ctx context.Context, userID string, now time.Time) (plan *intelligence.ActionPlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "action-plan", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	now = resolveNow(now)
	var u *domain.UserData
	if u, err = loadOrDefault(ctx, s.logs, userID, now); err != nil {
		return nil, err
	}

	trends := intelligence.AnalyzeTrends(*u, now)
	risk := intelligence.CalculateRiskScore(*u, trends, now)
	pers := intelligence.CalculatePersonalizationScore(*u, now)
	result := intelligence.GenerateActionPlan(*u, trends, risk, pers, now)

	fields[FieldRiskLevel] = string(risk.RiskLevel)
	fields["total_actions"] = result.TotalActions
	fields["high_priority_count"] = result.HighPriorityCount
	return &result, nil
}

func (s *intelligenceService) Report(ctx context.Context, kind intelligence.ReportKind, userID string, now time.Time) (report *intelligence.Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "kind": string(kind)}
	defer func() { observe(ctx, s.observer, "report", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if _, perr := intelligence.ParseReportKind(string(kind)); perr != nil {
		return nil, invalid("kind", perr.Error())
	}
	now = resolveNow(now)
	var u *domain.UserData
	if u, err = loadOrDefault(ctx, s.logs, userID, now); err != nil {
		return nil, err
	}

	result := intelligence.GenerateReport(kind, *u, now)
	fields[FieldRiskLevel] = string(result.RiskEvaluation.RiskLevel)
	return &result, nil
}

func (s *intelligenceService) Summary(ctx context.Context, kind intelligence.SummaryKind, userID string, now time.Time) (summary *intelligence.JournalSummary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID, "kind": string(kind)}
	defer func() { observe(ctx, s.observer, "summary", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	if kind, err = intelligence.ParseSummaryKind(string(kind)); err != nil {
		return nil, invalid("type", err.Error())
	}
	now = resolveNow(now)
	var u *domain.UserData
	if u, err = loadOrDefault(ctx, s.logs, userID, now); err != nil {
		return nil, err
	}

	result := intelligence.SummarizeJournal(kind, *u, now)
	fields["kind"] = string(result.ReportType)
	return &result, nil
}

func (s *intelligenceService) SafetyCheck(ctx context.Context, req SafetyCheckRequest, now time.Time) (result *SafetyCheckResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": req.UserID}
	defer func() { observe(ctx, s.observer, "safety-check", startedAt, fields, err) }()

	if strings.TrimSpace(req.Message) == "" {
		return nil, invalid("message", "is required")
	}
	result = &SafetyCheckResult{SafetyAnalysis: intelligence.AnalyzeSafety(req.Message)}
	if req.Response != "" {
		rs := intelligence.CheckResponseSafety(req.Response)
		result.ResponseSafety = &rs
	}
	fields[FieldSafetyLevel] = string(result.SafetyAnalysis.SafetyLevel)
	fields["requires_escalation"] = result.SafetyAnalysis.RequiresEscalation

	if req.UserID == "" {
		return result, nil
	}
	now = resolveNow(now)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		week, err := ensureWeek(ctx, repository.NewSQLiteUserRepo(tx), req.UserID, now)
		if err != nil {
			return err
		}
		return repository.NewSQLiteLogRepo(tx).AddAgentLog(ctx, req.UserID, domain.AgentLogEntry{
			ID:               uuid.New().String(),
			Timestamp:        now,
			Event:            domain.EventSafetyCheck,
			Message:          req.Message,
			SafetyLevel:      result.SafetyAnalysis.SafetyLevel,
			DetectedKeywords: append([]string{}, result.SafetyAnalysis.DetectedKeywords...),
			Escalated:        result.SafetyAnalysis.RequiresEscalation,
			Week:             week,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *intelligenceService) ValidateResponse(ctx context.Context, userMessage, agentResponse string) (result *intelligence.ValidationResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "validate-response", startedAt, fields, err) }()

	if strings.TrimSpace(agentResponse) == "" {
		return nil, invalid("agent_response", "is required")
	}
	v := intelligence.ValidateResponse(agentResponse, userMessage)
	fields[FieldSafetyLevel] = string(v.SafetyAnalysis.SafetyLevel)
	fields["is_valid"] = v.IsValid
	return &v, nil
}

func (s *intelligenceService) SafetyReport(ctx context.Context, userID string, now time.Time) (report *intelligence.SafetyReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "safety-report", startedAt, fields, err) }()

	if err = requireUserID(userID); err != nil {
		return nil, err
	}
	now = resolveNow(now)
	var u *domain.UserData
	if u, err = loadOrDefault(ctx, s.logs, userID, now); err != nil {
		return nil, err
	}
	result := intelligence.CreateSafetyReport(u.AgentLog, now)
	fields["total_interactions"] = result.TotalInteractions
	return &result, nil
}
