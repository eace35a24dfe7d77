package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/repo/postgres"
	"github.com/entryline/visitdesk/pkg/events"
	"github.com/entryline/visitdesk/pkg/logger"
	"github.com/entryline/visitdesk/pkg/metrics"
)

type AccessService interface {
	// CheckAccess decides whether a visit may enter a department and
	// appends one audit row per invocation, granted or not.
	CheckAccess(ctx context.Context, visitID int64, department string) (*domain.AccessDecision, error)
	ListAccessLogs(ctx context.Context, visitID int64, page, limit int) ([]domain.AccessLogEntry, bool, error)
}

type accessService struct {
	visitRepo     postgres.VisitRepository
	accessLogRepo postgres.AccessLogRepository
	policies      domain.AccessPolicies
	eventBus      events.Publisher
}

func NewAccessService(
	visitRepo postgres.VisitRepository,
	accessLogRepo postgres.AccessLogRepository,
	policies domain.AccessPolicies,
	eventBus events.Publisher,
) AccessService {
	return &accessService{
		visitRepo:     visitRepo,
		accessLogRepo: accessLogRepo,
		policies:      policies,
		eventBus:      eventBus,
	}
}

func (s *accessService) CheckAccess(ctx context.Context, visitID int64, department string) (*domain.AccessDecision, error) {
	if strings.TrimSpace(department) == "" {
		return nil, validationErr("Department is required")
	}

	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	if visit == nil {
		return nil, notFoundErr("Visit not found")
	}

	granted, reason := domain.Authorize(visit, department, s.policies)

	// The audit append is best-effort: a logging fault must not block
	// a physical access decision already computed. Failures are
	// counted so silent audit loss stays observable.
	if _, err := s.accessLogRepo.Append(ctx, visit.ID, department, granted, reason); err != nil {
		metrics.AuditLogWriteFailures.Inc()
		logger.ErrorContext(ctx, "Failed to append access log",
			"error", err, "visit_id", visit.ID, "department", department)
	}

	outcome := "denied"
	subject := events.AccessDenied
	if granted {
		outcome = "granted"
		subject = events.AccessGranted
	}
	metrics.AccessChecks.WithLabelValues(outcome).Inc()

	event := events.AccessDecisionEvent{
		VisitID:    visit.ID,
		Department: department,
		Granted:    granted,
		Reason:     reason,
		AccessTime: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, subject, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish access event", "error", err, "visit_id", visit.ID)
	}

	dto := visit.DTO(time.Now())
	return &domain.AccessDecision{
		AccessGranted: granted,
		Reason:        reason,
		Visit:         &dto,
	}, nil
}

func (s *accessService) ListAccessLogs(ctx context.Context, visitID int64, page, limit int) ([]domain.AccessLogEntry, bool, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get visit: %w", err)
	}
	if visit == nil {
		return nil, false, notFoundErr("Visit not found")
	}

	entries, err := s.accessLogRepo.ListByVisit(ctx, visitID, limit, (page-1)*limit)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list access logs: %w", err)
	}

	hasMore := len(entries) == limit
	return entries, hasMore, nil
}
