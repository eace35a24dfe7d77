package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/platform/mailer"
	"github.com/entryline/visitdesk/internal/repo/postgres"
	"github.com/entryline/visitdesk/pkg/events"
	"github.com/entryline/visitdesk/pkg/logger"
)

// RegistrationResult is the check-in response payload.
type RegistrationResult struct {
	Visitor *domain.Visitor `json:"visitor"`
	Visit   domain.VisitDTO `json:"visit"`
	// BadgeToken goes onto the printed QR badge.
	BadgeToken string `json:"badgeToken"`
}

type RegistrationService interface {
	RegisterVisit(ctx context.Context, req *domain.RegisterVisitReq) (*RegistrationResult, error)
}

type registrationService struct {
	registrationRepo postgres.RegistrationRepository
	passStore        PassStore
	mail             mailer.Service
	eventBus         events.Publisher
}

func NewRegistrationService(
	registrationRepo postgres.RegistrationRepository,
	passStore PassStore,
	mail mailer.Service,
	eventBus events.Publisher,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		passStore:        passStore,
		mail:             mail,
		eventBus:         eventBus,
	}
}

func (s *registrationService) RegisterVisit(ctx context.Context, req *domain.RegisterVisitReq) (*RegistrationResult, error) {
	if msg := req.Validate(); msg != "" {
		return nil, validationErr(msg)
	}

	badgeToken := uuid.NewString()

	// Visitor upsert and visit insert commit or roll back as a unit,
	// so a failed visit insert cannot leave an orphan visitor.
	visitor, visit, err := s.registrationRepo.RegisterVisit(ctx, req, badgeToken)
	if err != nil {
		return nil, fmt.Errorf("failed to register visit: %w", err)
	}

	if err := s.passStore.Put(ctx, badgeToken, visit.ID); err != nil {
		logger.ErrorContext(ctx, "Failed to cache badge pass", "error", err, "visit_id", visit.ID)
	}

	if visitor.Email != "" {
		if err := s.mail.SendCheckInConfirmation(visitor.Email, visitor.FullName(), visit.HostName, visit.Department); err != nil {
			logger.ErrorContext(ctx, "Failed to send check-in mail", "error", err, "visit_id", visit.ID)
		}
	}

	event := events.VisitCheckedInEvent{
		VisitID:        visit.ID,
		VisitorID:      visitor.ID,
		DocumentNumber: visitor.DocumentNumber,
		HostName:       visit.HostName,
		Department:     visit.Department,
		CheckInAt:      visit.CheckInAt,
	}
	if err := s.eventBus.Publish(ctx, events.VisitCheckedIn, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish check-in event", "error", err, "visit_id", visit.ID)
	}

	return &RegistrationResult{
		Visitor:    visitor,
		Visit:      visit.DTO(time.Now()),
		BadgeToken: badgeToken,
	}, nil
}
