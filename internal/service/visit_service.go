package service

import (
	"context"
	"fmt"
	"time"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/platform/mailer"
	"github.com/entryline/visitdesk/internal/repo/postgres"
	"github.com/entryline/visitdesk/pkg/events"
	"github.com/entryline/visitdesk/pkg/logger"
)

// PassStore resolves QR badge tokens. Implemented by redispass.Store.
type PassStore interface {
	Put(ctx context.Context, token string, visitID int64) error
	Resolve(ctx context.Context, token string) (int64, bool, error)
	Revoke(ctx context.Context, token string) error
}

// PassVerification is what a guard's phone sees when scanning a badge.
type PassVerification struct {
	Visit       domain.VisitDTO `json:"visit"`
	VisitorName string          `json:"visitorName"`
	Company     string          `json:"company,omitempty"`
}

type VisitService interface {
	GetVisit(ctx context.Context, id int64) (*domain.VisitDTO, error)
	ListVisits(ctx context.Context, limit, offset int, status *domain.VisitStatus) ([]domain.VisitDTO, error)
	// CheckOut is the one-shot active -> completed transition. The
	// second call on the same visit fails with not found.
	CheckOut(ctx context.Context, id int64) (*domain.VisitDTO, error)
	UpdateStickerStatus(ctx context.Context, id int64, printed bool) (*domain.VisitDTO, error)
	VerifyPass(ctx context.Context, token string) (*PassVerification, error)
}

type visitService struct {
	visitRepo   postgres.VisitRepository
	visitorRepo postgres.VisitorRepository
	passStore   PassStore
	mail        mailer.Service
	eventBus    events.Publisher
}

func NewVisitService(
	visitRepo postgres.VisitRepository,
	visitorRepo postgres.VisitorRepository,
	passStore PassStore,
	mail mailer.Service,
	eventBus events.Publisher,
) VisitService {
	return &visitService{
		visitRepo:   visitRepo,
		visitorRepo: visitorRepo,
		passStore:   passStore,
		mail:        mail,
		eventBus:    eventBus,
	}
}

func (s *visitService) GetVisit(ctx context.Context, id int64) (*domain.VisitDTO, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	if visit == nil {
		return nil, notFoundErr("Visit not found")
	}
	dto := visit.DTO(time.Now())
	return &dto, nil
}

func (s *visitService) ListVisits(ctx context.Context, limit, offset int, status *domain.VisitStatus) ([]domain.VisitDTO, error) {
	visits, err := s.visitRepo.List(ctx, limit, offset, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}

	now := time.Now()
	dtos := make([]domain.VisitDTO, 0, len(visits))
	for i := range visits {
		dtos = append(dtos, visits[i].DTO(now))
	}
	return dtos, nil
}

func (s *visitService) CheckOut(ctx context.Context, id int64) (*domain.VisitDTO, error) {
	visit, err := s.visitRepo.CheckOut(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check out visit: %w", err)
	}
	if visit == nil {
		return nil, notFoundErr("Visit not found or already checked out")
	}

	if visit.BadgeToken != "" {
		if err := s.passStore.Revoke(ctx, visit.BadgeToken); err != nil {
			logger.ErrorContext(ctx, "Failed to revoke badge pass", "error", err, "visit_id", visit.ID)
		}
	}

	s.sendCheckOutMail(ctx, visit)

	event := events.VisitCheckedOutEvent{
		VisitID:   visit.ID,
		VisitorID: visit.VisitorID,
	}
	if visit.CheckOutAt != nil {
		event.CheckOutAt = *visit.CheckOutAt
	}
	if err := s.eventBus.Publish(ctx, events.VisitCheckedOut, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish checkout event", "error", err, "visit_id", visit.ID)
	}

	dto := visit.DTO(time.Now())
	return &dto, nil
}

func (s *visitService) sendCheckOutMail(ctx context.Context, visit *domain.Visit) {
	visitor, err := s.visitorRepo.GetByID(ctx, visit.VisitorID)
	if err != nil || visitor == nil || visitor.Email == "" {
		return
	}
	formatted := domain.FormatDuration(visit.Duration(time.Now()))
	if err := s.mail.SendCheckOutConfirmation(visitor.Email, visitor.FullName(), formatted); err != nil {
		logger.ErrorContext(ctx, "Failed to send checkout mail", "error", err, "visit_id", visit.ID)
	}
}

func (s *visitService) UpdateStickerStatus(ctx context.Context, id int64, printed bool) (*domain.VisitDTO, error) {
	visit, err := s.visitRepo.SetStickerPrinted(ctx, id, printed)
	if err != nil {
		return nil, fmt.Errorf("failed to update sticker status: %w", err)
	}
	if visit == nil {
		return nil, notFoundErr("Visit not found")
	}

	event := events.StickerPrintedEvent{
		VisitID:   visit.ID,
		Printed:   printed,
		UpdatedAt: visit.UpdatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.StickerPrinted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish sticker event", "error", err, "visit_id", visit.ID)
	}

	dto := visit.DTO(time.Now())
	return &dto, nil
}

func (s *visitService) VerifyPass(ctx context.Context, token string) (*PassVerification, error) {
	if token == "" {
		return nil, validationErr("Pass token is required")
	}

	var visit *domain.Visit
	visitID, ok, err := s.passStore.Resolve(ctx, token)
	if err != nil {
		logger.ErrorContext(ctx, "Pass store lookup failed, falling back to database", "error", err)
	}
	if ok {
		visit, err = s.visitRepo.GetByID(ctx, visitID)
	} else {
		// Redis miss or outage: the visits table is the source of truth.
		visit, err = s.visitRepo.GetByBadgeToken(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pass: %w", err)
	}
	if visit == nil {
		return nil, notFoundErr("Pass not found")
	}

	verification := &PassVerification{Visit: visit.DTO(time.Now())}
	if visitor, err := s.visitorRepo.GetByID(ctx, visit.VisitorID); err == nil && visitor != nil {
		verification.VisitorName = visitor.FullName()
		verification.Company = visitor.Company
	}
	return verification, nil
}
