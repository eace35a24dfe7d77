package service

import (
	"context"
	"fmt"
	"time"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/repo/postgres"
)

type ReportService interface {
	Daily(ctx context.Context, days int) ([]domain.DailyReportRow, error)
	Weekly(ctx context.Context, weeks int) ([]domain.WeeklyReportRow, error)
	AccessSummary(ctx context.Context, from, to time.Time) ([]domain.AccessSummaryRow, error)
	FrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitorRow, error)
}

type reportService struct {
	reportRepo postgres.ReportRepository
}

func NewReportService(reportRepo postgres.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) Daily(ctx context.Context, days int) ([]domain.DailyReportRow, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	rows, err := s.reportRepo.Daily(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to build daily report: %w", err)
	}
	return rows, nil
}

func (s *reportService) Weekly(ctx context.Context, weeks int) ([]domain.WeeklyReportRow, error) {
	if weeks <= 0 || weeks > 52 {
		weeks = 12
	}
	rows, err := s.reportRepo.Weekly(ctx, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly report: %w", err)
	}
	return rows, nil
}

func (s *reportService) AccessSummary(ctx context.Context, from, to time.Time) ([]domain.AccessSummaryRow, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	if !from.Before(to) {
		return nil, validationErr("Invalid date range")
	}
	rows, err := s.reportRepo.AccessSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build access summary: %w", err)
	}
	return rows, nil
}

func (s *reportService) FrequentVisitors(ctx context.Context, limit int) ([]domain.FrequentVisitorRow, error) {
	rows, err := s.reportRepo.FrequentVisitors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build frequent visitors report: %w", err)
	}
	return rows, nil
}
