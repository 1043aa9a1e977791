package service

import (
	"context"
	"time"

	"github.com/manuel14gregorioo/Agencia/internal/db"
	"github.com/manuel14gregorioo/Agencia/internal/model"
)

type StatsService struct {
	repo *db.Postgres
}

func NewStatsService(repo *db.Postgres) *StatsService {
	return &StatsService{repo: repo}
}

// Stats aggregates the dashboard numbers for the given lookback window.
func (s *StatsService) Stats(ctx context.Context, days int) (*model.StatsResponse, error) {
	days = clampDays(days, 30)
	since := time.Now().AddDate(0, 0, -days)

	leadsTotal, err := s.repo.CountLeads(ctx)
	if err != nil {
		return nil, err
	}
	leadsNew, err := s.repo.CountLeadsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountLeadsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	perDay, err := s.repo.LeadsPerDay(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	subsActive, err := s.repo.CountActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	subsNew, err := s.repo.CountSubscribersSince(ctx, since)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.CountEventsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &model.StatsResponse{
		Leads: model.LeadStats{
			Total:     leadsTotal,
			NewPeriod: leadsNew,
			Pending:   byStatus[model.LeadStatusNew],
			ByStatus:  byStatus,
			PerDay:    perDay,
		},
		Newsletter: model.NewsletterStats{
			TotalActive: subsActive,
			NewPeriod:   subsNew,
		},
		Analytics: model.AnalyticsStats{
			EventsPeriod: events,
		},
		PeriodDays: days,
	}, nil
}
