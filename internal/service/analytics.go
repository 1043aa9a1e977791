package service

import (
	"context"
	"time"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

type analyticsStore interface {
	InsertAnalyticsEvent(ctx context.Context, event *model.AnalyticsEvent) error
	CountEventsByName(ctx context.Context, since time.Time) (map[string]int64, error)
}

type AnalyticsService struct {
	store analyticsStore
}

func NewAnalyticsService(store analyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (s *AnalyticsService) Track(ctx context.Context, req model.TrackEventRequest, ipAddress, userAgent string) error {
	if req.Event == "" {
		return ErrInvalidInput
	}

	var data map[string]string
	if len(req.Data) > 0 {
		data = make(map[string]string, len(req.Data))
		for k, v := range req.Data {
			data[sanitizeText(k, 50)] = sanitizeText(v, 500)
		}
	}

	event := &model.AnalyticsEvent{
		EventName:   sanitizeText(req.Event, 100),
		EventData:   data,
		URL:         optional(sanitizeText(req.URL, 500)),
		Referrer:    optional(sanitizeText(req.Referrer, 500)),
		SessionID:   optional(sanitizeText(req.SessionID, 100)),
		IPAddress:   optional(ipAddress),
		UserAgent:   optional(truncate(userAgent, 500)),
		UTMSource:   optional(sanitizeText(req.UTMSource, 100)),
		UTMMedium:   optional(sanitizeText(req.UTMMedium, 100)),
		UTMCampaign: optional(sanitizeText(req.UTMCampaign, 100)),
	}

	return s.store.InsertAnalyticsEvent(ctx, event)
}

func (s *AnalyticsService) EventStats(ctx context.Context, days int) (*model.EventStatsResponse, error) {
	days = clampDays(days, 7)

	counts, err := s.store.CountEventsByName(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	return &model.EventStatsResponse{EventsByType: counts, PeriodDays: days}, nil
}

func clampDays(days, fallback int) int {
	if days <= 0 {
		return fallback
	}
	if days > 365 {
		return 365
	}
	return days
}
