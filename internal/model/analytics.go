package model

import "time"

type AnalyticsEvent struct {
	ID          int64             `json:"id"`
	EventName   string            `json:"event_name"`
	EventData   map[string]string `json:"event_data,omitempty"`
	URL         *string           `json:"url"`
	Referrer    *string           `json:"referrer,omitempty"`
	SessionID   *string           `json:"session_id,omitempty"`
	IPAddress   *string           `json:"-"`
	UserAgent   *string           `json:"-"`
	UTMSource   *string           `json:"utm_source,omitempty"`
	UTMMedium   *string           `json:"utm_medium,omitempty"`
	UTMCampaign *string           `json:"utm_campaign,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

type TrackEventRequest struct {
	Event       string            `json:"event" binding:"required"`
	Data        map[string]string `json:"data"`
	URL         string            `json:"url"`
	Referrer    string            `json:"referrer"`
	SessionID   string            `json:"session_id"`
	UTMSource   string            `json:"utm_source"`
	UTMMedium   string            `json:"utm_medium"`
	UTMCampaign string            `json:"utm_campaign"`
}

type EventStatsResponse struct {
	EventsByType map[string]int64 `json:"events_by_type"`
	PeriodDays   int              `json:"period_days"`
}
