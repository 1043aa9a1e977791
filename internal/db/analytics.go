package db

import (
	"context"
	"time"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

func (db *Postgres) InsertAnalyticsEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (event_name, event_data, url, referrer, session_id,
			ip_address, user_agent, utm_source, utm_medium, utm_campaign, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := db.Pool.Exec(ctx, query,
		event.EventName, event.EventData, event.URL, event.Referrer, event.SessionID,
		event.IPAddress, event.UserAgent, event.UTMSource, event.UTMMedium, event.UTMCampaign,
	)
	return err
}

func (db *Postgres) CountEventsByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	query := `
		SELECT event_name, COUNT(*)
		FROM analytics_events
		WHERE timestamp >= $1
		GROUP BY event_name
	`
	rows, err := db.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	return counts, rows.Err()
}
