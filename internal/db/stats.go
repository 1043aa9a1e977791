package db

import (
	"context"
	"time"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

func (db *Postgres) CountLeads(ctx context.Context) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}

func (db *Postgres) CountLeadsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func (db *Postgres) CountLeadsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := db.Pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (db *Postgres) LeadsPerDay(ctx context.Context, since time.Time) ([]model.LeadsPerDay, error) {
	query := `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		FROM leads
		WHERE created_at >= $1
		GROUP BY created_at::date
		ORDER BY created_at::date
	`
	rows, err := db.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perDay := []model.LeadsPerDay{}
	for rows.Next() {
		var d model.LeadsPerDay
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, err
		}
		perDay = append(perDay, d)
	}
	return perDay, rows.Err()
}

func (db *Postgres) CountActiveSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = TRUE`).Scan(&n)
	return n, err
}

func (db *Postgres) CountSubscribersSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = TRUE AND created_at >= $1`,
		since).Scan(&n)
	return n, err
}

func (db *Postgres) CountEventsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM analytics_events WHERE timestamp >= $1`, since).Scan(&n)
	return n, err
}
