package db

import (
	"context"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

const subscriberColumns = `id, email, name, is_active, confirmed, frequency, source, ip_address,
	created_at, confirmed_at, unsubscribed_at`

func scanSubscriber(row interface{ Scan(...any) error }) (*model.Subscriber, error) {
	var s model.Subscriber
	err := row.Scan(
		&s.ID, &s.Email, &s.Name, &s.IsActive, &s.Confirmed, &s.Frequency,
		&s.Source, &s.IPAddress, &s.CreatedAt, &s.ConfirmedAt, &s.UnsubscribedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *Postgres) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers WHERE email = $1`
	return scanSubscriber(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) InsertSubscriber(ctx context.Context, email, name, confirmationToken, source, ipAddress string) (*model.Subscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (email, name, confirmation_token, source, ip_address, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NOW())
		RETURNING ` + subscriberColumns
	return scanSubscriber(db.Pool.QueryRow(ctx, query, email, name, confirmationToken, source, ipAddress))
}

func (db *Postgres) ReactivateSubscriber(ctx context.Context, subscriberID int64) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = TRUE, unsubscribed_at = NULL
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, subscriberID)
	return err
}

func (db *Postgres) DeactivateSubscriber(ctx context.Context, subscriberID int64) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = FALSE, unsubscribed_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, subscriberID)
	return err
}

func (db *Postgres) ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) ([]model.Subscriber, int64, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active = TRUE"
	}

	var total int64
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM newsletter_subscribers"+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + subscriberColumns + " FROM newsletter_subscribers" + where +
		" ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	rows, err := db.Pool.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subs := []model.Subscriber{}
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (db *Postgres) ListActiveSubscriberEmails(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT email FROM newsletter_subscribers WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
