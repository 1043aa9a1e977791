package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/manuel14gregorioo/Agencia/internal/db"
	"github.com/manuel14gregorioo/Agencia/internal/model"
)

type SubscribeOutcome string

const (
	SubscribeCreated           SubscribeOutcome = "created"
	SubscribeAlreadySubscribed SubscribeOutcome = "already_subscribed"
	SubscribeReactivated       SubscribeOutcome = "reactivated"
)

type newsletterStore interface {
	GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	InsertSubscriber(ctx context.Context, email, name, confirmationToken, source, ipAddress string) (*model.Subscriber, error)
	ReactivateSubscriber(ctx context.Context, subscriberID int64) error
	DeactivateSubscriber(ctx context.Context, subscriberID int64) error
	ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) ([]model.Subscriber, int64, error)
	ListActiveSubscriberEmails(ctx context.Context) ([]string, error)
}

type NewsletterService struct {
	store newsletterStore
}

func NewNewsletterService(store newsletterStore) *NewsletterService {
	return &NewsletterService{store: store}
}

// Subscribe creates a subscription, reactivates a lapsed one, or reports
// an existing active one.
func (s *NewsletterService) Subscribe(ctx context.Context, email, name, ipAddress string) (SubscribeOutcome, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidInput
	}

	existing, err := s.store.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsActive {
			return SubscribeAlreadySubscribed, nil
		}
		if err := s.store.ReactivateSubscriber(ctx, existing.ID); err != nil {
			return "", err
		}
		return SubscribeReactivated, nil
	case !db.IsNoRows(err):
		return "", err
	}

	_, err = s.store.InsertSubscriber(ctx, email, sanitizeText(name, 100), uuid.NewString(), "landing", ipAddress)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Concurrent signup with the same address.
			return SubscribeAlreadySubscribed, nil
		}
		return "", err
	}
	return SubscribeCreated, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	subscriber, err := s.store.GetSubscriberByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	return s.store.DeactivateSubscriber(ctx, subscriber.ID)
}

func (s *NewsletterService) ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) (*model.SubscriberListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	subs, total, err := s.store.ListSubscribers(ctx, activeOnly, page, perPage)
	if err != nil {
		return nil, err
	}

	pages := (total + int64(perPage) - 1) / int64(perPage)
	return &model.SubscriberListResponse{
		Subscribers: subs,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

func (s *NewsletterService) ExportActiveEmails(ctx context.Context) (*model.SubscriberExportResponse, error) {
	emails, err := s.store.ListActiveSubscriberEmails(ctx)
	if err != nil {
		return nil, err
	}
	return &model.SubscriberExportResponse{Emails: emails, Count: len(emails)}, nil
}
