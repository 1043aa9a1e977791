package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

type fakeNewsletterStore struct {
	subs   map[string]*model.Subscriber
	nextID int64

	insertErr error
}

func newFakeNewsletterStore() *fakeNewsletterStore {
	return &fakeNewsletterStore{subs: make(map[string]*model.Subscriber)}
}

func (f *fakeNewsletterStore) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	if sub, ok := f.subs[email]; ok {
		return sub, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeNewsletterStore) InsertSubscriber(ctx context.Context, email, name, confirmationToken, source, ipAddress string) (*model.Subscriber, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	sub := &model.Subscriber{
		ID:        f.nextID,
		Email:     email,
		IsActive:  true,
		Source:    source,
		CreatedAt: time.Now(),
	}
	f.subs[email] = sub
	return sub, nil
}

func (f *fakeNewsletterStore) ReactivateSubscriber(ctx context.Context, subscriberID int64) error {
	for _, sub := range f.subs {
		if sub.ID == subscriberID {
			sub.IsActive = true
			sub.UnsubscribedAt = nil
		}
	}
	return nil
}

func (f *fakeNewsletterStore) DeactivateSubscriber(ctx context.Context, subscriberID int64) error {
	for _, sub := range f.subs {
		if sub.ID == subscriberID {
			now := time.Now()
			sub.IsActive = false
			sub.UnsubscribedAt = &now
		}
	}
	return nil
}

func (f *fakeNewsletterStore) ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) ([]model.Subscriber, int64, error) {
	var out []model.Subscriber
	for _, sub := range f.subs {
		if activeOnly && !sub.IsActive {
			continue
		}
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNewsletterStore) ListActiveSubscriberEmails(ctx context.Context) ([]string, error) {
	var out []string
	for _, sub := range f.subs {
		if sub.IsActive {
			out = append(out, sub.Email)
		}
	}
	return out, nil
}

func TestSubscribeOutcomes(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store)
	ctx := context.Background()

	outcome, err := svc.Subscribe(ctx, "  Ana@Example.COM ", "Ana", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, SubscribeCreated, outcome)

	// The address is normalized before lookup.
	outcome, err = svc.Subscribe(ctx, "ana@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, SubscribeAlreadySubscribed, outcome)

	require.NoError(t, svc.Unsubscribe(ctx, "ana@example.com"))

	outcome, err = svc.Subscribe(ctx, "ana@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, SubscribeReactivated, outcome)

	_, err = svc.Subscribe(ctx, "   ", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubscribeConcurrentSignup(t *testing.T) {
	store := newFakeNewsletterStore()
	store.insertErr = &pgconn.PgError{Code: "23505"}
	svc := NewNewsletterService(store)

	outcome, err := svc.Subscribe(context.Background(), "ana@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, SubscribeAlreadySubscribed, outcome)
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	svc := NewNewsletterService(newFakeNewsletterStore())
	err := svc.Unsubscribe(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportActiveEmails(t *testing.T) {
	store := newFakeNewsletterStore()
	svc := NewNewsletterService(store)
	ctx := context.Background()

	_, err := svc.Subscribe(ctx, "a@example.com", "", "")
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, "b@example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "b@example.com"))

	export, err := svc.ExportActiveEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, export.Count)
	assert.Equal(t, []string{"a@example.com"}, export.Emails)
}
