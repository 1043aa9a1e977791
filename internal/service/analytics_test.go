package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

type fakeAnalyticsStore struct {
	events    []*model.AnalyticsEvent
	lastSince time.Time
}

func (f *fakeAnalyticsStore) InsertAnalyticsEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAnalyticsStore) CountEventsByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	f.lastSince = since
	return map[string]int64{"page_view": 12}, nil
}

func TestTrackSanitizesEvent(t *testing.T) {
	store := &fakeAnalyticsStore{}
	svc := NewAnalyticsService(store)

	err := svc.Track(context.Background(), model.TrackEventRequest{
		Event: "<b>page_view</b>",
		Data:  map[string]string{"section": "<script>x</script>hero"},
		URL:   "https://agenciadev.es/",
	}, "127.0.0.1", "go-test/1.0")
	require.NoError(t, err)
	require.Len(t, store.events, 1)

	event := store.events[0]
	assert.Equal(t, "page_view", event.EventName)
	assert.Equal(t, "hero", event.EventData["section"])
	require.NotNil(t, event.URL)
	assert.Equal(t, "https://agenciadev.es/", *event.URL)
	assert.Nil(t, event.Referrer)
}

func TestTrackRequiresEventName(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{})
	err := svc.Track(context.Background(), model.TrackEventRequest{}, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEventStatsClampsPeriod(t *testing.T) {
	store := &fakeAnalyticsStore{}
	svc := NewAnalyticsService(store)
	ctx := context.Background()

	stats, err := svc.EventStats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.PeriodDays)

	stats, err = svc.EventStats(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, 365, stats.PeriodDays)
	assert.Equal(t, int64(12), stats.EventsByType["page_view"])

	year := time.Now().AddDate(0, 0, -365)
	assert.WithinDuration(t, year, store.lastSince, time.Minute)
}
