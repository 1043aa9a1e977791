package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/manuel14gregorioo/Agencia/internal/config"
	"github.com/manuel14gregorioo/Agencia/internal/model"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

// In-memory stores backing the services under test.

type memAuthStore struct {
	users  map[int64]*model.User
	tokens map[string]*model.RefreshToken

	nextUserID  int64
	nextTokenID int64
}

func newMemAuthStore() *memAuthStore {
	return &memAuthStore{
		users:  make(map[int64]*model.User),
		tokens: make(map[string]*model.RefreshToken),
	}
}

func (m *memAuthStore) addUser(email, password string, isAdmin bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.nextUserID++
	user := &model.User{
		ID:           m.nextUserID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Test User",
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	m.users[user.ID] = user
	return user
}

func (m *memAuthStore) CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (*model.User, error) {
	m.nextUserID++
	user := &model.User{ID: m.nextUserID, Email: email, PasswordHash: passwordHash, Name: name, IsAdmin: isAdmin, IsActive: true}
	m.users[user.ID] = user
	return user, nil
}

func (m *memAuthStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAuthStore) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memAuthStore) UpdateLastLogin(ctx context.Context, userID int64) error { return nil }

func (m *memAuthStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *memAuthStore) InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time, userAgent, ipAddress string) error {
	m.nextTokenID++
	m.tokens[tokenHash] = &model.RefreshToken{ID: m.nextTokenID, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (m *memAuthStore) GetValidRefreshToken(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok || token.Revoked || !token.ExpiresAt.After(time.Now()) {
		return nil, pgx.ErrNoRows
	}
	return token, nil
}

func (m *memAuthStore) RevokeRefreshToken(ctx context.Context, tokenID int64) error {
	for _, token := range m.tokens {
		if token.ID == tokenID {
			token.Revoked = true
		}
	}
	return nil
}

func (m *memAuthStore) RevokeUserRefreshToken(ctx context.Context, userID int64, tokenHash string) error {
	if token, ok := m.tokens[tokenHash]; ok && token.UserID == userID {
		token.Revoked = true
	}
	return nil
}

func (m *memAuthStore) RevokeAllRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, token := range m.tokens {
		if token.UserID == userID && !token.Revoked {
			token.Revoked = true
			count++
		}
	}
	return count, nil
}

func (m *memAuthStore) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	var count int64
	for hash, token := range m.tokens {
		if !token.ExpiresAt.After(time.Now()) {
			delete(m.tokens, hash)
			count++
		}
	}
	return count, nil
}

type memLeadStore struct {
	leads  map[int64]*model.Lead
	nextID int64
}

func newMemLeadStore() *memLeadStore {
	return &memLeadStore{leads: make(map[int64]*model.Lead)}
}

func (m *memLeadStore) InsertLead(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	m.nextID++
	stored := *lead
	stored.ID = m.nextID
	stored.Status = model.LeadStatusNew
	m.leads[stored.ID] = &stored
	return &stored, nil
}

func (m *memLeadStore) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	if lead, ok := m.leads[leadID]; ok {
		copy := *lead
		return &copy, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memLeadStore) ListLeads(ctx context.Context, filter model.LeadFilter) ([]model.Lead, int64, error) {
	var out []model.Lead
	for _, lead := range m.leads {
		out = append(out, *lead)
	}
	return out, int64(len(out)), nil
}

func (m *memLeadStore) UpdateLead(ctx context.Context, leadID int64, update model.LeadUpdate, stampContacted bool) (*model.Lead, error) {
	lead, ok := m.leads[leadID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Status != nil {
		lead.Status = *update.Status
	}
	copy := *lead
	return &copy, nil
}

func (m *memLeadStore) DeleteLead(ctx context.Context, leadID int64) (bool, error) {
	if _, ok := m.leads[leadID]; !ok {
		return false, nil
	}
	delete(m.leads, leadID)
	return true, nil
}

func (m *memLeadStore) BulkUpdateLeads(ctx context.Context, leadIDs []int64, update model.LeadUpdate) (int64, error) {
	var count int64
	for _, id := range leadIDs {
		if _, ok := m.leads[id]; ok {
			count++
		}
	}
	return count, nil
}

type memNewsletterStore struct {
	subs   map[string]*model.Subscriber
	nextID int64
}

func newMemNewsletterStore() *memNewsletterStore {
	return &memNewsletterStore{subs: make(map[string]*model.Subscriber)}
}

func (m *memNewsletterStore) GetSubscriberByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	if sub, ok := m.subs[email]; ok {
		return sub, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memNewsletterStore) InsertSubscriber(ctx context.Context, email, name, confirmationToken, source, ipAddress string) (*model.Subscriber, error) {
	m.nextID++
	sub := &model.Subscriber{ID: m.nextID, Email: email, IsActive: true, Source: source}
	m.subs[email] = sub
	return sub, nil
}

func (m *memNewsletterStore) ReactivateSubscriber(ctx context.Context, subscriberID int64) error {
	for _, sub := range m.subs {
		if sub.ID == subscriberID {
			sub.IsActive = true
		}
	}
	return nil
}

func (m *memNewsletterStore) DeactivateSubscriber(ctx context.Context, subscriberID int64) error {
	for _, sub := range m.subs {
		if sub.ID == subscriberID {
			sub.IsActive = false
		}
	}
	return nil
}

func (m *memNewsletterStore) ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) ([]model.Subscriber, int64, error) {
	var out []model.Subscriber
	for _, sub := range m.subs {
		if activeOnly && !sub.IsActive {
			continue
		}
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

func (m *memNewsletterStore) ListActiveSubscriberEmails(ctx context.Context) ([]string, error) {
	var out []string
	for _, sub := range m.subs {
		if sub.IsActive {
			out = append(out, sub.Email)
		}
	}
	return out, nil
}

type memAnalyticsStore struct {
	events []*model.AnalyticsEvent
}

func (m *memAnalyticsStore) InsertAnalyticsEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *memAnalyticsStore) CountEventsByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, e := range m.events {
		counts[e.EventName]++
	}
	return counts, nil
}

type testEnv struct {
	router *gin.Engine
	auth   *memAuthStore
	leads  *memLeadStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authStore := newMemAuthStore()
	leadStore := newMemLeadStore()

	authSvc, err := service.NewAuthService(authStore, config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTAccessTTL:  "15m",
		JWTRefreshTTL: "168h",
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(RouterConfig{
		Auth:           authSvc,
		Leads:          service.NewLeadService(leadStore, nil, logger),
		Newsletter:     service.NewNewsletterService(newMemNewsletterStore()),
		Analytics:      service.NewAnalyticsService(&memAnalyticsStore{}),
		Stats:          service.NewStatsService(nil),
		AllowedOrigins: []string{"https://agenciadev.es"},
		Logger:         logger,
	})

	return &testEnv{router: router, auth: authStore, leads: leadStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email, password string) model.AuthResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := make(map[string]any)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decodeBody(t, w)["status"])
}
