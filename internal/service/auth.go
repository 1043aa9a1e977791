package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/manuel14gregorioo/Agencia/internal/config"
	"github.com/manuel14gregorioo/Agencia/internal/db"
	"github.com/manuel14gregorioo/Agencia/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenType   = "access"
	refreshTokenBytes = 64
	minPasswordLength = 8

	// Insert retries on a token-hash unique violation before giving up.
	maxTokenInsertAttempts = 3
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUserInactive  = errors.New("user inactive")
	ErrWrongPassword = errors.New("current password incorrect")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")

	// Access-token verification failures the caller can branch on.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrWrongTokenType = errors.New("wrong token type")
)

type authStore interface {
	CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time, userAgent, ipAddress string) error
	GetValidRefreshToken(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenID int64) error
	RevokeUserRefreshToken(ctx context.Context, userID int64, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID int64) (int64, error)
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// AuthService owns the session lifecycle: credential checks, the signed
// short-lived access token, and the opaque server-stored refresh token.
type AuthService struct {
	store      authStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type accessClaims struct {
	TokenType string `json:"typ"`
	Email     string `json:"email"`
	Admin     bool   `json:"adm"`
	jwt.RegisteredClaims
}

func NewAuthService(store authStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TTL", ErrMisconfigured)
	}

	return &AuthService{
		store:      store,
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: ADMIN_EMAIL/ADMIN_PASSWORD are required", ErrMisconfigured)
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !db.IsNoRows(err) {
		return err
	}

	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: ADMIN_PASSWORD must be at least %d characters", ErrMisconfigured, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.store.CreateUser(ctx, email, string(hash), name, true)
	if err != nil && db.IsUniqueViolation(err) {
		// Lost a bootstrap race with another instance; the account exists.
		return nil
	}
	return err
}

// Login verifies the credentials and, on success, issues an access token
// and a fresh refresh token bound to this login event. A missing user and
// a wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*model.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLogin = &now

	accessToken, expiresIn, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.createRefreshToken(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         user.Summary(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is left untouched; its validity window is the
// session. An inactive owner gets the presented token revoked as a side
// effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrUnauthorized
	}

	record, err := s.store.GetValidRefreshToken(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, record.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !user.IsActive {
		if err := s.store.RevokeRefreshToken(ctx, record.ID); err != nil {
			return nil, err
		}
		return nil, ErrUserInactive
	}

	accessToken, expiresIn, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, nil
}

// Logout revokes the supplied refresh token when it belongs to the caller.
// Revocation is best-effort: a token owned by someone else is silently
// ignored, and logging out without a token only ends the local context.
func (s *AuthService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.store.RevokeUserRefreshToken(ctx, userID, hashRefreshToken(refreshToken))
}

// LogoutAll revokes every valid refresh token the user holds.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	return s.store.RevokeAllRefreshTokens(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrUnauthorized
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}

	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.store.UpdatePassword(ctx, user.ID, string(hash))
}

// CleanupExpiredTokens purges refresh tokens past their expiry. Intended
// for an external scheduler, never the request path.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredRefreshTokens(ctx)
}

// VerifyAccessToken checks signature, expiry, and the type discriminant.
// The three failure kinds stay distinguishable so the transport layer can
// tell an expired token (refreshable) from a rejected one.
func (s *AuthService) VerifyAccessToken(tokenStr string) (*model.AuthUser, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != accessTokenType {
		return nil, ErrWrongTokenType
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &model.AuthUser{
		ID:      userID,
		Email:   claims.Email,
		IsAdmin: claims.Admin,
	}, nil
}

func (s *AuthService) generateAccessToken(user *model.User) (string, int64, error) {
	now := time.Now()
	claims := accessClaims{
		TokenType: accessTokenType,
		Email:     user.Email,
		Admin:     user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func (s *AuthService) createRefreshToken(ctx context.Context, userID int64, userAgent, ipAddress string) (string, error) {
	expiresAt := time.Now().Add(s.refreshTTL)

	var lastErr error
	for attempt := 0; attempt < maxTokenInsertAttempts; attempt++ {
		value, hash, err := newRefreshToken()
		if err != nil {
			return "", err
		}

		err = s.store.InsertRefreshToken(ctx, userID, hash, expiresAt, truncate(userAgent, 500), ipAddress)
		if err == nil {
			return value, nil
		}
		if !db.IsUniqueViolation(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("refresh token collision persists: %w", lastErr)
}

func newRefreshToken() (string, string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	value := base64.RawURLEncoding.EncodeToString(raw)
	return value, hashRefreshToken(value), nil
}

// Tokens are stored hashed so a database dump cannot be replayed.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
