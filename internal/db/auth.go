package db

import (
	"context"
	"time"

	"github.com/manuel14gregorioo/Agencia/internal/model"
)

const userColumns = `id, email, password_hash, name, is_admin, is_active, last_login, created_at, updated_at`

func (db *Postgres) scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.IsAdmin,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, email, passwordHash, name string, isAdmin bool) (*model.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns
	return db.scanUser(db.Pool.QueryRow(ctx, query, email, passwordHash, name, isAdmin))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}

func (db *Postgres) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, userID, passwordHash)
	return err
}

func (db *Postgres) InsertRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time, userAgent, ipAddress string) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at, user_agent, ip_address)
		VALUES ($1, $2, $3, NOW(), NULLIF($4, ''), NULLIF($5, ''))
	`
	_, err := db.Pool.Exec(ctx, query, userID, tokenHash, expiresAt, userAgent, ipAddress)
	return err
}

// GetValidRefreshToken returns the token row only when it is unrevoked and
// unexpired. Absence never says which condition failed.
func (db *Postgres) GetValidRefreshToken(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked, revoked_at, created_at, user_agent, ip_address
		FROM refresh_tokens
		WHERE token_hash = $1 AND revoked = FALSE AND expires_at > NOW()
	`
	var token model.RefreshToken
	err := db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Revoked,
		&token.RevokedAt,
		&token.CreatedAt,
		&token.UserAgent,
		&token.IPAddress,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeRefreshToken is idempotent: the conditional update makes concurrent
// revokes of the same row a no-op.
func (db *Postgres) RevokeRefreshToken(ctx context.Context, tokenID int64) error {
	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = NOW()
		WHERE id = $1 AND revoked = FALSE
	`
	_, err := db.Pool.Exec(ctx, query, tokenID)
	return err
}

// RevokeUserRefreshToken revokes by presented value, but only when the token
// belongs to the given user.
func (db *Postgres) RevokeUserRefreshToken(ctx context.Context, userID int64, tokenHash string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = NOW()
		WHERE token_hash = $1 AND user_id = $2 AND revoked = FALSE
	`
	_, err := db.Pool.Exec(ctx, query, tokenHash, userID)
	return err
}

func (db *Postgres) RevokeAllRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = NOW()
		WHERE user_id = $1 AND revoked = FALSE
	`
	tag, err := db.Pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteExpiredRefreshTokens purges rows past expiry regardless of
// revocation state. Maintenance path only, never called during login or
// refresh.
func (db *Postgres) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < NOW()`
	tag, err := db.Pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
