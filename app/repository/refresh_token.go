package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Upsert stores the refresh token for a user, replacing any previous row.
// refresh_tokens has a unique key on user_id, so a user holds at most one
// live session and a new login silently supersedes the old token.
func (r *RefreshTokenRepository) Upsert(ctx context.Context, token *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), expires_at = VALUES(expires_at)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return err
}

// FindActive returns the stored token only when it matches the given user and
// token string and has not yet expired. A superseded token misses here even
// while still cryptographically valid.
func (r *RefreshTokenRepository) FindActive(ctx context.Context, userID uint64, token string, now time.Time) (*entity.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM refresh_tokens WHERE user_id = ? AND token = ? AND expires_at > ?
	`
	rt := &entity.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, userID, token, now).Scan(
		&rt.ID,
		&rt.UserID,
		&rt.Token,
		&rt.ExpiresAt,
		&rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteByToken removes every row matching the token string. Deleting a token
// that was never stored is not an error.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = ?`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM refresh_tokens WHERE expires_at < ?`
	_, err := r.db.ExecContext(ctx, query, time.Now())
	return err
}
