package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projectmanage/pm-backend/internal/apperrors"
	"github.com/projectmanage/pm-backend/internal/core/domain"
	portsrepo "github.com/projectmanage/pm-backend/internal/core/ports/repositories"
	"github.com/projectmanage/pm-backend/internal/models"
)

type PgxRefreshTokenRepository struct {
	db *pgxpool.Pool
}

func newPgxRefreshTokenRepository(db *pgxpool.Pool) portsrepo.RefreshTokenRepository {
	return &PgxRefreshTokenRepository{db: db}
}

var _ portsrepo.RefreshTokenRepository = (*PgxRefreshTokenRepository)(nil)

func toDomainRefreshToken(m models.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		RefreshTokenID: m.RefreshTokenID,
		UserID:         m.UserID,
		Token:          m.Token,
		ExpiresAt:      m.ExpiresAt,
	}
}

// UpsertForUser relies on the UNIQUE index on user_id: an existing row keeps
// its token value and only has its expiry extended, so repeated logins hand
// back the same opaque credential. The whole read-modify-write is a single
// atomic statement, which is all the locking the at-most-one-per-user
// invariant needs.
func (r *PgxRefreshTokenRepository) UpsertForUser(ctx context.Context, candidate domain.RefreshToken, expiresAt time.Time) (*domain.RefreshToken, error) {
	query := `
        INSERT INTO refresh_tokens (refresh_token_id, user_id, token, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            expires_at = EXCLUDED.expires_at
        RETURNING refresh_token_id, user_id, token, expires_at;
    `
	var m models.RefreshToken
	err := r.db.QueryRow(ctx, query,
		candidate.RefreshTokenID,
		candidate.UserID,
		candidate.Token,
		expiresAt,
	).Scan(&m.RefreshTokenID, &m.UserID, &m.Token, &m.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert refresh token: %w", err)
	}
	token := toDomainRefreshToken(m)
	return &token, nil
}

func (r *PgxRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
        SELECT refresh_token_id, user_id, token, expires_at
        FROM refresh_tokens
        WHERE token = $1;
    `
	var m models.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(&m.RefreshTokenID, &m.UserID, &m.Token, &m.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	result := toDomainRefreshToken(m)
	return &result, nil
}

func (r *PgxRefreshTokenRepository) DeleteByID(ctx context.Context, refreshTokenID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE refresh_token_id = $1;`, refreshTokenID)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token for user: %w", err)
	}
	return nil
}
