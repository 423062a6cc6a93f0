package repository

import (
	"context"
	"time"

	"cookshare/internal/domain"
)

// UserRepository defines persistence operations for User entities. Username
// uniqueness is enforced by the store (unique constraint), not by callers.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	// UpdateSession replaces the session token, its expiration, and the
	// refresh token in a single statement so a rotation is all-or-nothing.
	UpdateSession(ctx context.Context, id int64, sessionToken string, expiresAt time.Time, refreshToken string) error
	// ExpireSession moves the session expiration without touching either
	// token string.
	ExpireSession(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}
