package repository

import (
	"context"

	"github.com/dom/account-service/internal/domain"
)

// Implementations translate their driver's not-found and unique-violation
// errors into domain.ErrNotFound and domain.ErrConflict so services never
// depend on the storage engine.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByCredentials matches username plus the stored password digest.
	GetByCredentials(ctx context.Context, username, passwordDigest string) (*domain.User, error)
	// Update applies a partial update; only the given columns change.
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]*domain.Session, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
}
