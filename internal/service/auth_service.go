package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/account-service/internal/config"
	"github.com/dom/account-service/internal/crypto"
	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/repository"
	"github.com/dom/account-service/internal/validate"
)

// createdAtLayout matches the datetime rule sessions are validated against.
const createdAtLayout = "2006-01-02T15:04:05"

// AuthService owns the session lifecycle: token generation, login, logout,
// and authentication by credentials or token.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// GenerateToken returns a fresh random bearer token. The session table's
// unique index on token is the collision backstop.
func (s *AuthService) GenerateToken() (string, error) {
	return crypto.GenerateToken(s.cfg.TokenBytes)
}

// AuthenticateByCredentials resolves a user from username and password. The
// password may arrive as plaintext or as an existing digest; it is hashed at
// most once. Unknown username and digest mismatch stay distinct errors for
// diagnostics, but neither carries the password.
func (s *AuthService) AuthenticateByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWrongUsername
		}
		return nil, domain.WrapStorage("find user by username", err)
	}

	digest := password
	if !crypto.IsDigest(digest) {
		digest = crypto.SaltedHash(password, username)
	}

	user, err := s.userRepo.GetByCredentials(ctx, username, digest)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, domain.WrapStorage("find user by credentials", err)
	}
	return user, nil
}

// AuthenticateByToken resolves the active session holding token.
func (s *AuthService) AuthenticateByToken(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, domain.WrapStorage("find session by token", err)
	}
	return session, nil
}

// Login validates the payload, authenticates the credentials, and creates
// the user's session. A user with a live session cannot log in again; the
// unique index on session.user_id resolves concurrent double-logins by
// failing one side.
func (s *AuthService) Login(ctx context.Context, payload map[string]any) (string, error) {
	data, err := validate.LoginForm.Prune(payload)
	if err != nil {
		return "", err
	}

	username, _ := data["username"].(string)
	password, _ := data["password"].(string)
	ip, _ := data["ip"].(string)

	user, err := s.AuthenticateByCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	if _, err := s.sessionRepo.GetByUserID(ctx, user.ID); err == nil {
		return "", domain.ErrAlreadyLoggedIn
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", domain.WrapStorage("find session by user", err)
	}

	token, err := s.GenerateToken()
	if err != nil {
		return "", domain.WrapStorage("generate token", err)
	}

	now := time.Now()

	// The session record passes through its own schema before insertion,
	// the same gate every external payload goes through.
	if err := validate.SessionData.Validate(map[string]any{
		"created_at": now.Format(createdAtLayout),
		"ip":         ip,
		"user_id":    user.ID,
		"token":      token,
	}); err != nil {
		return "", err
	}

	session := &domain.Session{
		CreatedAt: now,
		IP:        ip,
		UserID:    user.ID,
		Token:     token,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the race against a concurrent login.
			return "", domain.ErrAlreadyLoggedIn
		}
		return "", domain.WrapStorage("insert session", err)
	}

	return token, nil
}

// Logout validates the payload, authenticates the token, and removes the
// session. Nothing is mutated when the token does not resolve.
func (s *AuthService) Logout(ctx context.Context, payload map[string]any) error {
	data, err := validate.TokenData.Prune(payload)
	if err != nil {
		return err
	}

	token, _ := data["token"].(string)

	if _, err := s.AuthenticateByToken(ctx, token); err != nil {
		return err
	}

	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidToken
		}
		return domain.WrapStorage("delete session", err)
	}
	return nil
}

// ListOnline returns every active session joined with its owner's username.
// Sessions whose user lookup comes back empty are skipped, not surfaced.
func (s *AuthService) ListOnline(ctx context.Context) ([]*domain.OnlineSession, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStorage("list sessions", err)
	}

	online := make([]*domain.OnlineSession, 0, len(sessions))
	for _, session := range sessions {
		user, err := s.userRepo.GetByID(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // orphaned session
			}
			return nil, domain.WrapStorage("join session with user", err)
		}
		online = append(online, &domain.OnlineSession{
			Session:  *session,
			Username: user.Username,
		})
	}
	return online, nil
}
