package service

import (
	"context"
	"errors"
	"log"

	"github.com/dom/account-service/internal/crypto"
	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/repository"
	"github.com/dom/account-service/internal/validate"
)

// UserService orchestrates account mutations. Every mutating call runs
// Validate -> Hash (if applicable) -> Authenticate -> Mutate, in that order,
// so nothing reaches storage before the payload and caller check out.
type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	auth        *AuthService
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		auth:        auth,
	}
}

// bestEffort logs and swallows a non-critical step's failure. A missing row
// is not worth logging; the step's goal was its absence.
func bestEffort(op string, err error) {
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("WARN [service] best-effort %s failed: %v", op, err)
	}
}

// Create registers a new account. The complexity gate runs on the plaintext
// before hashing; a payload that already carries a digest is stored as-is.
func (s *UserService) Create(ctx context.Context, payload map[string]any) error {
	data, err := validate.NewUserData.Prune(payload)
	if err != nil {
		return err
	}

	username, _ := data["username"].(string)
	password, _ := data["password"].(string)

	if !crypto.IsDigest(password) {
		if !crypto.CheckComplexity(password) {
			return domain.ErrWeakPassword
		}
		password = crypto.SaltedHash(password, username)
	}

	user := &domain.User{
		Username:   username,
		Firstname:  stringField(data, "firstname"),
		Middlename: stringField(data, "middlename"),
		Lastname:   stringField(data, "lastname"),
		Birthdate:  stringField(data, "birthdate"),
		Email:      stringField(data, "email"),
		Password:   password,
	}
	if id, ok := intField(data, "id"); ok {
		user.ID = id
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrConflict
		}
		return domain.WrapStorage("insert user", err)
	}
	return nil
}

// Delete removes an account after token authentication. The session cleanup
// is best-effort; only the user row deletion can fail the call.
func (s *UserService) Delete(ctx context.Context, payload map[string]any) error {
	data, err := validate.UserDeletion.Prune(payload)
	if err != nil {
		return err
	}

	token, _ := data["token"].(string)
	id, _ := intField(data, "id")

	if _, err := s.auth.AuthenticateByToken(ctx, token); err != nil {
		return err
	}

	bestEffort("delete session of deleted user", s.sessionRepo.DeleteByUserID(ctx, id))

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return domain.WrapStorage("delete user", err)
	}
	return nil
}

// Modify applies a partial update: only supplied non-empty fields overwrite
// existing columns. The payload is projected through the user-data schema so
// the token never reaches the update statement.
func (s *UserService) Modify(ctx context.Context, payload map[string]any) error {
	data, err := validate.UserModification.Prune(payload)
	if err != nil {
		return err
	}

	token, _ := data["token"].(string)
	id, _ := intField(data, "id")

	if _, err := s.auth.AuthenticateByToken(ctx, token); err != nil {
		return err
	}

	projected, err := validate.UserData.Prune(data)
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(projected))
	for key, value := range projected {
		if key == "id" {
			continue
		}
		if str, ok := value.(string); !ok || str == "" {
			continue
		}
		fields[key] = value
	}

	if len(fields) == 0 {
		// Nothing to change; still report a missing target.
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return domain.WrapStorage("find user by id", err)
		}
		return nil
	}

	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return domain.WrapStorage("update user", err)
	}
	return nil
}

// List returns every account as stored, digests included.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStorage("list users", err)
	}
	return users, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func intField(data map[string]any, key string) (int64, bool) {
	switch v := data[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
