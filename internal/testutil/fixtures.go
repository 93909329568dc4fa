package testutil

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dom/account-service/internal/crypto"
	"github.com/dom/account-service/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	names    map[string]string
}

// NewUserBuilder creates a new UserBuilder with default values. The random
// suffix keeps usernames inside the 16-character validator limit.
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("user%s", suffix),
		email:    fmt.Sprintf("user%s@example.com", suffix),
		password: "testpassword123",
		names:    map[string]string{},
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the plaintext password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets one of the name columns (firstname, middlename, lastname)
func (b *UserBuilder) WithName(field, value string) *UserBuilder {
	b.names[field] = value
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	user := &domain.User{
		Username:   b.username,
		Firstname:  b.names["firstname"],
		Middlename: b.names["middlename"],
		Lastname:   b.names["lastname"],
		Email:      b.email,
		Password:   crypto.SaltedHash(b.password, b.username),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// SessionBuilder creates test sessions with a builder pattern
type SessionBuilder struct {
	user  *domain.User
	ip    string
	token string
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder() *SessionBuilder {
	token, _ := crypto.GenerateToken(crypto.DefaultTokenBytes)
	return &SessionBuilder{
		ip:    "10.0.0.1",
		token: token,
	}
}

// WithUser sets the owning user
func (b *SessionBuilder) WithUser(user *domain.User) *SessionBuilder {
	b.user = user
	return b
}

// WithIP sets the client address
func (b *SessionBuilder) WithIP(ip string) *SessionBuilder {
	b.ip = ip
	return b
}

// WithToken sets the bearer token
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.token = token
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}

	session := &domain.Session{
		CreatedAt: time.Now(),
		IP:        b.ip,
		UserID:    b.user.ID,
		Token:     b.token,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// PostForm submits a form-encoded POST the way the service's clients do
func PostForm(t *testing.T, url string, form url.Values) *http.Response {
	t.Helper()

	resp, err := http.PostForm(url, form)
	if err != nil {
		t.Fatalf("failed to post form to %s: %v", url, err)
	}

	return resp
}
