// Package auth implements the authentication service: credential checks on
// login and new-account creation on signup, over the durable user store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/users"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates a signup with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// Service is stateless between calls: every operation re-reads the full
// collection. The mutex serializes signup's read-check-append sequence so
// two concurrent signups with the same email cannot both pass the
// uniqueness check.
type Service struct {
	users *users.Store
	mu    sync.Mutex
}

func NewService(store *users.Store) *Service {
	return &Service{users: store}
}

// Login verifies the credentials and returns the matching user without its
// credential fields. Email comparison is trimmed and case-insensitive;
// password comparison is exact.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	records := s.users.GetAll(ctx)

	rec := users.FindByEmail(records, email)
	if rec == nil {
		return nil, ErrInvalidCredentials
	}

	candidate := cryptox.DeriveKey([]byte(password), rec.Salt)
	if !cryptox.Verify(rec.PasswordHash, candidate) {
		return nil, ErrInvalidCredentials
	}

	u := rec.User
	return &u, nil
}

// Signup registers a new user. The email uniqueness check runs on the
// normalized address; the stored record keeps the trimmed name and the
// normalized email. Returns the created user without credential fields.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.users.GetAll(ctx)

	if users.FindByEmail(records, email) != nil {
		return nil, ErrEmailTaken
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	rec := users.Record{
		User: users.User{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(name),
			Email: users.NormalizeEmail(email),
		},
		PasswordHash: cryptox.DeriveKey([]byte(password), salt),
		Salt:         salt,
	}

	records = append(records, rec)
	s.users.Save(ctx, records)

	u := rec.User
	return &u, nil
}
