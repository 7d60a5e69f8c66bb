// Package auth keeps the remote API session. The session record survives
// restarts; a record that cannot be decoded is treated as logged out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kampus/tugasin/internal/domain"
	"github.com/kampus/tugasin/internal/repository"
	"github.com/kampus/tugasin/internal/todoapi"
)

// ErrNotLoggedIn is returned by operations that need a session.
var ErrNotLoggedIn = errors.New("not logged in")

// Service holds the logged-in session and keeps its record in sync with
// the server.
type Service struct {
	api      todoapi.Client
	sessions repository.SessionRepo

	mu      sync.Mutex
	current *domain.Session
}

// NewService starts logged out. Call Restore to pick up a saved session.
func NewService(api todoapi.Client, sessions repository.SessionRepo) *Service {
	return &Service{api: api, sessions: sessions}
}

// Credentials is what login and register collect from the user.
type Credentials struct {
	Email    string
	FullName string
	Password string
}

func (c Credentials) validate(register bool) error {
	if err := domain.ValidateEmail(c.Email); err != nil {
		return err
	}
	if register && strings.TrimSpace(c.FullName) == "" {
		return &domain.ValidationError{Field: "fullName", Message: "full name is required"}
	}
	if c.Password == "" {
		return &domain.ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// Login authenticates and persists the session.
func (s *Service) Login(ctx context.Context, c Credentials) (*domain.Session, error) {
	if err := c.validate(false); err != nil {
		return nil, err
	}
	data, err := s.api.Login(ctx, strings.TrimSpace(c.Email), c.Password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return s.establish(ctx, data)
}

// Register creates the account and logs in with the returned token.
func (s *Service) Register(ctx context.Context, c Credentials) (*domain.Session, error) {
	if err := c.validate(true); err != nil {
		return nil, err
	}
	data, err := s.api.Register(ctx, strings.TrimSpace(c.Email), strings.TrimSpace(c.FullName), c.Password)
	if err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	return s.establish(ctx, data)
}

func (s *Service) establish(ctx context.Context, data *todoapi.AuthData) (*domain.Session, error) {
	session := &domain.Session{
		ID:       data.ID,
		Email:    data.Email,
		FullName: data.FullName,
		Token:    data.Token,
		Status:   true,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	return copySession(session), nil
}

// Restore reads the stored session at startup. It returns nil without error
// when there is none; a corrupt record is removed.
func (s *Service) Restore(ctx context.Context) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case errors.Is(err, repository.ErrCorruptRecord):
		if clearErr := s.sessions.Clear(ctx); clearErr != nil {
			return nil, fmt.Errorf("removing corrupt session: %w", clearErr)
		}
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if !session.Active() {
		return nil, nil
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()
	return copySession(session), nil
}

// Logout ends the session on the server and clears it locally. The local
// record is removed even when the server call fails; that error is still
// returned.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	session := s.current
	s.current = nil
	s.mu.Unlock()

	if session == nil {
		return ErrNotLoggedIn
	}

	apiErr := s.api.Logout(ctx, session.Token, session.ID)
	if err := s.sessions.Clear(ctx); err != nil {
		return errors.Join(apiErr, fmt.Errorf("clearing session: %w", err))
	}
	if apiErr != nil {
		return fmt.Errorf("logging out: %w", apiErr)
	}
	return nil
}

// Current returns a copy of the active session, or nil.
func (s *Service) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.current)
}

// Token returns the bearer token of the active session.
func (s *Service) Token() (string, error) {
	session := s.Current()
	if !session.Active() {
		return "", ErrNotLoggedIn
	}
	return session.Token, nil
}

func copySession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
