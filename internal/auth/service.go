package auth

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	sessions *SessionStore
	logger   *slog.Logger
}

func NewService(repo Repository, sessions *SessionStore, logger *slog.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, logger: logger}
}

// Login validates credentials and mints a session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return Session{}, User{}, err
	}
	sess, err := s.sessions.Create(ctx, user.ID, user.TenantID)
	if err != nil {
		return Session{}, User{}, err
	}
	s.logger.Info("user logged in", slog.Int64("user_id", user.ID), slog.Int64("tenant_id", user.TenantID))
	return sess, user, nil
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a token back to its session.
func (s *Service) Resolve(ctx context.Context, token string) (Session, error) {
	return s.sessions.Get(ctx, token)
}

// CurrentUser loads the user behind a session.
func (s *Service) CurrentUser(ctx context.Context, sess Session) (User, error) {
	return s.repo.GetByID(ctx, sess.UserID)
}

// Register creates a user for a tenant with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, tenantID int64, email, name, password string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(password) < 8 {
		return User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.repo.Insert(ctx, User{
		TenantID:     tenantID,
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		IsActive:     true,
	})
}

func (s *Service) authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
