// Package auth authenticates users and resolves the tenant their requests
// operate on. Sessions are opaque bearer tokens backed by Redis.
package auth

import (
	"errors"
	"time"
)

// User is an operator of one tenant.
type User struct {
	ID           int64     `json:"id"`
	TenantID     int64     `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session ties a token to a user and tenant.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	TenantID  int64     `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	// ErrInvalidCredentials is returned for every authentication failure.
	// The reason is never distinguished to the caller.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrSessionNotFound    = errors.New("auth: session not found")
	ErrEmailTaken         = errors.New("auth: email already registered")
)
