package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the login email or password
// does not match the configured admin.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenLength = 32

// Service validates the single configured admin credential and issues
// opaque session tokens. Tokens live in memory; a restart logs the
// admin out.
type Service struct {
	email        string
	passwordHash []byte
	ttl          time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewService hashes the configured password up front so the plaintext
// never sticks around past startup.
func NewService(email, password string, ttl time.Duration) (*Service, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password must be configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %v", err)
	}
	return &Service{
		email:        email,
		passwordHash: hash,
		ttl:          ttl,
		sessions:     make(map[string]time.Time),
	}, nil
}

// Login checks the credential and returns a fresh session token.
func (s *Service) Login(email, password string) (string, error) {
	if email != s.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()

	return token, nil
}

// Verify reports whether the token belongs to a live session. Expired
// sessions are dropped on sight.
func (s *Service) Verify(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

func generateToken() (string, error) {
	tokenBytes := make([]byte, tokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %v", err)
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}
