package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session identifies one shopper. Carts and checkout state are keyed by the
// session id; logging in attaches a customer for checkout prefill.
type Session struct {
	ID         string
	CustomerID string
	ExpiresAt  time.Time
}

// Service issues opaque bearer tokens for storefront sessions and keeps
// them in memory for their lifetime.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

func New() *Service {
	return &Service{
		sessions: make(map[string]Session),
		ttl:      30 * 24 * time.Hour,
	}
}

// Start creates a new anonymous session and returns its bearer token.
func (s *Service) Start(ctx context.Context) (string, Session, error) {
	token, err := randomToken()
	if err != nil {
		return "", Session{}, err
	}
	sess := Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return token, sess, nil
}

// Lookup resolves a bearer token, expiring stale sessions as they are seen.
func (s *Service) Lookup(ctx context.Context, token string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrInvalidToken
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return Session{}, ErrInvalidToken
	}
	return sess, nil
}

// AttachCustomer binds a logged-in customer to the session.
func (s *Service) AttachCustomer(ctx context.Context, token, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return ErrInvalidToken
	}
	sess.CustomerID = customerID
	s.sessions[token] = sess
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
