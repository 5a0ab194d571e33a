package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
)

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// memoryStore is a process-local Store for development and tests, used when no
// redis address is configured.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	confirms map[string]memoryEntry
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
		confirms: make(map[string]memoryEntry),
	}
}

func (s *memoryStore) Put(_ context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return uuid.Nil, apperror.New(apperror.Unauthenticated, "session expired")
	}
	return entry.userID, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memoryStore) PutConfirmation(_ context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) TakeConfirmation(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.confirms[token]
	delete(s.confirms, token)
	if !ok || time.Now().After(entry.expiresAt) {
		return uuid.Nil, apperror.New(apperror.NotFound, "invalid or expired confirmation token")
	}
	return entry.userID, nil
}
