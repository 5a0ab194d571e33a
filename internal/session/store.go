package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nkroberts01/virtual-interviews/internal/apperror"
)

// Store holds live sessions and pending signup confirmation tokens. The auth
// gate checks it on every protected request, so deleting a session revokes
// access immediately.
type Store interface {
	Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error

	PutConfirmation(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	// TakeConfirmation returns the user id for a token and consumes it.
	TakeConfirmation(ctx context.Context, token string) (uuid.UUID, error)
}

const (
	sessionKeyPrefix = "session:"
	confirmKeyPrefix = "confirm:"
)

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, apperror.New(apperror.Unauthenticated, "session expired")
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session user id: %w", err)
	}
	return id, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *redisStore) PutConfirmation(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, confirmKeyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("put confirmation: %w", err)
	}
	return nil
}

func (s *redisStore) TakeConfirmation(ctx context.Context, token string) (uuid.UUID, error) {
	key := confirmKeyPrefix + token
	val, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, apperror.New(apperror.NotFound, "invalid or expired confirmation token")
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("take confirmation: %w", err)
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse confirmation user id: %w", err)
	}
	return id, nil
}
