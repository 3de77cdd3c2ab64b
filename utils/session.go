package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Session is the per-visitor state kept between requests.
type Session struct {
	Profile       string              `json:"profile,omitempty"`
	Flashes       map[string][]string `json:"flashes,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// RedisSessionStore keeps sessions as JSON documents in Redis with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore returns a store backed by client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Load retrieves the session. A missing session is returned empty, not as an error.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	return s.load(ctx, s.client, sessionID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisSessionStore) load(ctx context.Context, g getter, sessionID string) (*Session, error) {
	data, err := g.Get(ctx, SessionPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return &Session{CreatedAt: time.Now()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// update applies fn to the stored session inside an optimistic transaction.
func (s *RedisSessionStore) update(ctx context.Context, sessionID string, fn func(*Session)) error {
	key := SessionPrefix + sessionID
	txf := func(tx *redis.Tx) error {
		session, err := s.load(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		fn(session)
		session.LastUpdatedAt = time.Now()
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}
	return fmt.Errorf("failed to save session: too much contention on %s", key)
}

// Profile returns the stored profile or def when none is set.
func (s *RedisSessionStore) Profile(ctx context.Context, sessionID, def string) (string, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.Profile == "" {
		return def, nil
	}
	return session.Profile, nil
}

// SetProfile stores the active profile.
func (s *RedisSessionStore) SetProfile(ctx context.Context, sessionID, profile string) error {
	return s.update(ctx, sessionID, func(session *Session) {
		session.Profile = profile
	})
}

// AddFlash queues a one-time message under kind (e.g. "success").
func (s *RedisSessionStore) AddFlash(ctx context.Context, sessionID, kind, message string) error {
	return s.update(ctx, sessionID, func(session *Session) {
		if session.Flashes == nil {
			session.Flashes = map[string][]string{}
		}
		session.Flashes[kind] = append(session.Flashes[kind], message)
	})
}

// PopFlashes returns and clears every queued message.
func (s *RedisSessionStore) PopFlashes(ctx context.Context, sessionID string) (map[string][]string, error) {
	var flashes map[string][]string
	err := s.update(ctx, sessionID, func(session *Session) {
		flashes = session.Flashes
		session.Flashes = nil
	})
	if err != nil {
		return nil, err
	}
	if flashes == nil {
		flashes = map[string][]string{}
	}
	return flashes, nil
}
