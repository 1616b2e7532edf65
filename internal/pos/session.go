package pos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("pos: session not found")
)

// SessionStore persists carts in redis for the lifetime of a checkout
// session. Carts are discarded on submit or when the TTL lapses.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "pos:cart:" + id
}

// Create opens a new session with an empty cart and returns its id.
func (s *SessionStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.Save(ctx, id, NewCart()); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the cart for a session.
func (s *SessionStore) Get(ctx context.Context, id string) (*Cart, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("pos: load session %s: %w", id, err)
	}
	cart := NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("pos: decode session %s: %w", id, err)
	}
	if cart.Lines == nil {
		cart.Lines = make(map[int64]CartLine)
	}
	return cart, nil
}

// Save stores the cart and refreshes the session TTL.
func (s *SessionStore) Save(ctx context.Context, id string, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("pos: encode session %s: %w", id, err)
	}
	if err := s.client.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("pos: save session %s: %w", id, err)
	}
	return nil
}

// Delete discards the session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("pos: delete session %s: %w", id, err)
	}
	return nil
}
