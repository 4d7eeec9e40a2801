// Package session holds the current authenticated identity: a single
// durable slot in the key-value store plus the in-process controller that
// keeps it in sync with memory.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/kvstore"
	"github.com/dmitrijs2005/authkeeper/internal/users"
)

// storageKey is the fixed key the session record is persisted under,
// distinct from the user collection's key.
const storageKey = "user_data"

// Store persists at most one session record: the current user without
// credentials, serialized as a single JSON object.
type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Save writes u as the current session, replacing any prior record.
func (s *Store) Save(ctx context.Context, u *users.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load returns the stored session user, or (nil, nil) when no session
// exists.
func (s *Store) Load(ctx context.Context) (*users.User, error) {
	data, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var u users.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &u, nil
}

// Clear removes the session record entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, storageKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
