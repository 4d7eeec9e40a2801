package users

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/kvstore"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// storageKey is the fixed key the whole collection is persisted under.
const storageKey = "app_users"

// Seed account created on first access of an empty store.
const (
	SeedID       = "1"
	SeedName     = "Test User"
	SeedEmail    = "test@test.com"
	SeedPassword = "123456"
)

// Store reads and writes the user record collection through the key-value
// store. Reads and writes fail soft: a broken read yields an empty
// collection and a failed write is logged but not propagated, so an
// in-memory success can silently miss persistence.
type Store struct {
	kv  kvstore.Store
	log logging.Logger
}

func NewStore(kv kvstore.Store, log logging.Logger) *Store {
	return &Store{kv: kv, log: log.With("component", "users")}
}

// GetAll returns every stored record, in insertion order. An empty store is
// lazily seeded with the fixed test account and the seed is persisted.
// Any read or decode failure yields an empty collection.
func (s *Store) GetAll(ctx context.Context) []Record {
	data, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		s.log.Error(ctx, "failed to read user records", "err", err)
		return nil
	}
	if data == nil {
		return s.seed(ctx)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error(ctx, "failed to decode user records", "err", err)
		return nil
	}
	return records
}

// Save serializes and writes the full collection, replacing any prior value.
func (s *Store) Save(ctx context.Context, records []Record) {
	if err := s.persist(ctx, records); err != nil {
		s.log.Error(ctx, "failed to persist user records", "err", err)
	}
}

func (s *Store) persist(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, data)
}

// seed creates the fixed test account. A seed that cannot be persisted
// yields an empty collection, the same as any other failed read.
func (s *Store) seed(ctx context.Context) []Record {
	salt, err := cryptox.NewSalt()
	if err != nil {
		s.log.Error(ctx, "failed to generate seed salt", "err", err)
		return nil
	}

	records := []Record{
		{
			User:         User{ID: SeedID, Name: SeedName, Email: SeedEmail},
			PasswordHash: cryptox.DeriveKey([]byte(SeedPassword), salt),
			Salt:         salt,
		},
	}
	if err := s.persist(ctx, records); err != nil {
		s.log.Error(ctx, "failed to persist seed record", "err", err)
		return nil
	}
	return records
}
