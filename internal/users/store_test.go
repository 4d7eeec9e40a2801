package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/kvstore"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) (*Store, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	return NewStore(kv, testLogger()), kv
}

// brokenStore fails every operation; used to exercise the fail-soft paths.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}
func (brokenStore) Set(context.Context, string, []byte) error {
	return errors.New("storage unavailable")
}
func (brokenStore) Delete(context.Context, string) error { return errors.New("storage unavailable") }
func (brokenStore) Clear(context.Context) error          { return errors.New("storage unavailable") }

func TestGetAll_SeedsEmptyStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	records := s.GetAll(ctx)

	require.Len(t, records, 1)
	assert.Equal(t, SeedID, records[0].ID)
	assert.Equal(t, SeedName, records[0].Name)
	assert.Equal(t, SeedEmail, records[0].Email)
	assert.True(t, cryptox.Verify(records[0].PasswordHash,
		cryptox.DeriveKey([]byte(SeedPassword), records[0].Salt)))
}

func TestGetAll_SecondCallReadsWhatSeedWrote(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.GetAll(ctx)
	second := s.GetAll(ctx)

	require.Len(t, second, 1)
	assert.Equal(t, first, second)
}

func TestSaveThenGetAll_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	records := s.GetAll(ctx)
	salt, err := cryptox.NewSalt()
	require.NoError(t, err)
	records = append(records, Record{
		User:         User{ID: "2", Name: "New User", Email: "new@test.com"},
		PasswordHash: cryptox.DeriveKey([]byte("password123"), salt),
		Salt:         salt,
	})

	s.Save(ctx, records)

	got := s.GetAll(ctx)
	assert.Equal(t, records, got)
}

func TestGetAll_CorruptedBlobYieldsEmpty(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "app_users", []byte("{not json")))

	assert.Empty(t, s.GetAll(ctx))
}

func TestGetAll_ReadFailureYieldsEmpty(t *testing.T) {
	s := NewStore(brokenStore{}, testLogger())

	assert.Empty(t, s.GetAll(context.Background()))
}

// writeOnlyBrokenStore reads fine but fails every write.
type writeOnlyBrokenStore struct {
	kvstore.MemoryStore
}

func (*writeOnlyBrokenStore) Set(context.Context, string, []byte) error {
	return errors.New("storage unavailable")
}

func TestGetAll_SeedWriteFailureYieldsEmpty(t *testing.T) {
	s := NewStore(&writeOnlyBrokenStore{}, testLogger())

	assert.Empty(t, s.GetAll(context.Background()))
}

func TestSave_WriteFailureDoesNotPanic(t *testing.T) {
	s := NewStore(brokenStore{}, testLogger())

	require.NotPanics(t, func() {
		s.Save(context.Background(), []Record{{User: User{ID: "1"}}})
	})
}

func TestFindByEmail_NormalizesBeforeComparing(t *testing.T) {
	records := []Record{
		{User: User{ID: "1", Email: "test@test.com"}},
		{User: User{ID: "2", Email: "other@test.com"}},
	}

	found := FindByEmail(records, "  TEST@Test.COM ")
	require.NotNil(t, found)
	assert.Equal(t, "1", found.ID)

	assert.Nil(t, FindByEmail(records, "missing@test.com"))
}
