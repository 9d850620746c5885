package scores

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsprint/internal/kv"
)

// brokenKV fails every operation, standing in for unavailable storage.
type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}
func (brokenKV) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("quota exceeded")
}

func TestTopEmptyWhenUnwritten(t *testing.T) {
	s := NewStore(kv.NewMemory())
	assert.Empty(t, s.Top(context.Background(), 5))
}

func TestSaveThenTop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	s.Save(ctx, "ada", 12)

	got := s.Top(ctx, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "ada", got[0].Name)
	assert.Equal(t, 12, got[0].Score)
	assert.False(t, got[0].Date.IsZero())
}

func TestTopSortsDescendingStableTies(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	for _, r := range []struct {
		name  string
		score int
	}{
		{"a", 5}, {"b", 9}, {"c", 2}, {"d", 9}, {"e", 1},
	} {
		s.Save(ctx, r.name, r.score)
	}

	got := s.Top(ctx, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []int{9, 9, 5}, []int{got[0].Score, got[1].Score, got[2].Score})
	// Equal scores keep insertion order: b before d.
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "d", got[1].Name)
}

func TestTopDefaultLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	for i := 0; i < 8; i++ {
		s.Save(ctx, "p", i)
	}
	assert.Len(t, s.Top(ctx, 0), DefaultLimit)
}

func TestTopCorruptBlobDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	require.NoError(t, backend.Put(ctx, StorageKey, []byte("{definitely not json")))

	s := NewStore(backend)
	assert.Empty(t, s.Top(ctx, 5))
}

func TestSaveTrimsAndClipsName(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	s.Save(ctx, "  grace  ", 3)
	s.Save(ctx, strings.Repeat("x", 30), 4)

	got := s.Top(ctx, 5)
	require.Len(t, got, 2)
	assert.Equal(t, strings.Repeat("x", 20), got[0].Name)
	assert.Equal(t, "grace", got[1].Name)
}

func TestSaveDropsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())
	s.Save(ctx, "   ", 5)
	s.Save(ctx, "neg", -1)
	assert.Empty(t, s.Top(ctx, 5))
}

func TestSaveSwallowsWriteFailures(t *testing.T) {
	ctx := context.Background()
	s := NewStore(brokenKV{})
	require.NotPanics(t, func() {
		s.Save(ctx, "ada", 7)
	})
	assert.Empty(t, s.Top(ctx, 5))
}
