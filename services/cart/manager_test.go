package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFactory struct {
	mu       sync.Mutex
	storages map[string]*MemoryStorage
}

func (f *memoryFactory) storage(sessionID string) SessionStorage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storages == nil {
		f.storages = map[string]*MemoryStorage{}
	}
	s, ok := f.storages[sessionID]
	if !ok {
		s = NewMemoryStorage()
		f.storages[sessionID] = s
	}
	return s
}

func TestManager_ConcurrentAddsOnOneSession(t *testing.T) {
	f := &memoryFactory{}
	m := NewManager(f.storage, time.Hour, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithStore(ctx, "s1", func(s *Store) error {
				_, err := s.AddToCart(ctx, item("a", 10, 1))
				return err
			})
		}()
	}
	wg.Wait()

	var count int
	var total float64
	require.NoError(t, m.WithStore(ctx, "s1", func(s *Store) error {
		count = s.GetItemCount()
		total = s.GetTotalPrice()
		return nil
	}))
	assert.Equal(t, 20, count)
	assert.Equal(t, 200.0, total)
}

func TestManager_SweepEvictsIdleAndRehydrates(t *testing.T) {
	f := &memoryFactory{}
	m := NewManager(f.storage, time.Minute, nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.WithStore(ctx, "s1", func(s *Store) error {
		_, err := s.AddToCart(ctx, item("a", 10, 1))
		return err
	}))
	assert.Equal(t, 0, m.Sweep())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Active())

	var count int
	require.NoError(t, m.WithStore(ctx, "s1", func(s *Store) error {
		count = s.GetItemCount()
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestManager_RejectsEmptySessionID(t *testing.T) {
	f := &memoryFactory{}
	m := NewManager(f.storage, time.Hour, nil)

	called := false
	err := m.WithStore(context.Background(), "", func(*Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called)
	assert.Zero(t, m.Active())
}
