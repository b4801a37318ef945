package session

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()

	// unknown user observes defaults; default is not persisted
	sess, err := s.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, StageStart, sess.Stage)
	assert.Empty(t, sess.Item)
	assert.Zero(t, sess.Amount)

	sess.Stage = StagePayment
	sess.Category = catalog.CategoryBasics
	sess.Item = "Veg Thali"
	sess.Amount = 120
	require.NoError(t, s.Put("u1", sess))

	got, err := s.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	// other users are unaffected
	other, err := s.Get("u2")
	require.NoError(t, err)
	assert.Equal(t, StageStart, other.Stage)

	require.NoError(t, s.Delete("u1"))
	got, err = s.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, New(), got)

	// deleting an absent user is a no-op
	require.NoError(t, s.Delete("never-seen"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStoreContract(t, s)
}

func TestBoltStore(t *testing.T) {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	defer s.Close()
	testStoreContract(t, s)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("u1", Session{Stage: StageAwaitUPI, Category: catalog.CategoryPremium, Item: "Veg Biryani + Raita", Amount: 220}))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, StageAwaitUPI, got.Stage)
	assert.Equal(t, 220, got.Amount)
}

func TestLocksSerializePerUser(t *testing.T) {
	locks := NewLocks()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		locks.With("u1", func() error {
			mu.Lock()
			order = append(order, 1)
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
			mu.Lock()
			order = append(order, 2)
			mu.Unlock()
			return nil
		})
	}()
	time.Sleep(5 * time.Millisecond)
	go func() {
		defer wg.Done()
		locks.With("u1", func() error {
			mu.Lock()
			order = append(order, 3)
			mu.Unlock()
			return nil
		})
	}()
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLocksCleanup(t *testing.T) {
	locks := NewLocks()
	locks.With("u1", func() error { return nil })
	require.Len(t, locks.locks, 1)

	locks.Cleanup(0)
	assert.Empty(t, locks.locks)
}
