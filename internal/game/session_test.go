// internal/game/session_test.go
package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSerializesConcurrentActions(t *testing.T) {
	g, err := NewGame(8, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	s := NewSession(g)
	defer s.Close()

	ctx := context.Background()

	// Fire join attempts for the same seat concurrently; exactly one wins.
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Do(ctx, Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: 0})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, e := range errs {
		if e == nil {
			won++
		} else {
			assert.ErrorIs(t, e, ErrInvalidAction)
		}
	}
	assert.Equal(t, 1, won)

	n, err := s.Players(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionViewAndClose(t *testing.T) {
	g, err := NewGame(3, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	s := NewSession(g)

	alice := uuid.New()
	require.NoError(t, s.Do(context.Background(), Action{Code: ActionJoinAsPlayer, UserID: alice, Seat: 0}))

	st, err := s.View(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, g.ID, st.GameID)
	assert.Equal(t, "BeginOfGame", st.Phase)
	assert.True(t, st.Seats[0].Occupied)

	s.Close()
	s.Close() // idempotent
	err = s.Do(context.Background(), Action{Code: ActionLeave, UserID: alice})
	assert.Error(t, err)
}

func TestSessionStoreBindings(t *testing.T) {
	store := NewSessionStore()

	g1, err := NewGame(3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	g2, err := NewGame(3, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	s1, s2 := NewSession(g1), NewSession(g2)
	store.Add(s1)
	store.Add(s2)
	assert.Equal(t, 2, store.Len())

	alice := uuid.New()
	require.NoError(t, store.Bind(alice, g1.ID))
	require.NoError(t, store.Bind(alice, g1.ID)) // re-bind to same session is fine
	assert.Error(t, store.Bind(alice, g2.ID))

	got, ok := store.GetByUser(alice)
	require.True(t, ok)
	assert.Equal(t, s1, got)

	store.Delete(g1.ID)
	_, ok = store.GetByUser(alice)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	// A deleted session's worker is stopped.
	err = s1.Do(context.Background(), Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: 0})
	assert.Error(t, err)
	store.Delete(g2.ID)
}
