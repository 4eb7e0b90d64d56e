// internal/game/state_test.go
package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateHidesHandsFromOtherViewers(t *testing.T) {
	g, users, _ := setupStartedGame(t, 3, 21)

	st := g.GetState(users[0])
	assert.Equal(t, "PickBurn", st.Phase)
	assert.Equal(t, g.LeaderID(), st.LeaderID)
	assert.Equal(t, 52-3*DefaultHandSize, st.DrawPileSize)

	for _, ss := range st.Seats {
		require.True(t, ss.Occupied)
		assert.Equal(t, DefaultHandSize, ss.HandSize)
		if *ss.UserID == users[0] {
			// The owner sees opaque card ids, never faces.
			require.Len(t, ss.Cards, DefaultHandSize)
			for _, c := range ss.Cards {
				assert.Empty(t, c.Rank)
				assert.Empty(t, c.Suit)
			}
		} else {
			assert.Nil(t, ss.Cards)
		}
	}
}

func TestStateSpectatorViewAndBurnTop(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 22)
	playPlainTurn(t, g)

	st := g.GetState(uuid.Nil)
	for _, ss := range st.Seats {
		assert.Nil(t, ss.Cards)
	}

	// The burn pile's top card is public.
	require.NotNil(t, st.BurnTop)
	assert.NotEmpty(t, st.BurnTop.Rank)
	assert.Equal(t, 1, st.BurnPileSize)
	assert.False(t, st.HasPicked)
	assert.True(t, st.Seats[st.Turn].IsCurrent)
}
