// internal/game/game_test.go
package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEmitter collects events instead of sending them over WS.
type mockEmitter struct {
	mu         sync.Mutex
	allEvents  []Event
	userEvents map[uuid.UUID][]Event
}

func newMockEmitter() *mockEmitter {
	return &mockEmitter{
		userEvents: make(map[uuid.UUID][]Event),
	}
}

func (me *mockEmitter) emit(ev Event) {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.allEvents = append(me.allEvents, ev)
}

func (me *mockEmitter) emitToUser(userID uuid.UUID, ev Event) {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.userEvents[userID] = append(me.userEvents[userID], ev)
}

func (me *mockEmitter) clear() {
	me.mu.Lock()
	defer me.mu.Unlock()
	me.allEvents = nil
	me.userEvents = make(map[uuid.UUID][]Event)
}

func (me *mockEmitter) countOf(t EventType) int {
	me.mu.Lock()
	defer me.mu.Unlock()
	n := 0
	for _, ev := range me.allEvents {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (me *mockEmitter) lastFor(userID uuid.UUID) *Event {
	me.mu.Lock()
	defer me.mu.Unlock()
	evs := me.userEvents[userID]
	if len(evs) == 0 {
		return nil
	}
	return &evs[len(evs)-1]
}

// setupGame builds a game with n seated players and a fixed seed.
func setupGame(t *testing.T, n int, seed int64) (*Game, []uuid.UUID, *mockEmitter) {
	t.Helper()
	g, err := NewGame(n, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	me := newMockEmitter()
	g.EmitFn = me.emit
	g.EmitToUserFn = me.emitToUser

	users := make([]uuid.UUID, n)
	for i := range users {
		users[i] = uuid.New()
		require.NoError(t, g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: users[i], Seat: i}))
	}
	return g, users, me
}

// setupStartedGame additionally runs the start cascade through the deal.
func setupStartedGame(t *testing.T, n int, seed int64) (*Game, []uuid.UUID, *mockEmitter) {
	t.Helper()
	g, users, me := setupGame(t, n, seed)
	require.NoError(t, g.DoAction(Action{Code: ActionStartGame, UserID: users[0]}))
	require.Equal(t, PhasePickBurn, g.Phase())
	me.clear()
	return g, users, me
}

func currentUser(g *Game) uuid.UUID {
	return g.seats[g.turn].UserID
}

// totalCards counts every card the game tracks, wherever it sits.
func totalCards(g *Game) int {
	n := g.deck.Size() + g.drawPile.Size() + g.burnPile.Size()
	for i := range g.seats {
		if g.seats[i].Occupied {
			n += g.seats[i].Hand.Size()
		}
	}
	if g.pickedCard != nil {
		n++
	}
	return n
}

func anyHandCard(t *testing.T, s *Seat) *Card {
	t.Helper()
	cards := s.Hand.Cards()
	require.NotEmpty(t, cards)
	return cards[0]
}

// playPlainTurn drives the current player through pick, throw and pass.
func playPlainTurn(t *testing.T, g *Game) {
	t.Helper()
	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	require.NoError(t, g.DoAction(Action{Code: ActionThrowCard, UserID: u}))
	require.NoError(t, g.DoAction(Action{Code: ActionPass, UserID: u}))
}

func TestNewGamePlayerCountBounds(t *testing.T) {
	_, err := NewGame(2, nil)
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = NewGame(9, nil)
	assert.ErrorIs(t, err, ErrInvalidAction)
	g, err := NewGame(8, nil)
	require.NoError(t, err)
	assert.Equal(t, PhaseBeginOfGame, g.Phase())
}

func TestJoinAssignsLeaderAndFillsSeats(t *testing.T) {
	g, users, _ := setupGame(t, 3, 1)

	assert.Equal(t, users[0], g.LeaderID())
	assert.True(t, g.IsFull())
	assert.Equal(t, 3, g.NumberOfUserPlayers())

	// A fourth distinct user cannot join once every seat is taken.
	err := g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: 0})
	assert.ErrorIs(t, err, ErrInvalidAction)

	// A seated user cannot join twice.
	err = g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: users[1], Seat: 2})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestJoinRejectsTakenOrInvalidSeat(t *testing.T) {
	g, err := NewGame(4, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	alice := uuid.New()
	require.NoError(t, g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: alice, Seat: 1}))

	err = g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: 1})
	assert.ErrorIs(t, err, ErrInvalidAction)
	err = g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: 4})
	assert.ErrorIs(t, err, ErrInvalidAction)
	err = g.DoAction(Action{Code: ActionJoinAsPlayer, UserID: uuid.New(), Seat: -1})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestSpectatorJoinAndLeave(t *testing.T) {
	g, users, me := setupGame(t, 3, 1)

	watcher := uuid.New()
	require.NoError(t, g.DoAction(Action{Code: ActionJoinAsSpectator, UserID: watcher}))
	assert.Equal(t, 1, me.countOf(EventSpectatorJoined))

	// Seated players cannot also spectate.
	err := g.DoAction(Action{Code: ActionJoinAsSpectator, UserID: users[0]})
	assert.ErrorIs(t, err, ErrInvalidAction)

	require.NoError(t, g.DoAction(Action{Code: ActionLeave, UserID: watcher}))
	err = g.DoAction(Action{Code: ActionLeave, UserID: watcher})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestStartGameLeaderOnly(t *testing.T) {
	g, users, _ := setupGame(t, 3, 1)

	err := g.DoAction(Action{Code: ActionStartGame, UserID: users[1]})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhaseBeginOfGame, g.Phase())

	require.NoError(t, g.DoAction(Action{Code: ActionStartGame, UserID: users[0]}))
	assert.Equal(t, PhasePickBurn, g.Phase())

	// Starting twice is rejected and leaves the phase untouched.
	err = g.DoAction(Action{Code: ActionStartGame, UserID: users[0]})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhasePickBurn, g.Phase())
}

func TestInternalActionsRejectExternalActors(t *testing.T) {
	g, users, _ := setupStartedGame(t, 3, 1)

	for _, code := range []ActionCode{
		ActionStartRound, ActionDistributeCard, ActionSelectFirstTurn,
		ActionNextTurn, ActionEndOfTurn, ActionEndRound, ActionEndOfGame,
	} {
		err := g.DoAction(Action{Code: code, UserID: users[0]})
		assert.ErrorIs(t, err, ErrInvalidAction, "code %s", code)
	}

	// Even with no actor attached, the phase gate still blocks internal
	// codes outside their phase.
	err := g.DoAction(Action{Code: ActionNextTurn})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhasePickBurn, g.Phase())
}

func TestUnknownActionRejected(t *testing.T) {
	g, users, _ := setupStartedGame(t, 3, 1)
	err := g.DoAction(Action{Code: ActionCode("FLY_TO_THE_MOON"), UserID: users[0]})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestDealCountsAndConservation(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 2)

	for i := range g.seats {
		assert.Equal(t, DefaultHandSize, g.seats[i].Hand.Size())
	}
	assert.Equal(t, 52-3*DefaultHandSize, g.drawPile.Size())
	assert.Equal(t, 0, g.burnPile.Size())
	assert.Equal(t, 52, totalCards(g))
}

func TestWrongTurnRejected(t *testing.T) {
	g, users, _ := setupStartedGame(t, 3, 3)

	var other uuid.UUID
	for _, u := range users {
		if u != currentUser(g) {
			other = u
			break
		}
	}
	err := g.DoAction(Action{Code: ActionPickCardFromPile, UserID: other})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhasePickBurn, g.Phase())
}

func TestPickThrowPassCyclesTurn(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 4)
	first := g.Turn()

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	assert.Equal(t, PhasePilePicked, g.Phase())
	assert.NotNil(t, g.pickedCard)

	// The picker learns the card privately; the table only sees the source.
	priv := me.lastFor(u)
	require.NotNil(t, priv)
	assert.Equal(t, EventPrivateCardPicked, priv.Type)
	assert.NotEmpty(t, priv.Card.Rank)

	require.NoError(t, g.DoAction(Action{Code: ActionThrowCard, UserID: u}))
	assert.Equal(t, PhaseBurn, g.Phase())
	assert.Nil(t, g.pickedCard)

	require.NoError(t, g.DoAction(Action{Code: ActionPass, UserID: u}))
	assert.Equal(t, PhasePickBurn, g.Phase())
	assert.NotEqual(t, first, g.Turn())
	assert.True(t, g.seats[g.Turn()].Occupied)
	assert.Equal(t, 52, totalCards(g))
	assert.Equal(t, 1, me.countOf(EventPlayerPassed))
}

func TestPickFromBurnedRequiresNonEmptyPile(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 5)

	u := currentUser(g)
	err := g.DoAction(Action{Code: ActionPickCardFromBurned, UserID: u})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhasePickBurn, g.Phase())

	// After one thrown card the burn pile becomes a valid pick source.
	playPlainTurn(t, g)
	u = currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromBurned, UserID: u}))
	assert.Equal(t, PhaseBurnedPicked, g.Phase())
	assert.Equal(t, 0, g.burnPile.Size())
}

func TestExchangePickWithHand(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 6)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	picked := g.pickedCard
	out := anyHandCard(t, g.currentSeat())

	require.NoError(t, g.DoAction(Action{Code: ActionExchangePickWithHand, UserID: u, CardID: out.ID}))
	assert.Equal(t, PhaseBurn, g.Phase())

	_, inHand := g.currentSeat().Hand.Get(picked.ID)
	assert.True(t, inHand)
	_, stillThere := g.currentSeat().Hand.Get(out.ID)
	assert.False(t, stillThere)
	top, ok := g.burnPile.Top()
	require.True(t, ok)
	assert.Equal(t, out.ID, top.ID)
	assert.Equal(t, DefaultHandSize, g.currentSeat().Hand.Size())
	assert.Equal(t, 52, totalCards(g))
}

func TestExchangePickWithUnknownCardRejected(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 7)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	err := g.DoAction(Action{Code: ActionExchangePickWithHand, UserID: u, CardID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhasePilePicked, g.Phase())
	assert.NotNil(t, g.pickedCard)
}

func TestUseAbilityNoneSpendsPick(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 8)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	g.pickedCard.Ability = AbilityNone
	picked := g.pickedCard

	require.NoError(t, g.DoAction(Action{Code: ActionUseAbility, UserID: u}))
	assert.Equal(t, PhaseBurn, g.Phase())
	assert.True(t, picked.Used)
	top, ok := g.burnPile.Top()
	require.True(t, ok)
	assert.Equal(t, picked.ID, top.ID)
}

func TestExchangeHandWithOtherSwapsInPlace(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 9)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	g.pickedCard.Ability = AbilityExchangeHandWithOther

	require.NoError(t, g.DoAction(Action{Code: ActionUseAbility, UserID: u}))
	require.Equal(t, PhaseExchangeHandWithOther, g.Phase())

	other := (g.Turn() + 1) % len(g.seats)
	own := anyHandCard(t, g.currentSeat())
	theirs := anyHandCard(t, &g.seats[other])

	require.NoError(t, g.DoAction(Action{
		Code:        ActionExchangeHandWithOther,
		UserID:      u,
		CardID:      own.ID,
		OtherSeat:   other,
		OtherCardID: theirs.ID,
	}))
	assert.Equal(t, PhaseBurn, g.Phase())

	// Both hands changed in place, the two cards traded owners.
	_, ok := g.currentSeat().Hand.Get(theirs.ID)
	assert.True(t, ok)
	_, ok = g.seats[other].Hand.Get(own.ID)
	assert.True(t, ok)
	_, ok = g.currentSeat().Hand.Get(own.ID)
	assert.False(t, ok)
	assert.Equal(t, DefaultHandSize, g.currentSeat().Hand.Size())
	assert.Equal(t, DefaultHandSize, g.seats[other].Hand.Size())
	assert.Equal(t, 52, totalCards(g))

	// The exchange event conceals both card identities.
	require.Equal(t, 1, me.countOf(EventHandsExchanged))
	for _, ev := range me.allEvents {
		if ev.Type == EventHandsExchanged {
			assert.Empty(t, ev.Card.Rank)
			assert.Empty(t, ev.Other.Rank)
		}
	}
}

func TestExchangeHandRejectsSelfAndEmptyTargets(t *testing.T) {
	g, _, _ := setupStartedGame(t, 4, 10)

	// Vacate one seat so an empty target exists.
	var gone int
	for i := range g.seats {
		if i != g.Turn() {
			gone = i
			break
		}
	}
	goneUser := g.seats[gone].UserID
	require.NoError(t, g.DoAction(Action{Code: ActionLeave, UserID: goneUser}))

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	g.pickedCard.Ability = AbilityExchangeHandWithOther
	require.NoError(t, g.DoAction(Action{Code: ActionUseAbility, UserID: u}))

	own := anyHandCard(t, g.currentSeat())
	err := g.DoAction(Action{Code: ActionExchangeHandWithOther, UserID: u, CardID: own.ID, OtherSeat: g.Turn(), OtherCardID: own.ID})
	assert.ErrorIs(t, err, ErrInvalidAction)
	err = g.DoAction(Action{Code: ActionExchangeHandWithOther, UserID: u, CardID: own.ID, OtherSeat: gone, OtherCardID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidAction)
	err = g.DoAction(Action{Code: ActionExchangeHandWithOther, UserID: u, CardID: own.ID, OtherSeat: 99, OtherCardID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Equal(t, PhaseExchangeHandWithOther, g.Phase())
}

func TestShowOneHandCardRevealsPrivately(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 11)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	g.pickedCard.Ability = AbilityShowOneHandCard
	require.NoError(t, g.DoAction(Action{Code: ActionUseAbility, UserID: u}))
	require.Equal(t, PhaseShowOneHandCard, g.Phase())

	own := anyHandCard(t, g.currentSeat())
	me.clear()
	require.NoError(t, g.DoAction(Action{Code: ActionShowOneHandCard, UserID: u, CardID: own.ID}))
	assert.Equal(t, PhaseBurn, g.Phase())

	priv := me.lastFor(u)
	require.NotNil(t, priv)
	assert.Equal(t, EventPrivateCardShown, priv.Type)
	assert.Equal(t, own.Rank, priv.Card.Rank)

	// No other user received the reveal; the broadcast conceals the rank.
	for id, evs := range me.userEvents {
		if id != u {
			assert.Empty(t, evs)
		}
	}
	for _, ev := range me.allEvents {
		if ev.Card != nil {
			assert.Empty(t, ev.Card.Rank)
		}
	}
}

func TestShowOneOtherHandCard(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 12)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	g.pickedCard.Ability = AbilityShowOneOtherHandCard
	require.NoError(t, g.DoAction(Action{Code: ActionUseAbility, UserID: u}))
	require.Equal(t, PhaseShowOneOtherHandCard, g.Phase())

	other := (g.Turn() + 1) % len(g.seats)
	theirs := anyHandCard(t, &g.seats[other])
	require.NoError(t, g.DoAction(Action{Code: ActionShowOneOtherHandCard, UserID: u, OtherSeat: other, OtherCardID: theirs.ID}))
	assert.Equal(t, PhaseBurn, g.Phase())

	priv := me.lastFor(u)
	require.NotNil(t, priv)
	assert.Equal(t, theirs.Rank, priv.Card.Rank)

	// The card never leaves the target's hand.
	_, ok := g.seats[other].Hand.Get(theirs.ID)
	assert.True(t, ok)
}

func TestBurnMatchingRankSheds(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 13)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	require.NoError(t, g.DoAction(Action{Code: ActionThrowCard, UserID: u}))
	top, ok := g.burnPile.Top()
	require.True(t, ok)

	h := anyHandCard(t, g.currentSeat())
	h.Rank = top.Rank

	require.NoError(t, g.DoAction(Action{Code: ActionBurnOneHandCard, UserID: u, CardID: h.ID}))
	assert.Equal(t, DefaultHandSize-1, g.seats[g.seatOf(u)].Hand.Size())
	newTop, ok := g.burnPile.Top()
	require.True(t, ok)
	assert.Equal(t, h.ID, newTop.ID)
	assert.Equal(t, 52, totalCards(g))
}

func TestBurnMismatchedRankDrawsPenalty(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 14)

	u := currentUser(g)
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	require.NoError(t, g.DoAction(Action{Code: ActionThrowCard, UserID: u}))
	top, ok := g.burnPile.Top()
	require.True(t, ok)

	h := anyHandCard(t, g.currentSeat())
	if h.Rank == top.Rank {
		h.Rank = "A"
		if top.Rank == "A" {
			h.Rank = "K"
		}
	}

	require.NoError(t, g.DoAction(Action{Code: ActionBurnOneHandCard, UserID: u, CardID: h.ID}))
	assert.Equal(t, DefaultHandSize+1, g.seats[g.seatOf(u)].Hand.Size())
	_, gained := g.seats[g.seatOf(u)].Hand.Get(top.ID)
	assert.True(t, gained)
	assert.Equal(t, 0, g.burnPile.Size())
	assert.Equal(t, 1, me.countOf(EventBurnPenalty))
	assert.Equal(t, 52, totalCards(g))
}

func TestTurnRotationSkipsVacatedSeats(t *testing.T) {
	g, _, _ := setupStartedGame(t, 4, 15)

	// Vacate a seat that is not currently playing.
	gone := -1
	for i := range g.seats {
		if i != g.Turn() {
			gone = i
			break
		}
	}
	require.NoError(t, g.DoAction(Action{Code: ActionLeave, UserID: g.seats[gone].UserID}))

	for turn := 0; turn < 6; turn++ {
		playPlainTurn(t, g)
		assert.NotEqual(t, gone, g.Turn())
		assert.True(t, g.seats[g.Turn()].Occupied)
	}
}

func TestLeaveDuringOwnTurnReturnsCards(t *testing.T) {
	g, _, _ := setupStartedGame(t, 3, 16)

	u := currentUser(g)
	leaverSeat := g.Turn()
	require.NoError(t, g.DoAction(Action{Code: ActionPickCardFromPile, UserID: u}))
	require.NoError(t, g.DoAction(Action{Code: ActionLeave, UserID: u}))

	assert.False(t, g.seats[leaverSeat].Occupied)
	assert.Equal(t, PhasePickBurn, g.Phase())
	assert.Nil(t, g.pickedCard)
	assert.NotEqual(t, leaverSeat, g.Turn())
	assert.Equal(t, 2, g.NumberOfUserPlayers())
	assert.Equal(t, 52, totalCards(g))
}

func TestGameEndsAfterConfiguredRounds(t *testing.T) {
	g, users, me := setupStartedGame(t, 3, 17)
	g.rounds = 1

	for i := 0; i < 3; i++ {
		playPlainTurn(t, g)
	}
	assert.Equal(t, PhaseEndOfGame, g.Phase())
	assert.Equal(t, 1, me.countOf(EventGameEnded))

	// Nothing but a leader restart is accepted now.
	err := g.DoAction(Action{Code: ActionPickCardFromPile, UserID: currentUser(g)})
	assert.ErrorIs(t, err, ErrInvalidAction)
	if users[1] != g.LeaderID() {
		err = g.DoAction(Action{Code: ActionRestart, UserID: users[1]})
		assert.ErrorIs(t, err, ErrInvalidAction)
	}
}

func TestRestartReshufflesFullCardSet(t *testing.T) {
	g, _, me := setupStartedGame(t, 3, 18)
	g.rounds = 1

	for i := 0; i < 3; i++ {
		playPlainTurn(t, g)
	}
	require.Equal(t, PhaseEndOfGame, g.Phase())

	me.clear()
	require.NoError(t, g.DoAction(Action{Code: ActionRestart, UserID: g.LeaderID()}))
	assert.Equal(t, PhasePickBurn, g.Phase())
	assert.Equal(t, 1, me.countOf(EventGameRestarted))

	for i := range g.seats {
		assert.Equal(t, DefaultHandSize, g.seats[i].Hand.Size())
		for _, c := range g.seats[i].Hand.Cards() {
			assert.False(t, c.Used)
		}
	}
	assert.Equal(t, 52-3*DefaultHandSize, g.drawPile.Size())
	assert.Equal(t, 0, g.burnPile.Size())
	assert.Equal(t, 52, totalCards(g))
	assert.Equal(t, 0, g.turnsTaken)
}

func TestActionRecordsAreOrdered(t *testing.T) {
	g, users, _ := setupGame(t, 3, 19)

	var recs []ActionRecord
	g.OnAction = func(rec ActionRecord) { recs = append(recs, rec) }

	require.NoError(t, g.DoAction(Action{Code: ActionStartGame, UserID: users[0]}))
	playPlainTurn(t, g)

	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.Equal(t, recs[i-1].Index+1, recs[i].Index)
	}
	// The cascade records the internal steps with no actor attached.
	assert.Equal(t, ActionStartGame, recs[0].Code)
	assert.Equal(t, ActionSelectFirstTurn, recs[1].Code)
	assert.Equal(t, uuid.Nil, recs[1].ActorID)
}

func TestDeterministicShuffleWithSameSeed(t *testing.T) {
	g1, _, _ := setupStartedGame(t, 3, 42)
	g2, _, _ := setupStartedGame(t, 3, 42)

	require.Equal(t, g1.drawPile.Size(), g2.drawPile.Size())
	for i := range g1.drawPile.cards {
		c1, c2 := g1.drawPile.cards[i], g2.drawPile.cards[i]
		assert.Equal(t, c1.Rank, c2.Rank)
		assert.Equal(t, c1.Suit, c2.Suit)
	}
	assert.Equal(t, g1.Turn(), g2.Turn())
}
