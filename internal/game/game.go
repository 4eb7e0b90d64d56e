// internal/game/game.go
package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	// MinPlayers and MaxPlayers bound the configurable seat count.
	MinPlayers = 3
	MaxPlayers = 8

	// DefaultHandSize is the number of cards dealt to every seated player.
	DefaultHandSize = 4

	// DefaultRounds is how many turns each seated player takes before the
	// game ends (the draw pile running dry ends it earlier).
	DefaultRounds = 5
)

// Game holds the entire state of one session. It is a pure aggregate: no
// I/O, no locking, no timers. The owning session is responsible for
// serializing calls; DoAction is the sole mutation entry point and
// GetState the sole read entry point.
type Game struct {
	ID uuid.UUID

	seats      []Seat
	deck       *Deck
	drawPile   *Pile
	burnPile   *Pile
	turn       int
	leaderID   uuid.UUID
	phase      Phase
	pickedCard *Card
	passedBy   uuid.UUID
	started    bool
	spectators map[uuid.UUID]struct{}

	handSize   int
	rounds     int
	turnsTaken int

	rng         *rand.Rand
	actionIndex int

	// pending queues the internal follow-up actions a business method
	// schedules; DoAction drains it after the phase transition commits.
	pending []Action

	// EmitFn broadcasts an event to every client. Injected by the session
	// layer; nil means events are dropped.
	EmitFn func(ev Event)

	// EmitToUserFn sends an event to one user only (private reveals).
	EmitToUserFn func(userID uuid.UUID, ev Event)

	// OnAction receives a record for every accepted action, in order.
	OnAction func(rec ActionRecord)
}

// NewGame builds a game with maxPlayers empty seats, a full unshuffled
// deck and phase BeginOfGame. The random source drives the shuffle and
// first-turn selection; pass a fixed seed in tests.
func NewGame(maxPlayers int, rng *rand.Rand) (*Game, error) {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		return nil, invalidActionf("player count %d out of range [%d,%d]", maxPlayers, MinPlayers, MaxPlayers)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	id, _ := uuid.NewRandom()
	return &Game{
		ID:         id,
		seats:      make([]Seat, maxPlayers),
		deck:       NewDeck(),
		drawPile:   &Pile{},
		burnPile:   &Pile{},
		phase:      PhaseBeginOfGame,
		spectators: make(map[uuid.UUID]struct{}),
		handSize:   DefaultHandSize,
		rounds:     DefaultRounds,
		rng:        rng,
	}, nil
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Turn returns the current turn index.
func (g *Game) Turn() int {
	return g.turn
}

// LeaderID returns the leader's user id, or uuid.Nil before the first join.
func (g *Game) LeaderID() uuid.UUID {
	return g.leaderID
}

// IsFull reports whether every seat is occupied.
func (g *Game) IsFull() bool {
	for i := range g.seats {
		if !g.seats[i].Occupied {
			return false
		}
	}
	return true
}

// NumberOfUserPlayers returns the seated player count. The collaborator
// deletes the session once this returns to zero.
func (g *Game) NumberOfUserPlayers() int {
	n := 0
	for i := range g.seats {
		if g.seats[i].Occupied {
			n++
		}
	}
	return n
}

func (g *Game) currentSeat() *Seat {
	return &g.seats[g.turn]
}

// seatOf returns the seat index held by the user, or -1.
func (g *Game) seatOf(userID uuid.UUID) int {
	for i := range g.seats {
		if g.seats[i].heldBy(userID) {
			return i
		}
	}
	return -1
}

// DoAction validates and applies one action. Validation fully precedes
// mutation: a rejected action leaves the game untouched. Join/leave are
// phase-independent; everything else is delegated to the current phase,
// which invokes one business method and yields the next phase.
func (g *Game) DoAction(a Action) error {
	if err := g.validate(a); err != nil {
		return err
	}

	switch a.Code {
	case ActionJoinAsPlayer:
		if err := g.join(a.UserID, a.Seat); err != nil {
			return err
		}
	case ActionJoinAsSpectator:
		if err := g.joinAsSpectator(a.UserID); err != nil {
			return err
		}
	case ActionLeave:
		if err := g.leave(a.UserID); err != nil {
			return err
		}
	default:
		next, err := g.phase.handle(g, a)
		if err != nil {
			return err
		}
		g.phase = next
	}

	g.record(a)

	// Drain internal follow-ups scheduled by the business method. Each
	// runs through the same validator and phase gate.
	for len(g.pending) > 0 {
		follow := g.pending[0]
		g.pending = g.pending[1:]
		if err := g.DoAction(follow); err != nil {
			return err
		}
	}
	return nil
}

// schedule queues an internal follow-up action.
func (g *Game) schedule(code ActionCode) {
	g.pending = append(g.pending, Action{Code: code})
}

// record hands an ActionRecord to the OnAction hook.
func (g *Game) record(a Action) {
	g.actionIndex++
	if g.OnAction != nil {
		g.OnAction(ActionRecord{
			GameID:    g.ID,
			Index:     g.actionIndex,
			ActorID:   a.UserID,
			Code:      a.Code,
			Phase:     g.phase.String(),
			Timestamp: time.Now().UnixMilli(),
		})
	}
}

// --- membership ---

// join binds a user to the requested seat. The first successful join
// assigns the leader, which is immutable afterwards.
func (g *Game) join(userID uuid.UUID, seat int) error {
	if g.seatOf(userID) >= 0 {
		return invalidActionf("user %s already seated", userID)
	}
	if seat < 0 || seat >= len(g.seats) {
		return invalidActionf("seat %d out of range", seat)
	}
	if g.seats[seat].Occupied {
		return invalidActionf("seat %d already taken", seat)
	}
	if g.IsFull() {
		return invalidActionf("game is full")
	}
	g.seats[seat].occupy(userID)
	delete(g.spectators, userID)
	if g.leaderID == uuid.Nil {
		g.leaderID = userID
	}
	g.emit(Event{Type: EventPlayerJoined, UserID: &userID, Seat: &seat})
	return nil
}

// joinAsSpectator registers a non-seated observer.
func (g *Game) joinAsSpectator(userID uuid.UUID) error {
	if g.seatOf(userID) >= 0 {
		return invalidActionf("user %s is seated and cannot spectate", userID)
	}
	if _, ok := g.spectators[userID]; ok {
		return invalidActionf("user %s already spectating", userID)
	}
	g.spectators[userID] = struct{}{}
	g.emit(Event{Type: EventSpectatorJoined, UserID: &userID})
	return nil
}

// leave vacates the user's seat (or drops their spectator registration).
// Cards a leaving player still held slide under the draw pile so the card
// set stays whole; if the leaver was the current turn, the in-flight pick
// is returned as well, the phase resets to PickBurn and the turn advances.
func (g *Game) leave(userID uuid.UUID) error {
	if _, ok := g.spectators[userID]; ok {
		delete(g.spectators, userID)
		g.emit(Event{Type: EventPlayerLeft, UserID: &userID})
		return nil
	}
	seat := g.seatOf(userID)
	if seat < 0 {
		return invalidActionf("user %s not in game", userID)
	}

	wasCurrent := g.started && seat == g.turn

	for _, c := range g.seats[seat].vacate() {
		g.drawPile.PushBottom(c)
	}
	g.emit(Event{Type: EventPlayerLeft, UserID: &userID, Seat: &seat})

	if wasCurrent && g.NumberOfUserPlayers() > 0 && g.phase != PhaseEndOfGame {
		if g.pickedCard != nil {
			g.drawPile.PushBottom(g.pickedCard)
			g.pickedCard = nil
		}
		g.phase = PhasePickBurn
		g.advanceTurn()
	}
	return nil
}

// --- business methods invoked by phases ---

// startGame shuffles the deck and schedules the first-turn selection.
func (g *Game) startGame() error {
	if g.started {
		return invalidActionf("game already started")
	}
	if g.NumberOfUserPlayers() < MinPlayers {
		return invalidActionf("need at least %d seated players to start", MinPlayers)
	}
	g.deck.Shuffle(g.rng)
	g.started = true
	g.emit(Event{Type: EventGameStarted})
	g.schedule(ActionSelectFirstTurn)
	return nil
}

// selectFirstTurn picks a uniformly random occupied seat as the first turn.
func (g *Game) selectFirstTurn() error {
	occupied := make([]int, 0, len(g.seats))
	for i := range g.seats {
		if g.seats[i].Occupied {
			occupied = append(occupied, i)
		}
	}
	if len(occupied) == 0 {
		return invalidActionf("no seated players")
	}
	g.turn = occupied[g.rng.Intn(len(occupied))]
	g.schedule(ActionStartRound)
	return nil
}

// startRound opens the deal phase.
func (g *Game) startRound() error {
	g.emit(Event{Type: EventRoundStarted})
	g.schedule(ActionDistributeCard)
	return nil
}

// distributeCards deals handSize cards to every seated player in seat
// order, then moves the remaining deck cards to the draw pile.
func (g *Game) distributeCards() error {
	for i := range g.seats {
		if !g.seats[i].Occupied {
			continue
		}
		for n := 0; n < g.handSize; n++ {
			c, ok := g.deck.PopTop()
			if !ok {
				return invalidActionf("deck exhausted during deal")
			}
			g.seats[i].Hand.Add(c)
		}
	}
	for {
		c, ok := g.deck.PopTop()
		if !ok {
			break
		}
		g.drawPile.Push(c)
	}
	turn := g.turn
	g.emit(Event{Type: EventTurnChanged, Seat: &turn})
	return nil
}

// pickFromPile moves the draw pile's top card into pickedCard.
func (g *Game) pickFromPile(userID uuid.UUID) error {
	c, ok := g.drawPile.PopTop()
	if !ok {
		return invalidActionf("empty pile")
	}
	g.pickedCard = c
	g.emit(Event{Type: EventCardPicked, UserID: &userID, Payload: map[string]interface{}{"source": "pile"}})
	g.emitToUser(userID, Event{Type: EventPrivateCardPicked, Card: revealCard(c, nil)})
	return nil
}

// pickFromBurned moves the burn pile's top card into pickedCard.
func (g *Game) pickFromBurned(userID uuid.UUID) error {
	c, ok := g.burnPile.PopTop()
	if !ok {
		return invalidActionf("empty pile")
	}
	g.pickedCard = c
	g.emit(Event{Type: EventCardPicked, UserID: &userID, Payload: map[string]interface{}{"source": "burned"}})
	g.emitToUser(userID, Event{Type: EventPrivateCardPicked, Card: revealCard(c, nil)})
	return nil
}

// throwPicked resolves the pick by discarding it onto the burn pile.
func (g *Game) throwPicked(userID uuid.UUID) error {
	c := g.pickedCard
	g.pickedCard = nil
	g.burnPile.Push(c)
	g.emit(Event{Type: EventCardThrown, UserID: &userID, Card: revealCard(c, nil)})
	return nil
}

// exchangePickWithHand swaps the picked card with a named hand card; the
// outgoing hand card lands on the burn pile.
func (g *Game) exchangePickWithHand(userID uuid.UUID, cardID uuid.UUID) error {
	seat := g.currentSeat()
	out, ok := seat.Hand.Get(cardID)
	if !ok {
		return invalidActionf("card %s not in hand", cardID)
	}
	seat.Hand.Remove(out.ID)
	seat.Hand.Add(g.pickedCard)
	g.pickedCard = nil
	g.burnPile.Push(out)
	g.emit(Event{Type: EventPickExchanged, UserID: &userID, Card: revealCard(out, nil)})
	return nil
}

// useAbility reads the picked card's ability, marks the card used, and
// returns the ability so the phase can route to the matching resolution
// phase. A NONE ability spends the pick onto the burn pile immediately.
func (g *Game) useAbility(userID uuid.UUID) (Ability, error) {
	c := g.pickedCard
	ability := c.Ability
	switch ability {
	case AbilityNone, AbilityExchangeHandWithOther, AbilityShowOneHandCard, AbilityShowOneOtherHandCard:
	default:
		return ability, invalidActionf("unrecognized ability tag %d", ability)
	}
	c.Used = true
	g.emit(Event{Type: EventAbilityUsed, UserID: &userID, Payload: map[string]interface{}{"ability": ability.String()}})
	if ability == AbilityNone {
		g.pickedCard = nil
		g.burnPile.Push(c)
	}
	return ability, nil
}

// spendPicked discards the picked card after its ability resolved.
func (g *Game) spendPicked() {
	if g.pickedCard != nil {
		g.burnPile.Push(g.pickedCard)
		g.pickedCard = nil
	}
}

// targetSeat resolves and checks an opposing seat index for the exchange
// and show-other abilities.
func (g *Game) targetSeat(userID uuid.UUID, other int) (*Seat, error) {
	if other < 0 || other >= len(g.seats) {
		return nil, invalidActionf("seat %d out of range", other)
	}
	if g.seats[other].heldBy(userID) {
		return nil, invalidActionf("cannot target your own seat")
	}
	if !g.seats[other].Occupied {
		return nil, invalidActionf("seat %d is empty", other)
	}
	return &g.seats[other], nil
}

// exchangeHandWithOther swaps a named own card with a named card of
// another seated player. Both hands are updated in place.
func (g *Game) exchangeHandWithOther(userID uuid.UUID, cardID uuid.UUID, other int, otherCardID uuid.UUID) error {
	target, err := g.targetSeat(userID, other)
	if err != nil {
		return err
	}
	mine := g.currentSeat()
	own, ok := mine.Hand.Get(cardID)
	if !ok {
		return invalidActionf("card %s not in hand", cardID)
	}
	theirs, ok := target.Hand.Get(otherCardID)
	if !ok {
		return invalidActionf("card %s not in target hand", otherCardID)
	}

	mine.Hand.Remove(own.ID)
	target.Hand.Remove(theirs.ID)
	mine.Hand.Add(theirs)
	target.Hand.Add(own)

	otherIdx := other
	g.emit(Event{
		Type:   EventHandsExchanged,
		UserID: &userID,
		Card:   concealCard(own, nil),
		Other:  concealCard(theirs, &otherIdx),
	})
	g.spendPicked()
	return nil
}

// showOneHandCard reveals one of the actor's own cards to the actor.
func (g *Game) showOneHandCard(userID uuid.UUID, cardID uuid.UUID) error {
	c, ok := g.currentSeat().Hand.Get(cardID)
	if !ok {
		return invalidActionf("card %s not in hand", cardID)
	}
	g.emitToUser(userID, Event{Type: EventPrivateCardShown, Card: revealCard(c, nil)})
	g.emit(Event{Type: EventAbilityUsed, UserID: &userID, Card: concealCard(c, nil)})
	g.spendPicked()
	return nil
}

// showOneOtherHandCard reveals a named card of another player to the actor.
func (g *Game) showOneOtherHandCard(userID uuid.UUID, other int, otherCardID uuid.UUID) error {
	target, err := g.targetSeat(userID, other)
	if err != nil {
		return err
	}
	c, ok := target.Hand.Get(otherCardID)
	if !ok {
		return invalidActionf("card %s not in target hand", otherCardID)
	}
	otherIdx := other
	g.emitToUser(userID, Event{Type: EventPrivateCardShown, Card: revealCard(c, &otherIdx)})
	g.emit(Event{Type: EventAbilityUsed, UserID: &userID, Card: concealCard(c, &otherIdx)})
	g.spendPicked()
	return nil
}

// burnOneHandCard compares a named hand card's rank against the burn
// pile's top. Equal ranks shed the hand card onto the pile; unequal ranks
// instead draw the pile's top card into the hand as a penalty.
func (g *Game) burnOneHandCard(userID uuid.UUID, cardID uuid.UUID) error {
	top, ok := g.burnPile.Top()
	if !ok {
		return invalidActionf("empty pile")
	}
	seat := g.currentSeat()
	c, ok := seat.Hand.Get(cardID)
	if !ok {
		return invalidActionf("card %s not in hand", cardID)
	}

	if c.EqualsRank(top) {
		seat.Hand.Remove(c.ID)
		g.burnPile.Push(c)
		g.emit(Event{Type: EventCardBurned, UserID: &userID, Card: revealCard(c, nil)})
	} else {
		g.burnPile.PopTop()
		seat.Hand.Add(top)
		g.emit(Event{Type: EventBurnPenalty, UserID: &userID, Card: concealCard(top, nil)})
	}
	g.schedule(ActionEndOfTurn)
	return nil
}

// pass records the acting player; it neither advances the turn nor
// changes the phase itself.
func (g *Game) pass(userID uuid.UUID) error {
	g.passedBy = userID
	g.emit(Event{Type: EventPlayerPassed, UserID: &userID})
	g.schedule(ActionEndOfTurn)
	return nil
}

// endOfTurn clears the in-flight pick and counts the finished turn.
func (g *Game) endOfTurn() error {
	g.pickedCard = nil
	g.turnsTaken++
	g.schedule(ActionEndRound)
	return nil
}

// endRound decides between the next-turn cycle and the end of the game.
func (g *Game) endRound() error {
	if g.gameComplete() {
		g.schedule(ActionEndOfGame)
	} else {
		g.schedule(ActionNextTurn)
	}
	return nil
}

// gameComplete reports whether all configured rounds are played or the
// draw pile is exhausted.
func (g *Game) gameComplete() bool {
	if g.drawPile.IsEmpty() {
		return true
	}
	return g.turnsTaken >= g.rounds*g.NumberOfUserPlayers()
}

// nextTurn advances the turn index modulo the seat count, skipping
// vacated seats. Only internal logic may invoke it.
func (g *Game) nextTurn() error {
	g.advanceTurn()
	turn := g.turn
	g.emit(Event{Type: EventTurnChanged, Seat: &turn})
	return nil
}

func (g *Game) advanceTurn() {
	for i := 0; i < len(g.seats); i++ {
		g.turn = (g.turn + 1) % len(g.seats)
		if g.seats[g.turn].Occupied {
			return
		}
	}
}

// endOfGame closes the session's play; only RESTART is accepted afterwards.
func (g *Game) endOfGame() error {
	g.emit(Event{Type: EventGameEnded})
	return nil
}

// restartGame reassembles the full card set into the deck, reshuffles and
// re-runs the start flow with the same seats and leader.
func (g *Game) restartGame() error {
	for i := range g.seats {
		if !g.seats[i].Occupied {
			continue
		}
		for _, c := range g.seats[i].Hand.Drain() {
			g.deck.Push(c)
		}
	}
	for _, c := range g.drawPile.Drain() {
		g.deck.Push(c)
	}
	for _, c := range g.burnPile.Drain() {
		g.deck.Push(c)
	}
	if g.pickedCard != nil {
		g.deck.Push(g.pickedCard)
		g.pickedCard = nil
	}
	for _, c := range g.deck.cards {
		c.Used = false
	}

	g.turnsTaken = 0
	g.passedBy = uuid.Nil
	g.deck.Shuffle(g.rng)
	g.emit(Event{Type: EventGameRestarted})
	g.schedule(ActionSelectFirstTurn)
	return nil
}
