// internal/game/action.go
package game

import "github.com/google/uuid"

// ActionCode enumerates every move the engine understands. The set is
// closed: adding a code means extending both the validator bucket table
// and the accepted-action set of every phase that should admit it.
type ActionCode string

const (
	// Leader actions.
	ActionStartGame ActionCode = "START_GAME"
	ActionRestart   ActionCode = "RESTART"

	// User-identified actions, legal for any authenticated user.
	ActionJoinAsPlayer    ActionCode = "JOIN_AS_PLAYER"
	ActionJoinAsSpectator ActionCode = "JOIN_AS_SPECTATOR"
	ActionLeave           ActionCode = "LEAVE"

	// Turn actions, legal only for the seat at the current turn index.
	ActionPickCardFromPile      ActionCode = "PICK_CARD_FROM_PILE"
	ActionPickCardFromBurned    ActionCode = "PICK_CARD_FROM_BURNED"
	ActionThrowCard             ActionCode = "THROW_CARD"
	ActionExchangePickWithHand  ActionCode = "EXCHANGE_PICK_WITH_HAND"
	ActionUseAbility            ActionCode = "USE_ABILITY"
	ActionExchangeHandWithOther ActionCode = "EXCHANGE_HAND_WITH_OTHER"
	ActionShowOneHandCard       ActionCode = "SHOW_ONE_HAND_CARD"
	ActionShowOneOtherHandCard  ActionCode = "SHOW_ONE_OTHER_HAND_CARD"
	ActionBurnOneHandCard       ActionCode = "BURN_ONE_HAND_CARD"
	ActionPass                  ActionCode = "PASS"

	// Internal actions, dispatched only by game/phase logic. They carry
	// no actor id and are never accepted from a remote client.
	ActionStartRound      ActionCode = "START_ROUND"
	ActionDistributeCard  ActionCode = "DISTRIBUTE_CARD"
	ActionSelectFirstTurn ActionCode = "SELECT_FIRST_TURN"
	ActionNextTurn        ActionCode = "NEXT_TURN"
	ActionEndOfTurn       ActionCode = "END_OF_TURN"
	ActionEndRound        ActionCode = "END_ROUND"
	ActionEndOfGame       ActionCode = "END_OF_GAME"
)

// Action is one fully-decoded move. UserID is uuid.Nil for internal
// actions. Seat, CardID, OtherSeat and OtherCardID are read only by the
// codes whose payload defines them.
type Action struct {
	Code   ActionCode `json:"action"`
	UserID uuid.UUID  `json:"userId,omitempty"`

	// Seat is the target seat index for JOIN_AS_PLAYER.
	Seat int `json:"playerId,omitempty"`

	// CardID names a card in the actor's own hand.
	CardID uuid.UUID `json:"cardId,omitempty"`

	// OtherSeat and OtherCardID name a card in another player's hand for
	// the exchange/show-other abilities.
	OtherSeat   int       `json:"otherPlayerId,omitempty"`
	OtherCardID uuid.UUID `json:"otherCardId,omitempty"`
}

// ActionRecord is the accepted-action trace handed to the OnAction hook,
// one per successful DoAction call, ordered by Index.
type ActionRecord struct {
	GameID    uuid.UUID  `json:"game_id"`
	Index     int        `json:"action_index"`
	ActorID   uuid.UUID  `json:"actor_user_id"`
	Code      ActionCode `json:"action_code"`
	Phase     string     `json:"phase"`
	Timestamp int64      `json:"timestamp"`
}
