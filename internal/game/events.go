// internal/game/events.go
package game

import "github.com/google/uuid"

// EventType is an enum-like type for notifying clients of accepted actions.
type EventType string

const (
	EventPlayerJoined      EventType = "player_joined"
	EventSpectatorJoined   EventType = "spectator_joined"
	EventPlayerLeft        EventType = "player_left"
	EventGameStarted       EventType = "game_started"
	EventRoundStarted      EventType = "round_started"
	EventCardPicked        EventType = "card_picked"         // public; source pile only
	EventPrivateCardPicked EventType = "private_card_picked" // picker sees the card
	EventCardThrown        EventType = "card_thrown"
	EventPickExchanged     EventType = "pick_exchanged"
	EventAbilityUsed       EventType = "ability_used"
	EventHandsExchanged    EventType = "hands_exchanged"
	EventPrivateCardShown  EventType = "private_card_shown" // reveal to actor only
	EventCardBurned        EventType = "card_burned"
	EventBurnPenalty       EventType = "burn_penalty"
	EventPlayerPassed      EventType = "player_passed"
	EventTurnChanged       EventType = "turn_changed"
	EventGameEnded         EventType = "game_ended"
	EventGameRestarted     EventType = "game_restarted"
)

// EventCard carries card identity in events. Rank/suit/ability are filled
// only where the event is allowed to reveal them.
type EventCard struct {
	ID      uuid.UUID `json:"id"`
	Suit    Suit      `json:"suit,omitempty"`
	Rank    Rank      `json:"rank,omitempty"`
	Ability string    `json:"ability,omitempty"`
	Seat    *int      `json:"seat,omitempty"`
}

// Event is broadcast to clients after an accepted action. Private reveals
// go through EmitToUserFn instead of EmitFn.
type Event struct {
	Type    EventType              `json:"type"`
	UserID  *uuid.UUID             `json:"userId,omitempty"`
	Seat    *int                   `json:"seat,omitempty"`
	Card    *EventCard             `json:"card,omitempty"`
	Other   *EventCard             `json:"other,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// emit broadcasts an event to all clients via the injected callback. The
// engine performs no I/O itself; a nil callback drops the event.
func (g *Game) emit(ev Event) {
	if g.EmitFn != nil {
		g.EmitFn(ev)
	}
}

// emitToUser sends an event to a single user only.
func (g *Game) emitToUser(userID uuid.UUID, ev Event) {
	if g.EmitToUserFn != nil {
		g.EmitToUserFn(userID, ev)
	}
}

// revealCard builds an EventCard exposing full card identity.
func revealCard(c *Card, seat *int) *EventCard {
	return &EventCard{
		ID:      c.ID,
		Suit:    c.Suit,
		Rank:    c.Rank,
		Ability: c.Ability.String(),
		Seat:    seat,
	}
}

// concealCard builds an EventCard exposing the opaque id only.
func concealCard(c *Card, seat *int) *EventCard {
	return &EventCard{ID: c.ID, Seat: seat}
}
