// internal/game/seat.go
package game

import "github.com/google/uuid"

// Seat is a fixed slot in a game, either empty or bound to a user
// identity. The Occupied flag is the discriminant; UserID and Hand are
// meaningful only while it is set.
type Seat struct {
	UserID   uuid.UUID
	Occupied bool
	Hand     *Hand
}

// occupy binds the seat to a user with a fresh empty hand.
func (s *Seat) occupy(userID uuid.UUID) {
	s.UserID = userID
	s.Occupied = true
	s.Hand = NewHand()
}

// vacate empties the seat and returns any cards the hand still held.
func (s *Seat) vacate() []*Card {
	var cards []*Card
	if s.Hand != nil {
		cards = s.Hand.Drain()
	}
	s.UserID = uuid.Nil
	s.Occupied = false
	s.Hand = nil
	return cards
}

// heldBy reports whether the seat is bound to the given user.
func (s *Seat) heldBy(userID uuid.UUID) bool {
	return s.Occupied && s.UserID == userID
}
