// internal/game/state.go
package game

import "github.com/google/uuid"

// SeatState is the per-seat slice of a snapshot. Cards is populated only
// for the viewer's own seat; everyone else sees the count.
type SeatState struct {
	Seat      int          `json:"seat"`
	UserID    *uuid.UUID   `json:"userId,omitempty"`
	Occupied  bool         `json:"occupied"`
	HandSize  int          `json:"handSize"`
	Cards     []*EventCard `json:"cards,omitempty"`
	IsLeader  bool         `json:"isLeader"`
	IsCurrent bool         `json:"isCurrent"`
}

// State is a viewer-specific snapshot of the session. Hidden information
// is stripped before it leaves the engine, so the snapshot is safe to
// serialize to any client as-is.
type State struct {
	GameID       uuid.UUID   `json:"gameId"`
	Phase        string      `json:"phase"`
	Turn         int         `json:"turn"`
	LeaderID     uuid.UUID   `json:"leaderId"`
	Started      bool        `json:"started"`
	Seats        []SeatState `json:"seats"`
	DrawPileSize int         `json:"drawPileSize"`
	BurnPileSize int         `json:"burnPileSize"`
	BurnTop      *EventCard  `json:"burnTop,omitempty"`
	HasPicked    bool        `json:"hasPicked"`
	Spectators   int         `json:"spectators"`
}

// GetState builds the snapshot as seen by forUser. Pass uuid.Nil for a
// spectator view with no hand visibility.
func (g *Game) GetState(forUser uuid.UUID) State {
	st := State{
		GameID:       g.ID,
		Phase:        g.phase.String(),
		Turn:         g.turn,
		LeaderID:     g.leaderID,
		Started:      g.started,
		Seats:        make([]SeatState, len(g.seats)),
		DrawPileSize: g.drawPile.Size(),
		BurnPileSize: g.burnPile.Size(),
		HasPicked:    g.pickedCard != nil,
		Spectators:   len(g.spectators),
	}
	if top, ok := g.burnPile.Top(); ok {
		st.BurnTop = revealCard(top, nil)
	}
	for i := range g.seats {
		s := &g.seats[i]
		ss := SeatState{
			Seat:      i,
			Occupied:  s.Occupied,
			IsCurrent: g.started && i == g.turn,
		}
		if s.Occupied {
			userID := s.UserID
			ss.UserID = &userID
			ss.HandSize = s.Hand.Size()
			ss.IsLeader = s.UserID == g.leaderID
			if s.UserID == forUser {
				for _, c := range s.Hand.Cards() {
					// Own cards stay face down too; the id lets the
					// client reference them in actions.
					ss.Cards = append(ss.Cards, concealCard(c, nil))
				}
			}
		}
		st.Seats[i] = ss
	}
	return st
}
