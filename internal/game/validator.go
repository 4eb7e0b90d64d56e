// internal/game/validator.go
package game

import "github.com/google/uuid"

// authBucket classifies an action code for authorization purposes. Every
// code belongs to exactly one bucket.
type authBucket int

const (
	bucketLeader   authBucket = iota // actor must be the leader
	bucketUser                       // any identified user
	bucketTurn                       // the seat at the current turn index
	bucketInternal                   // no actor; dispatched by game logic only
)

// actionBuckets is the full authorization matrix. An unlisted code is
// unknown and rejected outright.
var actionBuckets = map[ActionCode]authBucket{
	ActionStartGame: bucketLeader,
	ActionRestart:   bucketLeader,

	ActionJoinAsPlayer:    bucketUser,
	ActionJoinAsSpectator: bucketUser,
	ActionLeave:           bucketUser,

	ActionPickCardFromPile:      bucketTurn,
	ActionPickCardFromBurned:    bucketTurn,
	ActionThrowCard:             bucketTurn,
	ActionExchangePickWithHand:  bucketTurn,
	ActionUseAbility:            bucketTurn,
	ActionExchangeHandWithOther: bucketTurn,
	ActionShowOneHandCard:       bucketTurn,
	ActionShowOneOtherHandCard:  bucketTurn,
	ActionBurnOneHandCard:       bucketTurn,
	ActionPass:                  bucketTurn,

	ActionStartRound:      bucketInternal,
	ActionDistributeCard:  bucketInternal,
	ActionSelectFirstTurn: bucketInternal,
	ActionNextTurn:        bucketInternal,
	ActionEndOfTurn:       bucketInternal,
	ActionEndRound:        bucketInternal,
	ActionEndOfGame:       bucketInternal,
}

// validate checks the acting identity against the action's bucket. It runs
// before any mutation for every action, internal dispatches included. The
// phase gate is a separate, second check.
func (g *Game) validate(a Action) error {
	bucket, ok := actionBuckets[a.Code]
	if !ok {
		return invalidActionf("unknown action %q", a.Code)
	}

	switch bucket {
	case bucketLeader:
		if a.UserID == uuid.Nil || a.UserID != g.leaderID {
			return invalidActionf("unauthorized action %s: leader only", a.Code)
		}
	case bucketUser:
		if a.UserID == uuid.Nil {
			return invalidActionf("unauthorized action %s: user identity required", a.Code)
		}
	case bucketTurn:
		if a.UserID == uuid.Nil || !g.currentSeat().heldBy(a.UserID) {
			return invalidActionf("unauthorized action %s: not your turn", a.Code)
		}
	case bucketInternal:
		if a.UserID != uuid.Nil {
			return invalidActionf("unauthorized action %s: internal only", a.Code)
		}
	}
	return nil
}
