// internal/game/phase.go
package game

// Phase represents one state of the per-session machine. Phases are
// stateless tags; all transition logic lives in the handler table, which
// maps (phase, action) to one business method and the next phase. Every
// phase accepts a fixed action set and rejects everything else, even
// actions the validator would authorize.
type Phase int

const (
	PhaseBeginOfGame Phase = iota
	PhaseRoundStart
	PhasePickBurn
	PhasePilePicked
	PhaseBurnedPicked
	PhaseExchangeHandWithOther
	PhaseShowOneHandCard
	PhaseShowOneOtherHandCard
	PhaseBurn
	PhaseEndRound
	PhaseEndOfGame
)

var phaseNames = map[Phase]string{
	PhaseBeginOfGame:           "BeginOfGame",
	PhaseRoundStart:            "RoundStart",
	PhasePickBurn:              "PickBurn",
	PhasePilePicked:            "PilePicked",
	PhaseBurnedPicked:          "BurnedPicked",
	PhaseExchangeHandWithOther: "ExchangeHandWithOther",
	PhaseShowOneHandCard:       "ShowOneHandCard",
	PhaseShowOneOtherHandCard:  "ShowOneOtherHandCard",
	PhaseBurn:                  "Burn",
	PhaseEndRound:              "EndRound",
	PhaseEndOfGame:             "EndOfGame",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// handle applies one action in the context of this phase and returns the
// next phase. The validator has already authorized the actor; this is the
// second, independent gate.
func (p Phase) handle(g *Game, a Action) (Phase, error) {
	switch p {
	case PhaseBeginOfGame:
		if a.Code == ActionStartGame {
			return PhaseRoundStart, g.startGame()
		}

	case PhaseRoundStart:
		switch a.Code {
		case ActionSelectFirstTurn:
			return PhaseRoundStart, g.selectFirstTurn()
		case ActionStartRound:
			return PhaseRoundStart, g.startRound()
		case ActionDistributeCard:
			return PhasePickBurn, g.distributeCards()
		}

	case PhasePickBurn:
		switch a.Code {
		case ActionPickCardFromPile:
			return PhasePilePicked, g.pickFromPile(a.UserID)
		case ActionPickCardFromBurned:
			return PhaseBurnedPicked, g.pickFromBurned(a.UserID)
		}

	case PhasePilePicked, PhaseBurnedPicked:
		switch a.Code {
		case ActionThrowCard:
			return PhaseBurn, g.throwPicked(a.UserID)
		case ActionExchangePickWithHand:
			return PhaseBurn, g.exchangePickWithHand(a.UserID, a.CardID)
		case ActionUseAbility:
			ability, err := g.useAbility(a.UserID)
			if err != nil {
				return p, err
			}
			switch ability {
			case AbilityExchangeHandWithOther:
				return PhaseExchangeHandWithOther, nil
			case AbilityShowOneHandCard:
				return PhaseShowOneHandCard, nil
			case AbilityShowOneOtherHandCard:
				return PhaseShowOneOtherHandCard, nil
			default:
				return PhaseBurn, nil
			}
		}

	case PhaseExchangeHandWithOther:
		if a.Code == ActionExchangeHandWithOther {
			return PhaseBurn, g.exchangeHandWithOther(a.UserID, a.CardID, a.OtherSeat, a.OtherCardID)
		}

	case PhaseShowOneHandCard:
		if a.Code == ActionShowOneHandCard {
			return PhaseBurn, g.showOneHandCard(a.UserID, a.CardID)
		}

	case PhaseShowOneOtherHandCard:
		if a.Code == ActionShowOneOtherHandCard {
			return PhaseBurn, g.showOneOtherHandCard(a.UserID, a.OtherSeat, a.OtherCardID)
		}

	case PhaseBurn:
		switch a.Code {
		case ActionBurnOneHandCard:
			return PhaseEndRound, g.burnOneHandCard(a.UserID, a.CardID)
		case ActionPass:
			return PhaseEndRound, g.pass(a.UserID)
		}

	case PhaseEndRound:
		switch a.Code {
		case ActionEndOfTurn:
			return PhaseEndRound, g.endOfTurn()
		case ActionEndRound:
			return PhaseEndRound, g.endRound()
		case ActionNextTurn:
			return PhasePickBurn, g.nextTurn()
		case ActionEndOfGame:
			return PhaseEndOfGame, g.endOfGame()
		}

	case PhaseEndOfGame:
		if a.Code == ActionRestart {
			return PhaseRoundStart, g.restartGame()
		}
	}

	return p, invalidActionf("action %s not allowed in current state %s", a.Code, p)
}
