// internal/game/card.go
package game

import "github.com/google/uuid"

// Suit is a single-letter card suit code.
type Suit string

const (
	SuitHearts   Suit = "H"
	SuitDiamonds Suit = "D"
	SuitClubs    Suit = "C"
	SuitSpades   Suit = "S"
)

// Rank is a single-letter card rank code; "T" stands for ten.
type Rank string

// Ability identifies the special effect attached to a card, resolved
// immediately after the card is picked.
type Ability int

const (
	AbilityNone Ability = iota
	AbilityExchangeHandWithOther
	AbilityShowOneHandCard
	AbilityShowOneOtherHandCard
)

var abilityNames = map[Ability]string{
	AbilityNone:                  "NONE",
	AbilityExchangeHandWithOther: "EXCHANGE_HAND_WITH_OTHER",
	AbilityShowOneHandCard:       "SHOW_ONE_HAND_CARD",
	AbilityShowOneOtherHandCard:  "SHOW_ONE_OTHER_HAND_CARD",
}

func (a Ability) String() string {
	if s, ok := abilityNames[a]; ok {
		return s
	}
	return "UNKNOWN"
}

// Card is identified by an opaque id. Suit, rank and ability are fixed at
// deck construction; Used flips once the ability has been spent.
type Card struct {
	ID      uuid.UUID `json:"id"`
	Suit    Suit      `json:"suit"`
	Rank    Rank      `json:"rank"`
	Ability Ability   `json:"ability"`
	Used    bool      `json:"used"`
}

// EqualsRank reports whether both cards share a rank. Burn legality is
// decided on rank alone.
func (c *Card) EqualsRank(other *Card) bool {
	return other != nil && c.Rank == other.Rank
}

// rankToAbility maps ranks to their special effect. Sevens and eights let
// the picker peek one of their own cards, nines and tens peek a card of
// another player, jacks and queens trade a card with another player.
func rankToAbility(rank Rank) Ability {
	switch rank {
	case "7", "8":
		return AbilityShowOneHandCard
	case "9", "T":
		return AbilityShowOneOtherHandCard
	case "J", "Q":
		return AbilityExchangeHandWithOther
	default:
		return AbilityNone
	}
}

// newCardSet builds the standard 52-card set with abilities assigned by rank.
func newCardSet() []*Card {
	suits := []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
	ranks := []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}

	cards := make([]*Card, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			cid, _ := uuid.NewRandom()
			cards = append(cards, &Card{
				ID:      cid,
				Suit:    suit,
				Rank:    rank,
				Ability: rankToAbility(rank),
			})
		}
	}
	return cards
}
