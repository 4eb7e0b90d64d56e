// internal/game/container.go
package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// Pile is an ordered card container. The top of the pile is the last
// element. A card belongs to exactly one container at any time; moving a
// card between containers is always a pop on one side and a push on the
// other.
type Pile struct {
	cards []*Card
}

// Push places a card on top of the pile.
func (p *Pile) Push(c *Card) {
	p.cards = append(p.cards, c)
}

// PushBottom slides a card under the pile.
func (p *Pile) PushBottom(c *Card) {
	p.cards = append([]*Card{c}, p.cards...)
}

// Top returns the top card without removing it.
func (p *Pile) Top() (*Card, bool) {
	if len(p.cards) == 0 {
		return nil, false
	}
	return p.cards[len(p.cards)-1], true
}

// PopTop removes and returns the top card.
func (p *Pile) PopTop() (*Card, bool) {
	if len(p.cards) == 0 {
		return nil, false
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c, true
}

// Drain removes and returns every card in the pile, bottom first.
func (p *Pile) Drain() []*Card {
	cards := p.cards
	p.cards = nil
	return cards
}

func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

func (p *Pile) Size() int {
	return len(p.cards)
}

// Deck is a pile that additionally supports a fair shuffle.
type Deck struct {
	Pile
}

// NewDeck returns a deck holding the full 52-card set, unshuffled.
func NewDeck() *Deck {
	d := &Deck{}
	d.cards = newCardSet()
	return d
}

// Shuffle permutes the deck with a Fisher-Yates pass over the supplied
// random source. The source is injected so tests can fix the seed.
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Hand is an unordered card container keyed by card id. Hands carry no
// ordering significance; lookup and removal go through the id.
type Hand struct {
	cards map[uuid.UUID]*Card
}

func NewHand() *Hand {
	return &Hand{cards: make(map[uuid.UUID]*Card)}
}

func (h *Hand) Add(c *Card) {
	h.cards[c.ID] = c
}

// Get returns the card with the given id, if held.
func (h *Hand) Get(id uuid.UUID) (*Card, bool) {
	c, ok := h.cards[id]
	return c, ok
}

// Remove takes the card with the given id out of the hand.
func (h *Hand) Remove(id uuid.UUID) (*Card, bool) {
	c, ok := h.cards[id]
	if ok {
		delete(h.cards, id)
	}
	return c, ok
}

// Drain removes and returns every card in the hand.
func (h *Hand) Drain() []*Card {
	cards := make([]*Card, 0, len(h.cards))
	for id, c := range h.cards {
		cards = append(cards, c)
		delete(h.cards, id)
	}
	return cards
}

func (h *Hand) Size() int {
	return len(h.cards)
}

// Cards returns the held cards in no particular order.
func (h *Hand) Cards() []*Card {
	cards := make([]*Card, 0, len(h.cards))
	for _, c := range h.cards {
		cards = append(cards, c)
	}
	return cards
}
