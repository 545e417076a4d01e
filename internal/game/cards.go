package game

import (
	"strconv"
	"strings"
)

// CardValue is the point value of a drawn card. Face cards collapse to 10 and
// an ace is stored as 11.
type CardValue int

const (
	Two   CardValue = 2
	Three CardValue = 3
	Four  CardValue = 4
	Five  CardValue = 5
	Six   CardValue = 6
	Seven CardValue = 7
	Eight CardValue = 8
	Nine  CardValue = 9
	Ten   CardValue = 10
	Ace   CardValue = 11
)

const DeckSize = 52

// rankValues lists one suit: 2..10, J, Q, K, A.
var rankValues = [13]CardValue{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Ten, Ten, Ten, Ace}

func (c CardValue) String() string {
	return strconv.Itoa(int(c))
}

// Hand is the ordered list of cards held by one party.
type Hand []CardValue

func (h Hand) String() string {
	parts := make([]string, 0, len(h))
	for _, c := range h {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Ints returns the hand as plain ints for wire payloads.
func (h Hand) Ints() []int {
	out := make([]int, 0, len(h))
	for _, c := range h {
		out = append(out, int(c))
	}
	return out
}

// Shuffler is satisfied by *math/rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type Deck struct {
	cards []CardValue
}

// NewDeck builds a deck from an explicit stack. The last card is drawn first.
func NewDeck(cards ...CardValue) *Deck {
	return &Deck{cards: append([]CardValue(nil), cards...)}
}

// StandardValues returns the 52 card values in suit order.
func StandardValues() []CardValue {
	cards := make([]CardValue, 0, DeckSize)
	for s := 0; s < 4; s++ {
		cards = append(cards, rankValues[:]...)
	}
	return cards
}

func NewShuffledDeck(rng Shuffler) *Deck {
	cards := StandardValues()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw pops the top card.
func (d *Deck) Draw() (CardValue, error) {
	n := len(d.cards)
	if n == 0 {
		return 0, ErrDeckExhausted
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, nil
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining stack.
func (d *Deck) Cards() []CardValue {
	return append([]CardValue(nil), d.cards...)
}
