package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// ErrInsufficientCards is returned when a deal asks for more cards than
// remain. The failed deal leaves the deck unchanged.
var ErrInsufficientCards = fmt.Errorf("insufficient cards remaining in deck")

// Deck is a standard 52-card deck with a deal cursor. Cards before the
// cursor are dealt, cards from the cursor on are remaining, so
// Remaining()+DealtCount() == 52 holds for the lifetime of the deck.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// New creates an unshuffled deck in canonical order dealing with the
// provided RNG. The RNG is required: all shuffling in the simulator is
// driven by explicitly seeded streams.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	return d
}

// Shuffle permutes the remaining (undealt) cards uniformly at random
// using Fisher-Yates. Dealt cards are untouched.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > d.next; i-- {
		j := d.next + d.rng.IntN(i-d.next+1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal moves n cards from remaining to dealt and returns them. The deal
// is atomic: on ErrInsufficientCards the deck state is unchanged. The
// returned slice aliases the deck's backing array and is only valid
// until the next Reset or Shuffle.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards, nil
}

// Reset restores remaining=52, dealt=0 without reshuffling.
func (d *Deck) Reset() {
	d.next = 0
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// DealtCount returns the number of cards dealt since the last Reset.
func (d *Deck) DealtCount() int {
	return d.next
}

// Dealt returns the cards dealt since the last Reset, in deal order.
func (d *Deck) Dealt() []Card {
	return d.cards[:d.next]
}

// RemainingByRank counts undealt cards per rank, indexed by Rank value
// (2..14). Used for composition-aware strategy context.
func (d *Deck) RemainingByRank() [15]uint8 {
	var counts [15]uint8
	for _, c := range d.cards[d.next:] {
		counts[c.Rank]++
	}
	return counts
}
