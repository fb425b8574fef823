// Package deck provides the card model and a 52-card deck for Let It Ride
// simulation. Cards are immutable values; the deck tracks a dealt region so
// that remaining+dealt always accounts for all 52 cards.
package deck

import "fmt"

// Suit represents a card suit. Suits carry no ordering.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the single-letter suit token used in hand records.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank, ace high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// AceLowValue is the value an ace takes in wheel straights (A-2-3-4-5).
const AceLowValue = 1

// String returns the single-character rank token.
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card. Equality requires both rank and suit;
// ordering is by rank only.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character card token (e.g. "Ah", "Td").
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the ace-high comparison value of the card.
func (c Card) Value() int {
	return int(c.Rank)
}

// IsHigh returns true for ranks that count as high cards in Let It Ride
// (tens or better, the paying-pair threshold).
func (c Card) IsHigh() bool {
	return c.Rank >= Ten
}
