package game

const (
	Blackjack       = 21
	DealerStandsAt  = 17
	softAceDiscount = 10
)

// LowAce is an ace that a live hand has already counted down to 1.
const LowAce CardValue = 1

// Score sums a hand. When the sum is over 21 a single ace is counted as 1;
// further aces stay at 11 even if the hand remains over 21.
func Score(hand Hand) int {
	sum := 0
	hasAce := false
	for _, c := range hand {
		sum += int(c)
		if c == Ace {
			hasAce = true
		}
	}
	if sum > Blackjack && hasAce {
		sum -= softAceDiscount
	}
	return sum
}

func IsBust(hand Hand) bool {
	return Score(hand) > Blackjack
}

// settle rewrites the first 11-valued ace of an over-21 hand to LowAce and
// returns the score. Live hands are settled after every draw, so a
// downgrade carries over to later draws and shows in the hand itself.
func (h Hand) settle() int {
	sum := 0
	for _, c := range h {
		sum += int(c)
	}
	if sum > Blackjack {
		for i, c := range h {
			if c == Ace {
				h[i] = LowAce
				break
			}
		}
	}
	return Score(h)
}
