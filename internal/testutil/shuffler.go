package testutil

import "twentyone/internal/game"

// RiggedShuffler reorders a fresh standard deck so Draws come out first, in
// order. Every deck it shuffles deals the same cards.
type RiggedShuffler struct {
	Draws []game.CardValue
}

func (r RiggedShuffler) Shuffle(n int, swap func(i, j int)) {
	cards := game.StandardValues()
	for k, want := range r.Draws {
		pos := n - 1 - k
		for i := 0; i <= pos; i++ {
			if cards[i] == want {
				cards[i], cards[pos] = cards[pos], cards[i]
				swap(i, pos)
				break
			}
		}
	}
}
