package goods

import "math/rand"

// deckCounts 市场牌堆构成（每种货物的张数）
var deckCounts = map[Good]int{
	GoodApples:   48,
	GoodCheese:   36,
	GoodBread:    36,
	GoodChickens: 24,
	GoodPepper:   22,
	GoodMead:     21,
	GoodSilk:     12,
	GoodCrossbow: 5,
}

// HandSize is the number of goods drawn into a merchant's hand.
const HandSize = 6

// Deck is a shuffled market deck. Not safe for concurrent use; each
// session owns its own deck and rng.
type Deck struct {
	stock GoodList
	rng   *rand.Rand
}

// NewDeck builds a full market deck and shuffles it with rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset rebuilds the full stock and reshuffles.
func (d *Deck) Reset() {
	d.stock = d.stock[:0]
	for _, g := range AllGoods {
		for i := 0; i < deckCounts[g]; i++ {
			d.stock = append(d.stock, g)
		}
	}
	d.rng.Shuffle(len(d.stock), func(i, j int) {
		d.stock[i], d.stock[j] = d.stock[j], d.stock[i]
	})
}

// Remaining 剩余张数
func (d *Deck) Remaining() int {
	return len(d.stock)
}

// Draw removes and returns up to n goods from the top of the deck.
// The deck is rebuilt and reshuffled when it runs dry mid-draw.
func (d *Deck) Draw(n int) GoodList {
	out := make(GoodList, 0, n)
	for i := 0; i < n; i++ {
		if len(d.stock) == 0 {
			d.Reset()
		}
		out = append(out, d.stock[len(d.stock)-1])
		d.stock = d.stock[:len(d.stock)-1]
	}
	return out
}

// DrawHand draws a full merchant hand.
func (d *Deck) DrawHand() GoodList {
	return d.Draw(HandSize)
}

// Redraw discards the goods at the given hand indexes and draws
// replacements, returning the new hand. Indexes out of range are
// ignored.
func (d *Deck) Redraw(hand GoodList, discard []int) GoodList {
	drop := make(map[int]bool, len(discard))
	for _, idx := range discard {
		if idx >= 0 && idx < len(hand) {
			drop[idx] = true
		}
	}
	kept := make(GoodList, 0, len(hand))
	for i, g := range hand {
		if !drop[i] {
			kept = append(kept, g)
		}
	}
	return append(kept, d.Draw(len(hand)-len(kept))...)
}
