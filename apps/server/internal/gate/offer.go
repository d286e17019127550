package gate

import (
	"fmt"

	"sheriff-lite/apps/server/internal/codec"
	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

// playerDeclarer feeds a player's explicit offer through the Declarer
// contract. The gate queues exactly one offer before each encounter.
type playerDeclarer struct {
	name string
	next *smuggle.Offer
}

func (p *playerDeclarer) queue(offer smuggle.Offer) { p.next = &offer }

func (p *playerDeclarer) Plan(_ smuggle.MerchantView) smuggle.Offer {
	if p.next == nil {
		// No offer queued: an empty truthful cart.
		return smuggle.Offer{
			Declared:  smuggle.Declaration{Good: goods.GoodApples, Count: 0},
			Archetype: smuggle.ArchetypeHonest,
		}
	}
	offer := *p.next
	p.next = nil
	return offer
}

func (p *playerDeclarer) Name() string { return p.name }

// buildOffer turns the wire request into an engine offer, loading the
// cart from the player's dealt hand by index.
func buildOffer(req *codec.OfferRequest, hand goods.GoodList, maxBundle int) (smuggle.Offer, error) {
	var out smuggle.Offer

	declared, err := goods.ParseGood(req.DeclaredGood)
	if err != nil {
		return out, fmt.Errorf("declared good: %w", err)
	}
	if req.DeclaredCount < 0 {
		return out, fmt.Errorf("declared count must be >= 0")
	}
	if req.Bribe < 0 {
		return out, fmt.Errorf("bribe must be >= 0")
	}
	if len(req.HandIndexes) > maxBundle {
		return out, fmt.Errorf("cart holds %d goods, limit is %d", len(req.HandIndexes), maxBundle)
	}

	seen := make(map[int]bool, len(req.HandIndexes))
	actual := make(goods.GoodList, 0, len(req.HandIndexes))
	for _, idx := range req.HandIndexes {
		if idx < 0 || idx >= len(hand) {
			return out, fmt.Errorf("hand index %d out of range", idx)
		}
		if seen[idx] {
			return out, fmt.Errorf("hand index %d picked twice", idx)
		}
		seen[idx] = true
		actual = append(actual, hand[idx])
	}

	out = smuggle.Offer{
		Declared: smuggle.Declaration{Good: declared, Count: req.DeclaredCount},
		Actual:   actual,
		Bribe:    req.Bribe,
	}
	if out.IsLying() {
		out.Archetype = smuggle.ArchetypeMixed
	} else {
		out.Archetype = smuggle.ArchetypeHonest
	}
	return out, nil
}
