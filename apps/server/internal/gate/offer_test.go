package gate

import (
	"testing"

	"sheriff-lite/apps/server/internal/codec"
	"sheriff-lite/goods"
	"sheriff-lite/smuggle"
)

func testHand() goods.GoodList {
	return goods.GoodList{
		goods.GoodApples, goods.GoodApples, goods.GoodCheese,
		goods.GoodSilk, goods.GoodMead, goods.GoodBread,
	}
}

func TestBuildOfferHonestCart(t *testing.T) {
	offer, err := buildOffer(&codec.OfferRequest{
		DeclaredGood:  "apples",
		DeclaredCount: 2,
		HandIndexes:   []int{0, 1},
	}, testHand(), 5)
	if err != nil {
		t.Fatalf("build offer: %v", err)
	}
	if offer.IsLying() {
		t.Fatalf("two declared apples carrying two apples is not a lie")
	}
	if offer.Archetype != smuggle.ArchetypeHonest {
		t.Fatalf("expected honest archetype, got %v", offer.Archetype)
	}
	if offer.Bribe != 0 {
		t.Fatalf("no bribe was requested")
	}
}

func TestBuildOfferSmugglingCart(t *testing.T) {
	offer, err := buildOffer(&codec.OfferRequest{
		DeclaredGood:  "apples",
		DeclaredCount: 3,
		HandIndexes:   []int{0, 1, 3}, // two apples plus silk
		Bribe:         4,
	}, testHand(), 5)
	if err != nil {
		t.Fatalf("build offer: %v", err)
	}
	if !offer.IsLying() {
		t.Fatalf("cart hides silk behind an apple manifest")
	}
	if offer.Archetype != smuggle.ArchetypeMixed {
		t.Fatalf("expected mixed archetype, got %v", offer.Archetype)
	}
	if offer.Bribe != 4 {
		t.Fatalf("bribe lost in translation: %d", offer.Bribe)
	}
}

func TestBuildOfferRejectsBadRequests(t *testing.T) {
	hand := testHand()
	cases := []struct {
		name string
		req  codec.OfferRequest
	}{
		{"unknown good", codec.OfferRequest{DeclaredGood: "dragons", DeclaredCount: 1}},
		{"negative count", codec.OfferRequest{DeclaredGood: "apples", DeclaredCount: -1}},
		{"negative bribe", codec.OfferRequest{DeclaredGood: "apples", DeclaredCount: 1, Bribe: -2}},
		{"oversize cart", codec.OfferRequest{DeclaredGood: "apples", DeclaredCount: 6, HandIndexes: []int{0, 1, 2, 3, 4, 5}}},
		{"index out of range", codec.OfferRequest{DeclaredGood: "apples", DeclaredCount: 1, HandIndexes: []int{9}}},
		{"duplicate index", codec.OfferRequest{DeclaredGood: "apples", DeclaredCount: 2, HandIndexes: []int{1, 1}}},
	}
	for _, tc := range cases {
		if _, err := buildOffer(&tc.req, hand, 5); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestPlayerDeclarerQueueIsOneShot(t *testing.T) {
	pd := &playerDeclarer{name: "Maud"}

	queued := smuggle.Offer{
		Declared:  smuggle.Declaration{Good: goods.GoodCheese, Count: 2},
		Actual:    goods.GoodList{goods.GoodCheese, goods.GoodCheese},
		Archetype: smuggle.ArchetypeHonest,
	}
	pd.queue(queued)

	got := pd.Plan(smuggle.MerchantView{})
	if got.Declared != queued.Declared {
		t.Fatalf("queued offer not returned: %+v", got.Declared)
	}

	// Second plan without a queued offer falls back to an empty cart.
	fallback := pd.Plan(smuggle.MerchantView{})
	if len(fallback.Actual) != 0 || fallback.Declared.Count != 0 {
		t.Fatalf("expected empty fallback cart, got %+v", fallback)
	}
	if fallback.IsLying() {
		t.Fatalf("empty cart with zero declaration must be truthful")
	}
}
