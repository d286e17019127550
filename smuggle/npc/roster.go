package npc

import "sheriff-lite/smuggle"

// DefaultRoster is the built-in merchant cast, used when no persona
// file is configured.
func DefaultRoster() *PersonaRegistry {
	r := NewRegistry()
	for _, p := range []*MerchantPersona{
		{
			ID:      "brother_ansel",
			Name:    "Brother Ansel",
			Tagline: "A monk who has never told a lie. Probably.",
			Tier:    smuggle.Tier0,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 2, Greed: 1, HonestyBias: 10},
		},
		{
			ID:      "maud",
			Name:    "Maud of the Mill",
			Tagline: "Bread today, bread tomorrow. Mostly bread.",
			Tier:    smuggle.Tier0,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 4, Greed: 4, HonestyBias: 7},
		},
		{
			ID:      "garrick",
			Name:    "Garrick Half-Hand",
			Tagline: "Lost three fingers to honest work. Done with it.",
			Tier:    smuggle.Tier1,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 7, Greed: 6, HonestyBias: 3},
		},
		{
			ID:      "wren",
			Name:    "Wren the Quick",
			Tagline: "Counts her coin twice and yours once.",
			Tier:    smuggle.Tier1,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 5, Greed: 8, HonestyBias: 4},
		},
		{
			ID:      "lady_voss",
			Name:    "Lady Voss",
			Tagline: "Silk on the manifest, crossbows in the straw.",
			Tier:    smuggle.Tier2,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 8, Greed: 9, HonestyBias: 1},
		},
		{
			ID:      "old_tam",
			Name:    "Old Tam",
			Tagline: "Been through more checkpoints than the sheriff has teeth.",
			Tier:    smuggle.Tier2,
			Profile: smuggle.PersonalityProfile{RiskTolerance: 9, Greed: 5, HonestyBias: 2},
		},
	} {
		r.personas[p.ID] = p
	}
	return r
}
