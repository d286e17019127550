package npc

import "sheriff-lite/smuggle"

// riskBuckets discretizes the [0,10] risk score into five bands.
const riskBuckets = 5

// archetypeWeights maps (tier, risk band) to a weight vector over
// {honest, cover, mixed, lowrun, highrun}. Every row sums to 1.
// Higher tiers shift weight away from honest toward high contraband
// for the same score. Tuned alongside the sheriff defaults; change
// with care.
var archetypeWeights = map[smuggle.Tier][riskBuckets][smuggle.NumArchetypes]float64{
	smuggle.Tier0: {
		{0.85, 0.10, 0.05, 0.00, 0.00},
		{0.65, 0.15, 0.12, 0.08, 0.00},
		{0.45, 0.20, 0.15, 0.15, 0.05},
		{0.30, 0.20, 0.20, 0.20, 0.10},
		{0.20, 0.15, 0.20, 0.25, 0.20},
	},
	smuggle.Tier1: {
		{0.70, 0.12, 0.10, 0.08, 0.00},
		{0.50, 0.18, 0.14, 0.12, 0.06},
		{0.35, 0.20, 0.15, 0.18, 0.12},
		{0.22, 0.18, 0.20, 0.22, 0.18},
		{0.12, 0.13, 0.20, 0.25, 0.30},
	},
	smuggle.Tier2: {
		{0.60, 0.15, 0.10, 0.10, 0.05},
		{0.40, 0.18, 0.15, 0.15, 0.12},
		{0.25, 0.18, 0.17, 0.20, 0.20},
		{0.15, 0.15, 0.18, 0.24, 0.28},
		{0.08, 0.10, 0.17, 0.25, 0.40},
	},
}

// riskBucket maps a clamped risk score to its band.
func riskBucket(score float64) int {
	b := int(score / 2)
	if b >= riskBuckets {
		b = riskBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// weightsFor returns the weight vector for a tier and risk score.
// Unknown tiers use the bottom table.
func weightsFor(tier smuggle.Tier, score float64) [smuggle.NumArchetypes]float64 {
	table, ok := archetypeWeights[tier]
	if !ok {
		table = archetypeWeights[smuggle.Tier0]
	}
	return table[riskBucket(score)]
}
