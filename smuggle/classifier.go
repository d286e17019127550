package smuggle

// ClassifierConfig names every tuned threshold of the pattern
// classifier. The defaults encode game balance; override with care.
type ClassifierConfig struct {
	MinEvents int // below this the window is unreadable

	// Strict, overall window
	StrictInspectRate float64 // recent-window inspection rate
	MinBribeSamples   int     // fewer bribe events than this => consult long window
	StrictLongRate    float64 // long-window inspection rate

	// Corrupt
	CorruptAcceptRate float64

	// Strict, bribe-bearing subset
	BribeInspectHard float64
	BribeAcceptHard  float64
	BribeInspectSoft float64
	BribeAcceptSoft  float64

	// Greedy band + high-bribe preference sub-test
	GreedyAcceptLow  float64
	GreedyAcceptHigh float64
	HighBribeRatio   float64 // bribe / declared value split point
	MinRatioSamples  int     // per group
	GreedyGap        float64 // required high-vs-low acceptance gap
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinEvents:         5,
		StrictInspectRate: 0.5,
		MinBribeSamples:   3,
		StrictLongRate:    0.4,
		CorruptAcceptRate: 0.8,
		BribeInspectHard:  0.6,
		BribeAcceptHard:   0.2,
		BribeInspectSoft:  0.4,
		BribeAcceptSoft:   0.3,
		GreedyAcceptLow:   0.3,
		GreedyAcceptHigh:  0.8,
		HighBribeRatio:    0.45,
		MinRatioSamples:   2,
		GreedyGap:         0.10,
	}
}

func (c ClassifierConfig) orDefault() ClassifierConfig {
	if c.MinEvents == 0 {
		return DefaultClassifierConfig()
	}
	return c
}

// Classify infers a counterpart's behavioral pattern from its recent
// window, consulting the longer window only when the recent one is
// bribe-sparse. Rules fire in strict priority order: strict signals
// must win over greedy signals or a strict-but-occasionally-bribed
// counterpart would be misread.
func Classify(recent, long []EncounterEvent, cfg ClassifierConfig) Pattern {
	cfg = cfg.orDefault()

	if len(recent) < cfg.MinEvents {
		return PatternUnknown
	}

	stats := AggregateStats(recent)

	// 1. Overall inspection pressure.
	if stats.InspectionRate > cfg.StrictInspectRate {
		return PatternStrict
	}
	if stats.BribeCount < cfg.MinBribeSamples {
		if AggregateStats(long).InspectionRate > cfg.StrictLongRate {
			return PatternStrict
		}
	}

	// 2. Takes nearly every bribe.
	if stats.BribeCount > 0 && stats.BribeAcceptRate > cfg.CorruptAcceptRate {
		return PatternCorrupt
	}

	// 3. Strict toward bribes specifically.
	if stats.BribeCount > 0 {
		bribeInspect := bribeInspectionRate(recent)
		accept := stats.BribeAcceptRate
		if bribeInspect > cfg.BribeInspectHard || accept < cfg.BribeAcceptHard ||
			bribeInspect > cfg.BribeInspectSoft || accept < cfg.BribeAcceptSoft {
			return PatternStrict
		}

		// 4. Greedy: mid-band acceptance plus a confirmed preference
		// for larger bribes.
		if accept >= cfg.GreedyAcceptLow && accept <= cfg.GreedyAcceptHigh &&
			prefersHighBribes(recent, cfg) {
			return PatternGreedy
		}
	}

	return PatternUnknown
}

// bribeInspectionRate is the inspection rate restricted to
// bribe-bearing encounters.
func bribeInspectionRate(events []EncounterEvent) float64 {
	total, inspected := 0, 0
	for _, e := range events {
		if !e.HasBribe() {
			continue
		}
		total++
		if e.WasInspected {
			inspected++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(inspected) / float64(total)
}

// prefersHighBribes partitions bribe-bearing events by bribe size
// relative to the declared value and checks whether fat bribes were
// accepted noticeably more often than thin ones.
func prefersHighBribes(events []EncounterEvent, cfg ClassifierConfig) bool {
	var highN, highAcc, lowN, lowAcc int
	for _, e := range events {
		if !e.HasBribe() {
			continue
		}
		declared := e.Declared.Value()
		if declared <= 0 {
			continue
		}
		ratio := float64(e.BribeOffered) / float64(declared)
		if ratio >= cfg.HighBribeRatio {
			highN++
			if e.BribeAccepted {
				highAcc++
			}
		} else {
			lowN++
			if e.BribeAccepted {
				lowAcc++
			}
		}
	}
	if highN < cfg.MinRatioSamples || lowN < cfg.MinRatioSamples {
		return false
	}
	highRate := float64(highAcc) / float64(highN)
	lowRate := float64(lowAcc) / float64(lowN)
	return highRate-lowRate > cfg.GreedyGap
}
