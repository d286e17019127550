// Package sheriff implements the inspector-side decision brains: a
// Monte-Carlo-trained Bayesian engine, a plain rule brain, and a
// name-keyed registry for configuration-driven selection.
package sheriff

import "fmt"

// Config names every tuned constant of the Bayesian engine. The
// numeric defaults encode game balance; treat them as data, not bugs.
type Config struct {
	SimHands int // Monte-Carlo hands per population

	Epsilon              float64 // frequency floor for unseen declarations
	ContrabandMultiplier float64 // assumed hidden value vs declared value
	BribeWeight          float64 // certain-gain preference, must be > 1
	UncertainBias        float64 // extra pull toward bribes when unsure
	RiskThreshold        float64 // P(honest) below this => suspicious regime
	DefaultPrior         float64 // prior with no history
}

func DefaultConfig() Config {
	return Config{
		SimHands:             100,
		Epsilon:              0.01,
		ContrabandMultiplier: 1.8,
		BribeWeight:          1.2,
		UncertainBias:        1.5,
		RiskThreshold:        0.4,
		DefaultPrior:         0.5,
	}
}

func (c Config) validate() error {
	if c.SimHands <= 0 {
		return fmt.Errorf("SimHands must be > 0")
	}
	if c.Epsilon <= 0 || c.Epsilon >= 1 {
		return fmt.Errorf("Epsilon must be in (0,1)")
	}
	if c.ContrabandMultiplier <= 0 {
		return fmt.Errorf("ContrabandMultiplier must be > 0")
	}
	if c.BribeWeight <= 1 {
		return fmt.Errorf("BribeWeight must be > 1")
	}
	if c.UncertainBias < 1 {
		return fmt.Errorf("UncertainBias must be >= 1")
	}
	if c.RiskThreshold < 0 || c.RiskThreshold > 1 {
		return fmt.Errorf("RiskThreshold must be in [0,1]")
	}
	if c.DefaultPrior <= 0 || c.DefaultPrior >= 1 {
		return fmt.Errorf("DefaultPrior must be in (0,1)")
	}
	return nil
}
