package smuggle

import "fmt"

type Config struct {
	// Checkpoint
	MaxMerchants int
	MaxBundle    int // cart capacity per encounter

	// Economy
	StartingGold int64

	// Sheriff presence, 0–10. Feeds negotiation threat level.
	Authority float64

	// Classifier thresholds (zero value => DefaultClassifierConfig)
	Classifier ClassifierConfig

	// RNG seed (0 => time-based)
	Seed int64
}

func (c Config) validate() error {
	if c.MaxMerchants <= 0 {
		return fmt.Errorf("MaxMerchants must be > 0")
	}
	if c.MaxBundle <= 0 {
		return fmt.Errorf("MaxBundle must be > 0")
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("StartingGold must be >= 0")
	}
	if c.Authority < 0 || c.Authority > 10 {
		return fmt.Errorf("Authority must be in [0,10], got %v", c.Authority)
	}
	return nil
}

// DefaultConfig returns the standard checkpoint setup.
func DefaultConfig() Config {
	return Config{
		MaxMerchants: 4,
		MaxBundle:    5,
		StartingGold: 50,
		Authority:    5,
		Classifier:   DefaultClassifierConfig(),
	}
}
