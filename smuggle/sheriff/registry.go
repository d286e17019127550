package sheriff

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"sheriff-lite/smuggle"
)

// Factory builds a ready-to-use inspector from a shared rng.
type Factory func(rng *rand.Rand) (smuggle.Inspector, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register installs a named inspector factory. Later registrations
// replace earlier ones, so tests can stub builtins.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// New builds the named inspector.
func New(name string, rng *rand.Rand) (smuggle.Inspector, error) {
	registryMu.RLock()
	f := registry[name]
	registryMu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("unknown sheriff brain: %q", name)
	}
	return f(rng)
}

// Names lists the registered brains, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register("bayes", func(rng *rand.Rand) (smuggle.Inspector, error) {
		b, err := NewBayesBrain(DefaultConfig(), rng)
		if err != nil {
			return nil, err
		}
		b.Train()
		return b, nil
	})
	Register("rule", func(rng *rand.Rand) (smuggle.Inspector, error) {
		return NewRuleBrain(rng), nil
	})
}
