package smuggle

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sheriff-lite/goods"
)

// Session owns everything one logical game needs: the encounter log,
// the market deck, and the rng. Two sessions never share state;
// parallel games or tests each create their own.
type Session struct {
	ID  string
	cfg Config

	rng     *rand.Rand
	history *History
	deck    *goods.Deck

	closed bool
}

func NewSession(cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Session{
		ID:      uuid.NewString(),
		cfg:     cfg,
		rng:     rng,
		history: NewHistory(),
		deck:    goods.NewDeck(rng),
	}, nil
}

func (s *Session) Config() Config    { return s.cfg }
func (s *Session) Rand() *rand.Rand  { return s.rng }
func (s *Session) History() *History { return s.history }
func (s *Session) Deck() *goods.Deck { return s.deck }

// Reset clears the log and rebuilds the deck. The rng deliberately
// keeps advancing: a reset is a new game, not a replay.
func (s *Session) Reset() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.history.Reset()
	s.deck.Reset()
	return nil
}

// Close marks the session dead. Further resets fail.
func (s *Session) Close() {
	s.closed = true
}
