package lobby

import (
	"testing"
	"time"

	"sheriff-lite/apps/server/internal/ledger"
	"sheriff-lite/smuggle/npc"
)

func testLobby(t *testing.T) *Lobby {
	t.Helper()
	ledgerService, _, err := ledger.NewServiceFromEnv("memory")
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	return New(ledgerService, npc.NewManager(npc.DefaultRoster()))
}

func discard(_ uint64, _ []byte) {}

func TestQuickStartReusesOpenGate(t *testing.T) {
	l := testLobby(t)

	g1, err := l.QuickStart(1, discard)
	if err != nil {
		t.Fatalf("quick start: %v", err)
	}
	defer g1.Close()

	g2, err := l.QuickStart(2, discard)
	if err != nil {
		t.Fatalf("second quick start: %v", err)
	}
	if g1.ID != g2.ID {
		t.Fatalf("expected both users at gate %s, second got %s", g1.ID, g2.ID)
	}
	if got := len(l.ListGates()); got != 1 {
		t.Fatalf("expected 1 open gate, got %d", got)
	}
}

func TestClosedGateMovesToSummaryCache(t *testing.T) {
	l := testLobby(t)

	g, err := l.QuickStart(1, discard)
	if err != nil {
		t.Fatalf("quick start: %v", err)
	}
	gateID := g.ID
	g.Close()

	// The actor acknowledges the close before Close returns, but give
	// the flag a moment in case the loop is mid-tick.
	deadline := time.Now().Add(time.Second)
	for !g.Closed() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !g.Closed() {
		t.Fatalf("gate never reported closed")
	}

	if got := l.GetGate(gateID); got != nil {
		t.Fatalf("closed gate still returned from lobby")
	}

	summaries := l.RecentlyClosed()
	found := false
	for _, s := range summaries {
		if s.GateID == gateID {
			found = true
			if s.SheriffName == "" {
				t.Fatalf("summary missing sheriff name: %+v", s)
			}
		}
	}
	if !found {
		t.Fatalf("closed gate %s absent from summaries: %+v", gateID, summaries)
	}
}
