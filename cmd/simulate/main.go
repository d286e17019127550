// Command simulate runs headless checkpoint days and prints aggregate
// outcomes, useful for tuning brains and personas without a server.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"

	"sheriff-lite/smuggle"
	"sheriff-lite/smuggle/npc"
	"sheriff-lite/smuggle/sheriff"
)

func main() {
	var (
		days         = flag.Int("days", 20, "number of days to simulate (one visit per merchant per day)")
		seed         = flag.Int64("seed", 0, "rng seed (0 = time-based)")
		sheriffBrain = flag.String("sheriff", "bayes", "sheriff brain name (bayes, rule)")
		npcCount     = flag.Int("npcs", 6, "merchants on the road")
		personasFile = flag.String("personas", "", "optional personas JSON file")
		authority    = flag.Int("authority", 5, "sheriff authority 1-10")
		verbose      = flag.Bool("v", false, "log every settlement")
	)
	flag.Parse()

	registry := npc.DefaultRoster()
	if *personasFile != "" {
		if err := registry.LoadFromFile(*personasFile); err != nil {
			log.Fatalf("[Simulate] load personas: %v", err)
		}
	}
	if *npcCount > registry.Count() {
		*npcCount = registry.Count()
	}

	session, err := smuggle.NewSession(smuggle.Config{
		MaxMerchants: *npcCount,
		MaxBundle:    5,
		StartingGold: 50,
		Authority:    float64(*authority),
		Classifier:   smuggle.DefaultClassifierConfig(),
		Seed:         *seed,
	})
	if err != nil {
		log.Fatalf("[Simulate] session: %v", err)
	}
	defer session.Close()

	brain, err := sheriff.New(*sheriffBrain, rand.New(rand.NewSource(session.Rand().Int63())))
	if err != nil {
		log.Fatalf("[Simulate] sheriff: %v", err)
	}
	cp := smuggle.NewCheckpoint(session, brain)

	manager := npc.NewManager(registry)
	personas := registry.All()
	sort.Slice(personas, func(i, j int) bool { return personas[i].ID < personas[j].ID })

	agentIDs := make([]uint64, 0, *npcCount)
	for i := 0; i < *npcCount; i++ {
		inst, err := manager.Spawn(cp, personas[i])
		if err != nil {
			log.Fatalf("[Simulate] spawn %s: %v", personas[i].ID, err)
		}
		agentIDs = append(agentIDs, inst.AgentID)
	}

	fmt.Printf("session %s: %d merchants, sheriff=%s, %d days\n\n",
		session.ID, len(agentIDs), brain.Name(), *days)

	for day := 1; day <= *days; day++ {
		for _, agentID := range agentIDs {
			result, err := cp.RunEncounter(agentID)
			if err != nil {
				log.Printf("[Simulate] day %d agent %d: %v", day, agentID, err)
				continue
			}
			if *verbose {
				printSettlement(day, cp, result)
			}
		}
	}

	printSummary(session, cp)
}

func printSettlement(day int, cp *smuggle.Checkpoint, s *smuggle.Settlement) {
	m := cp.Merchant(s.AgentID)
	name := fmt.Sprintf("agent %d", s.AgentID)
	if m != nil {
		name = m.Name
	}
	outcome := "waved through"
	switch {
	case s.CaughtLying:
		outcome = "caught lying"
	case s.Inspected:
		outcome = "inspected, clean"
	case s.Bribe > 0:
		outcome = fmt.Sprintf("bribed through (%d)", s.Bribe)
	}
	fmt.Printf("day %2d  %-18s declared %d %s  %s  (merchant %+d, sheriff %+d)\n",
		day, name, s.Declared.Count, s.Declared.Good, outcome, s.MerchantDelta, s.SheriffDelta)
}

func printSummary(session *smuggle.Session, cp *smuggle.Checkpoint) {
	snap := cp.Snapshot()
	stats := session.History().Stats()

	fmt.Printf("\n=== %d encounters ===\n", stats.Encounters)
	fmt.Printf("inspection rate:   %.2f\n", stats.InspectionRate)
	fmt.Printf("catch rate:        %.2f\n", stats.CatchRate)
	fmt.Printf("bribe accept rate: %.2f (%d bribes)\n", stats.BribeAcceptRate, stats.BribeCount)
	fmt.Printf("sheriff gold:      %d (%s)\n", snap.SheriffGold, snap.SheriffName)

	// How each tier window reads the sheriff.
	long := session.History().All()
	for _, tier := range []smuggle.Tier{smuggle.Tier0, smuggle.Tier1, smuggle.Tier2} {
		pattern := smuggle.Classify(session.History().TierTail(tier), long, session.Config().Classifier)
		fmt.Printf("tier %s reads sheriff as: %s\n", tier, pattern)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nmerchant\ttier\tgold\trisk\tgreed\thonesty")
	for _, m := range snap.Merchants {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%.0f\t%.0f\n",
			m.Name, m.Tier, m.Gold,
			m.Personality.RiskTolerance, m.Personality.Greed, m.Personality.HonestyBias)
	}
	w.Flush()
}
