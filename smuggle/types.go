package smuggle

import (
	"sheriff-lite/goods"
)

const InvalidAgent uint64 = 0

// Tier 商人能力等级：等级越高可见历史越长、下注越激进
type Tier byte

const (
	Tier0 Tier = 0 // 行脚商 — short memory, cautious tables
	Tier1 Tier = 1 // 商队头目 — medium memory
	Tier2 Tier = 2 // 走私大亨 — long memory, pattern exploitation
)

var TierDictionary = map[Tier]string{
	Tier0: "peddler",
	Tier1: "caravaneer",
	Tier2: "kingpin",
}

// tierWindows 各等级可回看的历史条数
var tierWindows = map[Tier]int{
	Tier0: 5,
	Tier1: 10,
	Tier2: 20,
}

// Window returns how many recent encounters a merchant of this tier may
// observe.
func (t Tier) Window() int {
	if w, ok := tierWindows[t]; ok {
		return w
	}
	return tierWindows[Tier0]
}

func (t Tier) String() string {
	if s, ok := TierDictionary[t]; ok {
		return s
	}
	return "peddler"
}

// Archetype 申报策略原型：0-HONEST 1-COVER 2-MIXED 3-LOWRUN 4-HIGHRUN
type Archetype byte

const (
	ArchetypeHonest         Archetype = 0
	ArchetypeCoverLie       Archetype = 1
	ArchetypeMixed          Archetype = 2
	ArchetypeLowContraband  Archetype = 3
	ArchetypeHighContraband Archetype = 4
)

// NumArchetypes is the size of every strategy weight vector.
const NumArchetypes = 5

var ArchetypeDictionary = map[Archetype]string{
	ArchetypeHonest:         "HONEST",
	ArchetypeCoverLie:       "COVER",
	ArchetypeMixed:          "MIXED",
	ArchetypeLowContraband:  "LOWRUN",
	ArchetypeHighContraband: "HIGHRUN",
}

func (a Archetype) String() string {
	if s, ok := ArchetypeDictionary[a]; ok {
		return s
	}
	return "HONEST"
}

// Dishonest reports whether the archetype implies a false declaration.
func (a Archetype) Dishonest() bool {
	return a != ArchetypeHonest
}

// ParseArchetype maps a display name back to its constant.
func ParseArchetype(name string) (Archetype, bool) {
	for a, s := range ArchetypeDictionary {
		if s == name {
			return a, true
		}
	}
	return ArchetypeHonest, false
}

// Pattern 对手行为模式分类
type Pattern byte

const (
	PatternUnknown Pattern = 0
	PatternStrict  Pattern = 1
	PatternCorrupt Pattern = 2
	PatternGreedy  Pattern = 3
)

var PatternDictionary = map[Pattern]string{
	PatternUnknown: "UNKNOWN",
	PatternStrict:  "STRICT",
	PatternCorrupt: "CORRUPT",
	PatternGreedy:  "GREEDY",
}

func (p Pattern) String() string {
	if s, ok := PatternDictionary[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// PersonalityProfile defines the tunable parameters that drive a
// merchant's strategy weighting. All three scalars range 0–10 and are
// immutable for the life of a session.
type PersonalityProfile struct {
	RiskTolerance float64 `json:"riskTolerance"` // 0–10: appetite for getting caught
	Greed         float64 `json:"greed"`         // 0–10: pull toward contraband profit
	HonestyBias   float64 `json:"honestyBias"`   // 0–10: conscience pressure toward truth
}

// Declaration is the claimed cargo: one good identifier and a count.
type Declaration struct {
	Good  goods.Good `json:"good"`
	Count int        `json:"count"`
}

// Value 申报货物的票面价值
func (d Declaration) Value() int64 {
	return int64(d.Count) * d.Good.UnitValue()
}

// InspectorView is the read-only projection a sheriff brain may see.
// The actual bundle is deliberately absent: the contract forbids
// peeking before the inspect decision.
type InspectorView struct {
	AgentID      uint64
	Declared     Declaration
	BribeOffered int64
	History      []EncounterEvent
}

// Verdict is what an Inspector returns.
// Invariant: AcceptBribe implies !Inspect and BribeOffered > 0.
type Verdict struct {
	Inspect     bool
	AcceptBribe bool
}

// Inspector is the decision contract every sheriff strategy implements.
type Inspector interface {
	// Decide is called once per encounter (and again per negotiation
	// round with the updated bribe). It must not record anything.
	Decide(view InspectorView) Verdict
	// Name returns a human-readable identifier for debugging.
	Name() string
}

// MerchantView is the projection handed to a merchant brain.
type MerchantView struct {
	Hand         goods.GoodList
	MaxBundle    int
	SheriffStats Stats
	Recent       []EncounterEvent // tier-scoped window, newest last
	Pattern      Pattern
}

// Offer is a merchant brain's full plan for one encounter.
type Offer struct {
	Declared  Declaration
	Actual    goods.GoodList
	Bribe     int64 // proactive bribe; 0 means none
	Archetype Archetype
}

// IsLying reports whether the actual bundle diverges from the
// declaration's expansion.
func (o Offer) IsLying() bool {
	return !o.Actual.Matches(o.Declared.Good, o.Declared.Count)
}

// Declarer is the contract every merchant strategy implements.
type Declarer interface {
	Plan(view MerchantView) Offer
	Name() string
}
