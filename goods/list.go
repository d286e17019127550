package goods

type GoodList []Good

func (gl *GoodList) Init(gs []Good) {
	*gl = make([]Good, len(gs))
	copy(*gl, gs)
}

// Count 获取总件数
func (gl GoodList) Count() int {
	return len(gl)
}

func (gl *GoodList) Add(gs ...Good) {
	*gl = append(*gl, gs...)
}

// Clone returns an independent copy.
func (gl GoodList) Clone() GoodList {
	out := make(GoodList, len(gl))
	copy(out, gl)
	return out
}

// Tally returns per-good counts.
func (gl GoodList) Tally() map[Good]int {
	counts := make(map[Good]int, len(gl))
	for _, g := range gl {
		counts[g]++
	}
	return counts
}

// MostFrequent returns the good appearing most often and its count.
// Ties break toward the cheaper good (a cautious declaration).
// Empty lists return (GoodInvalid, 0).
func (gl GoodList) MostFrequent() (Good, int) {
	if len(gl) == 0 {
		return GoodInvalid, 0
	}
	counts := gl.Tally()
	best := GoodInvalid
	bestN := 0
	for _, g := range AllGoods {
		n := counts[g]
		if n > bestN || (n == bestN && n > 0 && best != GoodInvalid && g.UnitValue() < best.UnitValue()) {
			best, bestN = g, n
		}
	}
	if best == GoodInvalid {
		// Bundle holds only goods outside the catalog; fall back to the
		// raw majority element.
		for g, n := range counts {
			if n > bestN {
				best, bestN = g, n
			}
		}
	}
	return best, bestN
}

// Analysis 拆分合法品与违禁品
type Analysis struct {
	LegalCounts      map[Good]int
	ContrabandCounts map[Good]int
	LegalValue       int64
	ContrabandValue  int64
}

// Analyze partitions a bundle into legal/contraband counts and values.
func (gl GoodList) Analyze() Analysis {
	a := Analysis{
		LegalCounts:      make(map[Good]int),
		ContrabandCounts: make(map[Good]int),
	}
	for _, g := range gl {
		if g.IsContraband() {
			a.ContrabandCounts[g]++
			a.ContrabandValue += g.UnitValue()
		} else {
			a.LegalCounts[g]++
			a.LegalValue += g.UnitValue()
		}
	}
	return a
}

// TotalValue 货物总价值
func (gl GoodList) TotalValue() int64 {
	var total int64
	for _, g := range gl {
		total += g.UnitValue()
	}
	return total
}

// ContrabandCount returns how many contraband items the bundle holds.
func (gl GoodList) ContrabandCount() int {
	n := 0
	for _, g := range gl {
		if g.IsContraband() {
			n++
		}
	}
	return n
}

// Matches reports whether the bundle consists of exactly count units of
// the declared good and nothing else.
func (gl GoodList) Matches(declared Good, count int) bool {
	if len(gl) != count {
		return false
	}
	for _, g := range gl {
		if g != declared {
			return false
		}
	}
	return true
}
