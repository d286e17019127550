package goods

import "fmt"

// Good 货物枚举
//
// 编码规则:
// - 高4位: 类别 (0:Legal, 1:Contraband)
// - 低4位: 品种序号
type Good byte

const (
	GoodInvalid Good = 0xFF

	// Legal goods
	GoodApples   Good = 0x01
	GoodCheese   Good = 0x02
	GoodBread    Good = 0x03
	GoodChickens Good = 0x04

	// Contraband
	GoodPepper   Good = 0x11
	GoodMead     Good = 0x12
	GoodSilk     Good = 0x13
	GoodCrossbow Good = 0x14
)

// AllGoods lists every valid good, legal goods first.
var AllGoods = []Good{
	GoodApples, GoodCheese, GoodBread, GoodChickens,
	GoodPepper, GoodMead, GoodSilk, GoodCrossbow,
}

var goodNames = map[Good]string{
	GoodApples:   "apples",
	GoodCheese:   "cheese",
	GoodBread:    "bread",
	GoodChickens: "chickens",
	GoodPepper:   "pepper",
	GoodMead:     "mead",
	GoodSilk:     "silk",
	GoodCrossbow: "crossbow",
}

// unitValues 货物单价
var unitValues = map[Good]int64{
	GoodApples:   2,
	GoodCheese:   3,
	GoodBread:    3,
	GoodChickens: 4,
	GoodPepper:   6,
	GoodMead:     7,
	GoodSilk:     8,
	GoodCrossbow: 9,
}

// penalties 查获罚金（每件）
var penalties = map[Good]int64{
	GoodApples:   2,
	GoodCheese:   2,
	GoodBread:    2,
	GoodChickens: 2,
	GoodPepper:   4,
	GoodMead:     4,
	GoodSilk:     5,
	GoodCrossbow: 6,
}

// DefaultUnitValue is used when a declaration names a good the catalog
// does not know. Lookups never fail.
const DefaultUnitValue int64 = 3

func (g Good) String() string {
	if name, ok := goodNames[g]; ok {
		return name
	}
	return fmt.Sprintf("good(0x%02X)", byte(g))
}

// IsContraband 高4位为1表示违禁品
func (g Good) IsContraband() bool {
	return g != GoodInvalid && g>>4 == 1
}

// UnitValue returns the market value of one unit. Unknown goods fall
// back to DefaultUnitValue.
func (g Good) UnitValue() int64 {
	if v, ok := unitValues[g]; ok {
		return v
	}
	return DefaultUnitValue
}

// Penalty returns the per-unit fine when the good is found undeclared.
func (g Good) Penalty() int64 {
	if p, ok := penalties[g]; ok {
		return p
	}
	return DefaultUnitValue
}

// Valid reports whether the good exists in the catalog.
func (g Good) Valid() bool {
	_, ok := goodNames[g]
	return ok
}

// ParseGood 将字符串 (如 "apples") 转换为 Good 常量
func ParseGood(name string) (Good, error) {
	for g, n := range goodNames {
		if n == name {
			return g, nil
		}
	}
	return GoodInvalid, fmt.Errorf("unknown good: %q", name)
}

// LegalGoods returns the legal subset of the catalog.
func LegalGoods() []Good {
	out := make([]Good, 0, len(AllGoods))
	for _, g := range AllGoods {
		if !g.IsContraband() {
			out = append(out, g)
		}
	}
	return out
}

// ContrabandGoods returns the contraband subset of the catalog.
func ContrabandGoods() []Good {
	out := make([]Good, 0, len(AllGoods))
	for _, g := range AllGoods {
		if g.IsContraband() {
			out = append(out, g)
		}
	}
	return out
}
