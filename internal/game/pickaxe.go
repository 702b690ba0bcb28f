package game

import (
	"math/rand"

	"github.com/pickfall/pickfall/internal/core"
)

// PickaxeTier is the pickaxe's material, which sets its break power.
type PickaxeTier int

const (
	TierWood PickaxeTier = iota
	TierStone
	TierIron
	TierGold
	TierDiamond
	TierNetherite
	TierRainbow // Random rolls only, chat cannot request it
)

type tierInfo struct {
	name  string
	power int // Damage per hit against a block
	color core.Color
}

var tiers = map[PickaxeTier]tierInfo{
	TierWood:      {name: "wooden_pickaxe", power: 20, color: core.ColorBrown},
	TierStone:     {name: "stone_pickaxe", power: 35, color: core.ColorGray},
	TierIron:      {name: "iron_pickaxe", power: 50, color: core.ColorBrightWhite},
	TierGold:      {name: "golden_pickaxe", power: 65, color: core.ColorYellow},
	TierDiamond:   {name: "diamond_pickaxe", power: 80, color: core.ColorBrightCyan},
	TierNetherite: {name: "netherite_pickaxe", power: 100, color: core.ColorMagenta},
	TierRainbow:   {name: "rainbow_pickaxe", power: 150, color: core.ColorBrightMagenta},
}

// Name returns the tier's identifier, e.g. "diamond_pickaxe".
func (t PickaxeTier) Name() string {
	return tiers[t].name
}

// Power returns the damage one hit deals to a block.
func (t PickaxeTier) Power() int {
	return tiers[t].power
}

// Color returns the tier's rendering color.
func (t PickaxeTier) Color() core.Color {
	return tiers[t].color
}

// TierFromMaterial maps a chat material keyword to a tier. The rainbow
// tier is deliberately unreachable from here.
func TierFromMaterial(material string) (PickaxeTier, bool) {
	switch material {
	case "wood":
		return TierWood, true
	case "stone":
		return TierStone, true
	case "iron":
		return TierIron, true
	case "gold":
		return TierGold, true
	case "diamond":
		return TierDiamond, true
	case "netherite":
		return TierNetherite, true
	}
	return TierWood, false
}

// rainbowChance is the odds a random tier roll comes up rainbow.
const rainbowChance = 0.05

// randomTier rolls a new tier for the periodic pickaxe change.
func randomTier(rng *rand.Rand) PickaxeTier {
	if rng.Float64() < rainbowChance {
		return TierRainbow
	}
	return PickaxeTier(rng.Intn(int(TierNetherite) + 1))
}

// Pickaxe is the falling star of the show. Position is its center in
// block coordinates; x spans the column, y grows downward.
type Pickaxe struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Tier PickaxeTier

	bigTicks int // Remaining enlarged ticks, 0 = normal size
}

// NewPickaxe places a wooden pickaxe at the given position.
func NewPickaxe(x, y float64) *Pickaxe {
	return &Pickaxe{
		Pos:  core.Vec2{X: x, Y: y},
		Tier: TierWood,
	}
}

// Big reports whether the enlarge effect is active.
func (p *Pickaxe) Big() bool {
	return p.bigTicks > 0
}

// HalfWidth returns how many extra columns the pickaxe covers on each
// side of its center.
func (p *Pickaxe) HalfWidth() int {
	if p.Big() {
		return 1
	}
	return 0
}

// Enlarge starts or refreshes the enlarge effect.
func (p *Pickaxe) Enlarge(durationTicks int) {
	if durationTicks > p.bigTicks {
		p.bigTicks = durationTicks
	}
}

// TickEffects advances timed effects by one tick.
func (p *Pickaxe) TickEffects() {
	if p.bigTicks > 0 {
		p.bigTicks--
	}
}
