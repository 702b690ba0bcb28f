package game

import "github.com/pickfall/pickfall/internal/core"

// Material identifies what a block is made of.
type Material int

const (
	MatAir Material = iota
	MatDirt
	MatStone
	MatDeepslate
	MatBedrock

	// Ores, embedded in the stone layers.
	MatCoal
	MatCopper
	MatIron
	MatGold
	MatRedstone
	MatLapis
	MatDiamond
	MatEmerald
)

// materialInfo holds the static per-material properties.
type materialInfo struct {
	name  string
	maxHP int
	glyph rune
	color core.Color
	drop  string // Ore item credited on destruction, "" for plain blocks
}

var materials = map[Material]materialInfo{
	MatAir:       {name: "air", maxHP: 0, glyph: ' ', color: core.ColorDefault},
	MatDirt:      {name: "dirt", maxHP: 40, glyph: '░', color: core.ColorBrown},
	MatStone:     {name: "stone", maxHP: 100, glyph: '▒', color: core.ColorGray},
	MatDeepslate: {name: "deepslate", maxHP: 160, glyph: '▓', color: core.ColorGray},
	MatBedrock:   {name: "bedrock", maxHP: 0, glyph: '█', color: core.ColorWhite},

	MatCoal:     {name: "coal_ore", maxHP: 110, glyph: '◆', color: core.ColorWhite, drop: "coal"},
	MatCopper:   {name: "copper_ore", maxHP: 110, glyph: '◆', color: core.ColorOrange, drop: "copper_ingot"},
	MatIron:     {name: "iron_ore", maxHP: 120, glyph: '◆', color: core.ColorBrightWhite, drop: "iron_ingot"},
	MatGold:     {name: "gold_ore", maxHP: 120, glyph: '◆', color: core.ColorYellow, drop: "gold_ingot"},
	MatRedstone: {name: "redstone_ore", maxHP: 130, glyph: '◆', color: core.ColorRed, drop: "redstone"},
	MatLapis:    {name: "lapis_ore", maxHP: 130, glyph: '◆', color: core.ColorBlue, drop: "lapis_lazuli"},
	MatDiamond:  {name: "diamond_ore", maxHP: 150, glyph: '◆', color: core.ColorBrightCyan, drop: "diamond"},
	MatEmerald:  {name: "emerald_ore", maxHP: 150, glyph: '◆', color: core.ColorBrightGreen, drop: "emerald"},
}

// Name returns the material's identifier, e.g. "diamond_ore".
func (m Material) Name() string {
	return materials[m].name
}

// MaxHP returns the hit points a fresh block of this material has.
// Bedrock reports 0 and is unbreakable.
func (m Material) MaxHP() int {
	return materials[m].maxHP
}

// Glyph returns the rune used to draw the material.
func (m Material) Glyph() rune {
	return materials[m].glyph
}

// Color returns the material's rendering color.
func (m Material) Color() core.Color {
	return materials[m].color
}

// Drop returns the ore item name this material yields, or "" for none.
func (m Material) Drop() string {
	return materials[m].drop
}

// IsOre reports whether the material yields an ore item.
func (m Material) IsOre() bool {
	return materials[m].drop != ""
}

// OreItems lists every collectible ore item, in HUD display order.
var OreItems = []string{
	"coal",
	"iron_ingot",
	"copper_ingot",
	"gold_ingot",
	"redstone",
	"lapis_lazuli",
	"diamond",
	"emerald",
}

// Block is one world cell. Air blocks are represented by nil pointers in
// the chunk grid, so a Block always has a solid material.
type Block struct {
	Material Material
	HP       int
}

func newBlock(m Material) *Block {
	return &Block{Material: m, HP: m.MaxHP()}
}

// Damage applies dmg hit points and reports whether the block broke.
// Bedrock never breaks.
func (b *Block) Damage(dmg int) bool {
	if b.Material == MatBedrock {
		return false
	}
	b.HP -= dmg
	return b.HP <= 0
}
