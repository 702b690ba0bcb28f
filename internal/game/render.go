package game

import (
	"fmt"
	"strings"

	"github.com/pickfall/pickfall/internal/core"
)

// hudRows is how many rows at the top belong to the HUD.
const hudRows = 2

const (
	pickaxeGlyph = '⚒'
	tntGlyph     = '▣'
	megaGlyph    = '◙'
)

// hudLabels maps ore item names to their short HUD form.
var hudLabels = map[string]string{
	"coal":         "coal",
	"iron_ingot":   "iron",
	"copper_ingot": "cu",
	"gold_ingot":   "gold",
	"redstone":     "reds",
	"lapis_lazuli": "lapis",
	"diamond":      "dia",
	"emerald":      "emer",
}

// Render draws the world through the camera, then the HUD on top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	off := g.camera.Offset()
	g.renderWorld(dst, off)
	g.renderTnts(dst, off)
	for _, e := range g.explosions {
		e.Render(dst, g.camera)
	}
	g.renderPickaxe(dst, off)
	g.renderHUD(dst)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, "── PAUSED ──")
	}
}

func (g *Game) renderWorld(dst *core.Screen, off int) {
	for sy := hudRows; sy < dst.Height(); sy++ {
		row := off + sy
		for x := 0; x < g.world.Width(); x++ {
			b := g.world.Block(x, row)
			if b == nil {
				continue
			}
			glyph := b.Material.Glyph()
			if b.HP < b.Material.MaxHP()/2 && b.Material != MatBedrock {
				glyph = '░' // Cracked
			}
			dst.SetColored(x, sy, glyph, b.Material.Color())
		}
	}
}

func (g *Game) renderTnts(dst *core.Screen, off int) {
	for _, t := range g.tnts {
		glyph := tntGlyph
		if t.Mega {
			glyph = megaGlyph
		}
		// Blink faster as the fuse runs down.
		color := core.ColorRed
		period := 30
		if t.FuseLeft() < g.runtime.TickRate {
			period = 8
		}
		if (g.tick/int64(period))%2 == 0 {
			color = core.ColorBrightWhite
		}
		x, y := int(t.Pos.X), int(t.Pos.Y)-off
		dst.SetColored(x, y, glyph, color)
		if t.Owner != "" {
			dst.DrawTextColored(x+2, y, t.Owner, core.ColorBrightYellow)
		}
	}
}

func (g *Game) renderPickaxe(dst *core.Screen, off int) {
	p := g.pickaxe
	x, y := int(p.Pos.X), int(p.Pos.Y)-off
	color := p.Tier.Color()
	dst.SetColored(x, y, pickaxeGlyph, color)
	if p.Big() {
		dst.SetColored(x-1, y, '◄', color)
		dst.SetColored(x+1, y, '►', color)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	depthText := fmt.Sprintf("Depth: %d", g.depth)
	dst.DrawTextColored(1, 0, depthText, core.ColorBrightWhite)

	pickText := "Pickaxe: " + strings.TrimSuffix(g.pickaxe.Tier.Name(), "_pickaxe")
	if g.pickaxe.Big() {
		pickText += " [BIG]"
	}
	dst.DrawTextCentered(0, pickText)

	if g.speedActive {
		label := "SLOW"
		color := core.ColorBlue
		if g.speedFast {
			label = "FAST"
			color = core.ColorBrightRed
		}
		dst.DrawTextColored(dst.Width()-len(label)-1, 0, label, color)
	}

	var ores []string
	for _, item := range OreItems {
		if n := g.oreTally[item]; n > 0 {
			ores = append(ores, fmt.Sprintf("%s:%d", hudLabels[item], n))
		}
	}
	if len(ores) > 0 {
		dst.DrawTextColored(1, 1, strings.Join(ores, " "), core.ColorYellow)
	}

	if g.bus != nil {
		if pending := g.bus.Len(); pending > 0 {
			queueText := fmt.Sprintf("chat:%d", pending)
			dst.DrawTextColored(dst.Width()-len(queueText)-1, 1, queueText, core.ColorCyan)
		}
	}
}
