package game

import (
	"math"

	"github.com/pickfall/pickfall/internal/core"
)

// Fallback blast parameters when the config carries none. MegaTNT
// multiplies both the radius and the damage at every distance.
const (
	defaultBlastRadius = 3.0
	defaultMegaScale   = 2.0
)

// Tnt is a falling explosive. It does not break blocks on impact, it
// rests on them until the fuse runs out.
type Tnt struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Mega bool

	// Blast tuning, copied from the game config at spawn.
	Radius    float64
	MegaScale float64

	// Chat attribution, empty for timer and keyboard spawns.
	Owner   string
	OwnerID string

	fuseTicks int
}

// NewTnt creates a TNT with a lit fuse.
func NewTnt(x, y float64, mega bool, fuseTicks int) *Tnt {
	return &Tnt{
		Pos:       core.Vec2{X: x, Y: y},
		Mega:      mega,
		Radius:    defaultBlastRadius,
		MegaScale: defaultMegaScale,
		fuseTicks: fuseTicks,
	}
}

// TickFuse burns one tick of fuse and reports whether it ran out.
func (t *Tnt) TickFuse() bool {
	t.fuseTicks--
	return t.fuseTicks <= 0
}

// FuseLeft returns the remaining fuse in ticks, for the blink effect.
func (t *Tnt) FuseLeft() int {
	return t.fuseTicks
}

// BlastResult is what an explosion did to the world.
type BlastResult struct {
	Destroyed int
	Drops     []string
}

// Explode damages every block within the blast radius. Damage falls off
// linearly with distance from the center.
func (t *Tnt) Explode(w *World) BlastResult {
	radius := t.Radius
	scale := 1.0
	if t.Mega {
		radius *= t.MegaScale
		scale = t.MegaScale
	}
	if radius <= 0 {
		return BlastResult{}
	}

	var res BlastResult
	cx, cy := t.Pos.X, t.Pos.Y

	minRow := int(math.Floor(cy - radius))
	maxRow := int(math.Ceil(cy + radius))
	minCol := int(math.Floor(cx - radius))
	maxCol := int(math.Ceil(cx + radius))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			b := w.Block(col, row)
			if b == nil {
				continue
			}
			dist := math.Hypot(float64(col)-cx, float64(row)-cy)
			if dist > radius {
				continue
			}
			dmg := int(100 * scale * (1 - dist/radius))
			destroyed, drop := w.DamageAt(col, row, dmg)
			if destroyed {
				res.Destroyed++
				if drop != "" {
					res.Drops = append(res.Drops, drop)
				}
			}
		}
	}
	return res
}
