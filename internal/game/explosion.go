package game

import (
	"math"
	"math/rand"

	"github.com/pickfall/pickfall/internal/core"
)

// particle is one flying spark of an explosion.
type particle struct {
	pos  core.Vec2
	vel  core.Vec2
	life int // Remaining ticks
}

// Explosion is a purely visual particle burst left behind by a TNT.
type Explosion struct {
	particles []particle
}

// NewExplosion scatters count particles from the given center.
func NewExplosion(center core.Vec2, count int, rng *rand.Rand) *Explosion {
	e := &Explosion{particles: make([]particle, count)}
	for i := range e.particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := 4 + rng.Float64()*10
		e.particles[i] = particle{
			pos:  center,
			vel:  core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			life: 15 + rng.Intn(20),
		}
	}
	return e
}

// Update advances the particles and reports whether any are still alive.
func (e *Explosion) Update(dt float64) bool {
	alive := false
	for i := range e.particles {
		p := &e.particles[i]
		if p.life <= 0 {
			continue
		}
		p.life--
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.vel.Y += 20 * dt // Sparks arc down
		if p.life > 0 {
			alive = true
		}
	}
	return alive
}

// Render draws the surviving particles through the camera.
func (e *Explosion) Render(dst *core.Screen, cam *Camera) {
	for i := range e.particles {
		p := &e.particles[i]
		if p.life <= 0 {
			continue
		}
		glyph := '*'
		color := core.ColorBrightYellow
		if p.life < 8 {
			glyph = '.'
			color = core.ColorGray
		}
		dst.SetColored(int(p.pos.X), int(p.pos.Y)-cam.Offset(), glyph, color)
	}
}
