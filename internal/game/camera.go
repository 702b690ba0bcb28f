package game

import "math/rand"

// Camera tracks the pickaxe down the column and adds shake on explosions.
// Only vertical scrolling exists; the column always fits the screen width.
type Camera struct {
	offsetY float64 // World row shown at the top of the play area

	shakeTicks     int
	shakeIntensity int
	rng            *rand.Rand
}

// NewCamera creates a camera with its own jitter RNG.
func NewCamera(seed int64) *Camera {
	return &Camera{rng: rand.New(rand.NewSource(seed))}
}

// Follow keeps targetRow roughly a third of the way down the screen. The
// camera never scrolls back up; the descent is one-way.
func (c *Camera) Follow(targetRow float64, screenH int) {
	want := targetRow - float64(screenH)/3
	if want > c.offsetY {
		c.offsetY = want
	}
}

// Shake jolts the view for the given number of ticks.
func (c *Camera) Shake(ticks, intensity int) {
	if ticks > c.shakeTicks {
		c.shakeTicks = ticks
	}
	if intensity > c.shakeIntensity {
		c.shakeIntensity = intensity
	}
}

// Update advances the shake timer by one tick.
func (c *Camera) Update() {
	if c.shakeTicks > 0 {
		c.shakeTicks--
		if c.shakeTicks == 0 {
			c.shakeIntensity = 0
		}
	}
}

// Offset returns the world row at the top of the view, with shake jitter.
func (c *Camera) Offset() int {
	off := int(c.offsetY)
	if c.shakeTicks > 0 && c.shakeIntensity > 0 {
		// Terminal cells are tall; a fraction of the pixel intensity is
		// plenty.
		amp := 1 + c.shakeIntensity/10
		off += c.rng.Intn(2*amp+1) - amp
	}
	return off
}

// BaseOffset returns the offset without shake, for stable HUD placement.
func (c *Camera) BaseOffset() int {
	return int(c.offsetY)
}
