// Package game implements the falling-pickaxe simulation: an endless
// destructible block column, a pickaxe that mines its way down, and TNT
// rains driven by live chat. The simulation is fully synchronous; chat
// only reaches it through the queue bus, drained on the game's own tick.
package game

import (
	"math/rand"

	"github.com/pickfall/pickfall/internal/config"
	"github.com/pickfall/pickfall/internal/core"
	"github.com/pickfall/pickfall/internal/queue"
)

const surfaceRow = 12

// Credit records blocks a chat viewer's TNT destroyed, for the chat
// leaderboard.
type Credit struct {
	OwnerID string
	Owner   string
	Blocks  int
}

// Game implements the falling-pickaxe game logic.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.Config
	bus     *queue.Bus
	rng     *rand.Rand

	world      *World
	pickaxe    *Pickaxe
	tnts       []*Tnt
	explosions []*Explosion
	camera     *Camera

	tick   int64
	paused bool

	depth    int // Deepest row mined below the surface, the score
	oreTally map[string]int
	credits  []Credit

	speedActive bool
	speedFast   bool
	speedEndsAt int64

	// Absolute tick deadlines for the random event timers.
	nextTntSpawn      int64
	nextPickaxeChange int64
	nextEnlarge       int64
	nextFastSlow      int64
	nextDrain         int64
}

// New creates a game with the given tunables. Pass a bus to put chat in
// charge of the event timers; a nil bus runs the game standalone.
func New(cfg config.Config, bus *queue.Bus) *Game {
	return &Game{cfg: cfg, bus: bus}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pickfall"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pickfall"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.world = NewWorld(runtime.ScreenW, runtime.Seed, surfaceRow)
	g.pickaxe = NewPickaxe(float64(runtime.ScreenW)/2, 2)
	g.camera = NewCamera(runtime.Seed + 1)
	g.tnts = nil
	g.explosions = nil

	g.tick = 0
	g.paused = false
	g.depth = 0
	g.oreTally = make(map[string]int)
	g.credits = nil
	g.speedActive = false

	g.scheduleTntSpawn()
	g.schedulePickaxeChange()
	g.scheduleEnlarge()
	g.scheduleFastSlow()
	g.nextDrain = g.secondsToTicks(g.cfg.Chat.QueuesPopIntervalSeconds)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++

	// Keyboard spawns skip the queues entirely.
	if in.Has(core.ActionSpawnTnt) {
		g.spawnTnt(false, "", "")
	}
	if in.Has(core.ActionSpawnMega) {
		g.spawnTnt(true, "", "")
	}

	g.drainQueues()
	g.runRandomEvents()

	if g.speedActive && g.tick >= g.speedEndsAt {
		g.speedActive = false
	}

	// Fast doubles the physics rate, slow halves it. Timers and queues
	// above run in real time either way.
	steps := 1
	if g.speedActive {
		if g.speedFast {
			steps = 2
		} else if g.tick%2 == 0 {
			steps = 0
		}
	}
	for i := 0; i < steps; i++ {
		g.physicsStep()
	}

	// Fuses burn on the wall clock, one tick per Step, so a speed effect
	// never shortens or stretches the 4 seconds a viewer expects.
	g.burnFuses()

	g.camera.Follow(g.pickaxe.Pos.Y, g.runtime.ScreenH)
	g.camera.Update()
	g.world.CleanAbove(g.camera.BaseOffset())

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Depth:  g.depth,
		Paused: g.paused,
	}
}

// Depth returns the deepest row mined, in blocks below the surface.
func (g *Game) Depth() int {
	return g.depth
}

// OreTally returns the collected ore counts, keyed by item name.
func (g *Game) OreTally() map[string]int {
	return g.oreTally
}

// RestoreOreTally seeds the tally from a saved progress snapshot.
func (g *Game) RestoreOreTally(amounts map[string]int) {
	for item, n := range amounts {
		g.oreTally[item] += n
	}
}

// TakeCredits returns the chat blast credits accumulated since the last
// call and clears them.
func (g *Game) TakeCredits() []Credit {
	c := g.credits
	g.credits = nil
	return c
}

func (g *Game) secondsToTicks(s float64) int64 {
	return int64(s * float64(g.runtime.TickRate))
}

func (g *Game) randomIntervalTicks(min, max float64) int64 {
	return g.secondsToTicks(min + g.rng.Float64()*(max-min))
}

func (g *Game) scheduleTntSpawn() {
	g.nextTntSpawn = g.tick + g.randomIntervalTicks(
		g.cfg.Tnt.SpawnIntervalMinSeconds, g.cfg.Tnt.SpawnIntervalMaxSeconds)
}

func (g *Game) schedulePickaxeChange() {
	g.nextPickaxeChange = g.tick + g.randomIntervalTicks(
		g.cfg.Pickaxe.ChangeIntervalMinSeconds, g.cfg.Pickaxe.ChangeIntervalMaxSeconds)
}

func (g *Game) scheduleEnlarge() {
	g.nextEnlarge = g.tick + g.randomIntervalTicks(
		g.cfg.Pickaxe.EnlargeIntervalMinSeconds, g.cfg.Pickaxe.EnlargeIntervalMaxSeconds)
}

func (g *Game) scheduleFastSlow() {
	g.nextFastSlow = g.tick + g.randomIntervalTicks(
		g.cfg.FastSlow.IntervalMinSeconds, g.cfg.FastSlow.IntervalMaxSeconds)
}

// drainQueues pops at most one entry per queue at the drain interval and
// applies them to the simulation.
func (g *Game) drainQueues() {
	if g.bus == nil || g.tick < g.nextDrain {
		return
	}
	g.nextDrain = g.tick + g.secondsToTicks(g.cfg.Chat.QueuesPopIntervalSeconds)

	for _, e := range g.bus.Drain() {
		g.applyEntry(e)
	}
}

func (g *Game) applyEntry(e queue.Entry) {
	switch e.Kind {
	case queue.KindTnt:
		for i := 0; i < e.Count; i++ {
			g.spawnTnt(false, e.Author, e.AuthorID)
		}
		g.nextTntSpawn = g.tick + g.randomIntervalTicks(
			g.cfg.Tnt.SpawnIntervalMinSeconds, g.cfg.Tnt.SpawnIntervalMaxSeconds)

	case queue.KindMega:
		for i := 0; i < e.Count; i++ {
			g.spawnTnt(true, e.Author, e.AuthorID)
		}
		g.nextTntSpawn = g.tick + g.randomIntervalTicks(
			g.cfg.Tnt.SpawnIntervalMinSeconds, g.cfg.Tnt.SpawnIntervalMaxSeconds)

	case queue.KindFastSlow:
		g.activateSpeed(e.Choice == "fast")

	case queue.KindBig:
		g.pickaxe.Enlarge(int(g.secondsToTicks(g.cfg.Pickaxe.EnlargeDurationSeconds)))

	case queue.KindPickaxe:
		if tier, ok := TierFromMaterial(e.Material); ok {
			g.pickaxe.Tier = tier
		}
	}
}

// runRandomEvents fires the ambient timers. Each timer stands down while
// chat has entries waiting in its queue, so viewers see their own
// commands happen instead of random noise.
func (g *Game) runRandomEvents() {
	chatHas := func(k queue.Kind) bool {
		return g.bus != nil && g.bus.KindPending(k)
	}

	if g.tick >= g.nextTntSpawn && !chatHas(queue.KindTnt) && !chatHas(queue.KindMega) {
		g.spawnTnt(false, "", "")
		g.scheduleTntSpawn()
	}
	if g.tick >= g.nextPickaxeChange && !chatHas(queue.KindPickaxe) {
		g.pickaxe.Tier = randomTier(g.rng)
		g.schedulePickaxeChange()
	}
	if g.tick >= g.nextEnlarge && !chatHas(queue.KindBig) {
		g.pickaxe.Enlarge(int(g.secondsToTicks(g.cfg.Pickaxe.EnlargeDurationSeconds)))
		g.scheduleEnlarge()
	}
	if g.tick >= g.nextFastSlow && !g.speedActive && !chatHas(queue.KindFastSlow) {
		g.activateSpeed(g.rng.Intn(2) == 0)
		g.scheduleFastSlow()
	}
}

func (g *Game) activateSpeed(fast bool) {
	if g.speedActive {
		return
	}
	g.speedActive = true
	g.speedFast = fast
	g.speedEndsAt = g.tick + g.secondsToTicks(g.cfg.FastSlow.DurationSeconds)
}

// spawnTnt drops a TNT from just above the view, on the pickaxe's column
// so the blast helps the dig.
func (g *Game) spawnTnt(mega bool, owner, ownerID string) {
	x := core.ClampF(g.pickaxe.Pos.X, 2, float64(g.world.Width()-3))
	y := float64(g.camera.BaseOffset()) - 2

	t := NewTnt(x, y, mega, int(g.secondsToTicks(g.cfg.Tnt.FuseSeconds)))
	if g.cfg.Tnt.RadiusBlocks > 0 {
		t.Radius = float64(g.cfg.Tnt.RadiusBlocks)
	}
	if g.cfg.Tnt.MegaScale > 0 {
		t.MegaScale = float64(g.cfg.Tnt.MegaScale)
	}
	t.Owner = owner
	t.OwnerID = ownerID
	g.tnts = append(g.tnts, t)
}

// physicsStep moves every falling body by one tick of simulated time.
func (g *Game) physicsStep() {
	dt := 1.0 / float64(g.runtime.TickRate)

	g.updatePickaxe(dt)
	g.updateTnts(dt)

	alive := g.explosions[:0]
	for _, e := range g.explosions {
		if e.Update(dt) {
			alive = append(alive, e)
		}
	}
	g.explosions = alive

	g.pickaxe.TickEffects()
}

func (g *Game) updatePickaxe(dt float64) {
	p := g.pickaxe
	phys := g.cfg.Physics

	p.Vel.Y += phys.Gravity * dt
	p.Vel.Y = core.ClampF(p.Vel.Y, -phys.TerminalVelocity, phys.TerminalVelocity)
	p.Vel.X *= 1 - 0.5*dt // Horizontal drift dies out

	// Horizontal movement, stopped by walls and blocks.
	nx := p.Pos.X + p.Vel.X*dt
	if g.world.Solid(int(nx), int(p.Pos.Y)) {
		p.Vel.X = -p.Vel.X * phys.BounceDamping
	} else {
		p.Pos.X = nx
	}

	// Vertical movement, one cell boundary at a time.
	ny := p.Pos.Y + p.Vel.Y*dt
	if p.Vel.Y > 0 && int(ny) > int(p.Pos.Y) {
		row := int(p.Pos.Y) + 1
		if g.hitRow(row) {
			// The way is clear.
			p.Pos.Y = ny
		} else {
			// Blocked: bounce and kick sideways so the pickaxe works
			// at the whole column, not a single shaft.
			p.Pos.Y = float64(row) - 0.01
			p.Vel.Y = -p.Vel.Y * phys.BounceDamping
			p.Vel.X += (g.rng.Float64() - 0.5) * 6
		}
	} else {
		p.Pos.Y = ny
	}

	if d := int(p.Pos.Y) - surfaceRow; d > g.depth {
		g.depth = d
	}
}

// hitRow swings the pickaxe at the blocks it covers in the given row and
// reports whether the center block is gone afterwards.
func (g *Game) hitRow(row int) bool {
	p := g.pickaxe
	cx := int(p.Pos.X)
	power := p.Tier.Power()

	for x := cx - p.HalfWidth(); x <= cx+p.HalfWidth(); x++ {
		destroyed, drop := g.world.DamageAt(x, row, power)
		if destroyed && drop != "" {
			g.oreTally[drop]++
		}
	}
	return !g.world.Solid(cx, row)
}

func (g *Game) updateTnts(dt float64) {
	phys := g.cfg.Physics

	for _, t := range g.tnts {
		t.Vel.Y += phys.Gravity * dt
		t.Vel.Y = core.ClampF(t.Vel.Y, -phys.TerminalVelocity, phys.TerminalVelocity)

		ny := t.Pos.Y + t.Vel.Y*dt
		if t.Vel.Y > 0 && g.world.Solid(int(t.Pos.X), int(ny)+1) {
			// Rest on the block below.
			t.Pos.Y = float64(int(ny))
			t.Vel.Y = 0
		} else {
			t.Pos.Y = ny
		}
	}
}

// burnFuses ticks every fuse down by one and detonates the expired TNT.
func (g *Game) burnFuses() {
	remaining := g.tnts[:0]
	for _, t := range g.tnts {
		if t.TickFuse() {
			g.detonate(t)
			continue
		}
		remaining = append(remaining, t)
	}
	g.tnts = remaining
}

func (g *Game) detonate(t *Tnt) {
	res := t.Explode(g.world)
	for _, drop := range res.Drops {
		g.oreTally[drop]++
	}
	if t.OwnerID != "" && res.Destroyed > 0 {
		g.credits = append(g.credits, Credit{
			OwnerID: t.OwnerID,
			Owner:   t.Owner,
			Blocks:  res.Destroyed,
		})
	}

	particles := 20
	shakeTicks, shakeIntensity := 10, 10
	if t.Mega {
		particles = 40
		shakeTicks, shakeIntensity = 15, 30
	}
	g.explosions = append(g.explosions, NewExplosion(t.Pos, particles, g.rng))
	g.camera.Shake(shakeTicks, shakeIntensity)
}
