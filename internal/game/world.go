package game

import "math/rand"

// ChunkHeight is the number of block rows generated at a time. The world
// is a single column of chunks that extends downward forever; chunks are
// generated on first access and discarded once the camera passes them.
const ChunkHeight = 16

// oreBand describes where an ore can spawn and how often.
type oreBand struct {
	material Material
	minRow   int
	chance   float64
}

// Deeper ores are rarer and appear further down, so depth keeps paying.
var oreBands = []oreBand{
	{MatCoal, 18, 0.050},
	{MatCopper, 40, 0.040},
	{MatIron, 40, 0.040},
	{MatGold, 120, 0.030},
	{MatRedstone, 120, 0.030},
	{MatLapis, 120, 0.020},
	{MatDiamond, 220, 0.015},
	{MatEmerald, 220, 0.010},
}

const (
	dirtDepth      = 24  // Rows of dirt under the surface
	deepslateStart = 220 // Row where stone gives way to deepslate
	caveChance     = 0.03
)

// World is the destructible block column. Coordinates are block-sized:
// x runs across the column, row runs downward from 0 at the surface edge.
// Rows above zero and columns outside the width are out of the world.
type World struct {
	width      int
	seed       int64
	surfaceRow int
	chunks     map[int][]*Block // chunkY -> ChunkHeight*width blocks, nil = air
}

// NewWorld creates a world of the given width. Every chunk derives its RNG
// from seed and its own index, so generation does not depend on the order
// chunks are first touched in.
func NewWorld(width int, seed int64, surfaceRow int) *World {
	return &World{
		width:      width,
		seed:       seed,
		surfaceRow: surfaceRow,
		chunks:     make(map[int][]*Block),
	}
}

// Width returns the column width in blocks.
func (w *World) Width() int {
	return w.width
}

// SurfaceRow returns the first solid row.
func (w *World) SurfaceRow() int {
	return w.surfaceRow
}

// Block returns the block at (x, row), or nil for air and out-of-world
// positions. Touching a row generates its chunk.
func (w *World) Block(x, row int) *Block {
	if x < 0 || x >= w.width || row < 0 {
		return nil
	}
	cy := row / ChunkHeight
	chunk, ok := w.chunks[cy]
	if !ok {
		chunk = w.generateChunk(cy)
		w.chunks[cy] = chunk
	}
	return chunk[(row%ChunkHeight)*w.width+x]
}

// Solid reports whether (x, row) blocks movement. The side walls are solid
// so nothing falls out of the column.
func (w *World) Solid(x, row int) bool {
	if x < 0 || x >= w.width {
		return true
	}
	return w.Block(x, row) != nil
}

// Destroy removes the block at (x, row) and returns its ore drop, if any.
// Bedrock cannot be destroyed.
func (w *World) Destroy(x, row int) string {
	b := w.Block(x, row)
	if b == nil || b.Material == MatBedrock {
		return ""
	}
	cy := row / ChunkHeight
	w.chunks[cy][(row%ChunkHeight)*w.width+x] = nil
	return b.Material.Drop()
}

// DamageAt applies damage to the block at (x, row). It reports whether the
// block was destroyed and what it dropped.
func (w *World) DamageAt(x, row, dmg int) (destroyed bool, drop string) {
	b := w.Block(x, row)
	if b == nil {
		return false, ""
	}
	if !b.Damage(dmg) {
		return false, ""
	}
	return true, w.Destroy(x, row)
}

// CleanAbove discards chunks that lie entirely above the given row. The
// camera only moves down, so those chunks can never be seen again.
func (w *World) CleanAbove(row int) {
	if row < 0 {
		return
	}
	keepFrom := row/ChunkHeight - 1
	for cy := range w.chunks {
		if cy < keepFrom {
			delete(w.chunks, cy)
		}
	}
}

// ChunkCount returns the number of generated chunks currently held.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// generateChunk builds the blocks for chunk cy from its own seeded RNG.
func (w *World) generateChunk(cy int) []*Block {
	rng := rand.New(rand.NewSource(w.seed ^ int64(cy)*0x9e3779b9))
	blocks := make([]*Block, ChunkHeight*w.width)

	for y := 0; y < ChunkHeight; y++ {
		row := cy*ChunkHeight + y
		for x := 0; x < w.width; x++ {
			blocks[y*w.width+x] = w.rollBlock(rng, row)
		}
	}
	return blocks
}

func (w *World) rollBlock(rng *rand.Rand, row int) *Block {
	if row < w.surfaceRow {
		return nil
	}
	depth := row - w.surfaceRow

	// Small air pockets below the dirt band.
	if depth >= dirtDepth && rng.Float64() < caveChance {
		return nil
	}

	for _, band := range oreBands {
		if depth >= band.minRow && rng.Float64() < band.chance {
			return newBlock(band.material)
		}
	}

	switch {
	case depth < dirtDepth:
		return newBlock(MatDirt)
	case depth < deepslateStart:
		return newBlock(MatStone)
	default:
		return newBlock(MatDeepslate)
	}
}
