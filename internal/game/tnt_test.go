package game

import "testing"

// solidTestWorld fills every generated block with stone so blast results
// are predictable.
func solidTestWorld(width int) *World {
	w := NewWorld(width, 1, 0)
	// Force generation, then overwrite with uniform stone.
	for row := 0; row < 4*ChunkHeight; row++ {
		for x := 0; x < width; x++ {
			w.Block(x, row)
		}
	}
	for _, chunk := range w.chunks {
		for i := range chunk {
			chunk[i] = newBlock(MatStone)
		}
	}
	return w
}

func TestTntFuse(t *testing.T) {
	tnt := NewTnt(0, 0, false, 3)
	if tnt.TickFuse() {
		t.Error("fuse expired after 1 tick, want 3")
	}
	tnt.TickFuse()
	if !tnt.TickFuse() {
		t.Error("fuse did not expire after 3 ticks")
	}
}

func TestTntFuseNonPositive(t *testing.T) {
	tnt := NewTnt(0, 0, false, 0)
	if !tnt.TickFuse() {
		t.Error("zero-tick fuse did not expire on the first tick")
	}
}

func TestExplodeRadiusConfigurable(t *testing.T) {
	wSmall := solidTestWorld(40)
	wLarge := solidTestWorld(40)

	small := NewTnt(20, 30, true, 1)
	small.Radius = 1
	large := NewTnt(20, 30, true, 1)
	large.Radius = 6

	resSmall := small.Explode(wSmall)
	resLarge := large.Explode(wLarge)

	if resLarge.Destroyed <= resSmall.Destroyed {
		t.Errorf("radius 6 destroyed %d blocks, radius 1 destroyed %d; want more from the larger radius",
			resLarge.Destroyed, resSmall.Destroyed)
	}
	// Distance 3 is beyond the small blast but inside the large one.
	if b := wSmall.Block(20, 33); b == nil || b.HP != 100 {
		t.Error("radius 1 blast reached distance 3")
	}
	if b := wLarge.Block(20, 33); b != nil && b.HP == 100 {
		t.Error("radius 6 blast left distance 3 untouched")
	}
}

func TestExplodeDamageFalloff(t *testing.T) {
	w := solidTestWorld(30)
	tnt := NewTnt(15, 30, false, 1)
	tnt.Explode(w)

	// Ground zero takes the full 100 and dies (stone has 100 HP).
	if w.Block(15, 30) != nil {
		t.Error("block at blast center survived")
	}
	// Two blocks out takes 100*(1-2/3)=33, survives with reduced HP.
	b := w.Block(15, 32)
	if b == nil {
		t.Fatal("block 2 away was destroyed, want damaged only")
	}
	if b.HP != 100-33 {
		t.Errorf("HP at distance 2 = %d, want 67", b.HP)
	}
	// Outside the radius, untouched.
	far := w.Block(15, 34)
	if far == nil || far.HP != 100 {
		t.Error("block outside radius was damaged")
	}
}

func TestMegaExplodesWiderAndHarder(t *testing.T) {
	wNorm := solidTestWorld(40)
	wMega := solidTestWorld(40)

	norm := NewTnt(20, 30, false, 1)
	mega := NewTnt(20, 30, true, 1)

	resNorm := norm.Explode(wNorm)
	resMega := mega.Explode(wMega)

	if resMega.Destroyed <= resNorm.Destroyed {
		t.Errorf("mega destroyed %d blocks, normal %d; want more from mega",
			resMega.Destroyed, resNorm.Destroyed)
	}
	// Distance 4 is outside the normal radius but well inside mega's.
	if wNorm.Block(20, 34) == nil {
		t.Error("normal blast reached distance 4")
	}
	if got := wMega.Block(20, 34); got != nil && got.HP == 100 {
		t.Error("mega blast left distance 4 untouched")
	}
}

func TestExplodeCollectsDrops(t *testing.T) {
	w := solidTestWorld(30)
	// Plant a weak ore right at the center.
	chunk := w.chunks[30/ChunkHeight]
	chunk[(30%ChunkHeight)*30+15] = newBlock(MatCoal)

	tnt := NewTnt(15, 30, true, 1)
	res := tnt.Explode(w)

	found := false
	for _, d := range res.Drops {
		if d == "coal" {
			found = true
		}
	}
	if !found {
		t.Errorf("drops = %v, want coal included", res.Drops)
	}
}

func TestExplodeSparesBedrock(t *testing.T) {
	w := solidTestWorld(30)
	chunk := w.chunks[30/ChunkHeight]
	chunk[(30%ChunkHeight)*30+15] = newBlock(MatBedrock)

	tnt := NewTnt(15, 30, true, 1)
	tnt.Explode(w)

	if w.Block(15, 30) == nil {
		t.Error("bedrock destroyed by blast")
	}
}
