package game

import "testing"

func TestCameraFollowsDownOnly(t *testing.T) {
	c := NewCamera(1)
	c.Follow(60, 24)
	first := c.BaseOffset()
	if first <= 0 {
		t.Fatalf("offset = %d after following row 60, want > 0", first)
	}

	// Moving the target back up must not scroll back.
	c.Follow(10, 24)
	if c.BaseOffset() != first {
		t.Errorf("offset = %d after upward target, want unchanged %d", c.BaseOffset(), first)
	}

	c.Follow(120, 24)
	if c.BaseOffset() <= first {
		t.Error("offset did not advance for a deeper target")
	}
}

func TestCameraShakeDecays(t *testing.T) {
	c := NewCamera(1)
	c.Shake(5, 10)

	jittered := false
	for i := 0; i < 100; i++ {
		if c.Offset() != c.BaseOffset() {
			jittered = true
			break
		}
	}
	if !jittered {
		t.Error("shake produced no jitter")
	}
	for i := 0; i < 5; i++ {
		c.Update()
	}
	for i := 0; i < 10; i++ {
		if c.Offset() != c.BaseOffset() {
			t.Fatal("jitter persisted after shake expired")
		}
	}
}
