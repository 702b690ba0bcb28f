package chat

import (
	"fmt"
	"testing"
)

func TestSeenCacheAdd(t *testing.T) {
	c := newSeenCache(10)
	if !c.Add("a") {
		t.Error("first Add returned false")
	}
	if c.Add("a") {
		t.Error("duplicate Add returned true")
	}
	if !c.Add("b") {
		t.Error("distinct key rejected")
	}
}

func TestSeenCacheEvictsOldest(t *testing.T) {
	c := newSeenCache(3)
	c.Add("a")
	c.Add("b")
	c.Add("c")
	c.Add("d") // evicts "a"

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if !c.Add("a") {
		t.Error("evicted key should be treated as new")
	}
	if c.Add("c") {
		t.Error("retained key should still be a duplicate")
	}
}

func TestSeenCacheBounded(t *testing.T) {
	c := newSeenCache(2000)
	for i := 0; i < 10000; i++ {
		c.Add(fmt.Sprintf("msg-%d", i))
	}
	if c.Len() != 2000 {
		t.Errorf("Len = %d, want capped at 2000", c.Len())
	}
}
