package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pickfall.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndTopRuns(t *testing.T) {
	s := openTestStore(t)

	for _, depth := range []int{120, 340, 90} {
		if _, err := s.SaveRun(depth, 60); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := s.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Depth != 340 || runs[1].Depth != 120 {
		t.Errorf("runs ordered %d, %d; want 340, 120", runs[0].Depth, runs[1].Depth)
	}

	best, err := s.BestDepth()
	if err != nil {
		t.Fatalf("BestDepth: %v", err)
	}
	if best != 340 {
		t.Errorf("BestDepth = %d, want 340", best)
	}
}

func TestBestDepthEmpty(t *testing.T) {
	s := openTestStore(t)
	best, err := s.BestDepth()
	if err != nil {
		t.Fatalf("BestDepth: %v", err)
	}
	if best != 0 {
		t.Errorf("BestDepth = %d on empty DB, want 0", best)
	}
}

func TestLeaderboardUpsert(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordBlocksBroken("u1", "Alice", 10); err != nil {
		t.Fatalf("RecordBlocksBroken: %v", err)
	}
	if err := s.RecordBlocksBroken("u2", "Bob", 5); err != nil {
		t.Fatalf("RecordBlocksBroken: %v", err)
	}
	// Same viewer again, with a name change.
	if err := s.RecordBlocksBroken("u1", "AliceRenamed", 7); err != nil {
		t.Fatalf("RecordBlocksBroken: %v", err)
	}

	top, err := s.TopChatters(10)
	if err != nil {
		t.Fatalf("TopChatters: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d leaderboard entries, want 2", len(top))
	}
	if top[0].AuthorID != "u1" || top[0].BlocksBroken != 17 {
		t.Errorf("top entry = %+v, want u1 with 17", top[0])
	}
	if top[0].Author != "AliceRenamed" {
		t.Errorf("author = %q, want latest display name", top[0].Author)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)

	none, err := s.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if none != nil {
		t.Fatalf("LoadProgress on empty DB = %+v, want nil", none)
	}

	ores := map[string]int{"coal": 4, "diamond": 1}
	if err := s.SaveProgress(250, ores); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	// Overwrite with newer numbers.
	ores["coal"] = 9
	if err := s.SaveProgress(300, ores); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	p, err := s.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress: %v", err)
	}
	if p == nil {
		t.Fatal("LoadProgress returned nil after save")
	}
	if p.Depth != 300 {
		t.Errorf("Depth = %d, want 300", p.Depth)
	}
	if p.Ores["coal"] != 9 || p.Ores["diamond"] != 1 {
		t.Errorf("Ores = %v, want coal 9, diamond 1", p.Ores)
	}
}
