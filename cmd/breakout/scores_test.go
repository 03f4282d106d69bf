package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintScores(t *testing.T) {
	store := openTestStore(t)
	for i := 1; i <= 12; i++ {
		if _, err := store.SaveScore("breakout", i*10); err != nil {
			t.Fatalf("SaveScore() error = %v", err)
		}
	}

	var top bytes.Buffer
	if err := printScores(&top, store, "breakout", "Breakout", false); err != nil {
		t.Fatalf("printScores() error = %v", err)
	}
	out := top.String()
	if strings.Contains(out, "  11  ") {
		t.Error("top scores should stop at rank 10")
	}
	if !strings.Contains(out, "Best: 120  Games: 12  Average: 65.0") {
		t.Errorf("missing stats line in:\n%s", out)
	}

	var all bytes.Buffer
	if err := printScores(&all, store, "breakout", "Breakout", true); err != nil {
		t.Fatalf("printScores(all) error = %v", err)
	}
	if !strings.Contains(all.String(), "  12  ") {
		t.Error("--all should list every score")
	}
}

func TestPrintScoresEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printScores(&buf, openTestStore(t), "sandbox", "Physics Sandbox", false); err != nil {
		t.Fatalf("printScores() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("breakout", 10)
	store.SaveScore("breakout", 20)
	store.SaveScore("sandbox", 5)

	var buf bytes.Buffer
	if err := clearScores(&buf, store, "breakout", "Breakout"); err != nil {
		t.Fatalf("clearScores() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 2 scores") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if high, _ := store.HighScore("breakout"); high != 0 {
		t.Errorf("breakout high score = %d after clearing", high)
	}
	if high, _ := store.HighScore("sandbox"); high != 5 {
		t.Errorf("sandbox high score = %d, other games must be kept", high)
	}
}

func TestPrintRuns(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveRun(storage.SimRun{
		GameID: "breakout", Seed: 7, Ticks: 500, Score: 90, Level: 1,
		Lives: 2, Outcome: "timeout", Hash: 0xabc, DurationMS: 12,
	})
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	var list bytes.Buffer
	if err := printRuns(&list, store, "breakout", "Breakout"); err != nil {
		t.Fatalf("printRuns() error = %v", err)
	}
	if !strings.Contains(list.String(), "0000000000000abc") {
		t.Errorf("run hash missing from:\n%s", list.String())
	}

	var one bytes.Buffer
	if err := printRun(&one, store, "breakout", id); err != nil {
		t.Fatalf("printRun() error = %v", err)
	}
	for _, want := range []string{"Seed:      7", "Level:     2", "--seed 7 --ticks 500 --level 1"} {
		if !strings.Contains(one.String(), want) {
			t.Errorf("printRun output missing %q:\n%s", want, one.String())
		}
	}

	if err := printRun(&one, store, "sandbox", id); err == nil {
		t.Error("a run of another game should not be shown")
	}
	if err := printRun(&one, store, "breakout", id+100); err == nil {
		t.Error("a missing run should be an error")
	}
}
