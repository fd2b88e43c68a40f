package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ModeManual, 70, 8, 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore(ModeManual)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 70 {
		t.Errorf("high score after reopen = %d, expected 70", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ModeManual, score, score/10+1, score*3); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ModeAuto, 500, 51, 2000); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(ModeManual, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].Mode != ModeManual {
			t.Errorf("scores[%d].Mode = %q, expected manual", i, scores[i].Mode)
		}
	}
	if scores[0].Length != 21 || scores[0].Ticks != 600 {
		t.Errorf("length/ticks = %d/%d, expected 21/600", scores[0].Length, scores[0].Ticks)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	autoScores, err := store.TopScores(ModeAuto, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(autoScores) != 1 {
		t.Errorf("Expected 1 auto score, got %d", len(autoScores))
	}
}

func TestStoreRejectsUnknownMode(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("hotseat", 10, 2, 5); err == nil {
		t.Error("SaveScore() with an unknown mode should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ModeManual, (i+1)*100, 1, 1)
	}

	scores, err := store.TopScores(ModeManual, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Zero limit falls back to ten.
	for i := 0; i < 10; i++ {
		store.SaveScore(ModeManual, 10, 1, 1)
	}
	scores, _ = store.TopScores(ModeManual, 0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) returned %d rows, expected 10", len(scores))
	}
}

func TestStoreTopScoresTieOrder(t *testing.T) {
	store := openTestStore(t)
	first, _ := store.SaveScore(ModeManual, 40, 5, 10)
	second, _ := store.SaveScore(ModeManual, 40, 5, 20)

	scores, err := store.TopScores(ModeManual, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].ID != first || scores[1].ID != second {
		t.Errorf("tied scores should keep insertion order, got IDs %d, %d", scores[0].ID, scores[1].ID)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(ModeManual)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an empty mode, got %d", high)
	}

	store.SaveScore(ModeManual, 100, 1, 1)
	store.SaveScore(ModeManual, 300, 1, 1)
	store.SaveScore(ModeManual, 200, 1, 1)
	store.SaveScore(ModeAuto, 900, 1, 1)

	high, err = store.HighScore(ModeManual)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ModeManual, 100, 1, 1)
	store.SaveScore(ModeManual, 200, 1, 1)
	store.SaveScore(ModeAuto, 300, 1, 1)

	if err := store.ClearScores(ModeManual); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	manual, _ := store.TopScores(ModeManual, 10)
	if len(manual) != 0 {
		t.Errorf("Expected 0 manual scores after clear, got %d", len(manual))
	}

	auto, _ := store.TopScores(ModeAuto, 10)
	if len(auto) != 1 {
		t.Errorf("Auto scores should not be affected by clearing manual")
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetModeStats(ModeAuto)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ModeAuto, 100, 11, 50)
	store.SaveScore(ModeAuto, 300, 31, 200)

	stats, err := store.GetModeStats(ModeAuto)
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.LongestLen != 31 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/dir/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "dir", "scores.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if got := parseTime(now); !got.Equal(now) {
		t.Errorf("parseTime(time) = %v", got)
	}
	if got := parseTime("2024-05-01 12:30:00"); !got.Equal(now) {
		t.Errorf("parseTime(string) = %v, expected %v", got, now)
	}
	if got := parseTime(42); !got.IsZero() {
		t.Errorf("parseTime(int) = %v, expected zero", got)
	}
}
