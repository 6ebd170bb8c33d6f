package storage

import (
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

func TestSaveRunAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{GameID: "snake", Score: 12, Length: 9, Duration: 42 * time.Second, Cause: "wall", Seed: 1},
		{GameID: "snake", Score: 30, Length: 15, Duration: 90 * time.Second, Cause: "rival", Seed: 2},
		{GameID: "snake_walls", Score: 5, Length: 4, Duration: 10 * time.Second, Cause: "self", Seed: 3},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("snake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentRuns() returned %d runs, expected 2", len(got))
	}

	// Newest first
	if got[0].Seed != 2 || got[0].Cause != "rival" || got[0].Length != 15 {
		t.Errorf("RecentRuns()[0] = %+v, expected the rival run", got[0])
	}
	if got[0].Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected %v", got[0].Duration, 90*time.Second)
	}

	// Runs also feed the score table
	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("HighScore() = %d, expected 30", high)
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(RunEntry{GameID: "snake", Score: i, Length: 3}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns("snake", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("RecentRuns() returned %d runs, expected 3", len(got))
	}
	if got[0].Score != 4 {
		t.Errorf("RecentRuns()[0].Score = %d, expected 4", got[0].Score)
	}
}

func TestTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{GameID: "snake", Score: 10, Length: 5, Seed: 1},
		{GameID: "snake", Score: 40, Length: 9, Seed: 2},
		{GameID: "snake", Score: 40, Length: 14, Seed: 3},
		{GameID: "snake", Score: 25, Length: 8, Seed: 4},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.TopRuns("snake", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	want := []int64{3, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("TopRuns() returned %d runs, expected %d", len(got), len(want))
	}
	for i, seed := range want {
		if got[i].Seed != seed {
			t.Errorf("TopRuns()[%d].Seed = %d, expected %d", i, got[i].Seed, seed)
		}
	}
}

func TestGameStatsIncludeRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{GameID: "snake", Score: 10, Length: 8, Duration: 30 * time.Second})
	store.SaveRun(RunEntry{GameID: "snake", Score: 20, Length: 12, Duration: 45 * time.Second})

	stats, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 20 {
		t.Errorf("stats = %+v, expected 2 games and high score 20", stats)
	}
	if stats.LongestSnake != 12 {
		t.Errorf("LongestSnake = %d, expected 12", stats.LongestSnake)
	}
	if stats.TimePlayed != 75*time.Second {
		t.Errorf("TimePlayed = %v, expected %v", stats.TimePlayed, 75*time.Second)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["snake"] == nil || all["snake"].GamesCount != 2 {
		t.Errorf("GetAllGamesStats()[snake] = %+v, expected 2 games", all["snake"])
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{GameID: "snake", Score: 1, Length: 3})
	store.SaveRun(RunEntry{GameID: "snake_walls", Score: 2, Length: 3})

	if err := store.ClearRuns("snake"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	snake, _ := store.RecentRuns("snake", 10)
	walls, _ := store.RecentRuns("snake_walls", 10)
	if len(snake) != 0 || len(walls) != 1 {
		t.Errorf("after clear: %d snake runs, %d walls runs, expected 0 and 1", len(snake), len(walls))
	}
}
