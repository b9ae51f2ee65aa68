package app_test

import (
	"context"
	"testing"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/infra/memory"
)

func TestLeaderboardRanksAndStableTies(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	scores := app.NewScoreService(users)

	// Insertion order: dana(50), bob(30), carol(30), alice(10).
	seeded := []struct {
		username string
		correct  int
	}{
		{"dana", 5},
		{"bob", 3},
		{"carol", 3},
		{"alice", 1},
	}
	for _, s := range seeded {
		registerUser(t, users, s.username)
		for i := 0; i < s.correct; i++ {
			if err := scores.Award(ctx, s.username, true); err != nil {
				t.Fatalf("award: %v", err)
			}
		}
	}

	entries, err := app.NewLeaderboardService(users).Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}

	wantOrder := []string{"dana", "bob", "carol", "alice"}
	wantScores := []int{50, 30, 30, 10}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, entry := range entries {
		if entry.Username != wantOrder[i] || entry.Score != wantScores[i] || entry.Rank != i+1 {
			t.Fatalf("entry %d: expected %s/%d rank %d, got %+v", i, wantOrder[i], wantScores[i], i+1, entry)
		}
	}
}

func TestLeaderboardDefaultsAndLimit(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserStore()
	for _, username := range []string{"a", "b", "c"} {
		registerUser(t, users, username)
	}
	leaderboard := app.NewLeaderboardService(users)

	entries, err := leaderboard.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected limit 2 respected, got %d", len(entries))
	}

	entries, err = leaderboard.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top default: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected all 3 under the default size, got %d", len(entries))
	}
}
