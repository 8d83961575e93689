package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadGameConfig(t *testing.T) {
	path := writeConfig(t, `{"point_limit": 50, "max_players": 5, "turn_duration_seconds": 12, "bot_auto_fill_delay_seconds": 3, "leaderboard_id": "lb"}`)

	c, err := ReadGameConfig(path)
	if err != nil {
		t.Fatalf("ReadGameConfig error: %v", err)
	}
	if c.PointLimit != 50 || c.MaxPlayers != 5 || c.TurnDurationSeconds != 12 || c.BotAutoFillDelaySeconds != 3 || c.LeaderboardID != "lb" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestReadGameConfigErrors(t *testing.T) {
	if _, err := ReadGameConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := ReadGameConfig(writeConfig(t, `{not json`)); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestAccessorsClampAndDefault(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = nil
	if GetPointLimit() != defaultPointLimit || GetMaxPlayers() != defaultMaxPlayers || GetLeaderboardID() != defaultLeaderboardID {
		t.Fatal("expected defaults without config")
	}

	cfg = &GameConfig{MaxPlayers: 9, PointLimit: 75, TurnDurationSeconds: 30}
	if got := GetMaxPlayers(); got != 6 {
		t.Fatalf("GetMaxPlayers() = %d, want 6", got)
	}
	if got := GetPointLimit(); got != 75 {
		t.Fatalf("GetPointLimit() = %d, want 75", got)
	}
	if got := GetTurnDurationSeconds(); got != 30 {
		t.Fatalf("GetTurnDurationSeconds() = %d, want 30", got)
	}
	if got := GetBotAutoFillDelaySeconds(); got != defaultBotAutoFillDelay {
		t.Fatalf("GetBotAutoFillDelaySeconds() = %d, want default", got)
	}

	cfg = &GameConfig{MaxPlayers: 1}
	if got := GetMaxPlayers(); got != 2 {
		t.Fatalf("GetMaxPlayers() = %d, want 2", got)
	}
}
