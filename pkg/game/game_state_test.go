package game

import "testing"

func TestGameStateDifficulty(t *testing.T) {
	gs := newGameState(nil)

	tests := []struct {
		set  int
		want int
	}{
		{3, 3},
		{0, 0},
		{-2, 0},
	}
	for _, tt := range tests {
		gs.SetDifficulty(tt.set)
		if got := gs.GetDifficulty(); got != tt.want {
			t.Errorf("SetDifficulty(%d) -> GetDifficulty() = %d, want %d", tt.set, got, tt.want)
		}
	}
}

func TestGameStateEnterLeaveLevel(t *testing.T) {
	gs := newGameState(nil)

	gs.EnterLevel("1-1")
	gs.EnterLevel("1-1")
	if gs.CurrentLevelID != "1-1" {
		t.Errorf("CurrentLevelID = %q, want 1-1", gs.CurrentLevelID)
	}
	if attempts := gs.GetProgressManager().Get("1-1").Attempts; attempts != 2 {
		t.Errorf("Attempts = %d, want 2", attempts)
	}

	gs.LeaveLevel()
	if gs.CurrentLevelID != "" {
		t.Error("LeaveLevel should clear CurrentLevelID")
	}
}

func TestGetGameStateIsSingleton(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	resetGlobalGameState()
	defer resetGlobalGameState()

	gs := GetGameState()
	if gs != GetGameState() {
		t.Error("GetGameState should return the same instance")
	}
	if gs.GetProgressManager() == nil {
		t.Error("progress manager should always be available")
	}
}

func TestApplyLevelDifficulty(t *testing.T) {
	tests := []struct {
		name         string
		chosen       int // 负数表示玩家未设置
		levelDefault int
		want         int
	}{
		{"level default when not chosen", -1, 3, 3},
		{"negative level default clamps", -1, -2, 0},
		{"player choice wins", 2, 4, 2},
		{"player chose zero", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newGameState(nil)
			if gs.GetDifficulty() != DefaultDifficulty {
				t.Errorf("initial difficulty = %d, want %d", gs.GetDifficulty(), DefaultDifficulty)
			}
			if tt.chosen >= 0 {
				gs.SetDifficulty(tt.chosen)
			}

			gs.ApplyLevelDifficulty(tt.levelDefault)

			if got := gs.GetDifficulty(); got != tt.want {
				t.Errorf("GetDifficulty() = %d, want %d", got, tt.want)
			}
			if gs.DifficultyChosen() != (tt.chosen >= 0) {
				t.Errorf("DifficultyChosen() = %v, want %v", gs.DifficultyChosen(), tt.chosen >= 0)
			}
		})
	}
}

func TestEnterLevelPersistsAttempt(t *testing.T) {
	manager := newTestGdataManager(t, "wavegate_attempt_test")
	gs := newGameState(manager)

	// 未清场即离开，尝试次数也应已写入存储
	gs.EnterLevel("1-1")
	gs.LeaveLevel()

	reloaded := NewProgressManager(manager)
	if attempts := reloaded.Get("1-1").Attempts; attempts != 1 {
		t.Errorf("reloaded Attempts = %d, want 1", attempts)
	}
}
