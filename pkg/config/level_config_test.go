package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadLevelConfig 测试关卡配置文件加载
func TestLoadLevelConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "test-level.yaml")

		validYAML := `id: "1-1"
name: "Test Level"
description: "A test level"
spawnInterval: 0.8
difficulty: 2
waves:
  - kind: optional
    count: 2
    enemies: [grunt]
  - count: 1
    minDifficulty: 3
    enemies: [brute, grunt]
  - kind: boss
    count: 1
    enemies: [warlord]
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		config, err := LoadLevelConfig(testFile)
		if err != nil {
			t.Fatalf("LoadLevelConfig() failed: %v", err)
		}

		if config.ID != "1-1" {
			t.Errorf("Expected ID '1-1', got '%s'", config.ID)
		}
		if config.SpawnInterval != 0.8 {
			t.Errorf("Expected SpawnInterval 0.8, got %v", config.SpawnInterval)
		}
		if config.Difficulty != 2 {
			t.Errorf("Expected Difficulty 2, got %d", config.Difficulty)
		}
		if len(config.Waves) != 3 {
			t.Fatalf("Expected 3 waves, got %d", len(config.Waves))
		}

		// 第二波未写 kind，应默认为 normal
		if config.Waves[1].Kind != WaveKindNormal {
			t.Errorf("Wave 2: expected default kind %q, got %q", WaveKindNormal, config.Waves[1].Kind)
		}
		if config.Waves[1].MinDifficulty != 3 {
			t.Errorf("Wave 2: expected minDifficulty 3, got %d", config.Waves[1].MinDifficulty)
		}
		if got := strings.Join(config.Waves[1].Enemies, ","); got != "brute,grunt" {
			t.Errorf("Wave 2: expected enemies brute,grunt, got %s", got)
		}
		if config.TotalEnemies() != 4 {
			t.Errorf("TotalEnemies() = %d, want 4", config.TotalEnemies())
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadLevelConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

// TestParseLevelConfigDefaults 测试默认值
func TestParseLevelConfigDefaults(t *testing.T) {
	config, err := ParseLevelConfig([]byte("id: a\nname: b\nwaves: []\n"))
	if err != nil {
		t.Fatalf("ParseLevelConfig() failed: %v", err)
	}
	if config.SpawnInterval != DefaultSpawnInterval {
		t.Errorf("SpawnInterval = %v, want default %v", config.SpawnInterval, DefaultSpawnInterval)
	}
	if len(config.Waves) != 0 {
		t.Errorf("expected empty wave list to be accepted, got %d waves", len(config.Waves))
	}
}

// TestValidateLevelConfig 测试各类非法配置
func TestValidateLevelConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "缺少ID",
			yaml:    "name: x\n",
			wantErr: "level ID is required",
		},
		{
			name:    "缺少名称",
			yaml:    "id: x\n",
			wantErr: "level name is required",
		},
		{
			name:    "负的生成间隔",
			yaml:    "id: x\nname: y\nspawnInterval: -1\n",
			wantErr: "spawnInterval cannot be negative",
		},
		{
			name:    "非法波次类型",
			yaml:    "id: x\nname: y\nwaves:\n  - kind: secret\n    count: 1\n",
			wantErr: "wave 0: kind must be one of",
		},
		{
			name:    "负配额",
			yaml:    "id: x\nname: y\nwaves:\n  - count: -1\n",
			wantErr: "wave 0: count cannot be negative",
		},
		{
			name:    "负难度门槛",
			yaml:    "id: x\nname: y\nwaves:\n  - count: 1\n    minDifficulty: -2\n",
			wantErr: "wave 0: minDifficulty cannot be negative",
		},
		{
			name:    "空原型ID",
			yaml:    "id: x\nname: y\nwaves:\n  - count: 1\n    enemies: [\"\"]\n",
			wantErr: "wave 0, enemy 0: archetype id is required",
		},
		{
			name:    "YAML语法错误",
			yaml:    "id: [unclosed\n",
			wantErr: "failed to parse level config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevelConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestShippedLevels 校验仓库自带的关卡文件都能通过加载
func TestShippedLevels(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("..", "..", "data", "levels", "*.yaml"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) == 0 {
		t.Skip("no shipped levels found")
	}

	for _, path := range matches {
		t.Run(filepath.Base(path), func(t *testing.T) {
			if _, err := LoadLevelConfig(path); err != nil {
				t.Errorf("LoadLevelConfig(%s) failed: %v", path, err)
			}
		})
	}
}
