package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// 波次类型（YAML 中的取值）
const (
	WaveKindNormal   = "normal"   // 清场后自动进入下一波
	WaveKindBoss     = "boss"     // 同 normal，表现上为首领波
	WaveKindOptional = "optional" // 清场后等待玩家手动触发下一波
)

// 默认值
const (
	// DefaultSpawnInterval 默认生成间隔（秒）
	DefaultSpawnInterval = 1.5
)

// LevelConfig 关卡配置数据结构
// 定义了关卡的基本信息和敌人波次配置
type LevelConfig struct {
	ID          string       `yaml:"id"`          // 关卡ID，如 "1-1"
	Name        string       `yaml:"name"`        // 关卡名称
	Description string       `yaml:"description"` // 关卡描述（可选）
	Waves       []WaveConfig `yaml:"waves"`       // 波次配置列表（按顺序推进）

	// SpawnInterval 生成计时器间隔（秒），每个间隔尝试生成一个敌人，默认 1.5
	SpawnInterval float64 `yaml:"spawnInterval"`

	// Difficulty 关卡默认难度，玩家未通过命令行或菜单设置难度时由 GameState 采用
	Difficulty int `yaml:"difficulty"`

	// SkipIneligible 推进波次时是否跳过难度门槛高于当前难度的波次，默认 false（严格顺序）
	SkipIneligible bool `yaml:"skipIneligible"`
}

// WaveConfig 单个波次配置
type WaveConfig struct {
	Kind          string   `yaml:"kind"`          // 波次类型："normal", "boss", "optional"，默认 "normal"
	Count         int      `yaml:"count"`         // 本波生成配额（敌人总数）
	MinDifficulty int      `yaml:"minDifficulty"` // 最低难度门槛
	Enemies       []string `yaml:"enemies"`       // 可选敌人原型ID列表，为空表示本波不产生敌人
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（"data/" 前缀优先从嵌入资源读取）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	levelConfig, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("level config %s: %w", filepath, err)
	}
	return levelConfig, nil
}

// ParseLevelConfig 解析关卡 YAML 数据，应用默认值并校验
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	// 应用默认值（向后兼容性）
	applyDefaults(&levelConfig)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}

	return &levelConfig, nil
}

// applyDefaults 为 LevelConfig 中缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig) {
	if config.SpawnInterval == 0 {
		config.SpawnInterval = DefaultSpawnInterval
	}

	for i := range config.Waves {
		if config.Waves[i].Kind == "" {
			config.Waves[i].Kind = WaveKindNormal
		}
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
//
// 注意：敌人原型是否存在在构建波次表时（wave.BuildTable）对照 EnemyCatalog 校验，
// 这里只做结构层面的检查。
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level ID is required")
	}

	if config.Name == "" {
		return fmt.Errorf("level name is required")
	}

	if config.SpawnInterval < 0 {
		return fmt.Errorf("spawnInterval cannot be negative, got %v", config.SpawnInterval)
	}

	if config.Difficulty < 0 {
		return fmt.Errorf("difficulty cannot be negative, got %d", config.Difficulty)
	}

	// 空波次列表是合法的：关卡一开始即完成
	for i, wave := range config.Waves {
		if !IsValidWaveKind(wave.Kind) {
			return fmt.Errorf("wave %d: kind must be one of: normal, boss, optional, got %q", i, wave.Kind)
		}

		if wave.Count < 0 {
			return fmt.Errorf("wave %d: count cannot be negative, got %d", i, wave.Count)
		}

		if wave.MinDifficulty < 0 {
			return fmt.Errorf("wave %d: minDifficulty cannot be negative, got %d", i, wave.MinDifficulty)
		}

		for j, enemy := range wave.Enemies {
			if enemy == "" {
				return fmt.Errorf("wave %d, enemy %d: archetype id is required", i, j)
			}
		}
	}

	return nil
}

// IsValidWaveKind 检查波次类型字符串是否合法
func IsValidWaveKind(kind string) bool {
	switch kind {
	case WaveKindNormal, WaveKindBoss, WaveKindOptional:
		return true
	}
	return false
}

// TotalEnemies 计算关卡所有波次的配额总和
func (c *LevelConfig) TotalEnemies() int {
	total := 0
	for _, wave := range c.Waves {
		total += wave.Count
	}
	return total
}
