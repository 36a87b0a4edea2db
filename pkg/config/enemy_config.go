package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnemyArchetype 单个敌人原型的属性配置
type EnemyArchetype struct {
	Name     string  `yaml:"name"`     // 显示名称
	Health   int     `yaml:"health"`   // 初始血量
	Speed    float64 `yaml:"speed"`    // 移动速度（像素/秒）
	Lifetime float64 `yaml:"lifetime"` // 走出战场所需时间（秒），到期视为逃逸死亡，0 表示永不过期
	Radius   float64 `yaml:"radius"`   // 半径（像素），默认 12
	Glyph    string  `yaml:"glyph"`    // 终端显示字符，默认取名称首字母
	Color    string  `yaml:"color"`    // 颜色 "#RRGGBB"，默认白色
}

// EnemyCatalog 敌人原型配置文件结构
type EnemyCatalog struct {
	Enemies map[string]EnemyArchetype `yaml:"enemies"` // 原型ID到属性的映射
}

// LoadEnemyCatalog 从 YAML 文件加载敌人原型配置
func LoadEnemyCatalog(filepath string) (*EnemyCatalog, error) {
	data, err := readConfigFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy catalog file %s: %w", filepath, err)
	}

	catalog, err := ParseEnemyCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("enemy catalog %s: %w", filepath, err)
	}
	return catalog, nil
}

// ParseEnemyCatalog 解析敌人原型 YAML 数据
func ParseEnemyCatalog(data []byte) (*EnemyCatalog, error) {
	var catalog EnemyCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse enemy catalog YAML: %w", err)
	}

	applyArchetypeDefaults(&catalog)

	if err := validateEnemyCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid enemy catalog: %w", err)
	}

	return &catalog, nil
}

func applyArchetypeDefaults(catalog *EnemyCatalog) {
	for id, archetype := range catalog.Enemies {
		if archetype.Name == "" {
			archetype.Name = id
		}
		if archetype.Radius == 0 {
			archetype.Radius = 12
		}
		if archetype.Glyph == "" && archetype.Name != "" {
			archetype.Glyph = strings.ToUpper(string([]rune(archetype.Name)[:1]))
		}
		if archetype.Color == "" {
			archetype.Color = "#FFFFFF"
		}
		catalog.Enemies[id] = archetype
	}
}

// validateEnemyCatalog 验证敌人原型配置的完整性和合法性
func validateEnemyCatalog(catalog *EnemyCatalog) error {
	if len(catalog.Enemies) == 0 {
		return fmt.Errorf("at least one enemy archetype is required")
	}

	// 按ID排序后校验，保证错误信息稳定
	for _, id := range catalog.IDs() {
		archetype := catalog.Enemies[id]

		if id == "" {
			return fmt.Errorf("enemy archetype id cannot be empty")
		}

		if archetype.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", id, archetype.Health)
		}

		if archetype.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %v", id, archetype.Speed)
		}

		if archetype.Lifetime < 0 {
			return fmt.Errorf("enemy %s: lifetime cannot be negative, got %v", id, archetype.Lifetime)
		}

		if archetype.Radius < 0 {
			return fmt.Errorf("enemy %s: radius cannot be negative, got %v", id, archetype.Radius)
		}

		if _, err := ParseHexColor(archetype.Color); err != nil {
			return fmt.Errorf("enemy %s: %w", id, err)
		}
	}

	return nil
}

// Get 按ID查找原型
func (c *EnemyCatalog) Get(id string) (EnemyArchetype, bool) {
	archetype, ok := c.Enemies[id]
	return archetype, ok
}

// IDs 返回排序后的原型ID列表
func (c *EnemyCatalog) IDs() []string {
	ids := make([]string, 0, len(c.Enemies))
	for id := range c.Enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA" 颜色
func ParseHexColor(s string) ([4]uint8, error) {
	var rgba [4]uint8
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return rgba, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgba, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	rgba[0] = uint8(v >> 24)
	rgba[1] = uint8(v >> 16)
	rgba[2] = uint8(v >> 8)
	rgba[3] = uint8(v)
	return rgba, nil
}
