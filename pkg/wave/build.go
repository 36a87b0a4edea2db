package wave

import (
	"fmt"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
)

// SpecFactory 根据原型ID创建 EnemySpec
type SpecFactory func(id string, archetype config.EnemyArchetype) EnemySpec

// ECSSpecFactory 返回基于实体管理器的原型工厂
func ECSSpecFactory(em *ecs.EntityManager) SpecFactory {
	return func(id string, archetype config.EnemyArchetype) EnemySpec {
		return entities.NewArchetypeSpec(em, id, archetype)
	}
}

// BuildTable 根据关卡配置构建波次表
//
// 每个原型只创建一个 EnemySpec，被所有引用它的波次共享。
// 引用了目录中不存在的原型时返回错误（原型只在这里校验一次）。
//
// 参数：
//   - level: 已校验的关卡配置
//   - catalog: 敌人原型目录
//   - factory: 原型工厂
func BuildTable(level *config.LevelConfig, catalog *config.EnemyCatalog, factory SpecFactory) (*Table, error) {
	if level == nil {
		return nil, fmt.Errorf("level config is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("enemy catalog is nil")
	}

	shared := make(map[string]EnemySpec)
	waves := make([]*Wave, 0, len(level.Waves))

	for i, waveConfig := range level.Waves {
		kind, err := ParseKind(waveConfig.Kind)
		if err != nil {
			return nil, fmt.Errorf("wave %d: %w", i, err)
		}

		specs := make([]EnemySpec, 0, len(waveConfig.Enemies))
		for _, id := range waveConfig.Enemies {
			spec, ok := shared[id]
			if !ok {
				archetype, found := catalog.Get(id)
				if !found {
					return nil, fmt.Errorf("wave %d: unknown enemy archetype %q", i, id)
				}
				spec = factory(id, archetype)
				shared[id] = spec
			}
			specs = append(specs, spec)
		}

		waves = append(waves, New(kind, waveConfig.Count, waveConfig.MinDifficulty, specs...))
	}

	return NewTable(waves...), nil
}
