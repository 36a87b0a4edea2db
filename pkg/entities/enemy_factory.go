package entities

import (
	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
)

// ArchetypeSpec 基于实体管理器的敌人原型
//
// 不可变：原型数据在构造时复制，多个波次共享同一个 ArchetypeSpec。
// Produce 每次创建一个全新实体，调用之间不共享可变状态。
type ArchetypeSpec struct {
	id            string
	archetype     config.EnemyArchetype
	color         [4]uint8
	glyph         rune
	entityManager *ecs.EntityManager
}

// NewArchetypeSpec 创建敌人原型
//
// 参数：
//   - em: 实体管理器
//   - id: 原型ID
//   - archetype: 已校验的原型配置（颜色格式错误时回退为白色）
func NewArchetypeSpec(em *ecs.EntityManager, id string, archetype config.EnemyArchetype) *ArchetypeSpec {
	color, err := config.ParseHexColor(archetype.Color)
	if err != nil {
		color = [4]uint8{255, 255, 255, 255}
	}

	glyph := '?'
	if r := []rune(archetype.Glyph); len(r) > 0 {
		glyph = r[0]
	}

	return &ArchetypeSpec{
		id:            id,
		archetype:     archetype,
		color:         color,
		glyph:         glyph,
		entityManager: em,
	}
}

// Archetype 返回原型ID
func (s *ArchetypeSpec) Archetype() string {
	return s.id
}

// Config 返回原型配置副本
func (s *ArchetypeSpec) Config() config.EnemyArchetype {
	return s.archetype
}

// Produce 创建一个新的敌人实体
//
// 实体携带 EnemyComponent 与 HealthComponent；
// 位置、速度、生命周期由 World.Insert 在放入战场时添加。
func (s *ArchetypeSpec) Produce() *Enemy {
	entityID := s.entityManager.CreateEntity()

	s.entityManager.AddComponent(entityID, &components.EnemyComponent{
		Archetype:   s.id,
		DisplayName: s.archetype.Name,
		Glyph:       s.glyph,
		Color:       s.color,
		Radius:      s.archetype.Radius,
	})

	s.entityManager.AddComponent(entityID, &components.HealthComponent{
		CurrentHealth: s.archetype.Health,
		MaxHealth:     s.archetype.Health,
	})

	return NewEnemy(s.entityManager, entityID, s.id)
}
