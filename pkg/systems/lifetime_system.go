package systems

import (
	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
//
// 只负责计时和标记过期，过期实体如何处理由调用方决定
// （EnemyWorld 把过期敌人视为逃逸并击杀）。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
//
// 返回本帧新过期的实体ID（每个实体只返回一次，按ID升序）。
// 已标记删除的实体不再计时。
func (s *LifetimeSystem) Update(deltaTime float64) []ecs.EntityID {
	var expired []ecs.EntityID

	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		lifetime.CurrentLifetime += deltaTime
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
			expired = append(expired, id)
		}
	}

	return expired
}
