package entities

import "github.com/decker502/wavegate/pkg/ecs"

// DeathHandler 敌人死亡回调
type DeathHandler func(enemy *Enemy)

type deathSubscription struct {
	token   int
	handler DeathHandler
}

// Enemy 关卡中的一个活动敌人
//
// 职责：
//   - 持有实体ID与原型ID
//   - 维护存活状态
//   - 提供一次性的死亡通知：第一次 Kill() 通知所有订阅者，之后的 Kill() 无任何效果
//
// 订阅通过 OnDeath 显式注册并返回取消函数，
// EnemyRegistry 依赖这一点在批量清理时先取消订阅再强制击杀。
type Enemy struct {
	id        ecs.EntityID
	archetype string
	alive     bool

	entityManager *ecs.EntityManager // 可为 nil（纯逻辑测试）

	subscriptions []deathSubscription
	nextToken     int
}

// NewEnemy 创建一个存活的敌人
//
// 参数：
//   - em: 实体管理器，死亡时标记实体删除；可为 nil
//   - id: 实体ID
//   - archetype: 敌人原型ID
func NewEnemy(em *ecs.EntityManager, id ecs.EntityID, archetype string) *Enemy {
	return &Enemy{
		id:            id,
		archetype:     archetype,
		alive:         true,
		entityManager: em,
	}
}

// ID 返回实体ID
func (e *Enemy) ID() ecs.EntityID {
	return e.id
}

// Archetype 返回敌人原型ID
func (e *Enemy) Archetype() string {
	return e.archetype
}

// IsAlive 是否存活
func (e *Enemy) IsAlive() bool {
	return e.alive
}

// OnDeath 订阅死亡通知
//
// 返回的取消函数可以重复调用。对已死亡的敌人订阅不会再收到通知。
func (e *Enemy) OnDeath(handler DeathHandler) (unsubscribe func()) {
	e.nextToken++
	token := e.nextToken
	e.subscriptions = append(e.subscriptions, deathSubscription{token: token, handler: handler})

	return func() {
		for i, sub := range e.subscriptions {
			if sub.token == token {
				e.subscriptions = append(e.subscriptions[:i], e.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount 当前死亡订阅数量
func (e *Enemy) SubscriberCount() int {
	return len(e.subscriptions)
}

// Kill 使敌人死亡
//
// 执行顺序：
//  1. 标记为死亡（回调中再次调用 Kill 直接返回）
//  2. 标记实体删除
//  3. 按订阅顺序通知订阅者（使用快照，回调中取消订阅不影响本次遍历）
func (e *Enemy) Kill() {
	if !e.alive {
		return
	}
	e.alive = false

	if e.entityManager != nil {
		e.entityManager.DestroyEntity(e.id)
	}

	subs := make([]deathSubscription, len(e.subscriptions))
	copy(subs, e.subscriptions)
	e.subscriptions = nil

	for _, sub := range subs {
		sub.handler(e)
	}
}
