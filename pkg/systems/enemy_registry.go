package systems

import (
	"log"

	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
)

// EnemyRemovedHandler 敌人移出登记表时的回调
type EnemyRemovedHandler func(id ecs.EntityID)

type registryEntry struct {
	enemy       *entities.Enemy
	unsubscribe func()
}

type removedSubscription struct {
	token   int
	handler EnemyRemovedHandler
}

// EnemyRegistry 当前关卡的存活敌人登记表
//
// 职责：
//   - 记录存活敌人（同一敌人重复登记会被忽略）
//   - 为每个敌人订阅死亡通知，死亡时移出登记表
//   - 每移出一个敌人，向所有订阅者发出一次 "enemy removed" 事件
//
// 批量清理（RemoveAll）分两阶段：先取消所有死亡订阅，再逐个强制击杀，
// 这样每个敌人只产生一次移除事件，不会因为死亡回调再次进入删除逻辑。
type EnemyRegistry struct {
	entries map[ecs.EntityID]registryEntry
	// order 登记顺序，RemoveAll 按此顺序击杀，保证事件顺序稳定
	order []ecs.EntityID

	subscribers []removedSubscription
	nextToken   int

	verbose bool
}

// NewEnemyRegistry 创建空的敌人登记表
func NewEnemyRegistry() *EnemyRegistry {
	return &EnemyRegistry{
		entries: make(map[ecs.EntityID]registryEntry),
	}
}

// SetVerbose 设置是否输出详细日志
func (r *EnemyRegistry) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// Subscribe 订阅 "enemy removed" 事件
//
// 返回取消订阅函数，可重复调用。
func (r *EnemyRegistry) Subscribe(handler EnemyRemovedHandler) (unsubscribe func()) {
	r.nextToken++
	token := r.nextToken
	r.subscribers = append(r.subscribers, removedSubscription{token: token, handler: handler})

	return func() {
		for i, sub := range r.subscribers {
			if sub.token == token {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Add 登记一个敌人
//
// 已登记或已死亡的敌人不会被重复登记。
func (r *EnemyRegistry) Add(enemy *entities.Enemy) {
	if enemy == nil || !enemy.IsAlive() {
		return
	}
	id := enemy.ID()
	if _, exists := r.entries[id]; exists {
		return
	}

	unsubscribe := enemy.OnDeath(func(dead *entities.Enemy) {
		r.handleDeath(dead.ID())
	})

	r.entries[id] = registryEntry{enemy: enemy, unsubscribe: unsubscribe}
	r.order = append(r.order, id)

	if r.verbose {
		log.Printf("[EnemyRegistry] Added enemy %d (%s), live: %d", id, enemy.Archetype(), len(r.entries))
	}
}

// handleDeath 死亡回调：移出登记表并通知订阅者
func (r *EnemyRegistry) handleDeath(id ecs.EntityID) {
	if !r.forget(id) {
		return
	}
	if r.verbose {
		log.Printf("[EnemyRegistry] Enemy %d died, live: %d", id, len(r.entries))
	}
	r.notifyRemoved(id)
}

// RemoveAll 强制清理所有存活敌人
//
// 执行顺序：
//  1. 取消所有敌人的死亡订阅
//  2. 按登记顺序强制击杀，每个敌人发出一次移除事件
//  3. 清空登记表
//
// 登记表为空时无任何效果。
func (r *EnemyRegistry) RemoveAll() {
	if len(r.entries) == 0 {
		return
	}

	// 快照：回调中可能再次调用 Add/RemoveAll
	order := r.order
	entries := r.entries
	r.order = nil
	r.entries = make(map[ecs.EntityID]registryEntry)

	for _, id := range order {
		entries[id].unsubscribe()
	}

	for _, id := range order {
		entries[id].enemy.Kill()
		r.notifyRemoved(id)
	}

	log.Printf("[EnemyRegistry] Removed all %d enemies", len(order))
}

// forget 从登记表删除，返回是否确实存在
func (r *EnemyRegistry) forget(id ecs.EntityID) bool {
	if _, exists := r.entries[id]; !exists {
		return false
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *EnemyRegistry) notifyRemoved(id ecs.EntityID) {
	subs := make([]removedSubscription, len(r.subscribers))
	copy(subs, r.subscribers)
	for _, sub := range subs {
		sub.handler(id)
	}
}

// Count 存活敌人数量
func (r *EnemyRegistry) Count() int {
	return len(r.entries)
}

// IsEmpty 是否没有存活敌人
func (r *EnemyRegistry) IsEmpty() bool {
	return len(r.entries) == 0
}

// Contains 敌人是否在登记表中
func (r *EnemyRegistry) Contains(id ecs.EntityID) bool {
	_, exists := r.entries[id]
	return exists
}

// Get 按ID查找存活敌人
func (r *EnemyRegistry) Get(id ecs.EntityID) (*entities.Enemy, bool) {
	entry, exists := r.entries[id]
	if !exists {
		return nil, false
	}
	return entry.enemy, true
}

// IDs 按登记顺序返回存活敌人ID
func (r *EnemyRegistry) IDs() []ecs.EntityID {
	ids := make([]ecs.EntityID, len(r.order))
	copy(ids, r.order)
	return ids
}
