package systems

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
	"github.com/decker502/wavegate/pkg/wave"
)

// 战场默认尺寸
const (
	DefaultFieldWidth  = 800.0
	DefaultFieldHeight = 480.0
	DefaultLaneCount   = 5
)

// EnemyWorldConfig 战场配置
type EnemyWorldConfig struct {
	Width  float64 // 战场宽度（像素）
	Height float64 // 战场高度（像素）
	Lanes  int     // 行数，敌人随机进入某一行

	// RNG 选行随机源，nil 时按时间播种
	RNG wave.RandomSource
}

// EnemySnapshot 渲染用的敌人快照
type EnemySnapshot struct {
	ID          ecs.EntityID
	Archetype   string
	DisplayName string
	Glyph       rune
	Color       [4]uint8
	X, Y        float64
	Radius      float64
	Health      int
	MaxHealth   int
}

// EnemyWorld 基于 ECS 的战场
//
// 职责：
//   - Insert：为新敌人添加位置、速度、生命周期组件，从右侧进入随机一行
//   - Update：移动敌人，生命周期到期的敌人视为逃逸并击杀，帧末清理实体
//   - HitAt/Damage：扣血，血量归零时击杀
//
// 敌人死亡通过 entities.Enemy.Kill 触发，登记表由死亡通知得知。
type EnemyWorld struct {
	entityManager *ecs.EntityManager
	catalog       *config.EnemyCatalog
	lifetime      *LifetimeSystem
	rng           wave.RandomSource

	width  float64
	height float64
	lanes  int

	enemies map[ecs.EntityID]*entities.Enemy

	escaped int
	killed  int
}

// NewEnemyWorld 创建战场
//
// 参数：
//   - em: 实体管理器（与 ArchetypeSpec 共用）
//   - catalog: 敌人原型目录，用于查询速度与生命周期；可为 nil（敌人静止、永不过期）
//   - cfg: 战场配置，零值字段使用默认值
func NewEnemyWorld(em *ecs.EntityManager, catalog *config.EnemyCatalog, cfg EnemyWorldConfig) *EnemyWorld {
	if cfg.Width <= 0 {
		cfg.Width = DefaultFieldWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultFieldHeight
	}
	if cfg.Lanes <= 0 {
		cfg.Lanes = DefaultLaneCount
	}
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &EnemyWorld{
		entityManager: em,
		catalog:       catalog,
		lifetime:      NewLifetimeSystem(em),
		rng:           rng,
		width:         cfg.Width,
		height:        cfg.Height,
		lanes:         cfg.Lanes,
		enemies:       make(map[ecs.EntityID]*entities.Enemy),
	}
}

// Insert 把敌人放入战场
func (w *EnemyWorld) Insert(enemy *entities.Enemy) {
	if enemy == nil || !enemy.IsAlive() {
		return
	}
	id := enemy.ID()

	var archetype config.EnemyArchetype
	if w.catalog != nil {
		archetype, _ = w.catalog.Get(enemy.Archetype())
	}

	radius := archetype.Radius
	if comp, ok := ecs.GetComponent[*components.EnemyComponent](w.entityManager, id); ok {
		radius = comp.Radius
	}

	lane := w.rng.Intn(w.lanes)
	laneHeight := w.height / float64(w.lanes)

	ecs.AddComponent(w.entityManager, id, &components.PositionComponent{
		X: w.width + radius,
		Y: laneHeight*float64(lane) + laneHeight/2,
	})
	ecs.AddComponent(w.entityManager, id, &components.VelocityComponent{
		VX: -archetype.Speed,
	})
	if archetype.Lifetime > 0 {
		ecs.AddComponent(w.entityManager, id, &components.LifetimeComponent{
			MaxLifetime: archetype.Lifetime,
		})
	}

	w.enemies[id] = enemy
}

// Update 推进战场一帧
func (w *EnemyWorld) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](w.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](w.entityManager, id)
		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}

	for _, id := range w.lifetime.Update(deltaTime) {
		if enemy, ok := w.enemies[id]; ok && enemy.IsAlive() {
			w.escaped++
			log.Printf("[EnemyWorld] Enemy %d (%s) escaped", id, enemy.Archetype())
			enemy.Kill()
		}
	}

	w.sweep()
}

// sweep 移除已死亡的敌人并清理实体
func (w *EnemyWorld) sweep() {
	for id, enemy := range w.enemies {
		if !enemy.IsAlive() {
			delete(w.enemies, id)
		}
	}
	w.entityManager.RemoveMarkedEntities()
}

// Damage 对指定敌人造成伤害，返回是否因此死亡
func (w *EnemyWorld) Damage(id ecs.EntityID, amount int) bool {
	enemy, ok := w.enemies[id]
	if !ok || !enemy.IsAlive() || amount <= 0 {
		return false
	}

	health, ok := ecs.GetComponent[*components.HealthComponent](w.entityManager, id)
	if ok {
		health.CurrentHealth -= amount
		if health.CurrentHealth > 0 {
			return false
		}
	}

	w.killed++
	enemy.Kill()
	return true
}

// HitAt 命中坐标处的敌人（多个重叠时取ID最小的）
//
// 返回：
//   - ecs.EntityID: 被命中的敌人，未命中时为 0
//   - bool: 是否因此死亡
func (w *EnemyWorld) HitAt(x, y float64, damage int) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](w.entityManager) {
		enemy, ok := w.enemies[id]
		if !ok || !enemy.IsAlive() {
			continue
		}
		comp, _ := ecs.GetComponent[*components.EnemyComponent](w.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.entityManager, id)

		dx, dy := x-pos.X, y-pos.Y
		if dx*dx+dy*dy <= comp.Radius*comp.Radius {
			return id, w.Damage(id, damage)
		}
	}
	return 0, false
}

// Snapshot 返回所有存活敌人的渲染快照（按ID升序）
func (w *EnemyWorld) Snapshot() []EnemySnapshot {
	ids := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](w.entityManager)
	snapshots := make([]EnemySnapshot, 0, len(ids))

	for _, id := range ids {
		enemy, ok := w.enemies[id]
		if !ok || !enemy.IsAlive() {
			continue
		}
		comp, _ := ecs.GetComponent[*components.EnemyComponent](w.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.entityManager, id)

		snap := EnemySnapshot{
			ID:          id,
			Archetype:   comp.Archetype,
			DisplayName: comp.DisplayName,
			Glyph:       comp.Glyph,
			Color:       comp.Color,
			X:           pos.X,
			Y:           pos.Y,
			Radius:      comp.Radius,
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](w.entityManager, id); ok {
			snap.Health = health.CurrentHealth
			snap.MaxHealth = health.MaxHealth
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots
}

// Count 战场上存活敌人数量
func (w *EnemyWorld) Count() int {
	count := 0
	for _, enemy := range w.enemies {
		if enemy.IsAlive() {
			count++
		}
	}
	return count
}

// Escaped 逃逸的敌人数量
func (w *EnemyWorld) Escaped() int {
	return w.escaped
}

// Killed 被击杀的敌人数量（不含逃逸和强制清理）
func (w *EnemyWorld) Killed() int {
	return w.killed
}

// Size 战场尺寸
func (w *EnemyWorld) Size() (width, height float64) {
	return w.width, w.height
}

// Lanes 行数
func (w *EnemyWorld) Lanes() int {
	return w.lanes
}
