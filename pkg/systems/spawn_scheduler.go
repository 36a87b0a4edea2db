package systems

import (
	"log"
	"math"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/ecs"
)

// MinSpawnIntervalCs 最小生成间隔（厘秒）
const MinSpawnIntervalCs = 1

// SpawnScheduler 固定间隔的生成计时器
//
// 职责：
//   - 以固定间隔触发回调（每经过一个间隔触发一次）
//   - 支持启动/停止，停止后不再触发
//   - 由帧循环通过 Update(deltaTime) 驱动，不使用任何后台协程
//
// 计时状态保存在 SpawnTimerComponent 中，deltaTime 换算为厘秒累积，
// 小数部分跨帧保留。
type SpawnScheduler struct {
	entityManager *ecs.EntityManager
	// timerEntityID 计时器组件所在的实体ID（无实体管理器时为 0）
	timerEntityID ecs.EntityID
	timer         *components.SpawnTimerComponent

	callback func()

	// fireImmediately Start 后的第一次 Update 立即触发
	fireImmediately bool

	verbose bool
}

// NewSpawnScheduler 创建生成计时器（初始为停止状态）
//
// 参数：
//   - em: 实体管理器，计时器组件会挂到一个新实体上；可为 nil
//   - intervalSeconds: 触发间隔（秒），小于 0.01 秒按 0.01 秒处理
func NewSpawnScheduler(em *ecs.EntityManager, intervalSeconds float64) *SpawnScheduler {
	s := &SpawnScheduler{
		entityManager: em,
		timer: &components.SpawnTimerComponent{
			IntervalCs: secondsToCs(intervalSeconds),
		},
	}

	if em != nil {
		s.timerEntityID = em.CreateEntity()
		ecs.AddComponent(em, s.timerEntityID, s.timer)
	}

	log.Printf("[SpawnScheduler] Created (interval: %d cs, entity: %d)", s.timer.IntervalCs, s.timerEntityID)
	return s
}

func secondsToCs(seconds float64) int {
	cs := int(math.Round(seconds * 100))
	if cs < MinSpawnIntervalCs {
		cs = MinSpawnIntervalCs
	}
	return cs
}

// SetCallback 设置触发回调
func (s *SpawnScheduler) SetCallback(callback func()) {
	s.callback = callback
}

// SetFireImmediately 设置 Start 后是否立即触发第一次
func (s *SpawnScheduler) SetFireImmediately(fireImmediately bool) {
	s.fireImmediately = fireImmediately
}

// SetVerbose 设置是否输出详细日志
func (s *SpawnScheduler) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Start 启动计时器
//
// 重新装填倒计时：默认一个完整间隔后第一次触发。
// 已在运行时调用不会重置倒计时。
func (s *SpawnScheduler) Start() {
	if s.timer.IsActive {
		return
	}

	s.timer.IsActive = true
	s.timer.AccumulatedCs = 0
	s.timer.FiredCount = 0
	if s.fireImmediately {
		s.timer.CountdownCs = 0
	} else {
		s.timer.CountdownCs = s.timer.IntervalCs
	}

	log.Printf("[SpawnScheduler] Started (first fire in %d cs)", s.timer.CountdownCs)
}

// Stop 停止计时器，之后的 Update 不再触发回调
func (s *SpawnScheduler) Stop() {
	if !s.timer.IsActive {
		return
	}
	s.timer.IsActive = false
	log.Printf("[SpawnScheduler] Stopped after %d fires", s.timer.FiredCount)
}

// IsActive 是否在运行
func (s *SpawnScheduler) IsActive() bool {
	return s.timer.IsActive
}

// Interval 触发间隔（秒）
func (s *SpawnScheduler) Interval() float64 {
	return float64(s.timer.IntervalCs) / 100
}

// Remaining 距下一次触发的剩余时间（秒）
func (s *SpawnScheduler) Remaining() float64 {
	if s.timer.CountdownCs < 0 {
		return 0
	}
	return float64(s.timer.CountdownCs) / 100
}

// FiredCount 自上次 Start 以来的触发次数
func (s *SpawnScheduler) FiredCount() int {
	return s.timer.FiredCount
}

// Update 推进计时
//
// 执行流程：
//  1. 停止状态直接返回
//  2. 将 deltaTime（秒）转换为厘秒并累积，取整数部分递减倒计时
//  3. 倒计时 <= 0 时触发回调并装填下一个间隔，一帧内经过多个间隔则触发多次
//
// 回调中调用 Stop 会立即终止本帧剩余的触发。
func (s *SpawnScheduler) Update(deltaTime float64) {
	timer := s.timer
	if !timer.IsActive || deltaTime < 0 {
		return
	}

	timer.AccumulatedCs += deltaTime * 100
	deltaCs := int(timer.AccumulatedCs)
	if deltaCs > 0 {
		timer.AccumulatedCs -= float64(deltaCs)
		timer.CountdownCs -= deltaCs
	}

	for timer.IsActive && timer.CountdownCs <= 0 {
		timer.CountdownCs += timer.IntervalCs
		timer.FiredCount++

		if s.verbose {
			log.Printf("[SpawnScheduler] Fire #%d (next in %d cs)", timer.FiredCount, timer.CountdownCs)
		}

		if s.callback != nil {
			s.callback()
		}
	}
}

// Destroy 移除计时器实体
func (s *SpawnScheduler) Destroy() {
	s.Stop()
	if s.entityManager != nil && s.timerEntityID != 0 {
		s.entityManager.DestroyEntity(s.timerEntityID)
		s.timerEntityID = 0
	}
}
