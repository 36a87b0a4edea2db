package systems

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
	"github.com/decker502/wavegate/pkg/wave"
)

// World 战场，生成的敌人放入其中
type World interface {
	Insert(enemy *entities.Enemy)
}

// Navigator 关卡退出时的导航目标
type Navigator interface {
	ExitLevel()
}

// WaveListener 波次进度监听器
type WaveListener interface {
	OnWaveStarted(index int)
	OnWaveCleared(index int)
	OnLevelComplete()
}

// WaveListenerFuncs 用函数实现 WaveListener，未设置的字段忽略
type WaveListenerFuncs struct {
	WaveStarted   func(index int)
	WaveCleared   func(index int)
	LevelComplete func()
}

func (f WaveListenerFuncs) OnWaveStarted(index int) {
	if f.WaveStarted != nil {
		f.WaveStarted(index)
	}
}

func (f WaveListenerFuncs) OnWaveCleared(index int) {
	if f.WaveCleared != nil {
		f.WaveCleared(index)
	}
}

func (f WaveListenerFuncs) OnLevelComplete() {
	if f.LevelComplete != nil {
		f.LevelComplete()
	}
}

// WaveState 波次控制器状态
//
// StateWaveCleared 只在 OnWaveCleared 回调期间可见，回调返回后立即转为
// StateAwaitingAdvance（可选波）、StateSpawning 或 StateLevelComplete。
// 已清场的可选波对外报告 StateAwaitingAdvance。
type WaveState int

const (
	// StateSpawning 正在生成当前波次
	StateSpawning WaveState = iota
	// StateWaveCleared 当前波次已清场（瞬时状态）
	StateWaveCleared
	// StateAwaitingAdvance 可选波已清场，等待玩家请求下一波
	StateAwaitingAdvance
	// StateLevelComplete 所有波次完成（终态）
	StateLevelComplete
)

func (s WaveState) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateWaveCleared:
		return "wave-cleared"
	case StateAwaitingAdvance:
		return "awaiting-advance"
	case StateLevelComplete:
		return "level-complete"
	}
	return fmt.Sprintf("WaveState(%d)", int(s))
}

// WaveControllerConfig 波次控制器配置
type WaveControllerConfig struct {
	// RNG 选择敌人原型的随机源，nil 时使用按时间播种的 *rand.Rand
	RNG wave.RandomSource

	// Difficulty 读取当前难度，nil 时视为 0
	Difficulty func() int

	// SkipIneligible 推进时跳过难度不足的波次
	SkipIneligible bool

	// Verbose 输出每次生成的详细日志
	Verbose bool
}

// WaveController 波次控制器
//
// 职责：
//   - 按波次表顺序推进波次（索引只增不减）
//   - 每次计时器触发时按配额生成一个敌人
//   - 监听登记表的移除事件，判断清场
//   - 普通波/首领波清场后自动推进；可选波清场后等待 RequestNextWave
//   - Teardown 时停止计时器、清理全部敌人并离开关卡
//
// 所有方法都在同一个更新循环中调用，内部不加锁。
type WaveController struct {
	table     *wave.Table
	registry  *EnemyRegistry
	scheduler *SpawnScheduler
	world     World
	navigator Navigator
	selector  *WaveSelector

	rng        wave.RandomSource
	difficulty func() int

	waveIndex int
	spawned   int
	state     WaveState

	started   bool
	tornDown  bool
	advancing bool

	listeners           []WaveListener
	unsubscribeRegistry func()

	verbose bool
}

// NewWaveController 创建波次控制器
//
// 参数：
//   - table: 波次表
//   - registry: 存活敌人登记表（控制器会订阅其移除事件）
//   - scheduler: 生成计时器（控制器会设置其回调）
//   - world: 战场
//   - navigator: 关卡退出导航，可为 nil
//   - cfg: 配置
//
// 返回的控制器处于第 0 波的 Spawning 状态（空波次表则直接为 LevelComplete），
// 调用 Start 后计时器开始运行。
func NewWaveController(
	table *wave.Table,
	registry *EnemyRegistry,
	scheduler *SpawnScheduler,
	world World,
	navigator Navigator,
	cfg WaveControllerConfig,
) *WaveController {
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	difficulty := cfg.Difficulty
	if difficulty == nil {
		difficulty = func() int { return 0 }
	}

	c := &WaveController{
		table:      table,
		registry:   registry,
		scheduler:  scheduler,
		world:      world,
		navigator:  navigator,
		selector:   NewWaveSelector(table, cfg.SkipIneligible),
		rng:        rng,
		difficulty: difficulty,
		verbose:    cfg.Verbose,
	}

	c.waveIndex = c.selector.Next(0, difficulty())
	if c.table.InRange(c.waveIndex) {
		c.state = StateSpawning
	} else {
		c.state = StateLevelComplete
	}

	c.unsubscribeRegistry = registry.Subscribe(c.onEnemyRemoved)
	scheduler.SetCallback(c.AttemptSpawn)

	log.Printf("[WaveController] Created: %d waves, starting at wave %d (%s)", table.Len(), c.waveIndex, c.state)
	return c
}

// AddListener 注册波次进度监听器
func (c *WaveController) AddListener(listener WaveListener) {
	c.listeners = append(c.listeners, listener)
}

// Start 启动计时器并通知第一个波次开始
//
// 重复调用无效。
func (c *WaveController) Start() {
	if c.started || c.tornDown {
		return
	}
	c.started = true

	if c.state == StateLevelComplete {
		log.Printf("[WaveController] Level has no playable waves, complete immediately")
		for _, l := range c.listeners {
			l.OnLevelComplete()
		}
		return
	}

	c.scheduler.Start()
	c.notifyWaveStarted(c.waveIndex)
}

// Update 推进计时器
func (c *WaveController) Update(deltaTime float64) {
	if c.tornDown || !c.started {
		return
	}
	c.scheduler.Update(deltaTime)
}

// AttemptSpawn 计时器触发时尝试生成一个敌人
//
// 非 Spawning 状态或配额已满时不生成。
// 原型集合为空时本次不产生敌人，但仍计入配额。
// 生成后重新检查清场条件。
func (c *WaveController) AttemptSpawn() {
	if c.tornDown || c.state != StateSpawning {
		return
	}

	current := c.table.Current(c.waveIndex)
	if c.spawned >= current.TargetCount() {
		c.checkCleared()
		return
	}

	c.spawned++
	spec, ok := current.PickRandomSpec(c.rng)
	if ok {
		enemy := spec.Produce()
		c.world.Insert(enemy)
		c.registry.Add(enemy)

		if c.verbose {
			log.Printf("[WaveController] Wave %d: spawned %s (#%d/%d, live: %d)",
				c.waveIndex, spec.Archetype(), c.spawned, current.TargetCount(), c.registry.Count())
		}
	} else if c.verbose {
		log.Printf("[WaveController] Wave %d: no archetypes, counted empty spawn %d/%d",
			c.waveIndex, c.spawned, current.TargetCount())
	}

	c.checkCleared()
}

// RequestNextWave 玩家请求进入下一波
//
// 仅当没有存活敌人且当前波次为可选波时生效（无论配额是否生成完），
// 其他情况静默忽略并返回 false。
func (c *WaveController) RequestNextWave() bool {
	if c.tornDown || c.state == StateLevelComplete {
		return false
	}

	current := c.table.Current(c.waveIndex)
	if !current.IsOptional() {
		if c.verbose {
			log.Printf("[WaveController] Next wave request ignored: wave %d is %s", c.waveIndex, current.Kind())
		}
		return false
	}
	if !c.registry.IsEmpty() {
		if c.verbose {
			log.Printf("[WaveController] Next wave request ignored: %d enemies alive", c.registry.Count())
		}
		return false
	}

	log.Printf("[WaveController] Next wave requested on optional wave %d", c.waveIndex)
	c.advance(c.waveIndex)
	return true
}

// Teardown 结束关卡
//
// 先停止计时器，再清理全部敌人，最后离开关卡。重复调用无效。
func (c *WaveController) Teardown() {
	if c.tornDown {
		return
	}
	c.tornDown = true

	c.scheduler.Stop()
	c.registry.RemoveAll()
	if c.unsubscribeRegistry != nil {
		c.unsubscribeRegistry()
		c.unsubscribeRegistry = nil
	}

	log.Printf("[WaveController] Torn down at wave %d (%s)", c.waveIndex, c.state)

	if c.navigator != nil {
		c.navigator.ExitLevel()
	}
}

// onEnemyRemoved 登记表移除事件
func (c *WaveController) onEnemyRemoved(id ecs.EntityID) {
	if c.tornDown || c.advancing {
		return
	}
	if c.verbose {
		log.Printf("[WaveController] Enemy %d removed, live: %d", id, c.registry.Count())
	}
	c.checkCleared()
}

// checkCleared 检查当前波次是否清场（无存活敌人且配额已生成完）
func (c *WaveController) checkCleared() {
	if c.state != StateSpawning {
		return
	}
	current := c.table.Current(c.waveIndex)
	if !c.registry.IsEmpty() || c.spawned < current.TargetCount() {
		return
	}

	index := c.waveIndex
	c.state = StateWaveCleared
	log.Printf("[WaveController] Wave %d cleared (%s)", index, current.Kind())
	for _, l := range c.listeners {
		l.OnWaveCleared(index)
	}

	// 监听器中可能已经 Teardown 或推进
	if c.tornDown || c.waveIndex != index || c.state != StateWaveCleared {
		return
	}

	if current.IsOptional() {
		c.state = StateAwaitingAdvance
		log.Printf("[WaveController] Wave %d awaiting next wave request", index)
		return
	}
	c.advance(index)
}

// advance 从 fromIndex 推进到下一个波次
//
// 同一个波次索引只会推进一次：调用时索引已变化则忽略。
func (c *WaveController) advance(fromIndex int) {
	if c.tornDown || c.state == StateLevelComplete || c.waveIndex != fromIndex {
		return
	}

	c.advancing = true
	c.registry.RemoveAll()
	c.advancing = false

	next := c.selector.Next(fromIndex+1, c.difficulty())
	c.waveIndex = next
	c.spawned = 0

	if !c.table.InRange(next) {
		c.state = StateLevelComplete
		c.scheduler.Stop()
		log.Printf("[WaveController] Level complete after wave %d", fromIndex)
		for _, l := range c.listeners {
			l.OnLevelComplete()
		}
		return
	}

	c.state = StateSpawning
	c.notifyWaveStarted(next)
}

func (c *WaveController) notifyWaveStarted(index int) {
	current := c.table.Current(index)
	log.Printf("[WaveController] Wave %d/%d started (%s, target %d)",
		index+1, c.table.Len(), current.Kind(), current.TargetCount())
	for _, l := range c.listeners {
		l.OnWaveStarted(index)
	}
}

// WaveIndex 当前波次索引（完成后等于波次数量）
func (c *WaveController) WaveIndex() int {
	return c.waveIndex
}

// SpawnedThisWave 当前波次已生成数量（含空生成）
func (c *WaveController) SpawnedThisWave() int {
	return c.spawned
}

// State 当前状态
func (c *WaveController) State() WaveState {
	return c.state
}

// CurrentWave 当前波次，关卡完成后返回 (nil, false)
func (c *WaveController) CurrentWave() (*wave.Wave, bool) {
	if !c.table.InRange(c.waveIndex) {
		return nil, false
	}
	return c.table.Current(c.waveIndex), true
}

// WaveCount 波次总数
func (c *WaveController) WaveCount() int {
	return c.table.Len()
}

// IsLevelComplete 是否已完成所有波次
func (c *WaveController) IsLevelComplete() bool {
	return c.state == StateLevelComplete
}

// IsTornDown 是否已结束
func (c *WaveController) IsTornDown() bool {
	return c.tornDown
}

// CanRequestNextWave 当前是否允许请求下一波（供 UI 决定按钮状态）
func (c *WaveController) CanRequestNextWave() bool {
	if c.tornDown || c.state == StateLevelComplete {
		return false
	}
	return c.table.Current(c.waveIndex).IsOptional() && c.registry.IsEmpty()
}

// LiveEnemies 存活敌人数量
func (c *WaveController) LiveEnemies() int {
	return c.registry.Count()
}
