// Package level 组装一个可运行的关卡：配置 → 波次表 → 战场 → 波次控制器。
//
// 桌面场景、终端前端和无界面模拟器共用同一套组装逻辑，
// 区别只在于谁驱动 Update、谁提供 Navigator。
package level

import (
	"fmt"
	"log"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/systems"
	"github.com/decker502/wavegate/pkg/wave"
)

// Options 关卡会话配置
type Options struct {
	// Difficulty 读取当前难度
	Difficulty func() int

	// Navigator 关卡结束时的导航目标，可为 nil
	Navigator systems.Navigator

	// RNG 原型选择与选行的随机源，nil 时按时间播种
	RNG wave.RandomSource

	// World 战场尺寸，零值使用默认值
	World systems.EnemyWorldConfig

	// FireImmediately 关卡开始后立即生成第一个敌人
	FireImmediately bool

	Verbose bool
}

// Session 一个运行中的关卡
type Session struct {
	Level      *config.LevelConfig
	Catalog    *config.EnemyCatalog
	Entities   *ecs.EntityManager
	Table      *wave.Table
	World      *systems.EnemyWorld
	Registry   *systems.EnemyRegistry
	Scheduler  *systems.SpawnScheduler
	Controller *systems.WaveController

	elapsed float64
}

// Load 按关卡ID加载关卡配置和敌人目录
func Load(levelID string) (*config.LevelConfig, *config.EnemyCatalog, error) {
	levelConfig, err := config.LoadLevelConfig(config.LevelPath(levelID))
	if err != nil {
		return nil, nil, err
	}
	catalog, err := config.LoadEnemyCatalog(config.EnemyCatalogPath)
	if err != nil {
		return nil, nil, err
	}
	return levelConfig, catalog, nil
}

// NewSession 组装关卡会话（尚未开始，需调用 Start）
func NewSession(levelConfig *config.LevelConfig, catalog *config.EnemyCatalog, opts Options) (*Session, error) {
	em := ecs.NewEntityManager()

	table, err := wave.BuildTable(levelConfig, catalog, wave.ECSSpecFactory(em))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", levelConfig.ID, err)
	}

	worldConfig := opts.World
	if worldConfig.RNG == nil {
		worldConfig.RNG = opts.RNG
	}

	world := systems.NewEnemyWorld(em, catalog, worldConfig)
	registry := systems.NewEnemyRegistry()
	registry.SetVerbose(opts.Verbose)

	scheduler := systems.NewSpawnScheduler(em, levelConfig.SpawnInterval)
	scheduler.SetFireImmediately(opts.FireImmediately)
	scheduler.SetVerbose(opts.Verbose)

	controller := systems.NewWaveController(table, registry, scheduler, world, opts.Navigator, systems.WaveControllerConfig{
		RNG:            opts.RNG,
		Difficulty:     opts.Difficulty,
		SkipIneligible: levelConfig.SkipIneligible,
		Verbose:        opts.Verbose,
	})

	log.Printf("[Session] Level %s (%s): %d waves, %d enemies, spawn every %.2fs",
		levelConfig.ID, levelConfig.Name, table.Len(), levelConfig.TotalEnemies(), levelConfig.SpawnInterval)

	return &Session{
		Level:      levelConfig,
		Catalog:    catalog,
		Entities:   em,
		Table:      table,
		World:      world,
		Registry:   registry,
		Scheduler:  scheduler,
		Controller: controller,
	}, nil
}

// Start 开始关卡
func (s *Session) Start() {
	s.Controller.Start()
}

// Update 推进一帧：先生成，再移动/逃逸
func (s *Session) Update(deltaTime float64) {
	if s.Controller.IsTornDown() {
		return
	}
	s.elapsed += deltaTime
	s.Controller.Update(deltaTime)
	s.World.Update(deltaTime)
}

// Elapsed 关卡已运行时间（秒）
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Close 结束关卡并清理实体
func (s *Session) Close() {
	s.Controller.Teardown()
	s.Scheduler.Destroy()
	s.World.Update(0)
}
