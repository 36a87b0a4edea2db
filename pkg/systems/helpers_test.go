package systems

import (
	"fmt"

	"github.com/decker502/wavegate/pkg/ecs"
	"github.com/decker502/wavegate/pkg/entities"
	"github.com/decker502/wavegate/pkg/wave"
)

// 测试辅助类型

// idSource 为测试敌人分配递增ID
type idSource struct {
	next ecs.EntityID
}

func (s *idSource) newEnemy(archetype string) *entities.Enemy {
	s.next++
	return entities.NewEnemy(nil, s.next, archetype)
}

// testSpec 不依赖实体管理器的敌人原型
type testSpec struct {
	id       string
	ids      *idSource
	produced int
}

func (s *testSpec) Archetype() string { return s.id }

func (s *testSpec) Produce() *entities.Enemy {
	s.produced++
	return s.ids.newEnemy(s.id)
}

// recordingWorld 记录所有插入的敌人
type recordingWorld struct {
	inserted []*entities.Enemy
}

func (w *recordingWorld) Insert(enemy *entities.Enemy) {
	w.inserted = append(w.inserted, enemy)
}

// killAlive 击杀所有仍存活的敌人
func (w *recordingWorld) killAlive() {
	for _, enemy := range w.inserted {
		enemy.Kill()
	}
}

func (w *recordingWorld) alive() []*entities.Enemy {
	var alive []*entities.Enemy
	for _, enemy := range w.inserted {
		if enemy.IsAlive() {
			alive = append(alive, enemy)
		}
	}
	return alive
}

// recordingNavigator 记录退出次数
type recordingNavigator struct {
	exits int
}

func (n *recordingNavigator) ExitLevel() {
	n.exits++
}

// firstRandom 总是选第一个原型
type firstRandom struct{}

func (firstRandom) Intn(int) int { return 0 }

// eventLog 记录波次事件
type eventLog struct {
	events []string
}

func (l *eventLog) OnWaveStarted(index int) {
	l.events = append(l.events, fmt.Sprintf("started:%d", index))
}

func (l *eventLog) OnWaveCleared(index int) {
	l.events = append(l.events, fmt.Sprintf("cleared:%d", index))
}

func (l *eventLog) OnLevelComplete() {
	l.events = append(l.events, "complete")
}

// controllerFixture 组装一个测试用控制器
type controllerFixture struct {
	ids        *idSource
	registry   *EnemyRegistry
	scheduler  *SpawnScheduler
	world      *recordingWorld
	navigator  *recordingNavigator
	events     *eventLog
	controller *WaveController
}

func newControllerFixture(table *wave.Table, cfg WaveControllerConfig) *controllerFixture {
	if cfg.RNG == nil {
		cfg.RNG = firstRandom{}
	}
	f := &controllerFixture{
		registry:  NewEnemyRegistry(),
		scheduler: NewSpawnScheduler(nil, 1.0),
		world:     &recordingWorld{},
		navigator: &recordingNavigator{},
		events:    &eventLog{},
	}
	f.controller = NewWaveController(table, f.registry, f.scheduler, f.world, f.navigator, cfg)
	f.controller.AddListener(f.events)
	f.controller.Start()
	return f
}

// tick 推进一个生成间隔
func (f *controllerFixture) tick() {
	f.controller.Update(1.0)
}
