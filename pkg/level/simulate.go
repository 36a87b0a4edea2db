package level

import (
	"fmt"
	"log"

	"github.com/decker502/wavegate/pkg/systems"
)

// SimulationOptions 无界面模拟参数
type SimulationOptions struct {
	// Step 每帧时长（秒），默认 1/60
	Step float64

	// MaxTime 模拟时长上限（秒），默认 600
	MaxTime float64

	// AutoAdvance 可选波清场后自动请求下一波
	AutoAdvance bool

	// AdvanceDelay 可选波进入等待状态后多久请求下一波（秒）
	AdvanceDelay float64

	// KillEvery 每隔多少秒击杀一个存活时间最长的敌人，0 表示不击杀（敌人只会逃逸）
	KillEvery float64

	// OnEvent 事件回调（可为 nil），用于打印事件日志
	OnEvent func(elapsed float64, event string)
}

// SimulationResult 模拟结果
type SimulationResult struct {
	Elapsed       float64
	WavesCleared  int
	Completed     bool
	Spawned       int // 消耗的配额（含空生成）
	Killed        int
	Escaped       int
	ManualAdvance int
	FinalState    systems.WaveState
}

// Simulate 以固定步长运行关卡直到完成或超时
//
// 会话必须尚未 Start。模拟结束后不会 Close 会话。
func Simulate(s *Session, opts SimulationOptions) SimulationResult {
	if opts.Step <= 0 {
		opts.Step = 1.0 / 60.0
	}
	if opts.MaxTime <= 0 {
		opts.MaxTime = 600
	}

	var result SimulationResult
	emit := func(format string, args ...interface{}) {
		if opts.OnEvent != nil {
			opts.OnEvent(s.Elapsed(), fmt.Sprintf(format, args...))
		}
	}

	s.Controller.AddListener(systems.WaveListenerFuncs{
		WaveStarted: func(index int) {
			w := s.Table.Current(index)
			emit("wave %d/%d started (%s, target %d)", index+1, s.Table.Len(), w.Kind(), w.TargetCount())
		},
		WaveCleared: func(index int) {
			result.WavesCleared++
			// 清场时配额必定已生成完
			result.Spawned += s.Table.Current(index).TargetCount()
			emit("wave %d/%d cleared", index+1, s.Table.Len())
		},
		LevelComplete: func() {
			result.Completed = true
			emit("level complete")
		},
	})

	s.Start()

	waitingSince := -1.0
	sinceKill := 0.0

	for s.Elapsed() < opts.MaxTime && !s.Controller.IsLevelComplete() {
		s.Update(opts.Step)

		if opts.KillEvery > 0 {
			sinceKill += opts.Step
			if sinceKill >= opts.KillEvery {
				sinceKill = 0
				if ids := s.Registry.IDs(); len(ids) > 0 {
					if s.World.Damage(ids[0], 1<<30) {
						emit("enemy %d killed", ids[0])
					}
				}
			}
		}

		if !opts.AutoAdvance || !s.Controller.CanRequestNextWave() ||
			s.Controller.State() != systems.StateAwaitingAdvance {
			waitingSince = -1
			continue
		}
		if waitingSince < 0 {
			waitingSince = s.Elapsed()
		}
		if s.Elapsed()-waitingSince >= opts.AdvanceDelay && s.Controller.RequestNextWave() {
			result.ManualAdvance++
			waitingSince = -1
		}
	}

	if s.Controller.State() == systems.StateSpawning {
		result.Spawned += s.Controller.SpawnedThisWave()
	}
	result.Elapsed = s.Elapsed()
	result.Killed = s.World.Killed()
	result.Escaped = s.World.Escaped()
	result.FinalState = s.Controller.State()

	log.Printf("[Simulate] Level %s finished: %+v", s.Level.ID, result)
	return result
}
